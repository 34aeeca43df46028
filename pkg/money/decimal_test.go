package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	m, err := FromString("150.00")
	require.NoError(t, err)
	assert.Equal(t, "150.00", m.String())

	m, err = FromString("25.5")
	require.NoError(t, err)
	assert.Equal(t, "25.50", m.String())

	m, err = FromString("25")
	require.NoError(t, err)
	assert.Equal(t, "25.00", m.String())

	_, err = FromString("10.999")
	assert.Error(t, err)

	_, err = FromString("not a number")
	assert.Error(t, err)
}

func TestRatio(t *testing.T) {
	t.Parallel()

	// 13/3 = 4.333... rounds down to 4.33
	assert.Equal(t, "4.33", Ratio(13, 3).String())
	// 9/2 = 4.5 exactly
	assert.Equal(t, "4.50", Ratio(9, 2).String())
	// half-up rounding: 5/8 = 0.625 -> 0.63
	assert.Equal(t, "0.63", Ratio(5, 8).String())
	assert.Equal(t, "5.00", Ratio(5, 1).String())
}

func TestSub(t *testing.T) {
	t.Parallel()

	price, err := FromString("150.00")
	require.NoError(t, err)
	discount, err := FromString("50.00")
	require.NoError(t, err)

	assert.Equal(t, "100.00", price.Sub(discount).String())
	assert.True(t, discount.Sub(price).IsNegative())
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	m, err := FromString("55.10")
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"55.10"`, string(data))

	var out Decimal
	require.NoError(t, json.Unmarshal([]byte(`"42.00"`), &out))
	assert.Equal(t, "42.00", out.String())

	// bare numbers are accepted too
	require.NoError(t, json.Unmarshal([]byte(`42.5`), &out))
	assert.Equal(t, "42.50", out.String())

	assert.Error(t, json.Unmarshal([]byte(`"1.234"`), &out))
}

func TestComparisons(t *testing.T) {
	t.Parallel()

	m, err := FromString("42.00")
	require.NoError(t, err)

	assert.True(t, m.Equal(FromInt(42)))
	assert.True(t, FromInt(41).LessThan(m))
	assert.False(t, m.LessThan(m))
}

func TestZeroValue(t *testing.T) {
	t.Parallel()

	var m Decimal
	assert.Equal(t, "0.00", m.String())
}
