package relations

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
)

// OptionalRate tracks whether the "rate" key appeared in the payload at all,
// so an explicit null can clear a stored rate while an absent key leaves it
// alone.
type OptionalRate struct {
	Set   bool
	Value *int
}

var null = []byte("null")

func (r *OptionalRate) UnmarshalJSON(data []byte) error {
	r.Set = true
	if bytes.Equal(data, null) {
		r.Value = nil
		return nil
	}

	value := 0
	if err := json.Unmarshal(data, &value); err != nil {
		return errors.WithStack(err)
	}
	r.Value = &value
	return nil
}

// UpdateRelationPayload is the payload for updating the caller's relation to
// a book. Every field is optional; omitted fields are left untouched.
type UpdateRelationPayload struct {
	Like        *bool        `json:"like"`
	InBookmarks *bool        `json:"in_bookmarks"`
	Rate        OptionalRate `json:"rate"`
}

func (p *UpdateRelationPayload) validateRate() error {
	if !p.Rate.Set || p.Rate.Value == nil {
		return nil
	}
	if *p.Rate.Value < 1 || *p.Rate.Value > 5 {
		return errcodes.ValidationError(`"rate" must be between 1 and 5.`)
	}
	return nil
}
