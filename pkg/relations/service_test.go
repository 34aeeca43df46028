package relations

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shelfmark/shelfmark/pkg/migrations"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/shelfmark/shelfmark/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestUser(t *testing.T, db *bun.DB, username string) *models.User {
	t.Helper()

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     username,
		PasswordHash: "x",
		IsActive:     true,
	}
	_, err := db.NewInsert().Model(user).Exec(context.Background())
	require.NoError(t, err)

	return user
}

func createTestBook(t *testing.T, db *bun.DB, owner *models.User, name string) *models.Book {
	t.Helper()

	price, err := money.FromString("100.00")
	require.NoError(t, err)

	now := time.Now()
	book := &models.Book{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Author:    "Author",
		Price:     price,
	}
	if owner != nil {
		book.OwnerID = &owner.ID
	}
	_, err = db.NewInsert().Model(book).Exec(context.Background())
	require.NoError(t, err)

	return book
}

func boolptr(v bool) *bool {
	return &v
}

func intptr(v int) *int {
	return &v
}

func TestServiceApplyUpdate_CreatesRowOnFirstTouch(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "reader")
	book := createTestBook(t, db, nil, "Dune")

	relation, err := svc.ApplyUpdate(ctx, user.ID, book.ID, UpdateFields{Like: boolptr(true)})
	require.NoError(t, err)

	assert.True(t, relation.Like)
	assert.False(t, relation.InBookmarks)
	assert.Nil(t, relation.Rate)

	count, err := db.NewSelect().Model((*models.UserBookRelation)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceApplyUpdate_IsIdempotentAndSingleRow(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "reader")
	book := createTestBook(t, db, nil, "Dune")

	_, err := svc.ApplyUpdate(ctx, user.ID, book.ID, UpdateFields{Like: boolptr(true)})
	require.NoError(t, err)
	relation, err := svc.ApplyUpdate(ctx, user.ID, book.ID, UpdateFields{Like: boolptr(true)})
	require.NoError(t, err)

	assert.True(t, relation.Like)

	count, err := db.NewSelect().Model((*models.UserBookRelation)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceApplyUpdate_MergesPartialFields(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "reader")
	book := createTestBook(t, db, nil, "Dune")

	_, err := svc.ApplyUpdate(ctx, user.ID, book.ID, UpdateFields{Like: boolptr(true), Rate: intptr(4), RateSet: true})
	require.NoError(t, err)

	// Touching only in_bookmarks must leave like and rate alone.
	relation, err := svc.ApplyUpdate(ctx, user.ID, book.ID, UpdateFields{InBookmarks: boolptr(true)})
	require.NoError(t, err)

	assert.True(t, relation.Like)
	assert.True(t, relation.InBookmarks)
	require.NotNil(t, relation.Rate)
	assert.Equal(t, 4, *relation.Rate)
}

func TestServiceApplyUpdate_ClearsRate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "reader")
	book := createTestBook(t, db, nil, "Dune")

	_, err := svc.ApplyUpdate(ctx, user.ID, book.ID, UpdateFields{Rate: intptr(5), RateSet: true})
	require.NoError(t, err)

	relation, err := svc.ApplyUpdate(ctx, user.ID, book.ID, UpdateFields{Rate: nil, RateSet: true})
	require.NoError(t, err)
	assert.Nil(t, relation.Rate)

	stored, err := svc.Retrieve(ctx, user.ID, book.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Rate)
}

func TestServiceApplyUpdate_SeparateRowsPerUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	reader1 := createTestUser(t, db, "reader1")
	reader2 := createTestUser(t, db, "reader2")
	book := createTestBook(t, db, nil, "Dune")

	_, err := svc.ApplyUpdate(ctx, reader1.ID, book.ID, UpdateFields{Rate: intptr(4), RateSet: true})
	require.NoError(t, err)
	_, err = svc.ApplyUpdate(ctx, reader2.ID, book.ID, UpdateFields{Rate: intptr(5), RateSet: true})
	require.NoError(t, err)

	count, err := db.NewSelect().Model((*models.UserBookRelation)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	first, err := svc.Retrieve(ctx, reader1.ID, book.ID)
	require.NoError(t, err)
	require.NotNil(t, first.Rate)
	assert.Equal(t, 4, *first.Rate)
}

func TestServiceRetrieve_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	user := createTestUser(t, db, "reader")
	book := createTestBook(t, db, nil, "Dune")

	_, err := svc.Retrieve(context.Background(), user.ID, book.ID)
	require.Error(t, err)
}
