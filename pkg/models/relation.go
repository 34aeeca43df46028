package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Rate choices.
const (
	RateOk         = 1
	RateFine       = 2
	RateGood       = 3
	RateAmazing    = 4
	RateIncredible = 5
)

// UserBookRelation holds one user's like/bookmark/rating state for one book.
// At most one row exists per (user, book) pair, enforced by a unique index.
type UserBookRelation struct {
	bun.BaseModel `bun:"table:user_book_relations,alias:ubr"`

	ID          int       `bun:",pk,nullzero" json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	UserID      int       `bun:",nullzero" json:"-"`
	BookID      int       `bun:",nullzero" json:"book"`
	Like        bool      `bun:"like" json:"like"`
	InBookmarks bool      `json:"in_bookmarks"`
	Rate        *int      `json:"rate"`
}
