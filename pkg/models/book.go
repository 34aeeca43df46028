package models

import (
	"time"

	"github.com/shelfmark/shelfmark/pkg/money"
	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int           `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Name      string        `bun:",nullzero" json:"name"`
	Author    string        `bun:",nullzero" json:"author"`
	Price     money.Decimal `json:"price"`
	Discount  money.Decimal `json:"discount"`
	OwnerID   *int          `json:"owner_id"`
	Owner     *User         `bun:"rel:belongs-to,join:owner_id=id" json:"owner,omitempty"`

	// Aggregate columns filled by the grouped listing query. They are never
	// stored on the row; every read recomputes them from the interaction set.
	AnnotatedLikes       int   `bun:"annotated_likes,scanonly" json:"annotated_likes"`
	AnnotatedInBookmarks int   `bun:"annotated_in_bookmarks,scanonly" json:"annotated_in_bookmarks"`
	RatingSum            int64 `bun:"rating_sum,scanonly" json:"-"`
	RatingCount          int64 `bun:"rating_count,scanonly" json:"-"`

	Rating        *money.Decimal `bun:"-" json:"rating"`
	DiscountPrice money.Decimal  `bun:"-" json:"discount_price"`
}

// FinalizeAggregates derives rating and discount_price from the scanned
// aggregate columns. Rating stays null when no interaction carries a rate.
func (b *Book) FinalizeAggregates() {
	if b.RatingCount > 0 {
		rating := money.Ratio(b.RatingSum, b.RatingCount)
		b.Rating = &rating
	}
	b.DiscountPrice = b.Price.Sub(b.Discount)
}
