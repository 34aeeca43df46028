package books

import (
	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/money"
)

type ListBooksQuery struct {
	Price    *money.Decimal `query:"price" json:"price,omitempty"`
	Search   *string        `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
	Ordering *string        `query:"ordering" json:"ordering,omitempty" validate:"omitempty,oneof=price -price author -author"`
}

// BookPayload is the canonical write-field set for both create and replace.
// The owner is always derived server-side from the authenticated caller.
type BookPayload struct {
	Name     string         `json:"name" mod:"trim" validate:"required,max=256"`
	Author   string         `json:"author" mod:"trim" validate:"required,max=256"`
	Price    *money.Decimal `json:"price" validate:"required"`
	Discount *money.Decimal `json:"discount,omitempty"`
}

// validateAmounts applies the cross-field money rules the validator tags
// can't express: non-negative amounts, and discount never exceeding price so
// the discounted price can't render negative.
func (p *BookPayload) validateAmounts() error {
	if p.Price.IsNegative() {
		return errcodes.ValidationError(`"price" must be greater than or equal to 0`)
	}
	if p.Discount != nil {
		if p.Discount.IsNegative() {
			return errcodes.ValidationError(`"discount" must be greater than or equal to 0`)
		}
		if p.Price.LessThan(*p.Discount) {
			return errcodes.ValidationError(`"discount" must be less than or equal to "price"`)
		}
	}
	return nil
}

// discount returns the payload discount, defaulting to zero.
func (p *BookPayload) discount() money.Decimal {
	if p.Discount == nil {
		return money.Decimal{}
	}
	return *p.Discount
}
