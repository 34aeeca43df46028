package books

import (
	"github.com/shelfmark/shelfmark/pkg/models"
)

// CanModify reports whether actor may mutate book: staff always can, and
// otherwise only the owner. A nil actor (anonymous) never can. Reads are not
// gated by this; it is checked before every mutating handler proceeds.
func CanModify(actor *models.User, book *models.Book) bool {
	if actor == nil {
		return false
	}
	if actor.IsStaff {
		return true
	}
	return book.OwnerID != nil && *book.OwnerID == actor.ID
}
