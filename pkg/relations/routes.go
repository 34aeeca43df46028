package relations

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfmark/shelfmark/pkg/auth"
	"github.com/shelfmark/shelfmark/pkg/books"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers relation routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		relationService: NewService(db),
		bookService:     books.NewService(db),
	}

	g := e.Group("/userbookrelation")
	g.PATCH("/:bookID", h.update, authMiddleware.Authenticate)
}
