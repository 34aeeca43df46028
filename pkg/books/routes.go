package books

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfmark/shelfmark/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all book routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	bookService := NewService(db)

	h := &handler{
		bookService: bookService,
	}

	g := e.Group("/book")
	g.GET("", h.list, authMiddleware.AuthenticateOptional)
	g.GET("/:id", h.retrieve, authMiddleware.AuthenticateOptional)
	g.POST("", h.create, authMiddleware.Authenticate)
	g.PUT("/:id", h.update, authMiddleware.Authenticate)
	g.DELETE("/:id", h.delete, authMiddleware.Authenticate)
}
