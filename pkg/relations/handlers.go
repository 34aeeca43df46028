package relations

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfmark/shelfmark/pkg/auth"
	"github.com/shelfmark/shelfmark/pkg/books"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
)

type handler struct {
	relationService *Service
	bookService     *books.Service
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	bookID, err := strconv.Atoi(c.Param("bookID"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateRelationPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if err := params.validateRate(); err != nil {
		return err
	}

	exists, err := h.bookService.Exists(ctx, bookID)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Book")
	}

	relation, err := h.relationService.ApplyUpdate(ctx, user.ID, bookID, UpdateFields{
		Like:        params.Like,
		InBookmarks: params.InBookmarks,
		Rate:        params.Rate.Value,
		RateSet:     params.Rate.Set,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, relation))
}
