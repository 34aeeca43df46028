package relations

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/uptrace/bun"
)

// Service manages user-book relations.
type Service struct {
	db *bun.DB
}

// NewService creates a new relations service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// UpdateFields holds the subset of relation fields a caller wants to change.
// Nil pointers leave the stored value untouched. RateSet distinguishes "clear
// the rate" from "don't touch the rate".
type UpdateFields struct {
	Like        *bool
	InBookmarks *bool
	Rate        *int
	RateSet     bool
}

// ApplyUpdate fetches the caller's relation row for the book, creating it on
// first touch, and merges the provided fields into it. The unique index on
// (user_id, book_id) guarantees one row per pair; a concurrent insert losing
// the race falls back to updating the winner's row.
func (svc *Service) ApplyUpdate(ctx context.Context, userID, bookID int, fields UpdateFields) (*models.UserBookRelation, error) {
	relation, err := svc.retrieve(ctx, userID, bookID)
	if err != nil && errors.Cause(err) != sql.ErrNoRows {
		return nil, err
	}

	created := false
	if relation == nil {
		now := time.Now()
		relation = &models.UserBookRelation{
			CreatedAt: now,
			UpdatedAt: now,
			UserID:    userID,
			BookID:    bookID,
		}

		_, err = svc.db.NewInsert().Model(relation).Exec(ctx)
		if err != nil {
			if !isUniqueViolation(err) {
				return nil, errors.WithStack(err)
			}
			// Lost the race to a concurrent first touch; use that row.
			relation, err = svc.retrieve(ctx, userID, bookID)
			if err != nil {
				return nil, err
			}
		} else {
			created = true
		}
	}

	columns := []string{}
	if fields.Like != nil {
		relation.Like = *fields.Like
		columns = append(columns, "like")
	}
	if fields.InBookmarks != nil {
		relation.InBookmarks = *fields.InBookmarks
		columns = append(columns, "in_bookmarks")
	}
	if fields.RateSet {
		relation.Rate = fields.Rate
		columns = append(columns, "rate")
	}

	if len(columns) == 0 && !created {
		return relation, nil
	}

	relation.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	_, err = svc.db.
		NewUpdate().
		Model(relation).
		WherePK().
		Column(columns...).
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return relation, nil
}

// Retrieve returns the caller's relation row for the book, or NotFound when
// the caller has never touched the book.
func (svc *Service) Retrieve(ctx context.Context, userID, bookID int) (*models.UserBookRelation, error) {
	relation, err := svc.retrieve(ctx, userID, bookID)
	if errors.Cause(err) == sql.ErrNoRows {
		return nil, errcodes.NotFound("Relation")
	}
	return relation, err
}

func (svc *Service) retrieve(ctx context.Context, userID, bookID int) (*models.UserBookRelation, error) {
	relation := &models.UserBookRelation{}
	err := svc.db.
		NewSelect().
		Model(relation).
		Where("ubr.user_id = ?", userID).
		Where("ubr.book_id = ?", bookID).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return relation, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
