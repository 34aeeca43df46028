package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/shelfmark/shelfmark/pkg/money"
	"github.com/uptrace/bun"
)

// ListBooksOptions are the supported listing criteria: exact price match,
// substring search over name and author, and whitelisted ordering.
type ListBooksOptions struct {
	Price    *money.Decimal
	Search   *string
	Ordering *string
}

// UpdateBookOptions names the columns to persist.
type UpdateBookOptions struct {
	Columns []string
}

// orderings whitelists the ordering query parameter values.
var orderings = map[string]string{
	"price":   "b.price ASC",
	"-price":  "b.price DESC",
	"author":  "b.author ASC",
	"-author": "b.author DESC",
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// annotate adds the per-book aggregate columns in a single grouped pass over
// the interaction table: one LEFT JOIN, one GROUP BY, no per-book subqueries.
func annotate(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		ColumnExpr("b.*").
		ColumnExpr(`COUNT(CASE WHEN ubr."like" THEN 1 END) AS annotated_likes`).
		ColumnExpr(`COUNT(CASE WHEN ubr.in_bookmarks THEN 1 END) AS annotated_in_bookmarks`).
		ColumnExpr(`COALESCE(SUM(ubr.rate), 0) AS rating_sum`).
		ColumnExpr(`COUNT(ubr.rate) AS rating_count`).
		Join(`LEFT JOIN user_book_relations AS ubr ON ubr.book_id = b.id`).
		GroupExpr("b.id")
}

// ListBooks returns all books with their aggregates computed against the
// current interaction state.
func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	books := []*models.Book{}

	q := annotate(svc.db.NewSelect().Model(&books))

	if opts.Price != nil {
		q = q.Where("b.price = ?", *opts.Price)
	}
	if opts.Search != nil && *opts.Search != "" {
		pattern := "%" + *opts.Search + "%"
		q = q.Where("(b.name LIKE ? OR b.author LIKE ?)", pattern, pattern)
	}

	order := "b.id ASC"
	if opts.Ordering != nil {
		if o, ok := orderings[*opts.Ordering]; ok {
			// Tie-break on id so the ordering is stable.
			order = o + ", b.id ASC"
		}
	}
	q = q.OrderExpr(order)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, book := range books {
		book.FinalizeAggregates()
	}

	return books, nil
}

// RetrieveBook returns one book with its aggregates.
func (svc *Service) RetrieveBook(ctx context.Context, id int) (*models.Book, error) {
	book := &models.Book{}

	err := annotate(svc.db.NewSelect().Model(book)).
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	book.FinalizeAggregates()

	return book, nil
}

// Exists reports whether a book with the given ID exists.
func (svc *Service) Exists(ctx context.Context, id int) (bool, error) {
	exists, err := svc.db.NewSelect().
		Model((*models.Book)(nil)).
		Where("b.id = ?", id).
		Exists(ctx)
	return exists, errors.WithStack(err)
}

// CreateBook inserts the book. The caller is responsible for having set the
// owner; a freshly created book has no interactions, so its aggregates are
// finalized locally instead of re-queried.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	_, err := svc.db.NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	book.FinalizeAggregates()

	return nil
}

// UpdateBook persists the given columns of the book.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	book.UpdatedAt = time.Now()

	_, err := svc.db.NewUpdate().
		Model(book).
		WherePK().
		Column(append(opts.Columns, "updated_at")...).
		Exec(ctx)
	return errors.WithStack(err)
}

// DeleteBook removes a book; its interactions cascade away.
func (svc *Service) DeleteBook(ctx context.Context, id int) error {
	result, err := svc.db.NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Book")
	}
	return nil
}
