/*
Package review stores recipe and remix reviews.

Both kinds share one table layout and differ only in their parent table, so a single
Repository serves either, configured by a Target.
*/
package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"remix/internal/app/db"
	"remix/internal/app/model"
	"remix/internal/pkg/errs"
	"remix/internal/pkg/sqlpatch"
)

// Target describes which reviews a Repository manages.
type Target struct {
	Table          string
	ParentTable    string
	ParentColumn   string
	NotFound       int
	ParentNotFound int

	setParent func(rv *model.Review, id int64)
}

var (
	// Recipe targets recipe_reviews.
	Recipe = Target{
		Table:          "recipe_reviews",
		ParentTable:    "recipes",
		ParentColumn:   "recipe_id",
		NotFound:       errs.ErrRecipeReviewNotFound,
		ParentNotFound: errs.ErrRecipeNotFound,
		setParent:      func(rv *model.Review, id int64) { rv.RecipeID = id },
	}

	// Remix targets remix_reviews.
	Remix = Target{
		Table:          "remix_reviews",
		ParentTable:    "remixes",
		ParentColumn:   "remix_id",
		NotFound:       errs.ErrRemixReviewNotFound,
		ParentNotFound: errs.ErrRemixNotFound,
		setParent:      func(rv *model.Review, id int64) { rv.RemixID = id },
	}
)

// Repository reads and writes reviews of one Target.
type Repository struct {
	db db.DBTX
	t  Target
}

// NewRepository returns a Repository for t.
func NewRepository(conn db.DBTX, t Target) *Repository {
	return &Repository{db: conn, t: t}
}

// LimitArg turns a LIMIT value into a bind parameter; non-positive means no limit.
func LimitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

func (r *Repository) selectColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, u.username, %[1]s.%[2]s, %[1]s.title, %[1]s.content, %[1]s.created_at`, alias, r.t.ParentColumn)
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scan(row scanner) (model.Review, error) {
	var (
		rv       model.Review
		parentID int64
		created  sql.NullTime
	)
	if err := row.Scan(&rv.ID, &rv.Username, &parentID, &rv.Title, &rv.Content, &created); err != nil {
		return model.Review{}, err
	}
	r.t.setParent(&rv, parentID)
	rv.Timestamp = model.NewTimestamp(created.Time)
	return rv, nil
}

// ParentExists reports whether the reviewed recipe or remix exists.
func (r *Repository) ParentExists(ctx context.Context, parentID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.t.ParentTable)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, parentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// List returns the most recent reviews of parentID, newest first.
// It fails with the parent's NotFound error when the parent does not exist.
func (r *Repository) List(ctx context.Context, parentID int64, limit int) ([]model.Review, error) {
	exists, err := r.ParentExists(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewError(r.t.ParentNotFound, parentID)
	}
	return r.ListUnchecked(ctx, parentID, limit)
}

// ListUnchecked is List without the parent existence check.
func (r *Repository) ListUnchecked(ctx context.Context, parentID int64, limit int) ([]model.Review, error) {
	query := fmt.Sprintf(
		`SELECT %s
		 FROM %s rv
		 JOIN users u ON u.id = rv.user_id
		 WHERE rv.%s = $1
		 ORDER BY rv.created_at DESC, rv.id DESC
		 LIMIT $2`,
		r.selectColumns("rv"), r.t.Table, r.t.ParentColumn)

	rows, err := r.db.QueryContext(ctx, query, parentID, LimitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		rv, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return reviews, nil
}

// Get returns a single review.
func (r *Repository) Get(ctx context.Context, id int64) (model.Review, error) {
	query := fmt.Sprintf(
		`SELECT %s
		 FROM %s rv
		 JOIN users u ON u.id = rv.user_id
		 WHERE rv.id = $1`,
		r.selectColumns("rv"), r.t.Table)

	rv, err := r.scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Review{}, errs.NewError(r.t.NotFound, id)
		}
		return model.Review{}, fmt.Errorf("db error: %w", err)
	}
	return rv, nil
}

// Add creates a review by userID of parentID.
func (r *Repository) Add(ctx context.Context, userID, parentID int64, in model.NewReview) (model.Review, error) {
	query := fmt.Sprintf(
		`WITH inserted AS (
		     INSERT INTO %[1]s (user_id, %[2]s, title, content)
		     VALUES ($1, $2, $3, $4)
		     RETURNING id, user_id, %[2]s, title, content, created_at
		 )
		 SELECT %[3]s
		 FROM inserted i
		 JOIN users u ON u.id = i.user_id`,
		r.t.Table, r.t.ParentColumn, r.selectColumns("i"))

	rv, err := r.scan(r.db.QueryRowContext(ctx, query, userID, parentID, in.Title, in.Content))
	if err != nil {
		return model.Review{}, r.mapWriteError(err, parentID)
	}
	return rv, nil
}

// Update applies a partial update to a review.
func (r *Repository) Update(ctx context.Context, id int64, p sqlpatch.Payload) (model.Review, error) {
	p, err := model.ReviewFields.Validate(p)
	if err != nil {
		return model.Review{}, err
	}

	set, err := sqlpatch.BuildSetClause(p, model.ReviewFields.Translation())
	if err != nil {
		return model.Review{}, err
	}

	query := fmt.Sprintf(
		`WITH updated AS (
		     UPDATE %[1]s SET %[2]s
		     WHERE id = $%[3]d
		     RETURNING id, user_id, %[4]s, title, content, created_at
		 )
		 SELECT %[5]s
		 FROM updated i
		 JOIN users u ON u.id = i.user_id`,
		r.t.Table, set.Clause, set.Next(), r.t.ParentColumn, r.selectColumns("i"))

	rv, err := r.scan(r.db.QueryRowContext(ctx, query, append(set.Values, id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Review{}, errs.NewError(r.t.NotFound, id)
		}
		return model.Review{}, fmt.Errorf("db error: %w", err)
	}
	return rv, nil
}

// Author returns the username of the review's author.
func (r *Repository) Author(ctx context.Context, id int64) (model.Author, error) {
	query := fmt.Sprintf(
		`SELECT u.username
		 FROM %s rv
		 JOIN users u ON u.id = rv.user_id
		 WHERE rv.id = $1`,
		r.t.Table)

	var a model.Author
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&a.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Author{}, errs.NewError(r.t.NotFound, id)
		}
		return model.Author{}, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *Repository) mapWriteError(err error, parentID int64) error {
	if db.IsForeignKeyViolation(err) {
		if strings.Contains(db.ConstraintName(err), r.t.ParentColumn) {
			return errs.NewError(r.t.ParentNotFound, parentID)
		}
		return errs.NewError(errs.ErrUnauthorized)
	}
	return fmt.Errorf("db error: %w", err)
}
