/*
Package remix stores remixes, the user variations of existing recipes, and gives access to their reviews.
*/
package remix

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"remix/internal/app/db"
	"remix/internal/app/model"
	"remix/internal/app/review"
	"remix/internal/pkg/errs"
	"remix/internal/pkg/sqlpatch"
)

const remixColumns = `x.id, u.username, x.recipe_id, rec.name, x.purpose, x.name, x.description,
	x.ingredients, x.directions, x.cooking_time, x.servings, x.image_url, x.created_at`

const remixJoins = `JOIN users u ON u.id = x.user_id
		 JOIN recipes rec ON rec.id = x.recipe_id`

// Repository reads and writes remixes.
type Repository struct {
	db      db.DBTX
	reviews *review.Repository
}

// NewRepository returns a Repository using conn.
func NewRepository(conn db.DBTX) *Repository {
	return &Repository{db: conn, reviews: review.NewRepository(conn, review.Remix)}
}

func scanRemix(row interface{ Scan(...any) error }) (model.Remix, error) {
	var (
		rx      model.Remix
		created sql.NullTime
	)
	err := row.Scan(&rx.ID, &rx.Username, &rx.RecipeID, &rx.OriginalRecipe, &rx.Purpose, &rx.Name, &rx.Description,
		&rx.Ingredients, &rx.Directions, &rx.CookingTime, &rx.Servings, &rx.ImageURL, &created)
	if err != nil {
		return model.Remix{}, err
	}
	rx.Timestamp = model.NewTimestamp(created.Time)
	return rx, nil
}

// Get returns a remix with up to limit of its most recent reviews.
func (r *Repository) Get(ctx context.Context, id int64, limit int) (model.RemixDetails, error) {
	query := `SELECT ` + remixColumns + `
		 FROM remixes x
		 ` + remixJoins + `
		 WHERE x.id = $1`

	rx, err := scanRemix(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RemixDetails{}, errs.NewError(errs.ErrRemixNotFound, id)
		}
		return model.RemixDetails{}, fmt.Errorf("db error: %w", err)
	}

	reviews, err := r.reviews.ListUnchecked(ctx, id, limit)
	if err != nil {
		return model.RemixDetails{}, err
	}

	return model.RemixDetails{Remix: rx, Reviews: reviews}, nil
}

// Create stores a new remix of recipeID by userID. An empty image URL stores the default image.
func (r *Repository) Create(ctx context.Context, userID, recipeID int64, in model.NewRemix) (model.Remix, error) {
	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = model.DefaultImageURL
	}

	query := `WITH x AS (
		     INSERT INTO remixes (user_id, recipe_id, purpose, name, description, ingredients, directions,
		                          cooking_time, servings, image_url)
		     VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		     RETURNING *
		 )
		 SELECT ` + remixColumns + `
		 FROM x
		 ` + remixJoins

	rx, err := scanRemix(r.db.QueryRowContext(ctx, query,
		userID, recipeID, in.Purpose, in.Name, in.Description, in.Ingredients, in.Directions,
		in.CookingTime, in.Servings, imageURL))
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			if strings.Contains(db.ConstraintName(err), "recipe_id") {
				return model.Remix{}, errs.NewError(errs.ErrRecipeNotFound, recipeID)
			}
			return model.Remix{}, errs.NewError(errs.ErrUnauthorized)
		}
		return model.Remix{}, fmt.Errorf("db error: %w", err)
	}
	return rx, nil
}

// Update applies a partial update to a remix. Setting imageUrl to "" restores the default image.
func (r *Repository) Update(ctx context.Context, id int64, p sqlpatch.Payload) (model.Remix, error) {
	p, err := model.RemixFields.Validate(p)
	if err != nil {
		return model.Remix{}, err
	}
	if v, ok := p.Get("imageUrl"); ok && v == "" {
		p.Set("imageUrl", model.DefaultImageURL)
	}

	set, err := sqlpatch.BuildSetClause(p, model.RemixFields.Translation())
	if err != nil {
		return model.Remix{}, err
	}

	query := fmt.Sprintf(`WITH x AS (
		     UPDATE remixes SET %s
		     WHERE id = $%d
		     RETURNING *
		 )
		 SELECT `+remixColumns+`
		 FROM x
		 `+remixJoins, set.Clause, set.Next())

	rx, err := scanRemix(r.db.QueryRowContext(ctx, query, append(set.Values, id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Remix{}, errs.NewError(errs.ErrRemixNotFound, id)
		}
		return model.Remix{}, fmt.Errorf("db error: %w", err)
	}
	return rx, nil
}

// GetAuthor returns the username of the remix's creator.
func (r *Repository) GetAuthor(ctx context.Context, id int64) (model.Author, error) {
	query := `SELECT u.username
		 FROM remixes x
		 JOIN users u ON u.id = x.user_id
		 WHERE x.id = $1`

	var a model.Author
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&a.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Author{}, errs.NewError(errs.ErrRemixNotFound, id)
		}
		return model.Author{}, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// SetImage stores url as the remix's image and returns the previous image URL.
func (r *Repository) SetImage(ctx context.Context, id int64, url string) (string, error) {
	query := `UPDATE remixes x
		 SET image_url = $1
		 FROM (SELECT id, image_url FROM remixes WHERE id = $2 FOR UPDATE) old
		 WHERE x.id = old.id
		 RETURNING old.image_url`

	var previous string
	if err := r.db.QueryRowContext(ctx, query, url, id).Scan(&previous); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", errs.NewError(errs.ErrRemixNotFound, id)
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return previous, nil
}

// ListReviews returns up to limit of the remix's most recent reviews.
func (r *Repository) ListReviews(ctx context.Context, id int64, limit int) ([]model.Review, error) {
	return r.reviews.List(ctx, id, limit)
}

// GetReview returns a single remix review.
func (r *Repository) GetReview(ctx context.Context, reviewID int64) (model.Review, error) {
	return r.reviews.Get(ctx, reviewID)
}

// AddReview creates a review of the remix by userID.
func (r *Repository) AddReview(ctx context.Context, userID, remixID int64, in model.NewReview) (model.Review, error) {
	return r.reviews.Add(ctx, userID, remixID, in)
}

// UpdateReview applies a partial update to a remix review.
func (r *Repository) UpdateReview(ctx context.Context, reviewID int64, p sqlpatch.Payload) (model.Review, error) {
	return r.reviews.Update(ctx, reviewID, p)
}

// GetReviewAuthor returns the username of the remix review's author.
func (r *Repository) GetReviewAuthor(ctx context.Context, reviewID int64) (model.Author, error) {
	return r.reviews.Author(ctx, reviewID)
}
