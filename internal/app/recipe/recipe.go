/*
Package recipe stores recipes and gives access to their reviews.
*/
package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"remix/internal/app/db"
	"remix/internal/app/model"
	"remix/internal/app/review"
	"remix/internal/pkg/errs"
	"remix/internal/pkg/sqlpatch"
)

const recipeColumns = `r.id, u.username, r.name, r.description, r.ingredients, r.directions,
	r.cooking_time, r.servings, r.image_url, r.created_at`

// Repository reads and writes recipes.
type Repository struct {
	db      db.DBTX
	reviews *review.Repository
}

// NewRepository returns a Repository using conn.
func NewRepository(conn db.DBTX) *Repository {
	return &Repository{db: conn, reviews: review.NewRepository(conn, review.Recipe)}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row scanner) (model.Recipe, error) {
	var (
		rec     model.Recipe
		created sql.NullTime
	)
	err := row.Scan(&rec.ID, &rec.Username, &rec.Name, &rec.Description, &rec.Ingredients, &rec.Directions,
		&rec.CookingTime, &rec.Servings, &rec.ImageURL, &created)
	if err != nil {
		return model.Recipe{}, err
	}
	rec.Timestamp = model.NewTimestamp(created.Time)
	return rec, nil
}

// List returns recipes ordered by name. A non-empty search keeps only recipes whose
// name contains it, ignoring case.
func (r *Repository) List(ctx context.Context, search string) ([]model.RecipeSummary, error) {
	query := `SELECT id, name, description, image_url, created_at
		 FROM recipes
		 WHERE $1 = '' OR strpos(lower(name), lower($1)) > 0
		 ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	recipes := []model.RecipeSummary{}
	for rows.Next() {
		var (
			s       model.RecipeSummary
			created sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.ImageURL, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.Timestamp = model.NewTimestamp(created.Time)
		recipes = append(recipes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return recipes, nil
}

// Get returns a recipe with up to limit of its most recent remixes and reviews.
func (r *Repository) Get(ctx context.Context, id int64, limit int) (model.RecipeDetails, error) {
	query := `SELECT ` + recipeColumns + `
		 FROM recipes r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.id = $1`

	rec, err := scanRecipe(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RecipeDetails{}, errs.NewError(errs.ErrRecipeNotFound, id)
		}
		return model.RecipeDetails{}, fmt.Errorf("db error: %w", err)
	}

	remixes, err := r.listRemixes(ctx, id, limit)
	if err != nil {
		return model.RecipeDetails{}, err
	}

	reviews, err := r.reviews.ListUnchecked(ctx, id, limit)
	if err != nil {
		return model.RecipeDetails{}, err
	}

	return model.RecipeDetails{Recipe: rec, Remixes: remixes, Reviews: reviews}, nil
}

// Create stores a new recipe by userID. An empty image URL stores the default image.
func (r *Repository) Create(ctx context.Context, userID int64, in model.NewRecipe) (model.Recipe, error) {
	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = model.DefaultImageURL
	}

	query := `WITH r AS (
		     INSERT INTO recipes (user_id, name, description, ingredients, directions, cooking_time, servings, image_url)
		     VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		     RETURNING *
		 )
		 SELECT ` + recipeColumns + `
		 FROM r
		 JOIN users u ON u.id = r.user_id`

	rec, err := scanRecipe(r.db.QueryRowContext(ctx, query,
		userID, in.Name, in.Description, in.Ingredients, in.Directions, in.CookingTime, in.Servings, imageURL))
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return model.Recipe{}, errs.NewError(errs.ErrUnauthorized)
		}
		return model.Recipe{}, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// Update applies a partial update to a recipe. Setting imageUrl to "" restores the default image.
func (r *Repository) Update(ctx context.Context, id int64, p sqlpatch.Payload) (model.Recipe, error) {
	p, err := model.RecipeFields.Validate(p)
	if err != nil {
		return model.Recipe{}, err
	}
	if v, ok := p.Get("imageUrl"); ok && v == "" {
		p.Set("imageUrl", model.DefaultImageURL)
	}

	set, err := sqlpatch.BuildSetClause(p, model.RecipeFields.Translation())
	if err != nil {
		return model.Recipe{}, err
	}

	query := fmt.Sprintf(`WITH r AS (
		     UPDATE recipes SET %s
		     WHERE id = $%d
		     RETURNING *
		 )
		 SELECT `+recipeColumns+`
		 FROM r
		 JOIN users u ON u.id = r.user_id`, set.Clause, set.Next())

	rec, err := scanRecipe(r.db.QueryRowContext(ctx, query, append(set.Values, id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Recipe{}, errs.NewError(errs.ErrRecipeNotFound, id)
		}
		return model.Recipe{}, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// GetAuthor returns the username of the recipe's creator.
func (r *Repository) GetAuthor(ctx context.Context, id int64) (model.Author, error) {
	query := `SELECT u.username
		 FROM recipes r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.id = $1`

	var a model.Author
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&a.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Author{}, errs.NewError(errs.ErrRecipeNotFound, id)
		}
		return model.Author{}, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// ListRemixes returns all remixes of the recipe, newest first.
func (r *Repository) ListRemixes(ctx context.Context, id int64) ([]model.RemixSummary, error) {
	exists, err := r.reviews.ParentExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewError(errs.ErrRecipeNotFound, id)
	}
	return r.listRemixes(ctx, id, 0)
}

func (r *Repository) listRemixes(ctx context.Context, id int64, limit int) ([]model.RemixSummary, error) {
	query := `SELECT rem.id, rem.name, rem.description, rec.name, rem.image_url, rem.created_at
		 FROM remixes rem
		 JOIN recipes rec ON rec.id = rem.recipe_id
		 WHERE rem.recipe_id = $1
		 ORDER BY rem.created_at DESC, rem.name
		 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, id, review.LimitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	remixes := []model.RemixSummary{}
	for rows.Next() {
		var (
			s       model.RemixSummary
			created sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.OriginalRecipe, &s.ImageURL, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.Timestamp = model.NewTimestamp(created.Time)
		remixes = append(remixes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return remixes, nil
}

// SetImage stores url as the recipe's image and returns the previous image URL.
func (r *Repository) SetImage(ctx context.Context, id int64, url string) (string, error) {
	query := `UPDATE recipes r
		 SET image_url = $1
		 FROM (SELECT id, image_url FROM recipes WHERE id = $2 FOR UPDATE) old
		 WHERE r.id = old.id
		 RETURNING old.image_url`

	var previous string
	if err := r.db.QueryRowContext(ctx, query, url, id).Scan(&previous); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", errs.NewError(errs.ErrRecipeNotFound, id)
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return previous, nil
}

// ListReviews returns up to limit of the recipe's most recent reviews.
func (r *Repository) ListReviews(ctx context.Context, id int64, limit int) ([]model.Review, error) {
	return r.reviews.List(ctx, id, limit)
}

// GetReview returns a single recipe review.
func (r *Repository) GetReview(ctx context.Context, reviewID int64) (model.Review, error) {
	return r.reviews.Get(ctx, reviewID)
}

// AddReview creates a review of the recipe by userID.
func (r *Repository) AddReview(ctx context.Context, userID, recipeID int64, in model.NewReview) (model.Review, error) {
	return r.reviews.Add(ctx, userID, recipeID, in)
}

// UpdateReview applies a partial update to a recipe review.
func (r *Repository) UpdateReview(ctx context.Context, reviewID int64, p sqlpatch.Payload) (model.Review, error) {
	return r.reviews.Update(ctx, reviewID, p)
}

// GetReviewAuthor returns the username of the recipe review's author.
func (r *Repository) GetReviewAuthor(ctx context.Context, reviewID int64) (model.Author, error) {
	return r.reviews.Author(ctx, reviewID)
}
