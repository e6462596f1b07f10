package user

import (
	"context"
	"fmt"
	"strings"

	"remix/internal/app/db"
	"remix/internal/app/model"
	"remix/internal/pkg/errs"
)

// AddRecipeFavorite adds the recipe to the user's favorites.
func (r *Repository) AddRecipeFavorite(ctx context.Context, userID, recipeID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recipe_favorites (user_id, recipe_id) VALUES ($1, $2)`, userID, recipeID)
	return favoriteWriteError(err, "recipe_id", errs.ErrRecipeNotFound, recipeID)
}

// RemoveRecipeFavorite removes the recipe from the user's favorites.
func (r *Repository) RemoveRecipeFavorite(ctx context.Context, userID, recipeID int64) error {
	return r.removeFavorite(ctx,
		`DELETE FROM recipe_favorites WHERE user_id = $1 AND recipe_id = $2`, userID, recipeID)
}

// ListRecipeFavorites returns the user's favorite recipes ordered by name.
func (r *Repository) ListRecipeFavorites(ctx context.Context, userID int64) ([]model.RecipeSummary, error) {
	return r.listRecipes(ctx,
		`SELECT r.id, r.name, r.description, r.image_url, r.created_at
		 FROM recipe_favorites f
		 JOIN recipes r ON r.id = f.recipe_id
		 WHERE f.user_id = $1
		 ORDER BY r.name, r.id`, userID)
}

// AddRemixFavorite adds the remix to the user's favorites.
func (r *Repository) AddRemixFavorite(ctx context.Context, userID, remixID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO remix_favorites (user_id, remix_id) VALUES ($1, $2)`, userID, remixID)
	return favoriteWriteError(err, "remix_id", errs.ErrRemixNotFound, remixID)
}

// RemoveRemixFavorite removes the remix from the user's favorites.
func (r *Repository) RemoveRemixFavorite(ctx context.Context, userID, remixID int64) error {
	return r.removeFavorite(ctx,
		`DELETE FROM remix_favorites WHERE user_id = $1 AND remix_id = $2`, userID, remixID)
}

// ListRemixFavorites returns the user's favorite remixes ordered by name.
func (r *Repository) ListRemixFavorites(ctx context.Context, userID int64) ([]model.RemixSummary, error) {
	return r.listRemixes(ctx,
		`SELECT x.id, x.name, x.description, rec.name, x.image_url, x.created_at
		 FROM remix_favorites f
		 JOIN remixes x ON x.id = f.remix_id
		 JOIN recipes rec ON rec.id = x.recipe_id
		 WHERE f.user_id = $1
		 ORDER BY x.name, x.id`, userID)
}

func (r *Repository) removeFavorite(ctx context.Context, query string, userID, itemID int64) error {
	res, err := r.db.ExecContext(ctx, query, userID, itemID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return errs.NewError(errs.ErrFavoriteNotFound)
	}
	return nil
}

func favoriteWriteError(err error, itemColumn string, notFound int, itemID int64) error {
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err):
		return errs.NewError(errs.ErrAlreadyFavorited)
	case db.IsForeignKeyViolation(err):
		if strings.Contains(db.ConstraintName(err), itemColumn) {
			return errs.NewError(notFound, itemID)
		}
		return errs.NewError(errs.ErrUnauthorized)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
