package guard

import (
	"context"
	"strconv"

	"remix/internal/app/model"
	"remix/internal/pkg/errs"
)

// AuthorLookup resolves the author of the resource with the given id.
// It fails with a NotFound error when the id does not exist.
type AuthorLookup func(ctx context.Context, id int64) (model.Author, error)

// LoginRequired fails with Unauthorized for anonymous requests.
func LoginRequired(_ context.Context, in Input) Result {
	if in.Identity == nil {
		return Fail(errs.NewError(errs.ErrUnauthorized))
	}
	return Pass()
}

// OwnershipRequired passes only when the identity authored the resource whose id is in
// the path parameter param. A mismatch fails with forbiddenCode; lookup errors are
// returned unchanged.
func OwnershipRequired(lookup AuthorLookup, param string, forbiddenCode int) Guard {
	return func(ctx context.Context, in Input) Result {
		if in.Identity == nil {
			return Fail(errs.NewError(errs.ErrUnauthorized))
		}

		id, err := strconv.ParseInt(in.Param(param), 10, 64)
		if err != nil || id <= 0 {
			return Fail(errs.NewError(errs.ErrInvalidID, param))
		}

		author, err := lookup(ctx, id)
		if err != nil {
			return Fail(err)
		}

		if author.Username != in.Identity.Username {
			return Fail(errs.NewError(forbiddenCode))
		}
		return Pass()
	}
}

// RecipeOwner requires the identity to have created the recipe in {recipeId}.
func RecipeOwner(lookup AuthorLookup) Guard {
	return OwnershipRequired(lookup, "recipeId", errs.ErrNotRecipeAuthor)
}

// RecipeReviewOwner requires the identity to have written the recipe review in {reviewId}.
func RecipeReviewOwner(lookup AuthorLookup) Guard {
	return OwnershipRequired(lookup, "reviewId", errs.ErrNotRecipeReviewAuthor)
}

// RemixOwner requires the identity to have created the remix in {remixId}.
func RemixOwner(lookup AuthorLookup) Guard {
	return OwnershipRequired(lookup, "remixId", errs.ErrNotRemixAuthor)
}

// RemixReviewOwner requires the identity to have written the remix review in {reviewId}.
func RemixReviewOwner(lookup AuthorLookup) Guard {
	return OwnershipRequired(lookup, "reviewId", errs.ErrNotRemixReviewAuthor)
}

// MatchingUsername requires the path parameter param to equal the identity's username.
func MatchingUsername(param string) Guard {
	return func(_ context.Context, in Input) Result {
		if in.Identity == nil {
			return Fail(errs.NewError(errs.ErrUnauthorized))
		}
		if in.Param(param) != in.Identity.Username {
			return Fail(errs.NewError(errs.ErrNotAccountOwner))
		}
		return Pass()
	}
}
