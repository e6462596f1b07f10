package handler

import (
	"context"

	"remix/internal/app/model"
	"remix/internal/app/storage"
	"remix/internal/configs"
	"remix/internal/pkg/auth/jwt"
	"remix/internal/pkg/sqlpatch"
)

// UserStore is the account and favorites persistence used by the handlers.
type UserStore interface {
	Register(ctx context.Context, in model.NewUser) (model.User, error)
	Authenticate(ctx context.Context, username, password string) (model.User, error)
	List(ctx context.Context, search string) ([]model.User, error)
	Get(ctx context.Context, username string) (model.UserDetails, error)
	Update(ctx context.Context, username string, p sqlpatch.Payload) (model.User, error)

	AddRecipeFavorite(ctx context.Context, userID, recipeID int64) error
	RemoveRecipeFavorite(ctx context.Context, userID, recipeID int64) error
	ListRecipeFavorites(ctx context.Context, userID int64) ([]model.RecipeSummary, error)
	AddRemixFavorite(ctx context.Context, userID, remixID int64) error
	RemoveRemixFavorite(ctx context.Context, userID, remixID int64) error
	ListRemixFavorites(ctx context.Context, userID int64) ([]model.RemixSummary, error)
}

// ReviewStore is the review access shared by recipes and remixes.
type ReviewStore interface {
	ListReviews(ctx context.Context, parentID int64, limit int) ([]model.Review, error)
	GetReview(ctx context.Context, reviewID int64) (model.Review, error)
	AddReview(ctx context.Context, userID, parentID int64, in model.NewReview) (model.Review, error)
	UpdateReview(ctx context.Context, reviewID int64, p sqlpatch.Payload) (model.Review, error)
	GetReviewAuthor(ctx context.Context, reviewID int64) (model.Author, error)
}

// ImageStore stores an entity's image URL and returns the one it replaced.
type ImageStore interface {
	SetImage(ctx context.Context, id int64, url string) (string, error)
}

type RecipeStore interface {
	ReviewStore
	ImageStore
	List(ctx context.Context, search string) ([]model.RecipeSummary, error)
	Get(ctx context.Context, id int64, limit int) (model.RecipeDetails, error)
	Create(ctx context.Context, userID int64, in model.NewRecipe) (model.Recipe, error)
	Update(ctx context.Context, id int64, p sqlpatch.Payload) (model.Recipe, error)
	GetAuthor(ctx context.Context, id int64) (model.Author, error)
	ListRemixes(ctx context.Context, id int64) ([]model.RemixSummary, error)
}

type RemixStore interface {
	ReviewStore
	ImageStore
	Get(ctx context.Context, id int64, limit int) (model.RemixDetails, error)
	Create(ctx context.Context, userID, recipeID int64, in model.NewRemix) (model.Remix, error)
	Update(ctx context.Context, id int64, p sqlpatch.Payload) (model.Remix, error)
	GetAuthor(ctx context.Context, id int64) (model.Author, error)
}

// TokenService issues and verifies identity tokens.
type TokenService interface {
	jwt.Verifier
	Issue(identity jwt.Identity) (string, error)
}

// AppDeps holds everything the router and handlers need.
type AppDeps struct {
	Config  *configs.AppConfig
	Users   UserStore
	Recipes RecipeStore
	Remixes RemixStore
	Tokens  TokenService

	// Storage is nil when object storage is not configured.
	Storage storage.StorageService
}

func identityOf(u model.User) jwt.Identity {
	return jwt.Identity{UserID: u.ID, Username: u.Username, Email: u.Email}
}
