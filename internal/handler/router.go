/*
Package handler provides the HTTP handlers and routing setup for the Remix server.

This file defines the main Router, applying the shared middleware (request ids, logging,
CORS, identity extraction) and the per-route guards and rate limits.
*/
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"remix/internal/configs"
	"remix/internal/pkg/auth/guard"
	"remix/internal/pkg/auth/jwt"
	"remix/internal/pkg/errs"
	"remix/internal/pkg/limiter"
	"remix/internal/pkg/logx"
	"remix/internal/pkg/resp"
)

const (
	AuthRate  = 0.2
	AuthBurst = 5
)

// Router sets up the main HTTP routing table for the application.
// ctx bounds the lifetime of background work such as the rate limiter's cleanup.
func Router(ctx context.Context, deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(AuthRate), AuthBurst)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == configs.EnvDevelopment {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(jwt.IdentityExtractorMiddleware(deps.Tokens))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		resp.RespondError(w, r, errs.NewError(errs.ErrRouteNotFound))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "Remix Server",
		})
	})

	loggedIn := guard.Middleware(guard.LoginRequired)

	r.Route("/auth", func(auth chi.Router) {
		auth.Use(authLimiter.Middleware)
		auth.Post("/register", HandleRegister(deps))
		auth.Post("/login", HandleLogin(deps))
	})

	r.Route("/users", func(users chi.Router) {
		users.Use(loggedIn)
		users.Get("/", HandleListUsers(deps))

		users.Route("/{username}", func(u chi.Router) {
			u.Get("/", HandleGetUser(deps))

			u.Group(func(own chi.Router) {
				own.Use(guard.Middleware(guard.MatchingUsername("username")))
				own.Patch("/", HandleUpdateUser(deps))

				own.Get("/favorites/recipes", HandleListRecipeFavorites(deps))
				own.Post("/favorites/recipes/{recipeId}", HandleAddRecipeFavorite(deps))
				own.Delete("/favorites/recipes/{recipeId}", HandleRemoveRecipeFavorite(deps))

				own.Get("/favorites/remixes", HandleListRemixFavorites(deps))
				own.Post("/favorites/remixes/{remixId}", HandleAddRemixFavorite(deps))
				own.Delete("/favorites/remixes/{remixId}", HandleRemoveRemixFavorite(deps))
			})
		})
	})

	recipeReviews := reviewRoutes{
		store:        deps.Recipes,
		parentParam:  "recipeId",
		notFoundCode: errs.ErrRecipeReviewNotFound,
		parentOf:     reviewRecipeID,
	}

	r.Route("/recipes", func(recipes chi.Router) {
		recipes.Get("/", HandleListRecipes(deps))
		recipes.With(loggedIn).Post("/", HandleCreateRecipe(deps))

		recipes.Get("/reviews/{reviewId}", recipeReviews.handleGet())

		recipes.Route("/{recipeId}", func(rec chi.Router) {
			rec.Get("/", HandleGetRecipe(deps))
			rec.With(guard.Middleware(guard.LoginRequired, guard.RecipeOwner(deps.Recipes.GetAuthor))).
				Patch("/", HandleUpdateRecipe(deps))
			rec.Group(func(owner chi.Router) {
				owner.Use(guard.Middleware(guard.LoginRequired, guard.RecipeOwner(deps.Recipes.GetAuthor)))
				owner.Post("/image", HandlePresignImage(deps, "recipes", "recipeId"))
				owner.Put("/image", HandleConfirmImage(deps, "recipes", "recipeId", deps.Recipes))
			})

			rec.Get("/remixes", HandleListRecipeRemixes(deps))
			rec.With(loggedIn).Post("/remixes", HandleCreateRemix(deps))

			rec.Get("/reviews", recipeReviews.handleList())
			rec.With(loggedIn).Post("/reviews", recipeReviews.handleAdd())
			rec.With(guard.Middleware(guard.LoginRequired, guard.RecipeReviewOwner(deps.Recipes.GetReviewAuthor))).
				Patch("/reviews/{reviewId}", recipeReviews.handleUpdate())
		})
	})

	remixReviews := reviewRoutes{
		store:        deps.Remixes,
		parentParam:  "remixId",
		notFoundCode: errs.ErrRemixReviewNotFound,
		parentOf:     reviewRemixID,
	}

	r.Route("/remixes", func(remixes chi.Router) {
		remixes.Get("/reviews/{reviewId}", remixReviews.handleGet())

		remixes.Route("/{remixId}", func(rx chi.Router) {
			rx.Get("/", HandleGetRemix(deps))
			rx.With(guard.Middleware(guard.LoginRequired, guard.RemixOwner(deps.Remixes.GetAuthor))).
				Patch("/", HandleUpdateRemix(deps))
			rx.Group(func(owner chi.Router) {
				owner.Use(guard.Middleware(guard.LoginRequired, guard.RemixOwner(deps.Remixes.GetAuthor)))
				owner.Post("/image", HandlePresignImage(deps, "remixes", "remixId"))
				owner.Put("/image", HandleConfirmImage(deps, "remixes", "remixId", deps.Remixes))
			})

			rx.Get("/reviews", remixReviews.handleList())
			rx.With(loggedIn).Post("/reviews", remixReviews.handleAdd())
			rx.With(guard.Middleware(guard.LoginRequired, guard.RemixReviewOwner(deps.Remixes.GetReviewAuthor))).
				Patch("/reviews/{reviewId}", remixReviews.handleUpdate())
		})
	})

	return r
}
