package handler

import (
	"net/http"

	"remix/internal/app/model"
	"remix/internal/pkg/auth/jwt"
	"remix/internal/pkg/req"
	"remix/internal/pkg/resp"
)

// HandleListRecipes lists recipes, optionally filtered by ?recipeName=.
func HandleListRecipes(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search, cerr := req.Query(r, "recipeName")
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		recipes, err := deps.Recipes.List(r.Context(), search)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"recipes": recipes})
	}
}

// HandleGetRecipe returns a recipe with its remixes and reviews, capped by ?limit=.
func HandleGetRecipe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, cerr := req.PathID(r, "recipeId")
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		limit, cerr := req.Limit(r, 0)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		recipe, err := deps.Recipes.Get(r.Context(), id, limit)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"recipe": recipe})
	}
}

func HandleCreateRecipe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input model.NewRecipe
		if cerr := req.BindJSON(w, r, &input); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		recipe, err := deps.Recipes.Create(r.Context(), identity.UserID, input)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondCreated(w, r, map[string]any{"recipe": recipe})
	}
}

func HandleUpdateRecipe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, cerr := req.PathID(r, "recipeId")
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		payload, cerr := req.BindPayload(w, r)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		recipe, err := deps.Recipes.Update(r.Context(), id, payload)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"recipe": recipe})
	}
}

func HandleListRecipeRemixes(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, cerr := req.PathID(r, "recipeId")
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		remixes, err := deps.Recipes.ListRemixes(r.Context(), id)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"remixes": remixes})
	}
}
