package handler

import (
	"context"
	"net/http"

	"remix/internal/pkg/auth/jwt"
	"remix/internal/pkg/logx"
	"remix/internal/pkg/req"
	"remix/internal/pkg/resp"

	"github.com/go-chi/chi/v5"
)

// HandleListUsers lists accounts, optionally filtered by ?username=.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search, cerr := req.Query(r, "username")
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		users, err := deps.Users.List(r.Context(), search)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"users": users})
	}
}

func HandleGetUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := deps.Users.Get(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": user})
	}
}

// HandleUpdateUser applies a partial account update. The response carries a fresh
// token because the email is part of the token claims.
func HandleUpdateUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		payload, cerr := req.BindPayload(w, r)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		user, err := deps.Users.Update(r.Context(), identity.Username, payload)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		finalResponse := map[string]any{"user": user}

		user.ID = identity.UserID
		newToken, err := deps.Tokens.Issue(identityOf(user))
		if err != nil {
			logx.Error(err, "update_user: token generation failed, fallback to old token")
		} else {
			finalResponse["token"] = newToken
		}

		resp.RespondSuccess(w, r, finalResponse)
	}
}

func HandleListRecipeFavorites(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		recipes, err := deps.Users.ListRecipeFavorites(r.Context(), identity.UserID)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"recipes": recipes})
	}
}

func HandleAddRecipeFavorite(deps *AppDeps) http.HandlerFunc {
	return favoriteAction("recipeId", deps.Users.AddRecipeFavorite, true)
}

func HandleRemoveRecipeFavorite(deps *AppDeps) http.HandlerFunc {
	return favoriteAction("recipeId", deps.Users.RemoveRecipeFavorite, false)
}

func HandleListRemixFavorites(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		remixes, err := deps.Users.ListRemixFavorites(r.Context(), identity.UserID)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"remixes": remixes})
	}
}

func HandleAddRemixFavorite(deps *AppDeps) http.HandlerFunc {
	return favoriteAction("remixId", deps.Users.AddRemixFavorite, true)
}

func HandleRemoveRemixFavorite(deps *AppDeps) http.HandlerFunc {
	return favoriteAction("remixId", deps.Users.RemoveRemixFavorite, false)
}

type favoriteFunc func(ctx context.Context, userID, itemID int64) error

func favoriteAction(param string, action favoriteFunc, created bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		itemID, cerr := req.PathID(r, param)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		if err := action(r.Context(), identity.UserID, itemID); err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		data := map[string]any{param: itemID}
		if created {
			resp.RespondCreated(w, r, data)
			return
		}
		resp.RespondSuccess(w, r, data)
	}
}
