package handler

import (
	"net/http"

	"remix/internal/app/model"
	"remix/internal/pkg/auth/jwt"
	"remix/internal/pkg/req"
	"remix/internal/pkg/resp"
)

// HandleGetRemix returns a remix with its reviews, capped by ?limit=.
func HandleGetRemix(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, cerr := req.PathID(r, "remixId")
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		limit, cerr := req.Limit(r, 0)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		remix, err := deps.Remixes.Get(r.Context(), id, limit)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"remix": remix})
	}
}

// HandleCreateRemix remixes the recipe in {recipeId}.
func HandleCreateRemix(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		recipeID, cerr := req.PathID(r, "recipeId")
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		var input model.NewRemix
		if cerr := req.BindJSON(w, r, &input); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		remix, err := deps.Remixes.Create(r.Context(), identity.UserID, recipeID, input)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondCreated(w, r, map[string]any{"remix": remix})
	}
}

func HandleUpdateRemix(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, cerr := req.PathID(r, "remixId")
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		payload, cerr := req.BindPayload(w, r)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		remix, err := deps.Remixes.Update(r.Context(), id, payload)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"remix": remix})
	}
}
