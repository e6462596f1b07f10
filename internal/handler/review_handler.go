package handler

import (
	"net/http"

	"remix/internal/app/model"
	"remix/internal/pkg/auth/jwt"
	"remix/internal/pkg/errs"
	"remix/internal/pkg/req"
	"remix/internal/pkg/resp"
)

// reviewRoutes serves the review endpoints of one parent kind (recipes or remixes).
type reviewRoutes struct {
	store        ReviewStore
	parentParam  string
	notFoundCode int
	parentOf     func(model.Review) int64
}

func reviewRecipeID(rv model.Review) int64 { return rv.RecipeID }

func reviewRemixID(rv model.Review) int64 { return rv.RemixID }

func (rr reviewRoutes) handleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parentID, cerr := req.PathID(r, rr.parentParam)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		limit, cerr := req.Limit(r, 0)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		reviews, err := rr.store.ListReviews(r.Context(), parentID, limit)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"reviews": reviews})
	}
}

func (rr reviewRoutes) handleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, cerr := req.PathID(r, "reviewId")
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		review, err := rr.store.GetReview(r.Context(), reviewID)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"review": review})
	}
}

func (rr reviewRoutes) handleAdd() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		parentID, cerr := req.PathID(r, rr.parentParam)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		var input model.NewReview
		if cerr := req.BindJSON(w, r, &input); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		review, err := rr.store.AddReview(r.Context(), identity.UserID, parentID, input)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondCreated(w, r, map[string]any{"review": review})
	}
}

// handleUpdate runs after the review-owner guard. A review addressed through a
// parent it does not belong to is reported as not found.
func (rr reviewRoutes) handleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parentID, cerr := req.PathID(r, rr.parentParam)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		reviewID, cerr := req.PathID(r, "reviewId")
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		current, err := rr.store.GetReview(r.Context(), reviewID)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}
		if rr.parentOf(current) != parentID {
			resp.RespondError(w, r, errs.NewError(rr.notFoundCode, reviewID))
			return
		}

		payload, cerr := req.BindPayload(w, r)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		review, err := rr.store.UpdateReview(r.Context(), reviewID, payload)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"review": review})
	}
}
