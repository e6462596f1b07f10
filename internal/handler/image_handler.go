package handler

import (
	"context"
	"net/http"
	"time"

	"remix/internal/app/storage"
	"remix/internal/pkg/errs"
	"remix/internal/pkg/logx"
	"remix/internal/pkg/req"
	"remix/internal/pkg/resp"
)

// HandlePresignImage creates an HTTP HandlerFunc that presigns an image upload for the
// entity in {param}. The entity is not changed until the upload is confirmed.
func HandlePresignImage(deps *AppDeps, kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Storage == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrImageStorageDisabled))
			return
		}

		id, cerr := req.PathID(r, param)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		var input storage.ImageUpload
		if cerr := req.BindJSON(w, r, &input); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		if cerr := input.Validate(); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		fileKey := storage.ImageKey(kind, id, input.FileName)

		url, err := deps.Storage.PresignUpload(
			r.Context(),
			fileKey,
			input.MimeType,
			input.FileSize,
			storage.PresignedURLDuration,
		)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrImageStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"presignedUrl": url,
			"fileKey":      fileKey,
		})
	}
}

// HandleConfirmImage creates an HTTP HandlerFunc that points the entity's image at an
// uploaded object. The image it replaces is removed from storage when it was one of ours.
func HandleConfirmImage(deps *AppDeps, kind, param string, images ImageStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Storage == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrImageStorageDisabled))
			return
		}

		id, cerr := req.PathID(r, param)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		var input storage.ImageConfirm
		if cerr := req.BindJSON(w, r, &input); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		if !storage.OwnsKey(kind, id, input.FileKey) {
			resp.RespondError(w, r, errs.NewError(errs.ErrImageKeyInvalid))
			return
		}

		exists, err := deps.Storage.Exists(r.Context(), input.FileKey)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrImageStorageFailed))
			return
		}
		if !exists {
			resp.RespondError(w, r, errs.NewError(errs.ErrImageNotUploaded))
			return
		}

		imageURL := deps.Storage.PublicURL(input.FileKey)

		previous, err := images.SetImage(r.Context(), id, imageURL)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		if oldKey, ok := deps.Storage.KeyFromURL(previous); ok && oldKey != input.FileKey {
			go func(k string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := deps.Storage.Delete(ctx, k); err != nil {
					logx.Warn("failed to delete replaced image", "key", k, "error", err)
				}
			}(oldKey)
		}

		resp.RespondSuccess(w, r, map[string]any{
			"imageUrl": imageURL,
		})
	}
}
