/*
Package handler provides HTTP handler functions for user authentication and management.
*/
package handler

import (
	"net/http"

	"remix/internal/app/model"
	"remix/internal/pkg/errs"
	"remix/internal/pkg/logx"
	"remix/internal/pkg/req"
	"remix/internal/pkg/resp"
)

// HandleRegister creates an account and returns it with a token for the new identity.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.NewUser
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := deps.Users.Register(r.Context(), input)
		if err != nil {
			if errs.HasCode(err, errs.ErrUserAlreadyExists) {
				logx.Ctx(r.Context()).Warn().Str("username", input.Username).Msg("registration conflict: username or email already exists")
			}
			resp.RespondErr(w, r, err)
			return
		}

		token, err := deps.Tokens.Issue(identityOf(user))
		if err != nil {
			logx.Error(err, "failed to generate token after registration", "username", user.Username)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondCreated(w, r, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

// HandleLogin verifies user credentials and issues a token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.Credentials
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := deps.Users.Authenticate(r.Context(), input.Username, input.Password)
		if err != nil {
			if errs.HasCode(err, errs.ErrInvalidCredentials) {
				logx.Ctx(r.Context()).Warn().Str("username", input.Username).Msg("login: invalid credentials")
			}
			resp.RespondErr(w, r, err)
			return
		}

		token, err := deps.Tokens.Issue(identityOf(user))
		if err != nil {
			logx.Error(err, "login: jwt generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}
