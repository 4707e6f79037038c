package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/garrettladley/wellness/internal/service/user"
	"github.com/garrettladley/wellness/internal/xcontext"
	"github.com/garrettladley/wellness/internal/xerrors"
	"github.com/garrettladley/wellness/internal/xhttp"
	"github.com/garrettladley/wellness/internal/xslog"
)

const touchTimeout = 5 * time.Second

// APIKeyAuth validates the X-API-Key header and sets the key owner as the
// user in context.
func APIKeyAuth(auth user.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := xslog.FromContext(ctx)

			apiKey := xhttp.GetRequestHeaderAPIKey(r)
			if apiKey == "" {
				xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithCode("missing_api_key"), xerrors.WithMessage("missing API key")))
				return
			}

			validated, err := auth.ValidateAPIKey(ctx, apiKey)
			if err != nil {
				switch {
				case errors.Is(err, user.ErrAPIKeyNotFound):
					xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithCode("invalid_api_key"), xerrors.WithMessage("invalid API key")))
				case errors.Is(err, user.ErrAPIKeyRevoked):
					xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithCode("api_key_revoked"), xerrors.WithMessage("API key has been revoked")))
				default:
					xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("API key validation failed"), xerrors.WithCause(err)))
				}
				return
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), touchTimeout)
				defer cancel()

				if err := auth.UpdateAPIKeyLastUsed(ctx, validated.APIKeyID); err != nil {
					logger.WarnContext(ctx, "failed to update API key last_used_at",
						xslog.ErrorGroup(err))
				}
			}()

			ctx = xcontext.SetUserID(ctx, validated.UserID)
			ctx = xslog.WithAttrs(ctx, xslog.UserGroup(validated.UserID, validated.APIKeyID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
