package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
	apphttp "github.com/chainsafe/agreement-middleware/pkg/app/http"
)

// Middleware requires a valid bearer token when the validator is configured
func Middleware(v *JWTValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if v == nil || !v.IsConfigured() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				apphttp.DefaultErrorHandler(w, apperrors.UnauthorizedError(nil, "bearer token required"))
				return
			}

			claims, err := v.ValidateToken(tokenString)
			if err != nil {
				logger.Debug("Rejected operator token", zap.Error(err))
				apphttp.DefaultErrorHandler(w, apperrors.UnauthorizedError(err, "invalid token"))
				return
			}

			subject, _ := claims.GetSubject()
			next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), subject)))
		})
	}
}
