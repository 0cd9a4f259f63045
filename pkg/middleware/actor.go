package middleware

import (
	"net/http"
	"strconv"

	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

// RequireActor middleware reads the member identity forwarded by the club's
// gateway and stores it on the request context. Requests without a usable
// identity are rejected before they reach a handler.
func RequireActor(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get("X-Member-ID")
			if rawID == "" {
				utils.ResponseUnauthorized(w, "Member identity required")
				return
			}

			memberID, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil || memberID < 1 {
				logger.Warn("Rejected request with malformed member ID",
					zap.String("member_id", rawID),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Member identity required")
				return
			}

			memberName := r.Header.Get("X-Member-Name")

			ctx := utils.SetActorContext(r.Context(), memberID, memberName)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
