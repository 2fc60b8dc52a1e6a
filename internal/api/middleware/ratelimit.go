package middleware

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/response"
)

// RateLimit returns a middleware that admits perMinute requests per minute with the
// given burst, shared by every caller of the routes it wraps. Rejected requests get
// 429 Too Many Requests with a Retry-After header.
func RateLimit(perMinute, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
	retryAfter := strconv.Itoa(int((time.Minute / time.Duration(max(perMinute, 1))).Seconds()) + 1)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				response.RespondError(w, http.StatusTooManyRequests, "rate limit exceeded", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
