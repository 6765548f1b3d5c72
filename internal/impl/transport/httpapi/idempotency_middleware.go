package httpapi

import (
	"bytes"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	port_cache "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/cache"
)

const responseCacheTTL = 24 * time.Hour

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// IdempotencyReplay short-circuits repeated requests carrying a known
// Idempotency-Key with the cached response. The cache is fail-open: the
// transfers table's unique key still guarantees at-most-once effects
// when the cache is unavailable.
func IdempotencyReplay(cache port_cache.ResponseCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyKeyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()

			cached, err := cache.Get(ctx, key)
			if err != nil {
				log.Warn().Err(err).Msg("idempotency cache lookup failed")
				next.ServeHTTP(w, r)
				return
			}

			if cached != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Replay", "true")
				w.WriteHeader(cached.StatusCode)
				if _, err := w.Write(cached.Body); err != nil {
					log.Error().Err(err).Msg("write cached response")
				}
				return
			}

			rec := &responseRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				body:           &bytes.Buffer{},
			}

			next.ServeHTTP(rec, r)

			// 5xx responses stay uncached so the client can retry.
			if rec.statusCode < http.StatusInternalServerError {
				err := cache.Save(ctx, key, port_cache.CachedResponse{
					StatusCode: rec.statusCode,
					Body:       rec.body.Bytes(),
				}, responseCacheTTL)
				if err != nil {
					log.Warn().Err(err).Msg("idempotency cache save failed")
				}
			}
		})
	}
}
