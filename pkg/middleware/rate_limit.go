package middleware

import (
	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit applies an in-memory rate limit. The format follows ulule's
// "<count>-<period>" convention, e.g. "100-M".
func RateLimit(formatted string) (mux.MiddlewareFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), rate)
	wrapped := stdlib.NewMiddleware(instance)
	return wrapped.Handler, nil
}
