package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"go.uber.org/zap"

	"tileserve/apierr"
)

// installMiddleware wires the global middleware: trailing-slash
// normalization, CORS, and structured request logging. CORS and the
// trailing-slash merge come straight from spec §4.1; the trailing-slash step
// stands in for the original Rust server's NormalizePath::MergeOnly
// (SPEC_FULL.md §7). Selective response compression is not installed here:
// registerRoutes wraps individual handlers with compress, leaving the tile
// endpoint (which manages its own encoding via the negotiator) uncompressed.
func installMiddleware(e *echo.Echo, log *zap.Logger) {
	e.Pre(middleware.RemoveTrailingSlash())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet},
	}))

	e.Use(requestLogger(log))
}

// requestLogger logs each request at info level with a correlation id, and
// logs backend failures (5xx) at error level with their full cause, matching
// spec §7's "all 5xx are logged, 4xx are not logged by default". It runs
// before the handler's error (if any) reaches Echo's HTTPErrorHandler, so
// the status here is derived from the error itself via apierr.StatusOf
// rather than c.Response().Status, which is still unset at this point.
func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			reqID := uuid.NewString()
			c.Set("request_id", reqID)

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = apierr.StatusOf(err)
			}

			fields := []zap.Field{
				zap.String("request_id", reqID),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
			}
			if status >= http.StatusInternalServerError {
				if err != nil {
					fields = append(fields, zap.Error(err))
				}
				log.Error("request failed", fields...)
			} else {
				log.Info("request", fields...)
			}
			return err
		}
	}
}

// compress wraps a single handler in response compression, used on the
// JSON-bodied endpoints (catalog, TileJSON), the sprite route (which serves
// both the sprite index and the PNG sheet through one handler), and the
// protobuf-bodied font range endpoint, never on the tile endpoint itself.
func compress(h echo.HandlerFunc) echo.HandlerFunc {
	return middleware.Gzip()(h)
}
