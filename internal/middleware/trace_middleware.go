package middleware

import (
	"upliftService/business/uplift"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceMiddleware reuses the caller's X-Request-ID or generates one, echoes it
// back and attaches it to the request context as the trace id.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			tid := req.Header.Get(echo.HeaderXRequestID)
			if _, err := uuid.Parse(tid); err != nil {
				tid = uuid.NewString()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, tid)
			c.SetRequest(req.WithContext(uplift.WithTraceID(req.Context(), tid)))

			return next(c)
		}
	}
}
