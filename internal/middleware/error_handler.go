package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"upliftService/business/uplift"
	"upliftService/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every unhandled error as {"error": "..."}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		logger.Error("Unhandled error",
			"trace_id", uplift.TraceIDFromContext(c.Request().Context()),
			"path", c.Request().URL.Path,
			"error", err,
		)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, map[string]string{"error": msg})
	}
	if werr != nil {
		logger.Error("Failed to write error response", "error", werr)
	}
}
