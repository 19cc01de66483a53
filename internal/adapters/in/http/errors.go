package http

import (
	"errors"
	"fmt"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var ErrRequestInvalid = errs.NewBadRequest("REQUEST_INVALID", "request is invalid")

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorHandler maps business error kinds to status codes. Anything it
// cannot classify becomes a 500 with a generic message and is logged.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", ctx.Request().Method),
				zap.String("path", ctx.Path()),
				zap.Error(err),
			)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(status)
		} else {
			writeErr = ctx.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("write error response", zap.Error(writeErr))
		}
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	var be *errs.BusinessError
	var httpErr *echo.HTTPError
	message := err.Error()
	switch {
	case errors.As(err, &be):
		message = be.Message
	case errors.As(err, &httpErr):
		return httpErr.Code, ErrorResponse{
			Code:    httpErrorCode(httpErr.Code),
			Message: fmt.Sprint(httpErr.Message),
		}
	}

	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return http.StatusNotFound, ErrorResponse{Code: codeOr(err, "NOT_FOUND"), Message: message}
	case errs.KindForbidden:
		return http.StatusForbidden, ErrorResponse{Code: codeOr(err, "FORBIDDEN"), Message: message}
	case errs.KindConflict:
		return http.StatusConflict, ErrorResponse{Code: codeOr(err, "CONFLICT"), Message: message}
	case errs.KindBadRequest:
		return http.StatusBadRequest, ErrorResponse{Code: codeOr(err, ErrRequestInvalid.Code), Message: message}
	default:
		return http.StatusInternalServerError, ErrorResponse{Code: "INTERNAL", Message: "internal server error"}
	}
}

func codeOr(err error, fallback string) string {
	if code := errs.CodeOf(err); code != "" {
		return code
	}
	return fallback
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		return ErrRequestInvalid.Code
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "HTTP_" + fmt.Sprint(status)
	}
}
