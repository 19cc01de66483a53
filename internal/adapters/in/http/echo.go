package http

import (
	"net/http"

	"marketplace/internal/adapters/in/http/apidocs"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// BaseURL is where the API operations are mounted.
const BaseURL = "/api/v1"

// NewEcho assembles the HTTP stack: middleware, /health, the API under
// BaseURL and, when docs is not nil, the OpenAPI routes.
func NewEcho(si ServerInterface, docs *apidocs.Docs, logger *zap.Logger) *echo.Echo {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(AccessLog(logger))

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	if docs != nil {
		docs.Register(e)
	}

	api := e.Group(BaseURL, RequireUser())
	RegisterHandlers(api, si)

	return e
}
