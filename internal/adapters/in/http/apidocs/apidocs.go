// Package apidocs loads the OpenAPI description of the HTTP API and serves it
// as /openapi.json and through Swagger UI under /swagger/.
package apidocs

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var rawSpec []byte

var registerOnce sync.Once

// Docs is a validated OpenAPI document together with its JSON rendering.
type Docs struct {
	doc  *openapi3.T
	json []byte
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Docs, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	rendered, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("render openapi document: %w", err)
	}
	return &Docs{doc: doc, json: rendered}, nil
}

// Document returns the parsed document.
func (d *Docs) Document() *openapi3.T { return d.doc }

// ReadDoc implements swag.Swagger so Swagger UI can fetch doc.json.
func (d *Docs) ReadDoc() string { return string(d.json) }

// Register mounts /openapi.json and /swagger/*. Swagger UI reads the first
// document registered in the process.
func (d *Docs) Register(e *echo.Echo) {
	registerOnce.Do(func() {
		swag.Register(swag.Name, d)
	})

	e.GET("/openapi.json", func(ctx echo.Context) error {
		return ctx.JSONBlob(http.StatusOK, d.json)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
