package handler

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed openapi.json
var openAPIDocument []byte

// OpenAPIDocument serves the embedded OpenAPI 3 description of the API.
func OpenAPIDocument(c echo.Context) error {
	return c.JSONBlob(http.StatusOK, openAPIDocument)
}
