package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// apiPrefix marks the routes described by openapi.yaml.
const apiPrefix = "/api/"

// RequestValidator checks API requests against doc before they reach the server. Routes
// outside the API prefix pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	// match paths regardless of the host the service is reached through
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		ExcludeResponseBody: true,
		MultiError:          false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, apiPrefix) {
				return next(c)
			}

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				// unknown routes get echo's own 404 or 405
				return next(c)
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return c.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Rule:    RuleInvalidRequest,
					Message: validationMessage(err),
				})
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.Err != nil {
		switch {
		case reqErr.Parameter != nil:
			return fmt.Sprintf("parameter %s: %v", reqErr.Parameter.Name, reqErr.Err)
		case reqErr.RequestBody != nil:
			return fmt.Sprintf("request body: %v", reqErr.Err)
		}
	}
	return err.Error()
}
