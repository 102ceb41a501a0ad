package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// authenticatedUserID reads the user ID placed on the context by the auth
// middleware.
func authenticatedUserID(c echo.Context) (uint, bool) {
	return middleware.UserID(c)
}

// pathID parses a numeric path parameter into a uint.
func pathID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}

	return uint(id), nil
}

// optionalQueryID parses an optional numeric query parameter.
func optionalQueryID(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	value := uint(id)

	return &value, nil
}

// badPathParam renders the standard response for an invalid path parameter.
func badPathParam(c echo.Context, name string) error {
	return response.BadRequest(c, "INVALID_PATH_PARAM", "Invalid "+name+" in path")
}
