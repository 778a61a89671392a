package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tribu-app/tribu/cmd/api/service"
	"github.com/tribu-app/tribu/common/repository"
)

// serviceError maps service-layer failures onto HTTP responses. Caller
// errors (bad patch, bad enum, bad degree, unknown endpoint member) become
// 400; everything else is a storage failure and becomes 500.
func serviceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrInvalidPatch),
		errors.Is(err, service.ErrInvalidRelationshipType),
		errors.Is(err, service.ErrInvalidDegree),
		errors.Is(err, repository.ErrUnknownMember):
		status = http.StatusBadRequest
	}

	return c.JSON(status, map[string]string{"error": err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": msg})
}
