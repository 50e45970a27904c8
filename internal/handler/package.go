package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avielle/event-booking-backend/internal/repository"
)

// PackageHandler serves the curated package listing and details.
type PackageHandler struct {
	Packages *repository.PackageRepo
}

func NewPackageHandler(packages *repository.PackageRepo) *PackageHandler {
	return &PackageHandler{Packages: packages}
}

// List returns active packages with their supplier and additional-service
// sub-collections.
func (h *PackageHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	packages, err := h.Packages.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, packages)
}

// Details returns one package with its full service roster.
func (h *PackageHandler) Details(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	details, err := h.Packages.GetDetails(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, details)
}
