package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/avielle/event-booking-backend/internal/repository"
)

// ModificationHandler records and reads the append-only override trails for
// package-service lines.
type ModificationHandler struct {
	Modifications *repository.ModificationRepo
}

func NewModificationHandler(m *repository.ModificationRepo) *ModificationHandler {
	return &ModificationHandler{Modifications: m}
}

type modificationReq struct {
	EventsID         uint64           `json:"events_id"`
	PackageServiceID uint64           `json:"package_service_id"`
	ModificationType string           `json:"modification_type"`
	OriginalPrice    *decimal.Decimal `json:"original_price"`
	ModifiedPrice    *decimal.Decimal `json:"modified_price"`
	Remarks          *string          `json:"remarks"`
}

type customizationReq struct {
	EventsID         uint64           `json:"events_id"`
	PackageServiceID uint64           `json:"package_service_id"`
	CustomPrice      *decimal.Decimal `json:"custom_price"`
	CustomDetails    *string          `json:"custom_details"`
}

// RecordModification handles POST /v1/event-modifications. Rows are never
// updated; a correction is another insert.
func (h *ModificationHandler) RecordModification(c echo.Context) error {
	var req modificationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventsID == 0 || req.PackageServiceID == 0 || req.ModificationType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "events_id, package_service_id and modification_type are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Modifications.RecordModification(ctx, req.EventsID, req.PackageServiceID,
		req.ModificationType, req.OriginalPrice, req.ModifiedPrice, req.Remarks)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record modification failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"modification_id": id})
}

// RecordCustomization handles POST /v1/event-customizations.
func (h *ModificationHandler) RecordCustomization(c echo.Context) error {
	var req customizationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventsID == 0 || req.PackageServiceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "events_id and package_service_id are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Modifications.RecordCustomization(ctx, req.EventsID, req.PackageServiceID,
		req.CustomPrice, req.CustomDetails)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record customization failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"customization_id": id})
}

// ListByEvent handles GET /v1/events/:events_id/modifications: both trails,
// in insertion order.
func (h *ModificationHandler) ListByEvent(c echo.Context) error {
	eventsID, err := paramID(c, "events_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid events_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	modifications, customizations, err := h.Modifications.GetByEvent(ctx, eventsID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"modifications":  modifications,
		"customizations": customizations,
	})
}
