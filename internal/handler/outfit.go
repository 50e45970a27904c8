package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/avielle/event-booking-backend/internal/model"
	"github.com/avielle/event-booking-backend/internal/repository"
	"github.com/avielle/event-booking-backend/internal/storage"
)

// OutfitHandler serves the outfit rental catalog and standalone bookings.
type OutfitHandler struct {
	Catalog  *repository.CatalogRepo
	Bookings *repository.OutfitBookingRepo
	Blobs    storage.BlobStore
}

func NewOutfitHandler(catalog *repository.CatalogRepo, bookings *repository.OutfitBookingRepo, blobs storage.BlobStore) *OutfitHandler {
	return &OutfitHandler{Catalog: catalog, Bookings: bookings, Blobs: blobs}
}

// List handles GET /outfits.
func (h *OutfitHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	outfits, err := h.Catalog.ListOutfits(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, outfits)
}

// Get handles GET /outfits/:id.
func (h *OutfitHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid outfit id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	outfit, err := h.Catalog.GetOutfitByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "outfit not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, outfit)
}

// Create handles POST /v1/outfits: a multipart form with the outfit fields
// and an optional image file.
func (h *OutfitHandler) Create(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("outfit_name"))
	outfitType := strings.TrimSpace(c.FormValue("outfit_type"))
	if name == "" || outfitType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "outfit_name and outfit_type are required"})
	}
	rentPrice := decimal.Zero
	if raw := c.FormValue("rent_price"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rent_price"})
		}
		rentPrice = parsed.Round(2)
	}
	status := c.FormValue("status")
	if status == "" {
		status = "Available"
	}

	var image string
	if fh, err := c.FormFile("outfit_img"); err == nil {
		if !allowedImage(fh.Filename) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported image type"})
		}
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
		}
		defer src.Close()
		image, err = h.Blobs.Save(fh.Filename, src)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	outfit := model.Outfit{
		Name:        name,
		Type:        outfitType,
		Color:       c.FormValue("outfit_color"),
		Description: c.FormValue("outfit_desc"),
		RentPrice:   rentPrice,
		Status:      status,
		Image:       image,
	}
	if err := h.Catalog.CreateOutfit(ctx, &outfit); err != nil {
		if image != "" {
			_ = h.Blobs.Remove(image)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create outfit failed"})
	}
	return c.JSON(http.StatusCreated, outfit)
}

type bookOutfitReq struct {
	OutfitID          uint64           `json:"outfit_id"`
	PickupDate        string           `json:"pickup_date"` // "YYYY-MM-DD"
	ReturnDate        string           `json:"return_date"`
	AdditionalCharges *decimal.Decimal `json:"additional_charges"`
}

// Book handles POST /v1/outfits/book.
func (h *OutfitHandler) Book(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookOutfitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.OutfitID == 0 || req.PickupDate == "" || req.ReturnDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "outfit_id, pickup_date and return_date are required"})
	}
	if req.ReturnDate < req.PickupDate {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "return_date before pickup_date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Catalog.GetOutfitByID(ctx, req.OutfitID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "outfit not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	charges := decimal.Zero
	if req.AdditionalCharges != nil {
		charges = req.AdditionalCharges.Round(2)
	}
	booking := model.BookedOutfit{
		UserID:            uid,
		OutfitID:          req.OutfitID,
		PickupDate:        req.PickupDate,
		ReturnDate:        req.ReturnDate,
		Status:            "Booked",
		AdditionalCharges: charges,
	}
	if err := h.Bookings.Book(ctx, &booking); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "outfit already booked for those dates"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "book outfit failed"})
	}
	return c.JSON(http.StatusCreated, booking)
}

// Booked handles GET /v1/outfits/booked: the caller's rentals.
func (h *OutfitHandler) Booked(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	bookings, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, bookings)
}
