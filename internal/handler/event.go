package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avielle/event-booking-backend/internal/model"
	"github.com/avielle/event-booking-backend/internal/pricing"
	"github.com/avielle/event-booking-backend/internal/queue"
	"github.com/avielle/event-booking-backend/internal/repository"
)

// BookingNotifier publishes booking notifications. Publishing failures must
// not fail the booking, so callers log and continue.
type BookingNotifier interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// EventHandler owns composite-order creation and deletion. A composite
// order is one transaction: the events row, the package configuration, its
// inclusion lines and the additional items commit together or not at all.
type EventHandler struct {
	Events   *repository.EventRepo
	Resolver *pricing.Resolver
	Notifier BookingNotifier // nil when no broker is configured
}

func NewEventHandler(events *repository.EventRepo, resolver *pricing.Resolver, notifier BookingNotifier) *EventHandler {
	return &EventHandler{Events: events, Resolver: resolver, Notifier: notifier}
}

// Create handles POST /v1/events.
func (h *EventHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req model.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.EventName) == "" || strings.TrimSpace(req.EventType) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_name and event_type are required"})
	}

	ev, sel, items, err := req.Normalize(uid)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	supplierLines, err := h.supplierLines(ctx, sel.Suppliers)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "price resolution failed"})
	}
	outfitLines, err := h.outfitLines(ctx, sel.Outfits)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "price resolution failed"})
	}
	additionalItems, err := h.additionalItems(ctx, items)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "price resolution failed"})
	}

	tx, err := h.Events.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Events.CreateTx(ctx, tx, &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}

	if ev.PackageID != nil {
		configID, err := h.Events.CreateConfigTx(ctx, tx, ev.ID, *ev.PackageID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create configuration failed"})
		}
		if err := h.Events.AddSupplierLinesTx(ctx, tx, configID, supplierLines); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store suppliers failed"})
		}
		if err := h.Events.AddOutfitLinesTx(ctx, tx, configID, outfitLines); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store outfits failed"})
		}
		for _, svc := range sel.Services {
			if svc.PackageServiceID != nil {
				err = h.Events.LinkPackageServiceTx(ctx, tx, *ev.PackageID, *svc.PackageServiceID)
			} else {
				var psID uint64
				psID, err = h.Events.CreateAdHocPackageServiceTx(ctx, tx, svc.SupplierID, svc.Remarks)
				if err == nil {
					err = h.Events.LinkPackageServiceTx(ctx, tx, *ev.PackageID, psID)
				}
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store services failed"})
			}
		}
	}

	if err := h.Events.AddAdditionalItemsTx(ctx, tx, ev.ID, additionalItems); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store additional items failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	if h.Notifier != nil {
		msg := queue.BookingCreatedEvent{
			EventsID:   ev.ID,
			UserID:     uid,
			EventName:  ev.Name,
			EventType:  ev.Type,
			TotalPrice: ev.TotalPrice.StringFixed(2),
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Notifier.PublishBookingCreated(context.Background(), msg); err != nil {
			log.Printf("booking.created publish failed for event %d: %v", ev.ID, err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "event created",
		"events_id": ev.ID,
	})
}

// supplierLines snapshots resolved prices into inclusion lines. The original
// price is immutable after this point; later edits only touch the modified
// fields.
func (h *EventHandler) supplierLines(ctx context.Context, suppliers []model.SupplierSelection) ([]model.InclusionLine, error) {
	lines := make([]model.InclusionLine, 0, len(suppliers))
	for _, s := range suppliers {
		explicit := s.OriginalPrice
		if explicit == nil {
			explicit = s.Price
		}
		original, err := h.Resolver.Resolve(ctx, explicit, pricing.KindSupplier, s.SupplierID)
		if err != nil {
			return nil, err
		}
		modified := original
		if s.ModifiedPrice != nil {
			modified = s.ModifiedPrice.Round(2)
		}
		ref := s.SupplierID
		lines = append(lines, model.InclusionLine{
			RefID:         &ref,
			OriginalPrice: original,
			ModifiedPrice: modified,
			IsModified:    s.IsModified,
			IsRemoved:     s.IsRemoved,
			Remarks:       s.Remarks,
		})
	}
	return lines, nil
}

func (h *EventHandler) outfitLines(ctx context.Context, outfits []model.OutfitSelection) ([]model.InclusionLine, error) {
	lines := make([]model.InclusionLine, 0, len(outfits))
	for _, o := range outfits {
		explicit := o.OriginalPrice
		if explicit == nil {
			explicit = o.Price
		}
		var refID uint64
		kind := pricing.KindGownPackage
		if gp := o.GownPackageRef(); gp != nil {
			refID = *gp
		} else if o.OutfitID != nil {
			refID = *o.OutfitID
			kind = pricing.KindOutfit
		}
		original, err := h.Resolver.Resolve(ctx, explicit, kind, refID)
		if err != nil {
			return nil, err
		}
		modified := original
		if o.ModifiedPrice != nil {
			modified = o.ModifiedPrice.Round(2)
		}
		lines = append(lines, model.InclusionLine{
			RefID:         o.OutfitID,
			GownPackageID: o.GownPackageRef(),
			OriginalPrice: original,
			ModifiedPrice: modified,
			IsModified:    o.IsModified,
			IsRemoved:     o.IsRemoved,
			Remarks:       o.Remarks,
		})
	}
	return lines, nil
}

func (h *EventHandler) additionalItems(ctx context.Context, items []model.AdditionalItemSelection) ([]model.AdditionalItem, error) {
	out := make([]model.AdditionalItem, 0, len(items))
	for _, it := range items {
		price, err := h.Resolver.Resolve(ctx, it.Price, pricing.Kind(strings.ToLower(it.ItemType)), it.ItemID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.AdditionalItem{
			ItemType: it.ItemType,
			ItemID:   it.ItemID,
			Price:    price,
			Remarks:  it.Remarks,
		})
	}
	return out, nil
}

// Delete handles DELETE /v1/booked-wishlist/:events_id. The event and
// everything it owns go in one transaction; catalog rows stay.
func (h *EventHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventsID, err := paramID(c, "events_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid events_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Events.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Events.DeleteTx(ctx, tx, eventsID, uid); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"message": "event deleted"})
}

// Schedules handles GET /v1/booked-schedules for the booking calendar.
func (h *EventHandler) Schedules(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	slots, err := h.Events.ListSchedules(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, slots)
}
