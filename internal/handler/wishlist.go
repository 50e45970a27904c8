package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/avielle/event-booking-backend/internal/model"
	"github.com/avielle/event-booking-backend/internal/pricing"
	"github.com/avielle/event-booking-backend/internal/repository"
)

// WishlistHandler creates wishlist packages and serves the aggregated
// wishlist read.
type WishlistHandler struct {
	Wishlist *repository.WishlistRepo
	Resolver *pricing.Resolver
}

func NewWishlistHandler(wishlist *repository.WishlistRepo, resolver *pricing.Resolver) *WishlistHandler {
	return &WishlistHandler{Wishlist: wishlist, Resolver: resolver}
}

// Create handles POST /v1/wishlist-packages: the package row, its venue
// assignment and the priced inclusion lines in one transaction.
func (h *WishlistHandler) Create(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req model.WishlistPackageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventsID == 0 || strings.TrimSpace(req.PackageName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "events_id and package_name are required"})
	}

	pkg, err := req.Normalize()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	// Resolve all prices up front so a catalog miss cannot abort the
	// transaction halfway.
	venuePrice := decimal.Zero
	if v := pkg.Selections.Venue; v != nil {
		venuePrice, err = h.Resolver.Resolve(ctx, v.Price(), pricing.KindVenue, v.VenueID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "price resolution failed"})
		}
	}
	serviceLines, err := h.priceLines(ctx, pricing.KindService, pkg.Selections.Services)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "price resolution failed"})
	}
	supplierLines, err := h.supplierLines(ctx, pkg.Selections.Suppliers)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "price resolution failed"})
	}
	outfitLines, err := h.outfitLines(ctx, pkg.Selections.Outfits)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "price resolution failed"})
	}

	tx, err := h.Wishlist.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	wishlistID, err := h.Wishlist.CreatePackageTx(ctx, tx, &pkg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create wishlist package failed"})
	}
	if v := pkg.Selections.Venue; v != nil {
		if err := h.Wishlist.AddVenueTx(ctx, tx, wishlistID, v.VenueID, venuePrice, v.Remarks); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store venue failed"})
		}
	}
	if err := h.Wishlist.AddServiceLinesTx(ctx, tx, wishlistID, serviceLines); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store services failed"})
	}
	if err := h.Wishlist.AddSupplierLinesTx(ctx, tx, wishlistID, supplierLines); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store suppliers failed"})
	}
	if err := h.Wishlist.AddOutfitLinesTx(ctx, tx, wishlistID, outfitLines); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store outfits failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "wishlist package created",
		"wishlist_id": wishlistID,
	})
}

func (h *WishlistHandler) priceLines(ctx context.Context, kind pricing.Kind, services []model.ServiceSelection) ([]repository.WishlistLine, error) {
	lines := make([]repository.WishlistLine, 0, len(services))
	for _, s := range services {
		ref := s.ServiceRef()
		if ref == 0 {
			continue
		}
		price, err := h.Resolver.Resolve(ctx, s.Price, kind, ref)
		if err != nil {
			return nil, err
		}
		lines = append(lines, repository.WishlistLine{RefID: ref, Price: price, Remarks: s.Remarks})
	}
	return lines, nil
}

func (h *WishlistHandler) supplierLines(ctx context.Context, suppliers []model.SupplierSelection) ([]repository.WishlistLine, error) {
	lines := make([]repository.WishlistLine, 0, len(suppliers))
	for _, s := range suppliers {
		price, err := h.Resolver.Resolve(ctx, s.Price, pricing.KindSupplier, s.SupplierID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, repository.WishlistLine{RefID: s.SupplierID, Price: price, Remarks: s.Remarks})
	}
	return lines, nil
}

func (h *WishlistHandler) outfitLines(ctx context.Context, outfits []model.OutfitSelection) ([]repository.WishlistLine, error) {
	lines := make([]repository.WishlistLine, 0, len(outfits))
	for _, o := range outfits {
		var ref uint64
		kind := pricing.KindOutfit
		if o.OutfitID != nil {
			ref = *o.OutfitID
		} else if gp := o.GownPackageRef(); gp != nil {
			ref = *gp
			kind = pricing.KindGownPackage
		} else {
			continue
		}
		price, err := h.Resolver.Resolve(ctx, o.Price, kind, ref)
		if err != nil {
			return nil, err
		}
		lines = append(lines, repository.WishlistLine{
			RefID:         ref,
			GownPackageID: o.GownPackageRef(),
			Price:         price,
			Remarks:       o.Remarks,
		})
	}
	return lines, nil
}

// List handles GET /v1/booked-wishlist: the caller's aggregated wishlist.
func (h *WishlistHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	entries, err := h.Wishlist.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, entries)
}
