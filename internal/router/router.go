// Package router registers the HTTP routes. Public catalog reads sit behind
// the response cache; everything stateful lives under /v1 behind JWT auth.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avielle/event-booking-backend/internal/handler"
	"github.com/avielle/event-booking-backend/internal/middleware"
	"github.com/avielle/event-booking-backend/internal/model"
)

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Register/login/refresh need no
// session; logout and me live under the protected group.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts a refresh token in the body, so no JWT required here.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated catalog browse endpoints.
// The cache middleware is applied per-route; these payloads are identical
// for every caller.
func RegisterPublic(e *echo.Echo, cat *handler.CatalogHandler, pkg *handler.PackageHandler, out *handler.OutfitHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/venues", cat.ListVenues, cache)
	e.GET("/v1/suppliers", cat.ListSuppliers, cache)
	e.GET("/v1/gown-packages", cat.ListGownPackages, cache)
	e.GET("/v1/additional-services", cat.ListServices, cache)
	e.GET("/v1/event-types", cat.ListEventTypes, cache)
	e.GET("/v1/packages", pkg.List, cache)
	e.GET("/v1/packages/:id", pkg.Details, cache)
	e.GET("/v1/outfits", out.List, cache)
	e.GET("/v1/outfits/:id", out.Get)
}

// RegisterBooking registers the authenticated booking endpoints: composite
// orders, wishlist packages, the aggregated wishlist read, modification
// trails, outfit rentals and the profile.
func RegisterBooking(e *echo.Echo, jwtSecret string,
	ev *handler.EventHandler, wl *handler.WishlistHandler,
	mod *handler.ModificationHandler, out *handler.OutfitHandler,
	prof *handler.ProfileHandler) {

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	auth.POST("/events", ev.Create)
	auth.GET("/booked-schedules", ev.Schedules)
	auth.GET("/booked-wishlist", wl.List)
	auth.DELETE("/booked-wishlist/:events_id", ev.Delete)

	auth.POST("/wishlist-packages", wl.Create)

	auth.POST("/event-modifications", mod.RecordModification)
	auth.POST("/event-customizations", mod.RecordCustomization)
	auth.GET("/events/:events_id/modifications", mod.ListByEvent)

	auth.POST("/outfits/book", out.Book)
	auth.GET("/outfits/booked", out.Booked)
	// Adding catalog outfits is restricted to back-office roles.
	auth.POST("/outfits", out.Create,
		middleware.RequireRole(model.UserTypeStaff, model.UserTypeAdmin))

	auth.PUT("/profile", prof.Update)
	auth.PUT("/profile/password", prof.ChangePassword)
	auth.POST("/profile/picture", prof.UploadPicture)
}
