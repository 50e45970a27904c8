package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avielle/event-booking-backend/internal/config"
	"github.com/avielle/event-booking-backend/internal/repository"
	"github.com/avielle/event-booking-backend/internal/storage"
	"github.com/avielle/event-booking-backend/internal/utils"
)

// ProfileHandler manages the authenticated user's profile and picture.
type ProfileHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Blobs storage.BlobStore
}

func NewProfileHandler(cfg config.Config, users *repository.UserRepo, blobs storage.BlobStore) *ProfileHandler {
	return &ProfileHandler{Cfg: cfg, Users: users, Blobs: blobs}
}

type updateProfileReq struct {
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
	ContactNumber string `json:"contactnumber"`
	Address       string `json:"address"`
}

// Update handles PUT /v1/profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Firstname) == "" || strings.TrimSpace(req.Lastname) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstname and lastname are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, uid, req.Firstname, req.Lastname, req.ContactNumber, req.Address); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles PUT /v1/profile/password.
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current_password and new_password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "current password incorrect"})
	}
	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}
	if err := h.Users.UpdatePassword(ctx, uid, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}

// UploadPicture handles POST /v1/profile/picture: stores the new file, swaps
// the filename in the database, then removes the previous file. If the
// database update fails the new file is removed so no orphan blob remains.
func (h *ProfileHandler) UploadPicture(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	fh, err := c.FormFile("profile_picture")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "profile_picture file required"})
	}
	if !allowedImage(fh.Filename) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported image type"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer src.Close()

	filename, err := h.Blobs.Save(fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store file failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	previous, err := h.Users.UpdateProfilePicture(ctx, uid, filename)
	if err != nil {
		_ = h.Blobs.Remove(filename)
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if previous != nil && *previous != "" {
		_ = h.Blobs.Remove(*previous)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "picture updated", "user_img": filename})
}
