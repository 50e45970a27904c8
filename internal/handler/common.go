// Package handler defines the HTTP handlers. Handlers bind and validate
// request bodies, own transaction boundaries for multi-statement writes, and
// translate repository sentinel errors into HTTP statuses.
package handler

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user id stored in context by the JWT
// middleware. The claim travels through JSON so it may arrive as float64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// allowedImage reports whether an uploaded filename carries an accepted image
// extension. The stored name is generated; only the extension survives.
func allowedImage(filename string) bool {
	return imageExts[strings.ToLower(filepath.Ext(filename))]
}
