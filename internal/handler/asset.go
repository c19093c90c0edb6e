package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kalakriti/events-backend/internal/model"
	"github.com/kalakriti/events-backend/internal/repository"
	"github.com/kalakriti/events-backend/internal/storage"
)

// maxAssetBytes bounds a single artwork upload.
const maxAssetBytes = 25 << 20

// AssetHandler accepts artwork uploads for a registration and records the
// stored URL.
type AssetHandler struct {
	Assets        *repository.AssetRepo
	Registrations *repository.RegistrationRepo
	Uploads       storage.Uploader
}

func NewAssetHandler(assets *repository.AssetRepo, regs *repository.RegistrationRepo, up storage.Uploader) *AssetHandler {
	return &AssetHandler{Assets: assets, Registrations: regs, Uploads: up}
}

// Upload stores the multipart "file" part and attaches it to the
// registration named by the "event_registration_id" form field.  The caller
// must own the registration unless they are an admin.
func (h *AssetHandler) Upload(c echo.Context) error {
	regID := c.FormValue("event_registration_id")
	if regID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_registration_id required"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	if fh.Size > maxAssetBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	reg, err := h.Registrations.GetByID(ctx, regID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch registration"})
	}
	if !callerOwnsOrAdmin(c, reg.UserID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read upload"})
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := h.Uploads.Upload(ctx, "assets/"+regID, fh.Filename, contentType, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store file"})
	}

	asset, err := h.Assets.Create(ctx, regID, url, fh.Filename)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record asset"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Asset uploaded successfully",
		"asset":   asset,
	})
}

// ListByRegistration returns the assets attached to one registration.
func (h *AssetHandler) ListByRegistration(c echo.Context) error {
	regID := c.Param("registration_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reg, err := h.Registrations.GetByID(ctx, regID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch registration"})
	}
	if !callerOwnsOrAdmin(c, reg.UserID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	assets, err := h.Assets.ListByRegistration(ctx, regID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list assets"})
	}
	if assets == nil {
		assets = []model.Asset{}
	}
	return c.JSON(http.StatusOK, assets)
}

// Get fetches one asset record.
func (h *AssetHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	asset, err := h.Assets.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch asset"})
	}
	return c.JSON(http.StatusOK, asset)
}

// Delete removes an asset record.  The stored object is left behind; a
// cleanup job can reap unreferenced keys.
func (h *AssetHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Assets.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete asset"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Asset deleted successfully"})
}
