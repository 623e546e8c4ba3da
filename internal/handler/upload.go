package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/regen-eco/regen-server/internal/config"
	"github.com/regen-eco/regen-server/internal/utils"
)

// UploadHandler stores waste-log images on local disk and returns a
// retrievable URL.
type UploadHandler struct {
	Cfg config.Config
}

func NewUploadHandler(cfg config.Config) *UploadHandler {
	return &UploadHandler{Cfg: cfg}
}

// Upload accepts a multipart "file" field, validates the extension against
// the image allow-list and saves it under a collision-resistant name.
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file part in the request"})
	}
	name, err := utils.SaveImage(fh, h.Cfg.UploadDir)
	if err != nil {
		if errors.Is(err, utils.ErrFileType) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		return fail(c, err, "file upload")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "File uploaded successfully",
		"filename": name,
		"url":      h.Cfg.BaseURL + "/uploads/" + name,
	})
}
