package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"confusion/internal/service"
)

// ImageField is the multipart field carrying the uploaded image.
const ImageField = "imageFile"

// UploadHandler handles image uploads.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage godoc
// @Summary Upload a menu image
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param imageFile formData file true "jpg, jpeg, png or gif"
// @Success 200 {object} service.UploadedFile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /imageUpload [post]
func (h *UploadHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile(ImageField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing "+ImageField+" file")
	}
	uploaded, err := h.uploadService.UploadImage(c.Request().Context(), ImageField, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, uploaded)
}
