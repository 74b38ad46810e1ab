package controller

import (
	"net/http"

	apperrors "github.com/autopartshop/autoparts-backend/internal/errors"

	"github.com/autopartshop/autoparts-backend/internal/middleware"
	"github.com/autopartshop/autoparts-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20 // 10MB

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

type UploadController struct {
	storage storage.ImageStorage
}

func NewUploadController(storage storage.ImageStorage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

// UploadImage accepts a multipart image and returns its public URL
// POST /api/v1/upload/image
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Missing upload file", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := ctrl.storage.ValidateContentType(contentType, allowedImageTypes); err != nil {
		log.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": contentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "only jpeg, png, gif and webp images are allowed")
		return
	}

	if err := ctrl.storage.ValidateFileSize(fileHeader.Size, maxImageSize); err != nil {
		log.Warn("Rejected upload size", map[string]interface{}{
			"size": fileHeader.Size,
		})
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "file exceeds the 10MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open upload", err)
		apperrors.InternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	url, err := ctrl.storage.UploadImage(c.Request.Context(), fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		log.Error("Failed to upload image", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "image upload failed")
		return
	}

	log.Info("Image uploaded", map[string]interface{}{
		"filename": fileHeader.Filename,
		"url":      url,
	})

	c.JSON(http.StatusCreated, gin.H{
		"url": url,
	})
}
