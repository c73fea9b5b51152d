package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadSize bounds accepted image files.
const maxUploadSize = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadHandler stores plant and blog images on local disk under a
// random filename and returns the public path.
type UploadHandler interface {
	UploadImage(c *gin.Context)
}

type uploadHandler struct {
	dir    string
	logger *zap.Logger
}

func NewUploadHandler(dir string, logger *zap.Logger) UploadHandler {
	return &uploadHandler{dir: dir, logger: logger}
}

func (h *uploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "image file is missing")
		return
	}

	if file.Size > maxUploadSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "image exceeds the 5MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		RespondError(c, http.StatusBadRequest, "unsupported image type")
		return
	}

	name := uuid.New().String() + ext
	dest := filepath.Join(h.dir, name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		h.logger.Error("failed to save uploaded image", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "failed to store image")
		return
	}

	RespondCreated(c, gin.H{"path": "/uploads/" + name}, "image uploaded")
}
