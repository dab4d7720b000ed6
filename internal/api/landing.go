package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sakura/internal/metrics"
)

// имя поля формы, как у фронта лендинга
const uploadField = "files"

// POST /api/landing/upload/
// Файлы пишутся по одному; если упал не первый, уже записанные остаются.
func LandingUploadHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.Uploads.MaxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.Uploads.MaxBytes)
		}

		var files []*multipart.FileHeader
		form, err := c.MultipartForm()
		switch {
		case err == nil:
			files = form.File[uploadField]
		case isTooLarge(err):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Upload too large"})
			return
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			// не multipart — считаем пустым пакетом
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form", "details": err.Error()})
			return
		}

		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
			return
		}

		urls := make([]string, 0, len(files))
		for _, fh := range files {
			obj, err := s.storeUpload(fh)
			metrics.ObserveUpload(err == nil, obj.Size)
			if err != nil {
				s.Log.Error("landing upload failed",
					zap.String("file", fh.Filename),
					zap.Int("stored", len(urls)),
					zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "store error", "details": err.Error()})
				return
			}
			s.Log.Debug("landing file stored",
				zap.String("name", obj.Name),
				zap.Int64("size", obj.Size),
				zap.String("sha256", obj.SHA256))
			urls = append(urls, s.publicURL(obj.Name))
		}

		c.JSON(http.StatusOK, gin.H{"urls": urls})
	}
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
