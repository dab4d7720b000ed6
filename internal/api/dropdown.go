package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sakura/internal/reference"
)

// ===== DROPDOWN HANDLERS =====

// GET /api/dropdown/attributes
func DropdownAttributesHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, reference.Attributes(s.Enums.Catalog(), s.Mapping))
	}
}

// GET /api/dropdown/options[?attribute=<key>]
func DropdownOptionsHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := s.Enums.Catalog()
		if key := c.Query("attribute"); key != "" {
			a, ok := reference.FindAttribute(s.Mapping, key)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "Attribute not found"})
				return
			}
			c.Header("Cache-Control", "public, max-age=86400")
			c.JSON(http.StatusOK, reference.OptionsFor(cat, a))
			return
		}
		// каталог не меняется до рестарта — фронту можно кэшировать
		c.Header("Cache-Control", "public, max-age=86400")
		c.JSON(http.StatusOK, reference.Options(cat, s.Mapping))
	}
}

// GET /api/dropdown/enums
func DropdownEnumsHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, reference.Enums(s.Enums.Catalog(), s.Mapping))
	}
}

// GET /health
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
