package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sakura/internal/metrics"
)

// ErrDisabled — компонент выключен конфигом (это не деградация).
var ErrDisabled = errors.New("component disabled")

// Component — опциональная часть сервиса. Mount должен сначала проверить
// зависимости и только потом регистрировать маршруты.
type Component struct {
	Name  string
	Mount func(ctx context.Context, r *gin.Engine) error
}

type ComponentStatus struct {
	Name    string
	Mounted bool
	Err     error
}

// MountComponents монтирует компоненты по порядку. Ошибка одного не мешает остальным.
func MountComponents(ctx context.Context, r *gin.Engine, log *zap.Logger, comps ...Component) []ComponentStatus {
	out := make([]ComponentStatus, 0, len(comps))
	for _, comp := range comps {
		err := comp.Mount(ctx, r)
		st := ComponentStatus{Name: comp.Name, Mounted: err == nil, Err: err}
		out = append(out, st)
		metrics.SetComponent(comp.Name, st.Mounted)

		switch {
		case err == nil:
			log.Info("component mounted", zap.String("component", comp.Name))
		case errors.Is(err, ErrDisabled):
			log.Info("component disabled", zap.String("component", comp.Name))
		default:
			log.Warn("optional component degraded, skipping",
				zap.String("component", comp.Name), zap.Error(err))
		}
	}
	return out
}

type rootEnsurer interface {
	EnsureRoot() error
}

// LandingComponent — POST /api/landing/upload/
func LandingComponent(s *Server) Component {
	return Component{
		Name: "landing",
		Mount: func(_ context.Context, r *gin.Engine) error {
			if s.Blob == nil {
				return errors.New("blob store not configured")
			}
			if re, ok := s.Blob.(rootEnsurer); ok {
				if err := re.EnsureRoot(); err != nil {
					return err
				}
			}
			landing := r.Group("/api/landing")
			landing.POST("/upload/", LandingUploadHandler(s))
			return nil
		},
	}
}

// UploadsComponent раздаёт загруженные файлы по URLPrefix.
func UploadsComponent(s *Server, dir string) Component {
	return Component{
		Name: "uploads",
		Mount: func(_ context.Context, r *gin.Engine) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("uploads dir: %w", err)
			}
			r.Static(s.Uploads.URLPrefix, dir)
			return nil
		},
	}
}

// FrontendComponent раздаёт собранный фронт; неизвестные пути отдают index.html (SPA).
// /api/ и reserved-префиксы (например, /uploads) в SPA не проваливаются: там 404 JSON.
func FrontendComponent(dir string, reserved ...string) Component {
	return Component{
		Name: "frontend",
		Mount: func(_ context.Context, r *gin.Engine) error {
			if strings.TrimSpace(dir) == "" {
				return ErrDisabled
			}
			index := filepath.Join(dir, "index.html")
			if st, err := os.Stat(index); err != nil {
				return fmt.Errorf("frontend bundle: %w", err)
			} else if st.IsDir() {
				return fmt.Errorf("frontend bundle: %s is a directory", index)
			}

			prefixes := []string{"/api"}
			for _, pr := range reserved {
				if pr = strings.TrimRight(strings.TrimSpace(pr), "/"); pr != "" {
					prefixes = append(prefixes, pr)
				}
			}

			root := http.Dir(dir)
			r.NoRoute(func(c *gin.Context) {
				p := path.Clean("/" + c.Request.URL.Path)
				if (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) ||
					underAny(p, prefixes) {
					c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
					return
				}
				if f, err := root.Open(p); err == nil {
					st, serr := f.Stat()
					_ = f.Close()
					if serr == nil && !st.IsDir() {
						c.FileFromFS(p, root)
						return
					}
				}
				c.File(index)
			})
			return nil
		},
	}
}

// underAny: p совпадает с префиксом или лежит под ним ("/uploadsX" — не под "/uploads").
func underAny(p string, prefixes []string) bool {
	for _, pr := range prefixes {
		if p == pr || strings.HasPrefix(p, pr+"/") {
			return true
		}
	}
	return false
}
