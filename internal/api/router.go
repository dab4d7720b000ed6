// api/router.go
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sakura/internal/metrics"
)

// NewRouter собирает обязательные маршруты; опциональные — через MountComponents.
func NewRouter(s *Server, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(s.Log), Recovery(s.Log), CORS(corsOrigins), metrics.Middleware())

	r.GET("/health", HealthHandler())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	dropdown := r.Group("/api/dropdown")
	{
		dropdown.GET("/attributes", DropdownAttributesHandler(s))
		dropdown.GET("/options", DropdownOptionsHandler(s))
		dropdown.GET("/enums", DropdownEnumsHandler(s))
	}
	return r
}

// RunServer слушает addr до отмены ctx, затем делает graceful shutdown.
func RunServer(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("http server shutting down")
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
