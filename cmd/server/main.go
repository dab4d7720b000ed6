package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sakura/internal/api"
	"sakura/internal/blob"
	"sakura/internal/config"
	"sakura/internal/logging"
	"sakura/internal/pg"
	"sakura/internal/reference"
	"sakura/internal/schema"
)

var (
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "sakura-api",
	Short:         "ERP Sakura API: dropdown metadata and landing uploads",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd.Flags())
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(enumsCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	if err := reference.Validate(reference.Mapping); err != nil {
		return err
	}

	// 1. enum'ы схемы: грузим сразу, чтобы в логе было видно, что нашлось
	enums := schema.NewSource(cfg.SchemaPath, logger.Named("schema"))
	for _, it := range reference.Lint(enums.Catalog(), reference.Mapping) {
		logger.Warn("dropdown attribute skipped",
			zap.String("key", it.Key), zap.String("enum", it.Enum), zap.String("code", it.Code))
	}

	// 2. хранилище загрузок
	store := blob.NewLocalStore(cfg.UploadDir)
	srv := api.NewServer(enums, store, api.UploadOptions{
		URLPrefix:  cfg.UploadURLPrefix,
		DefaultExt: cfg.DefaultExt,
		MaxBytes:   cfg.MaxUploadBytes(),
	}, logger.Named("api"))

	// 3. роутер + опциональные компоненты
	gin.SetMode(gin.ReleaseMode)
	r := api.NewRouter(srv, cfg.CORSOrigins)
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	var db *sql.DB
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()
	api.MountComponents(ctx, r, logger,
		api.UploadsComponent(srv, cfg.UploadDir),
		api.LandingComponent(srv),
		postgresComponent(enums, &db),
		api.FrontendComponent(cfg.FrontendDir, cfg.UploadURLPrefix),
	)

	// 4. HTTP
	return api.RunServer(ctx, cfg.Addr(), r, cfg.ShutdownDuration(), logger)
}

// postgresComponent: пинг БД, при autoMigrate — enum-типы, плюс GET /health/db.
func postgresComponent(enums *schema.Source, out **sql.DB) api.Component {
	return api.Component{
		Name: "postgres",
		Mount: func(ctx context.Context, r *gin.Engine) error {
			if cfg.DBURL == "" {
				return api.ErrDisabled
			}
			db, err := pg.Open(ctx, cfg.DBURL, cfg.DBPool())
			if err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			if cfg.AutoMigrate {
				if _, err := applyEnumTypes(ctx, db, enums.Catalog()); err != nil {
					_ = db.Close()
					return err
				}
			}
			*out = db
			r.GET("/health/db", func(c *gin.Context) {
				pctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
				defer cancel()
				if err := db.PingContext(pctx); err != nil {
					c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
					return
				}
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})
			return nil
		},
	}
}

func applyEnumTypes(ctx context.Context, db *sql.DB, cat *schema.Catalog) (int, error) {
	names := make([]string, 0, len(reference.Mapping))
	for _, a := range reference.Mapping {
		names = append(names, a.Enum)
	}
	ddl := pg.EnumDDL(cat, names)
	if len(ddl) == 0 {
		return 0, errors.New("no enums to migrate: schema has none of the mapped enums")
	}
	return pg.ApplyDDL(ctx, db, ddl, logger.Named("pg"))
}
