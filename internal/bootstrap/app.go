package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-site/internal/exports"
	"resume-site/internal/profiles"
	"resume-site/internal/publish"
	"resume-site/internal/services/health"
	"resume-site/internal/shared/config"
	"resume-site/internal/shared/server"
	"resume-site/internal/shared/storage/db"
	"resume-site/internal/shared/storage/object"
	localstore "resume-site/internal/shared/storage/object/local"
	s3store "resume-site/internal/shared/storage/object/s3"
	"resume-site/internal/shared/telemetry"
	"resume-site/resume/render"
	"resume-site/resume/service"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Provider       profiles.Provider
	ProfilesRepo   profiles.Repo
	Service        *service.Service
	ExportsHandler *exports.Handler
	Health         *health.Service
}

// Build prepares the data provider, exporters and router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	if cfg.DataSource == config.DataSourcePostgres {
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		app.DB = sqlDB
		app.ProfilesRepo = &profiles.PGRepo{DB: sqlDB}
	}

	provider, err := BuildProvider(cfg, app.ProfilesRepo)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Provider = provider

	app.Service = service.New(provider,
		render.PDFOptions{PageSize: render.ParsePageSize(cfg.PDFPageSize)},
		render.HTMLOptions{},
	)
	app.ExportsHandler = exports.NewHandler(app.Service)
	app.Health = health.NewService(healthChecks(app))
	app.Router = server.NewRouter(cfg, app.ExportsHandler, app.Health)

	telemetry.Info("bootstrap.ready", map[string]any{
		"data_source": cfg.DataSource,
		"env":         cfg.Env,
		"page_size":   string(render.ParsePageSize(cfg.PDFPageSize)),
	})
	return app, nil
}

// BuildProvider picks the data provider for cfg.DataSource. repo is only
// used for the postgres source.
func BuildProvider(cfg config.Config, repo profiles.Repo) (profiles.Provider, error) {
	switch cfg.DataSource {
	case config.DataSourceFile:
		if strings.TrimSpace(cfg.DataFile) == "" {
			return nil, fmt.Errorf("DATA_SOURCE=file requires DATA_FILE")
		}
		return profiles.NewFile(cfg.DataFile)
	case config.DataSourcePostgres:
		if repo == nil {
			return nil, fmt.Errorf("DATA_SOURCE=postgres requires a database")
		}
		return profiles.RepoProvider{Repo: repo, Slug: cfg.ProfileSlug}, nil
	default:
		return profiles.NewEmbedded()
	}
}

// BuildStore opens the object store used by publish.
func BuildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// Publisher builds a publisher over the app's service. Publications are
// recorded only when a database is configured.
func (a *App) Publisher(store object.ObjectStore) *publish.Publisher {
	p := &publish.Publisher{Exporter: a.Service, Store: store}
	if a.DB != nil {
		p.Recorder = &publish.PGRecorder{DB: a.DB}
	}
	return p
}

// Close releases the database, if any.
func (a *App) Close() {
	if a != nil && a.DB != nil {
		_ = a.DB.Close()
	}
}

func healthChecks(app *App) map[string]health.Check {
	checks := map[string]health.Check{
		"profile": func(ctx context.Context) error {
			_, err := app.Provider.Load(ctx)
			return err
		},
	}
	if app.DB != nil {
		checks["database"] = app.DB.PingContext
	}
	return checks
}
