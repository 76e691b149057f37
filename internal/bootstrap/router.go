package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/screentocode/screen-to-code-backend/config"
	accountmw "github.com/screentocode/screen-to-code-backend/internal/account/middleware"
	"github.com/screentocode/screen-to-code-backend/internal/account/repository"
	accountsvc "github.com/screentocode/screen-to-code-backend/internal/account/service"
	httpapi "github.com/screentocode/screen-to-code-backend/internal/api/http"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/codegen"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/figma"
	conversionhttp "github.com/screentocode/screen-to-code-backend/internal/figma_conversion/http"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/middleware"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/service"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/vision"
)

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	DB          *pgxpool.Pool
	Redis       *redis.Client
	TrialStore  accountsvc.TrialStore
}

// BuildRouter assembles the gin engine. Credential-dependent pipeline steps
// are bound to their strategies here, so handlers and the orchestrator stay
// free of env checks.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-API-Key", "X-User-Id", "X-User-Plan", "X-Request-Id")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	var metadata figma.MetadataSource = figma.NullMetadataSource{}
	if dep.Cfg.Figma.AccessToken != "" {
		metadata = figma.NewClient(dep.Cfg.Figma.AccessToken, dep.Cfg.Figma.BaseURL)
	}

	var interpreter vision.Interpreter = vision.NullInterpreter{}
	if dep.Cfg.Vision.APIKey != "" {
		interpreter = vision.NewOpenAIInterpreter(dep.Cfg.Vision.APIKey, dep.Cfg.Vision.BaseURL, dep.Cfg.Vision.Model)
	}

	var synthesizer codegen.Synthesizer = codegen.NullSynthesizer{}
	if dep.Cfg.Codegen.APIKey != "" {
		synthesizer = codegen.NewClaudeSynthesizer(dep.Cfg.Codegen.APIKey, dep.Cfg.Codegen.BaseURL, dep.Cfg.Codegen.Model)
	}

	conversionSvc := service.NewConversionService(metadata, interpreter, synthesizer)
	quotaSvc := accountsvc.NewQuotaService(dep.TrialStore, dep.Cfg.Account.FreeTrialLimit)

	api := r.Group("/api/v1")

	figmaGroup := api.Group("/figma")
	figmaGroup.Use(middleware.RequestIDMiddleware())
	figmaGroup.Use(middleware.APIKeyMiddleware())
	figmaGroup.Use(accountmw.RateLimitMiddleware(dep.Cfg.Account.RatePerSecond))

	handler := conversionhttp.New(conversionSvc)
	handler.Register(figmaGroup, accountmw.QuotaMiddleware(quotaSvc))

	return r
}

// NewTrialStore selects the trial store implementation for the configured
// backend. Falls back to memory when nothing else is wired.
func NewTrialStore(cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client) accountsvc.TrialStore {
	switch cfg.Account.Backend {
	case "redis":
		if rdb != nil {
			return repository.NewTrialRedisRepository(rdb)
		}
	case "postgres":
		if db != nil {
			return repository.NewTrialPostgresRepository(db)
		}
	}
	return repository.NewTrialMemoryRepository()
}
