package main

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/database"
	_ "github.com/tsootsoo/dictees/docs"
	"github.com/tsootsoo/dictees/internal/controller"
	adminctrl "github.com/tsootsoo/dictees/internal/controller/admin"
	userctrl "github.com/tsootsoo/dictees/internal/controller/user"
	"github.com/tsootsoo/dictees/internal/logger"
	"github.com/tsootsoo/dictees/internal/metrics"
	"github.com/tsootsoo/dictees/internal/middleware"
	"github.com/tsootsoo/dictees/internal/model"
	"github.com/tsootsoo/dictees/internal/repository"
	"github.com/tsootsoo/dictees/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Dictées API
// @version 1.0
// @description French dictation practice for children. Learners submit their copy of a dictation and receive a structured, encouraging correction.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	metrics.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewProfileCookie,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewProfileRepository,
			repository.NewLevelRepository,
			repository.NewDictationRepository,
			repository.NewDictationAttemptRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewLLMService,
			service.NewCorrector,
			service.NewStorageService,
			service.NewScoreConverterService,
			service.NewProfileService,
			service.NewLevelService,
			service.NewDictationService,
			service.NewDictationValidationService,
			service.NewMediaService,
			service.NewAssetImportService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewProfileController,
			userctrl.NewCurrentProfileController,
			userctrl.NewLevelController,
			userctrl.NewDictationController,
			userctrl.NewMediaController,
			adminctrl.NewAssetController,
		),

		fx.Invoke(ConfigureLogger),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(CloseLLMOnStop),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func ConfigureLogger(cfg *config.Config) {
	logger.Configure(cfg.Log.Level, cfg.Log.File)
}

func NewProfileCookie(cfg *config.Config) *middleware.ProfileCookie {
	if cfg.Auth.Secret == "" {
		log.Warn().Msg("AUTH_SECRET is empty, session tokens and profile cookies are not protected")
	}
	return middleware.NewProfileCookie(cfg.Auth.Secret, cfg.Auth.ProfileCookieSecure)
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(metrics.MetricsMiddleware())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.Server.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		// Credentialed requests cannot use a literal wildcard origin.
		corsConfig.AllowOrigins = nil
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	}
	r.Use(cors.New(corsConfig))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config, routes controller.Routes) {
	controller.RegisterRoutes(router, routes)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Dictées API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// CloseLLMOnStop releases provider clients that hold connections.
func CloseLLMOnStop(lc fx.Lifecycle, llm service.LLMService) {
	closer, ok := llm.(io.Closer)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closer.Close()
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Level{},
		&model.Profile{},
		&model.ProfileLevel{},
		&model.Category{},
		&model.Topic{},
		&model.Dictation{},
		&model.DictationLevel{},
		&model.DictationAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
