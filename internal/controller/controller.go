package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
	adminctrl "github.com/tsootsoo/dictees/internal/controller/admin"
	userctrl "github.com/tsootsoo/dictees/internal/controller/user"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/metrics"
	"github.com/tsootsoo/dictees/internal/middleware"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Routes gathers everything the router needs from the fx graph.
type Routes struct {
	fx.In

	Config         *config.Config
	DB             *gorm.DB
	Cookie         *middleware.ProfileCookie
	Profiles       *userctrl.ProfileController
	CurrentProfile *userctrl.CurrentProfileController
	Levels         *userctrl.LevelController
	Dictations     *userctrl.DictationController
	Media          *userctrl.MediaController
	Assets         *adminctrl.AssetController
}

func RegisterRoutes(router *gin.Engine, r Routes) {
	router.GET("/healthz", Health(r.DB))
	router.GET("/metrics", metrics.PrometheusHandler())

	apiV1 := router.Group("/api/v1", middleware.Auth(r.Config.Auth.Secret))
	{
		apiV1.GET("/levels", r.Levels.GetAllLevels)

		profiles := apiV1.Group("/profiles")
		profiles.GET("", r.Profiles.ListProfiles)
		profiles.POST("", r.Profiles.CreateProfile)
		profiles.PUT("/:id", r.Profiles.UpdateProfile)
		profiles.DELETE("/:id", r.Profiles.DeleteProfile)
		profiles.GET("/:id/levels", r.Profiles.GetProfileLevels)
		profiles.PUT("/:id/levels", r.Profiles.UpdateProfileLevels)

		current := apiV1.Group("/current-profile")
		current.GET("", r.CurrentProfile.GetCurrentProfile)
		current.POST("", r.CurrentProfile.SelectProfile)
		current.DELETE("", r.CurrentProfile.ClearCurrentProfile)

		dictations := apiV1.Group("/dictations")
		dictations.GET("", r.Dictations.ListDictations)
		dictations.GET("/:id", r.Dictations.GetDictation)
		dictations.GET("/:id/attempts", r.Cookie.Require(), r.Dictations.ListAttempts)
		dictations.POST("/:id/validate", r.Cookie.Require(), r.Dictations.ValidateDictation)

		apiV1.POST("/upload-image", r.Media.UploadImage)
		apiV1.DELETE("/delete-image", r.Media.DeleteImage)

		admin := apiV1.Group("/admin")
		admin.GET("/upload-files", r.Assets.ListPendingAssets)
		admin.POST("/upload-files", r.Assets.ImportAssets)
	}
}

// Health reports 503 when the database does not answer a ping.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err = sqlDB.PingContext(pingCtx)
			cancel()
		}
		if err != nil {
			log.Warn().Err(err).Msg("Health check: database unreachable")
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: "Database unreachable"})
			return
		}
		c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
	}
}
