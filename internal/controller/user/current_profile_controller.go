package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/middleware"
	"github.com/tsootsoo/dictees/internal/service"
)

// CurrentProfileController remembers which learner is using the app through
// a signed cookie.
type CurrentProfileController struct {
	profileService service.ProfileService
	cookie         *middleware.ProfileCookie
}

func NewCurrentProfileController(ps service.ProfileService, cookie *middleware.ProfileCookie) *CurrentProfileController {
	return &CurrentProfileController{profileService: ps, cookie: cookie}
}

// GetCurrentProfile godoc
// @Summary Get the selected profile
// @Description Falls back to the most recently created profile and selects it when no valid cookie is present.
// @Tags Current profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CurrentProfileResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /current-profile [get]
func (c *CurrentProfileController) GetCurrentProfile(ctx *gin.Context) {
	userID := middleware.UserID(ctx)
	if id, ok := c.cookie.Read(ctx); ok {
		profile, err := c.profileService.GetProfile(ctx.Request.Context(), userID, id)
		if err == nil {
			ctx.JSON(http.StatusOK, dto.CurrentProfileResponse{CurrentProfile: profile})
			return
		}
		log.Debug().Err(err).Str("profileID", id.String()).Msg("GetCurrentProfile: cookie profile unavailable, falling back")
	}

	profile, err := c.profileService.LatestProfile(ctx.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("GetCurrentProfile: service error")
		writeServiceError(ctx, err, "Failed to retrieve current profile")
		return
	}
	if profile == nil {
		c.cookie.Clear(ctx)
		ctx.JSON(http.StatusOK, dto.CurrentProfileResponse{})
		return
	}
	if id, err := uuid.Parse(profile.ID); err == nil {
		c.cookie.Set(ctx, id)
	}
	ctx.JSON(http.StatusOK, dto.CurrentProfileResponse{CurrentProfile: profile, FromFallback: true})
}

// SelectProfile godoc
// @Summary Select the current profile
// @Tags Current profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param selection body dto.SelectProfileRequest true "Profile to select"
// @Success 200 {object} dto.CurrentProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /current-profile [post]
func (c *CurrentProfileController) SelectProfile(ctx *gin.Context) {
	var req dto.SelectProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Profile ID is required"})
		return
	}
	id, err := uuid.Parse(req.ProfileID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid ID format"})
		return
	}
	profile, err := c.profileService.GetProfile(ctx.Request.Context(), middleware.UserID(ctx), id)
	if err != nil {
		writeServiceError(ctx, err, "Failed to select profile")
		return
	}
	c.cookie.Set(ctx, id)
	ctx.JSON(http.StatusOK, dto.CurrentProfileResponse{CurrentProfile: profile})
}

// ClearCurrentProfile godoc
// @Summary Forget the selected profile
// @Tags Current profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /current-profile [delete]
func (c *CurrentProfileController) ClearCurrentProfile(ctx *gin.Context) {
	c.cookie.Clear(ctx)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
