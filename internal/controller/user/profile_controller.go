package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/middleware"
	"github.com/tsootsoo/dictees/internal/service"
)

type ProfileController struct {
	profileService service.ProfileService
	cookie         *middleware.ProfileCookie
}

func NewProfileController(ps service.ProfileService, cookie *middleware.ProfileCookie) *ProfileController {
	return &ProfileController{profileService: ps, cookie: cookie}
}

// ListProfiles godoc
// @Summary List the learner profiles of the account
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles [get]
func (c *ProfileController) ListProfiles(ctx *gin.Context) {
	profiles, err := c.profileService.ListProfiles(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("ListProfiles: service error")
		writeServiceError(ctx, err, "Failed to retrieve profiles")
		return
	}
	ctx.JSON(http.StatusOK, profiles)
}

// CreateProfile godoc
// @Summary Create a learner profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.ProfileRequest true "Profile data"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles [post]
func (c *ProfileController) CreateProfile(ctx *gin.Context) {
	var req dto.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	profile, err := c.profileService.CreateProfile(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		log.Error().Err(err).Msg("CreateProfile: service error")
		writeServiceError(ctx, err, "Failed to create profile")
		return
	}
	ctx.JSON(http.StatusCreated, profile)
}

// UpdateProfile godoc
// @Summary Update a learner profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param profile body dto.ProfileRequest true "Profile data"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id} [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), middleware.UserID(ctx), id, req)
	if err != nil {
		log.Warn().Err(err).Str("profileID", id.String()).Msg("UpdateProfile: service error")
		writeServiceError(ctx, err, "Failed to update profile")
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// DeleteProfile godoc
// @Summary Delete a learner profile
// @Description Also clears the current-profile cookie when it points to the deleted profile.
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id} [delete]
func (c *ProfileController) DeleteProfile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.profileService.DeleteProfile(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		log.Warn().Err(err).Str("profileID", id.String()).Msg("DeleteProfile: service error")
		writeServiceError(ctx, err, "Failed to delete profile")
		return
	}
	if current, ok := c.cookie.Read(ctx); ok && current == id {
		c.cookie.Clear(ctx)
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// GetProfileLevels godoc
// @Summary List the school levels of a profile
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {array} dto.LevelResponse
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id}/levels [get]
func (c *ProfileController) GetProfileLevels(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	levels, err := c.profileService.GetProfileLevels(ctx.Request.Context(), middleware.UserID(ctx), id)
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve profile levels")
		return
	}
	ctx.JSON(http.StatusOK, levels)
}

// UpdateProfileLevels godoc
// @Summary Replace the school levels of a profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param levels body dto.UpdateProfileLevelsRequest true "Level IDs"
// @Success 200 {array} dto.LevelResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown level ID"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id}/levels [put]
func (c *ProfileController) UpdateProfileLevels(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateProfileLevelsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	levels, err := c.profileService.UpdateProfileLevels(ctx.Request.Context(), middleware.UserID(ctx), id, req.LevelIDs)
	if err != nil {
		log.Warn().Err(err).Str("profileID", id.String()).Msg("UpdateProfileLevels: service error")
		writeServiceError(ctx, err, "Failed to update profile levels")
		return
	}
	ctx.JSON(http.StatusOK, levels)
}
