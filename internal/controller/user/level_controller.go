package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/service"
)

type LevelController struct {
	levelService service.LevelService
}

func NewLevelController(ls service.LevelService) *LevelController {
	return &LevelController{levelService: ls}
}

// GetAllLevels godoc
// @Summary List school levels
// @Tags Levels
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.LevelResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /levels [get]
func (c *LevelController) GetAllLevels(ctx *gin.Context) {
	levels, err := c.levelService.GetAllLevels(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("GetAllLevels: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve levels"})
		return
	}
	ctx.JSON(http.StatusOK, levels)
}
