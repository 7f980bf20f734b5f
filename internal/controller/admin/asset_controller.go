package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/service"
)

type AssetController struct {
	assetService service.AssetImportService
}

func NewAssetController(as service.AssetImportService) *AssetController {
	return &AssetController{assetService: as}
}

// ListPendingAssets godoc
// @Summary (Admin) List files waiting for import
// @Tags Admin - Assets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PendingAssetsResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/upload-files [get]
func (c *AssetController) ListPendingAssets(ctx *gin.Context) {
	pending, err := c.assetService.Pending()
	if err != nil {
		log.Error().Err(err).Msg("Admin ListPendingAssets: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list pending files", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.PendingAssetsResponse{
		Audio:  pending[service.AssetKindAudio],
		Images: pending[service.AssetKindImages],
	})
}

// ImportAssets godoc
// @Summary (Admin) Upload pending dictation audio and pictures
// @Description Files are uploaded to their bucket then moved to files_uploaded. Per-file failures are listed without aborting the import.
// @Tags Admin - Assets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AssetImportResponse
// @Failure 503 {object} dto.ErrorResponse "Storage is not configured"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/upload-files [post]
func (c *AssetController) ImportAssets(ctx *gin.Context) {
	report, err := c.assetService.Import(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Admin ImportAssets: service error")
		if errors.Is(err, service.ErrStorageUnavailable) {
			ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: "Storage is not configured"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to import files", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.AssetImportResponse{
		Success:  len(report.Failures) == 0,
		Audio:    report.Count(service.AssetKindAudio),
		Images:   report.Count(service.AssetKindImages),
		Failures: report.Failures,
	})
}
