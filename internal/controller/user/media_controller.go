package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/service"
)

type MediaController struct {
	mediaService service.MediaService
}

func NewMediaController(ms service.MediaService) *MediaController {
	return &MediaController{mediaService: ms}
}

// UploadImage godoc
// @Summary Upload an image
// @Description JPEG or PNG up to 5MB. Stored in the avatars bucket unless the images bucket is given.
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Param bucket formData string false "Target bucket, avatars or images"
// @Success 200 {object} dto.UploadImageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid file"
// @Failure 503 {object} dto.ErrorResponse "Storage is not configured"
// @Router /upload-image [post]
func (c *MediaController) UploadImage(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No file uploaded"})
		return
	}
	file, err := header.Open()
	if err != nil {
		log.Error().Err(err).Msg("UploadImage: could not open multipart file")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to read file"})
		return
	}
	defer file.Close()

	resp, err := c.mediaService.UploadImage(ctx.Request.Context(), service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
		Bucket:      ctx.PostForm("bucket"),
	})
	if err != nil {
		log.Warn().Err(err).Str("filename", header.Filename).Msg("UploadImage: service error")
		writeServiceError(ctx, err, "Failed to upload image")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteImage godoc
// @Summary Delete an image
// @Tags Media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param image body dto.DeleteImageRequest true "Image to delete"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 503 {object} dto.ErrorResponse "Storage is not configured"
// @Router /delete-image [delete]
func (c *MediaController) DeleteImage(ctx *gin.Context) {
	var req dto.DeleteImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Filename is required"})
		return
	}
	if err := c.mediaService.DeleteImage(ctx.Request.Context(), req.Bucket, req.Filename); err != nil {
		log.Warn().Err(err).Str("filename", req.Filename).Msg("DeleteImage: service error")
		writeServiceError(ctx, err, "Failed to delete image")
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
