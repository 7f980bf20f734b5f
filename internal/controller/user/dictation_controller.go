package user

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/service"
)

type DictationController struct {
	dictationService  service.DictationService
	validationService service.DictationValidationService
}

func NewDictationController(ds service.DictationService, vs service.DictationValidationService) *DictationController {
	return &DictationController{dictationService: ds, validationService: vs}
}

// ListDictations godoc
// @Summary List dictations
// @Description Newest first. Repeat or comma-separate 'level' to keep dictations of those school levels.
// @Tags Dictations
// @Produce json
// @Security BearerAuth
// @Param level query string false "Level codes, e.g. CE1,CE2"
// @Success 200 {array} dto.DictationResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dictations [get]
func (c *DictationController) ListDictations(ctx *gin.Context) {
	var codes []string
	for _, raw := range ctx.QueryArray("level") {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
	}
	dictations, err := c.dictationService.ListDictations(ctx.Request.Context(), codes)
	if err != nil {
		log.Error().Err(err).Strs("levels", codes).Msg("ListDictations: service error")
		writeServiceError(ctx, err, "Failed to retrieve dictations")
		return
	}
	ctx.JSON(http.StatusOK, dictations)
}

// GetDictation godoc
// @Summary Get a dictation
// @Tags Dictations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dictation ID"
// @Success 200 {object} dto.DictationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Dictation not found"
// @Router /dictations/{id} [get]
func (c *DictationController) GetDictation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	dictation, err := c.dictationService.GetDictation(ctx.Request.Context(), id)
	if err != nil {
		writeServiceError(ctx, err, "Failed to retrieve dictation")
		return
	}
	ctx.JSON(http.StatusOK, dictation)
}

// ListAttempts godoc
// @Summary Attempts of the current profile on a dictation
// @Description Newest first, each attempt marked out of ten with a grade band.
// @Tags Dictations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dictation ID"
// @Success 200 {array} dto.AttemptSummary
// @Failure 400 {object} dto.ErrorResponse "No profile selected"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /dictations/{id}/attempts [get]
func (c *DictationController) ListAttempts(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	sc, ok := submissionContext(ctx)
	if !ok {
		return
	}
	attempts, err := c.dictationService.ListAttempts(ctx.Request.Context(), sc, id)
	if err != nil {
		log.Warn().Err(err).Str("dictationID", id.String()).Msg("ListAttempts: service error")
		writeServiceError(ctx, err, "Failed to retrieve attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// ValidateDictation godoc
// @Summary Correct a dictation
// @Description The student copy is compared to the dictation by the language model. The analysis is returned even when it could not be stored.
// @Tags Dictations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dictation ID"
// @Param submission body dto.ValidateDictationRequest true "Student copy and learner profile"
// @Success 200 {object} dto.ValidateDictationResponse
// @Failure 400 {object} dto.ErrorResponse "Missing required fields or no profile selected"
// @Failure 404 {object} dto.ErrorResponse "Profile or dictation not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to analyze dictation"
// @Router /dictations/{id}/validate [post]
func (c *DictationController) ValidateDictation(ctx *gin.Context) {
	var req dto.ValidateDictationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("ValidateDictation: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing required fields", Details: []string{err.Error()}})
		return
	}
	pathID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if bodyID, err := uuid.Parse(req.DictationID); err != nil || bodyID != pathID {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Dictation ID does not match the URL"})
		return
	}
	sc, ok := submissionContext(ctx)
	if !ok {
		return
	}

	resp, err := c.validationService.Validate(ctx.Request.Context(), sc, req)
	if err != nil {
		writeServiceError(ctx, err, "Failed to analyze dictation")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
