package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/middleware"
	"github.com/tsootsoo/dictees/internal/service"
)

// writeServiceError maps service sentinels to HTTP statuses. Anything else is
// a 500 carrying the fallback message, the cause stays in the logs.
func writeServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Profile not found"})
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Not found"})
	case errors.Is(err, service.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid input", Details: []string{err.Error()}})
	case errors.Is(err, service.ErrStorageUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: "Storage is not configured"})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback})
	}
}

func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// submissionContext reads the values set by the Auth and profile cookie
// middlewares.
func submissionContext(ctx *gin.Context) (service.SubmissionContext, bool) {
	profileID, ok := middleware.ProfileID(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No profile selected"})
		return service.SubmissionContext{}, false
	}
	return service.SubmissionContext{UserID: middleware.UserID(ctx), ProfileID: profileID}, true
}
