package server

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// abortWithBindError answers a request whose body could not be decoded or
// failed its binding rules.
func abortWithBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "invalid request",
			"fields": details,
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// abortWithError maps engine errors to HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	var (
		conflictErr   *domain.ConflictError
		cycleErr      *domain.CycleError
		validationErr *domain.ValidationError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "not_found"})
	case errors.As(err, &conflictErr):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":     err.Error(),
			"kind":      "conflict",
			"conflicts": conflictErr.Conflicts,
		})
	case errors.As(err, &cycleErr):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":         err.Error(),
			"kind":          "cycle",
			"scheduleId":    cycleErr.ScheduleID,
			"predecessorId": cycleErr.PredecessorID,
		})
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"kind":  "invalid",
			"field": validationErr.Field,
		})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
