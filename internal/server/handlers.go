package server

import (
	"net/http"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/alexanderramin/foreman/internal/service"
	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func ListSchedules(svc service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		schedules, err := svc.List(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"schedules": schedules, "count": len(schedules)})
	}
}

func GetSchedule(svc service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sched, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, sched)
	}
}

func CreateSchedule(svc service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBindError(c, err)
			return
		}
		in, err := req.toInput()
		if err != nil {
			abortWithBindError(c, err)
			return
		}

		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func UpdateSchedule(svc service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBindError(c, err)
			return
		}
		patch, err := req.toPatch()
		if err != nil {
			abortWithBindError(c, err)
			return
		}

		res, err := svc.Update(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func DeleteSchedule(svc service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func ListDependents(svc service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps, err := svc.Dependents(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"dependents": deps, "count": len(deps)})
	}
}

// CycleCheck answers whether ?predecessor= could become the predecessor of
// :id without closing a loop.
func CycleCheck(svc service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pred := c.Query("predecessor")
		if pred == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "predecessor query parameter is required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"scheduleId":    c.Param("id"),
			"predecessorId": pred,
			"cycle":         svc.HasCircularDependency(c.Request.Context(), c.Param("id"), pred),
		})
	}
}

func CheckConflicts(svc service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req conflictCheckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBindError(c, err)
			return
		}
		start, err := domain.ParseDate(req.StartDate)
		if err != nil {
			abortWithBindError(c, err)
			return
		}
		end, err := domain.ParseDate(req.EndDate)
		if err != nil {
			abortWithBindError(c, err)
			return
		}

		conflicts := svc.CheckConflicts(c.Request.Context(), req.EmployeeIDs, start, end, req.ExcludeID)
		c.JSON(http.StatusOK, gin.H{"conflicts": conflicts, "count": len(conflicts)})
	}
}
