package server

import (
	"github.com/alexanderramin/foreman/internal/domain"
)

type createScheduleRequest struct {
	Title          string   `json:"title" binding:"required"`
	JobID          string   `json:"jobId"`
	EmployeeIDs    []string `json:"employeeIds" binding:"omitempty,dive,required"`
	StartDate      string   `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate        string   `json:"endDate" binding:"required,datetime=2006-01-02"`
	Status         *string  `json:"status" binding:"omitempty,oneof=scheduled in-progress completed cancelled"`
	PredecessorID  *string  `json:"predecessorId" binding:"omitempty,min=1"`
	PredecessorLag *int     `json:"predecessorLag" binding:"omitempty,min=0"`
	Duration       *int     `json:"duration" binding:"omitempty,min=1"`
	UseDuration    *bool    `json:"useDuration"`
	Notes          string   `json:"notes"`
}

func (r createScheduleRequest) toInput() (domain.ScheduleInput, error) {
	start, err := domain.ParseDate(r.StartDate)
	if err != nil {
		return domain.ScheduleInput{}, err
	}
	end, err := domain.ParseDate(r.EndDate)
	if err != nil {
		return domain.ScheduleInput{}, err
	}
	in := domain.ScheduleInput{
		Title:          r.Title,
		JobID:          r.JobID,
		EmployeeIDs:    r.EmployeeIDs,
		StartDate:      start,
		EndDate:        end,
		PredecessorID:  r.PredecessorID,
		PredecessorLag: r.PredecessorLag,
		Duration:       r.Duration,
		UseDuration:    r.UseDuration,
		Notes:          r.Notes,
	}
	if r.Status != nil {
		st := domain.ScheduleStatus(*r.Status)
		in.Status = &st
	}
	return in, nil
}

// updateScheduleRequest mirrors domain.SchedulePatch: absent fields are kept.
type updateScheduleRequest struct {
	Title            *string   `json:"title" binding:"omitempty,min=1"`
	JobID            *string   `json:"jobId"`
	EmployeeIDs      *[]string `json:"employeeIds"`
	StartDate        *string   `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate          *string   `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Status           *string   `json:"status" binding:"omitempty,oneof=scheduled in-progress completed cancelled"`
	PredecessorID    *string   `json:"predecessorId" binding:"omitempty,min=1"`
	ClearPredecessor bool      `json:"clearPredecessor" binding:"excluded_with=PredecessorID"`
	PredecessorLag   *int      `json:"predecessorLag" binding:"omitempty,min=0"`
	Duration         *int      `json:"duration" binding:"omitempty,min=1"`
	UseDuration      *bool     `json:"useDuration"`
	Notes            *string   `json:"notes"`
}

func (r updateScheduleRequest) toPatch() (domain.SchedulePatch, error) {
	patch := domain.SchedulePatch{
		Title:            r.Title,
		JobID:            r.JobID,
		EmployeeIDs:      r.EmployeeIDs,
		PredecessorID:    r.PredecessorID,
		ClearPredecessor: r.ClearPredecessor,
		PredecessorLag:   r.PredecessorLag,
		Duration:         r.Duration,
		UseDuration:      r.UseDuration,
		Notes:            r.Notes,
	}
	if r.StartDate != nil {
		d, err := domain.ParseDate(*r.StartDate)
		if err != nil {
			return patch, err
		}
		patch.StartDate = &d
	}
	if r.EndDate != nil {
		d, err := domain.ParseDate(*r.EndDate)
		if err != nil {
			return patch, err
		}
		patch.EndDate = &d
	}
	if r.Status != nil {
		st := domain.ScheduleStatus(*r.Status)
		patch.Status = &st
	}
	return patch, nil
}

type conflictCheckRequest struct {
	EmployeeIDs []string `json:"employeeIds" binding:"omitempty,dive,required"`
	StartDate   string   `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string   `json:"endDate" binding:"required,datetime=2006-01-02"`
	ExcludeID   string   `json:"excludeId"`
}
