package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/seeker-tracker/internal/handler/http/response"
)

type LeaveHandler interface {
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ComputeDays(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	loc          *time.Location
}

func NewLeaveHandler(leaveService leave.LeaveService, loc *time.Location) LeaveHandler {
	if loc == nil {
		loc = time.Local
	}
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		loc:          loc,
	}
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.ListMyLeaveRequests(r.Context(), identityFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponses(requests))
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := l.leaveService.Submit(r.Context(), identityFromRequest(r), req.ToForm(l.loc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", leave.NewLeaveRequestResponses(requests))
}

// ComputeDays implements LeaveHandler.
func (l *LeaveHandlerImpl) ComputeDays(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	days, err := l.leaveService.ComputeDays(leave.DaysRequest{
		From: query.Get("from"),
		To:   query.Get("to"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}
