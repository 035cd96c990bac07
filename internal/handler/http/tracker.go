package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
	"github.com/cmlabs-hris/seeker-tracker/internal/handler/http/response"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/validator"
)

type TimeTrackingHandler interface {
	Hired(w http.ResponseWriter, r *http.Request)
	Identity(w http.ResponseWriter, r *http.Request)

	View(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)

	// SSE
	Stream(w http.ResponseWriter, r *http.Request)
}

type timeTrackingHandlerImpl struct {
	trackingService timetracking.TimeTrackingService
	resolver        identity.Resolver
	loc             *time.Location
	keepalive       time.Duration
}

func NewTimeTrackingHandler(trackingService timetracking.TimeTrackingService, resolver identity.Resolver, loc *time.Location) TimeTrackingHandler {
	if loc == nil {
		loc = time.Local
	}
	return &timeTrackingHandlerImpl{
		trackingService: trackingService,
		resolver:        resolver,
		loc:             loc,
		keepalive:       30 * time.Second,
	}
}

// identityFromRequest returns the identity stored by middleware.AuthRequired.
func identityFromRequest(r *http.Request) identity.Identity {
	id, _ := identity.FromContext(r.Context())
	return id
}

// dateParam reads ?date=YYYY-MM-DD, defaulting to today.
func (h *timeTrackingHandlerImpl) dateParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if validator.IsEmpty(raw) {
		return h.trackingService.Today(), nil
	}
	date, ok := validator.IsValidDateIn(raw, h.loc)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return date, nil
}

// decodeOptional decodes a JSON body, treating an empty body as {}.
func decodeOptional(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Hired implements TimeTrackingHandler.
func (h *timeTrackingHandlerImpl) Hired(w http.ResponseWriter, r *http.Request) {
	hired, err := h.resolver.IsHired(r.Context(), identityFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]bool{"is_hired": hired})
}

// Identity implements TimeTrackingHandler.
func (h *timeTrackingHandlerImpl) Identity(w http.ResponseWriter, r *http.Request) {
	resolved, err := h.resolver.Resolve(r.Context(), identityFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"company_id":      resolved.CompanyIDPtr(),
		"company_source":  resolved.CompanySource,
		"employee_id":     resolved.EmployeeIDPtr(),
		"employee_source": resolved.EmployeeSource,
	})
}

// View implements TimeTrackingHandler.
func (h *timeTrackingHandlerImpl) View(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.trackingService.View(r.Context(), identityFromRequest(r), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timetracking.NewViewResponse(view))
}

// ClockIn implements TimeTrackingHandler.
func (h *timeTrackingHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req timetracking.ClockInRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DeviceInfo = r.UserAgent()
	req.IPAddress = clientIP(r)

	view, err := h.trackingService.ClockIn(r.Context(), identityFromRequest(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in", timetracking.NewViewResponse(view))
}

// StartBreak implements TimeTrackingHandler.
func (h *timeTrackingHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	var req timetracking.StartBreakRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("StartBreak decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	view, err := h.trackingService.StartBreak(r.Context(), identityFromRequest(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", timetracking.NewViewResponse(view))
}

// EndBreak implements TimeTrackingHandler.
func (h *timeTrackingHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	view, err := h.trackingService.EndBreak(r.Context(), identityFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", timetracking.NewViewResponse(view))
}

// ClockOut implements TimeTrackingHandler.
func (h *timeTrackingHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	view, err := h.trackingService.ClockOut(r.Context(), identityFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", timetracking.NewViewResponse(view))
}

// Stream pushes a view event once per second while the date is today, and
// whenever the seeker's sessions change.
func (h *timeTrackingHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id := identityFromRequest(r)
	if err := id.Require(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	var mu sync.Mutex
	send := func(event string, payload interface{}) error {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	ctx, cancel := context.WithCancel(r.Context())
	var wg sync.WaitGroup
	// The keepalive goroutine must stop writing before the handler returns.
	defer func() {
		cancel()
		wg.Wait()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		keepalive := time.NewTicker(h.keepalive)
		defer keepalive.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-keepalive.C:
				_ = send("ping", map[string]int64{"timestamp": time.Now().Unix()})
			}
		}
	}()

	err = h.trackingService.Watch(ctx, id, date, func(view timetracking.View) error {
		return send("view", timetracking.NewViewResponse(view))
	})
	if err != nil {
		slog.Warn("time tracking stream ended", "jobseeker_id", id.JobseekerID, "error", err)
		_ = send("error", map[string]string{"message": response.GenericFailure})
	}
}
