package handlers

import (
	"context"
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/services"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

// Planner is the subset of services.DayPlanner the handlers depend on.
type Planner interface {
	Day(ctx context.Context, tripID string, day int) (*services.DayView, error)
	Days(ctx context.Context, tripID string) ([]services.DaySummary, error)
	OptimizeDay(ctx context.Context, tripID string, day int) (*services.OptimizeResult, error)
	ReorderDay(ctx context.Context, tripID string, day int, ids []string) (*services.DayView, error)
}

// DayHandler exposes per-day itinerary views and ordering operations.
type DayHandler struct {
	Planner Planner
}

func (h *DayHandler) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := strings.TrimSpace(ps.ByName("tripID"))
	if tripID == "" {
		writeError(w, r, http.StatusBadRequest, "trip id is required")
		return
	}

	days, err := h.Planner.Days(r.Context(), tripID)
	if err != nil {
		writePlannerError(w, r, err)
		return
	}

	res := dto.ListDaysResponse{
		TripID: tripID,
		Days:   make([]dto.DaySummaryResponse, 0, len(days)),
	}
	for _, d := range days {
		res.Days = append(res.Days, dto.DaySummaryResponse{
			Day:           d.Day,
			Date:          d.Date.Format(time.DateOnly),
			ActivityCount: d.ActivityCount,
			ConflictCount: d.ConflictCount,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *DayHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID, day, ok := dayParams(w, r, ps)
	if !ok {
		return
	}

	view, err := h.Planner.Day(r.Context(), tripID, day)
	if err != nil {
		writePlannerError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toDayResponse(view))
}

// Optimize reorders the day by straight-line distance. A day that cannot be
// optimized is returned unchanged with applicable=false.
func (h *DayHandler) Optimize(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID, day, ok := dayParams(w, r, ps)
	if !ok {
		return
	}

	res, err := h.Planner.OptimizeDay(r.Context(), tripID, day)
	if err != nil {
		writePlannerError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
		DayResponse: toDayResponse(&res.DayView),
		Applicable:  res.Applicable,
		Reason:      res.Reason,
	})
}

// Reorder applies a user-chosen order. The body must list every activity id
// of the day exactly once.
func (h *DayHandler) Reorder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID, day, ok := dayParams(w, r, ps)
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.Planner.ReorderDay(r.Context(), tripID, day, req.ActivityIDs)
	if err != nil {
		writePlannerError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toDayResponse(view))
}

func dayParams(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (string, int, bool) {
	tripID := strings.TrimSpace(ps.ByName("tripID"))
	if tripID == "" {
		writeError(w, r, http.StatusBadRequest, "trip id is required")
		return "", 0, false
	}

	day, err := strconv.Atoi(ps.ByName("day"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "day must be an integer")
		return "", 0, false
	}

	return tripID, day, true
}

func toDayResponse(v *services.DayView) dto.DayResponse {
	res := dto.DayResponse{
		TripID:     v.TripID,
		Day:        v.Day,
		Date:       v.Date.Format(time.DateOnly),
		Activities: make([]dto.ActivityResponse, 0, len(v.Activities)),
		Conflicts:  toConflictResponses(v.Conflicts),
		TightGaps:  toConflictResponses(v.TightGaps),
	}

	for _, a := range v.Activities {
		ar := dto.ActivityResponse{
			ActivityID:               a.ID,
			Title:                    a.Title,
			Category:                 a.Category,
			Day:                      a.Day,
			Date:                     a.Date,
			TimeOfDay:                a.TimeOfDay,
			EstimatedDurationMinutes: a.EstimatedDurationMinutes,
			Address:                  a.Address,
			Order:                    a.Order,
		}
		if a.Location != nil {
			ar.Location = &dto.LocationResponse{Lat: a.Location.Lat, Lon: a.Location.Lon}
		}
		res.Activities = append(res.Activities, ar)
	}

	return res
}

func toConflictResponses(cs []domain.Conflict) []dto.ConflictResponse {
	out := make([]dto.ConflictResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, dto.ConflictResponse{
			Kind:             string(c.Kind),
			FirstActivityID:  c.A.ID,
			SecondActivityID: c.B.ID,
			Start:            c.Start,
			End:              c.End,
			Message:          c.Message,
		})
	}
	return out
}
