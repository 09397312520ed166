package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/services"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// writePlannerError maps planner failures onto HTTP statuses. Unexpected
// errors are logged and reported as 500 without detail.
func writePlannerError(w http.ResponseWriter, r *http.Request, err error) {
	var persistErr *services.PersistOrderError

	switch {
	case errors.As(err, &persistErr):
		log.Printf("req_id=%s persist order failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "could not save the new order")
	case errors.Is(err, domain.ErrTripNotFound):
		writeError(w, r, http.StatusNotFound, domain.ErrTripNotFound.Error())
	case errors.Is(err, domain.ErrDayOutOfRange):
		writeError(w, r, http.StatusNotFound, domain.ErrDayOutOfRange.Error())
	case errors.Is(err, domain.ErrUnknownActivity),
		errors.Is(err, domain.ErrIncompleteOrder):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrLockNotAcquired),
		errors.Is(err, context.DeadlineExceeded):
		w.Header().Set("Retry-After", "1")
		writeError(w, r, http.StatusServiceUnavailable, domain.ErrLockNotAcquired.Error())
	default:
		log.Printf("req_id=%s planner request failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
