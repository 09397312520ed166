package dto

import "time"

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type ActivityResponse struct {
	ActivityID               string            `json:"activity_id"`
	Title                    string            `json:"title"`
	Category                 string            `json:"category,omitempty"`
	Day                      int               `json:"day"`
	Date                     time.Time         `json:"date"`
	TimeOfDay                string            `json:"time_of_day,omitempty"`
	EstimatedDurationMinutes *int              `json:"estimated_duration_minutes"`
	Location                 *LocationResponse `json:"location"`
	Address                  string            `json:"address,omitempty"`
	Order                    int               `json:"order"`
}

type ConflictResponse struct {
	Kind             string    `json:"kind"`
	FirstActivityID  string    `json:"first_activity_id"`
	SecondActivityID string    `json:"second_activity_id"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	Message          string    `json:"message"`
}

type DayResponse struct {
	TripID     string             `json:"trip_id"`
	Day        int                `json:"day"`
	Date       string             `json:"date"`
	Activities []ActivityResponse `json:"activities"`
	Conflicts  []ConflictResponse `json:"conflicts"`
	TightGaps  []ConflictResponse `json:"tight_gaps"`
}

type DaySummaryResponse struct {
	Day           int    `json:"day"`
	Date          string `json:"date"`
	ActivityCount int    `json:"activity_count"`
	ConflictCount int    `json:"conflict_count"`
}

type ListDaysResponse struct {
	TripID string               `json:"trip_id"`
	Days   []DaySummaryResponse `json:"days"`
}

type OptimizeResponse struct {
	DayResponse
	Applicable bool   `json:"applicable"`
	Reason     string `json:"reason,omitempty"`
}

type ReorderRequest struct {
	ActivityIDs []string `json:"activity_ids"`
}
