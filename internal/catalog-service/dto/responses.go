package dto

type SportResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Active bool   `json:"active"`
}

type EventResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Active         bool    `json:"active"`
	Type           string  `json:"type"`
	SportID        int64   `json:"sport_id"`
	Status         string  `json:"status"`
	ScheduledStart string  `json:"scheduled_start"`
	ActualStart    *string `json:"actual_start,omitempty"`
}

type SelectionResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	EventID int64   `json:"event_id"`
	Price   float64 `json:"price"`
	Active  bool    `json:"active"`
	Outcome string  `json:"outcome"`
}

type CreateResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"` // "success"
}

// CascadeInfo mostra o que a engine de cascata desativou durante um update
type CascadeInfo struct {
	EventDeactivated bool  `json:"event_deactivated"`
	EventID          int64 `json:"event_id,omitempty"`
	SportDeactivated bool  `json:"sport_deactivated"`
	SportID          int64 `json:"sport_id,omitempty"`
}

type UpdateResponse struct {
	Status  string       `json:"status"` // "success"
	Cascade *CascadeInfo `json:"cascade,omitempty"`
}

type SportActivityResponse struct {
	SportID      int64  `json:"sport_id"`
	Name         string `json:"name"`
	ActiveEvents int    `json:"active_events"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
