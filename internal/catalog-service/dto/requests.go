package dto

// Payloads de entrada da API REST do catálogo.
// Campos são ponteiros pra distinguir "ausente" de "zero" — criação exige
// presença, update é PATCH (campo ausente não é tocado).

type CreateSportRequest struct {
	Name   *string `json:"name"`
	Slug   *string `json:"slug"`
	Active *bool   `json:"active"`
}

type UpdateSportRequest struct {
	Name   *string `json:"name"`
	Slug   *string `json:"slug"`
	Active *bool   `json:"active"`
}

type CreateEventRequest struct {
	Name           *string `json:"name"`
	Slug           *string `json:"slug"`
	Active         *bool   `json:"active"`
	Type           *string `json:"type"`
	SportID        *int64  `json:"sport_id"`
	Status         *string `json:"status"`
	ScheduledStart *string `json:"scheduled_start"`
	ActualStart    *string `json:"actual_start"` // opcional: evento ainda não começou
}

type UpdateEventRequest struct {
	Name           *string `json:"name"`
	Slug           *string `json:"slug"`
	Active         *bool   `json:"active"`
	Type           *string `json:"type"`
	Status         *string `json:"status"`
	ScheduledStart *string `json:"scheduled_start"`
	ActualStart    *string `json:"actual_start"`
}

type CreateSelectionRequest struct {
	Name    *string  `json:"name"`
	EventID *int64   `json:"event_id"`
	Price   *float64 `json:"price"`
	Active  *bool    `json:"active"`
	Outcome *string  `json:"outcome"`
}

type UpdateSelectionRequest struct {
	Name    *string  `json:"name"`
	Price   *float64 `json:"price"`
	Active  *bool    `json:"active"`
	Outcome *string  `json:"outcome"`
}
