package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/dto"
	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/repo"
	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/timeconv"
)

func eventResponse(e repo.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:             e.ID,
		Name:           e.Name,
		Slug:           e.Slug,
		Active:         e.Active,
		Type:           string(e.Type),
		SportID:        e.SportID,
		Status:         string(e.Status),
		ScheduledStart: e.ScheduledStart,
		ActualStart:    e.ActualStart,
	}
}

// validateEventEnums devolve a mensagem de erro de validação ou ""
func validateEventEnums(typ, status *string) string {
	if typ != nil && !repo.ValidEventType(*typ) {
		return "type must be preplay or inplay"
	}
	if status != nil && !repo.ValidEventStatus(*status) {
		return "status must be Pending, Started, Ended or Cancelled"
	}
	return ""
}

// validateTimestamps exige o layout canônico zone-free (UTC por convenção)
func validateTimestamps(values ...*string) string {
	for _, v := range values {
		if v == nil {
			continue
		}
		if _, err := timeconv.ToUTC(*v, repo.TimeLayout, "UTC"); err != nil {
			return "timestamps must use layout " + repo.TimeLayout + " (UTC)"
		}
	}
	return ""
}

// createEvent valida o payload e insere o evento sob um esporte existente
func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Name == nil || req.Slug == nil || req.Active == nil || req.Type == nil ||
		req.SportID == nil || req.Status == nil || req.ScheduledStart == nil {
		writeError(w, http.StatusBadRequest, "name, slug, active, type, sport_id, status and scheduled_start are required")
		return
	}
	if msg := validateEventEnums(req.Type, req.Status); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateTimestamps(req.ScheduledStart, req.ActualStart); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	id, err := s.store.CreateEvent(r.Context(), repo.Event{
		Name:           *req.Name,
		Slug:           *req.Slug,
		Active:         *req.Active,
		Type:           repo.EventType(*req.Type),
		SportID:        *req.SportID,
		Status:         repo.EventStatus(*req.Status),
		ScheduledStart: *req.ScheduledStart,
		ActualStart:    req.ActualStart,
	})
	if err != nil {
		s.storeError(w, "create event", err)
		return
	}

	s.emitChange(r.Context(), "event", id, "created")
	writeJSON(w, http.StatusCreated, dto.CreateResponse{ID: id, Status: "success"})
}

// getEvent retorna o evento pelo id; ausente é 404
func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	e, err := s.store.GetEvent(r.Context(), id)
	if err != nil {
		s.storeError(w, "get event", err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, eventResponse(*e))
}

// updateEvent aplica o update parcial e devolve o resultado da cascata
// (o esporte pai pode ter sido desativado na mesma transação)
func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if msg := validateEventEnums(req.Type, req.Status); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateTimestamps(req.ScheduledStart, req.ActualStart); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := s.store.UpdateEvent(r.Context(), id, repo.UpdateEventParams{
		Name:           req.Name,
		Slug:           req.Slug,
		Active:         req.Active,
		Type:           req.Type,
		Status:         req.Status,
		ScheduledStart: req.ScheduledStart,
		ActualStart:    req.ActualStart,
	})
	if err != nil {
		s.storeError(w, "update event", err)
		return
	}

	s.emitChange(r.Context(), "event", id, "updated")
	s.emitCascade(r.Context(), res)
	writeJSON(w, http.StatusOK, dto.UpdateResponse{Status: "success", Cascade: cascadeInfo(res)})
}

// deleteEvent remove o evento; id inexistente continua 200 (no-op)
func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.store.DeleteEvent(r.Context(), id); err != nil {
		s.storeError(w, "delete event", err)
		return
	}

	s.emitChange(r.Context(), "event", id, "deleted")
	writeJSON(w, http.StatusOK, dto.UpdateResponse{Status: "success"})
}

// searchEvents filtra eventos; filtro desconhecido é rejeitado
func (s *Server) searchEvents(w http.ResponseWriter, r *http.Request) {
	var f repo.EventFilters
	for key, vals := range r.URL.Query() {
		v := vals[0]
		switch key {
		case "name":
			f.Name = &v
		case "slug":
			f.Slug = &v
		case "type":
			f.Type = &v
		case "status":
			f.Status = &v
		case "scheduled_start":
			f.ScheduledStart = &v
		case "actual_start":
			f.ActualStart = &v
		case "active":
			b, ok := parseActive(v)
			if !ok {
				writeError(w, http.StatusBadRequest, "invalid active value, must be true or false")
				return
			}
			f.Active = &b
		case "sport_id":
			sid, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "sport_id must be an integer")
				return
			}
			f.SportID = &sid
		default:
			writeError(w, http.StatusBadRequest, "invalid filter: "+key)
			return
		}
	}

	evs, err := s.store.SearchEvents(r.Context(), f)
	if err != nil {
		s.storeError(w, "search events", err)
		return
	}

	out := make([]dto.EventResponse, 0, len(evs))
	for _, e := range evs {
		out = append(out, eventResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string][]dto.EventResponse{"events": out})
}

// eventsInTimeframe busca eventos agendados dentro de uma janela local.
// start/end chegam na zona informada (ou na default) e são normalizados
// para UTC antes da consulta
func (s *Server) eventsInTimeframe(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}
	zone := q.Get("tz")
	if zone == "" {
		zone = s.defaultZone
	}

	from, err := timeconv.ToUTC(start, s.timeLayout, zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := timeconv.ToUTC(end, s.timeLayout, zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	evs, err := s.store.EventsInTimeframe(r.Context(), from, to)
	if err != nil {
		s.storeError(w, "events in timeframe", err)
		return
	}

	out := make([]dto.EventResponse, 0, len(evs))
	for _, e := range evs {
		out = append(out, eventResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string][]dto.EventResponse{"events": out})
}

// selectionsByEvent lista as seleções de um evento
func (s *Server) selectionsByEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	sels, err := s.store.SelectionsByEvent(r.Context(), id)
	if err != nil {
		s.storeError(w, "selections by event", err)
		return
	}

	out := make([]dto.SelectionResponse, 0, len(sels))
	for _, sel := range sels {
		out = append(out, selectionResponse(sel))
	}
	writeJSON(w, http.StatusOK, map[string][]dto.SelectionResponse{"selections": out})
}
