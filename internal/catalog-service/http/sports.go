package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/dto"
	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/repo"
)

func sportResponse(sp repo.Sport) dto.SportResponse {
	return dto.SportResponse{ID: sp.ID, Name: sp.Name, Slug: sp.Slug, Active: sp.Active}
}

// createSport valida o payload e insere o esporte
func (s *Server) createSport(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Name == nil || req.Slug == nil || req.Active == nil {
		writeError(w, http.StatusBadRequest, "name, slug and active are required")
		return
	}

	id, err := s.store.CreateSport(r.Context(), repo.Sport{
		Name: *req.Name, Slug: *req.Slug, Active: *req.Active,
	})
	if err != nil {
		s.storeError(w, "create sport", err)
		return
	}

	s.emitChange(r.Context(), "sport", id, "created")
	writeJSON(w, http.StatusCreated, dto.CreateResponse{ID: id, Status: "success"})
}

// getSport retorna o esporte pelo id; ausente é 404
func (s *Server) getSport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	sp, err := s.store.GetSport(r.Context(), id)
	if err != nil {
		s.storeError(w, "get sport", err)
		return
	}
	if sp == nil {
		writeError(w, http.StatusNotFound, "sport not found")
		return
	}
	writeJSON(w, http.StatusOK, sportResponse(*sp))
}

// updateSport aplica um update parcial (PATCH via PUT, payload opcional campo a campo)
func (s *Server) updateSport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateSportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	err := s.store.UpdateSport(r.Context(), id, repo.UpdateSportParams{
		Name: req.Name, Slug: req.Slug, Active: req.Active,
	})
	if err != nil {
		s.storeError(w, "update sport", err)
		return
	}

	s.emitChange(r.Context(), "sport", id, "updated")
	writeJSON(w, http.StatusOK, dto.UpdateResponse{Status: "success"})
}

// deleteSport remove o esporte; id inexistente continua 200 (no-op)
func (s *Server) deleteSport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.store.DeleteSport(r.Context(), id); err != nil {
		s.storeError(w, "delete sport", err)
		return
	}

	s.emitChange(r.Context(), "sport", id, "deleted")
	writeJSON(w, http.StatusOK, dto.UpdateResponse{Status: "success"})
}

// searchSports filtra esportes por name, slug e active.
// Filtro desconhecido é rejeitado antes de chegar no repositório
func (s *Server) searchSports(w http.ResponseWriter, r *http.Request) {
	var f repo.SportFilters
	for key, vals := range r.URL.Query() {
		v := vals[0]
		switch key {
		case "name":
			f.Name = &v
		case "slug":
			f.Slug = &v
		case "active":
			b, ok := parseActive(v)
			if !ok {
				writeError(w, http.StatusBadRequest, "invalid active value, must be true or false")
				return
			}
			f.Active = &b
		default:
			writeError(w, http.StatusBadRequest, "invalid filter: "+key)
			return
		}
	}

	sports, err := s.store.SearchSports(r.Context(), f)
	if err != nil {
		s.storeError(w, "search sports", err)
		return
	}

	out := make([]dto.SportResponse, 0, len(sports))
	for _, sp := range sports {
		out = append(out, sportResponse(sp))
	}
	writeJSON(w, http.StatusOK, map[string][]dto.SportResponse{"sports": out})
}

// eventsBySport lista os eventos de um esporte
func (s *Server) eventsBySport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	evs, err := s.store.EventsBySport(r.Context(), id)
	if err != nil {
		s.storeError(w, "events by sport", err)
		return
	}

	out := make([]dto.EventResponse, 0, len(evs))
	for _, e := range evs {
		out = append(out, eventResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string][]dto.EventResponse{"events": out})
}

// sportsWithActiveEvents retorna esportes com contagem de eventos ativos
// estritamente acima do limiar
func (s *Server) sportsWithActiveEvents(w http.ResponseWriter, r *http.Request) {
	threshold, err := strconv.Atoi(r.URL.Query().Get("threshold"))
	if err != nil || threshold < 0 {
		writeError(w, http.StatusBadRequest, "threshold must be a non-negative integer")
		return
	}

	rows, err := s.store.SportsWithActiveEventsAbove(r.Context(), threshold)
	if err != nil {
		s.storeError(w, "sports with active events", err)
		return
	}

	out := make([]dto.SportActivityResponse, 0, len(rows))
	for _, sa := range rows {
		out = append(out, dto.SportActivityResponse{
			SportID: sa.SportID, Name: sa.Name, ActiveEvents: sa.ActiveEvents,
		})
	}
	writeJSON(w, http.StatusOK, map[string][]dto.SportActivityResponse{"sports": out})
}
