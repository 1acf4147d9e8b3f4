package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/dto"
	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/repo"
)

func selectionResponse(sel repo.Selection) dto.SelectionResponse {
	return dto.SelectionResponse{
		ID:      sel.ID,
		Name:    sel.Name,
		EventID: sel.EventID,
		Price:   sel.Price,
		Active:  sel.Active,
		Outcome: string(sel.Outcome),
	}
}

// createSelection valida o payload e insere a seleção sob um evento existente
func (s *Server) createSelection(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Name == nil || req.EventID == nil || req.Price == nil || req.Active == nil || req.Outcome == nil {
		writeError(w, http.StatusBadRequest, "name, event_id, price, active and outcome are required")
		return
	}
	if *req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must be >= 0")
		return
	}
	if !repo.ValidOutcome(*req.Outcome) {
		writeError(w, http.StatusBadRequest, "outcome must be Unsettled, Void, Lose or Win")
		return
	}

	id, err := s.store.CreateSelection(r.Context(), repo.Selection{
		Name:    *req.Name,
		EventID: *req.EventID,
		Price:   *req.Price,
		Active:  *req.Active,
		Outcome: repo.SelectionOutcome(*req.Outcome),
	})
	if err != nil {
		s.storeError(w, "create selection", err)
		return
	}

	s.emitChange(r.Context(), "selection", id, "created")
	writeJSON(w, http.StatusCreated, dto.CreateResponse{ID: id, Status: "success"})
}

// getSelection retorna a seleção pelo id; ausente é 404
func (s *Server) getSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	sel, err := s.store.GetSelection(r.Context(), id)
	if err != nil {
		s.storeError(w, "get selection", err)
		return
	}
	if sel == nil {
		writeError(w, http.StatusNotFound, "selection not found")
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse(*sel))
}

// updateSelection aplica o update parcial e devolve o resultado da cascata:
// desativar a última seleção ativa desativa o evento, e isso pode propagar
// até o esporte
func (s *Server) updateSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must be >= 0")
		return
	}
	if req.Outcome != nil && !repo.ValidOutcome(*req.Outcome) {
		writeError(w, http.StatusBadRequest, "outcome must be Unsettled, Void, Lose or Win")
		return
	}

	res, err := s.store.UpdateSelection(r.Context(), id, repo.UpdateSelectionParams{
		Name:    req.Name,
		Price:   req.Price,
		Active:  req.Active,
		Outcome: req.Outcome,
	})
	if err != nil {
		s.storeError(w, "update selection", err)
		return
	}

	s.emitChange(r.Context(), "selection", id, "updated")
	s.emitCascade(r.Context(), res)
	writeJSON(w, http.StatusOK, dto.UpdateResponse{Status: "success", Cascade: cascadeInfo(res)})
}

// deleteSelection remove a seleção; id inexistente continua 200 (no-op)
func (s *Server) deleteSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.store.DeleteSelection(r.Context(), id); err != nil {
		s.storeError(w, "delete selection", err)
		return
	}

	s.emitChange(r.Context(), "selection", id, "deleted")
	writeJSON(w, http.StatusOK, dto.UpdateResponse{Status: "success"})
}

// searchSelections filtra seleções; filtro desconhecido é rejeitado
func (s *Server) searchSelections(w http.ResponseWriter, r *http.Request) {
	var f repo.SelectionFilters
	for key, vals := range r.URL.Query() {
		v := vals[0]
		switch key {
		case "name":
			f.Name = &v
		case "outcome":
			f.Outcome = &v
		case "active":
			b, ok := parseActive(v)
			if !ok {
				writeError(w, http.StatusBadRequest, "invalid active value, must be true or false")
				return
			}
			f.Active = &b
		case "event_id":
			eid, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "event_id must be an integer")
				return
			}
			f.EventID = &eid
		case "price":
			p, err := strconv.ParseFloat(v, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "price must be numeric")
				return
			}
			f.Price = &p
		default:
			writeError(w, http.StatusBadRequest, "invalid filter: "+key)
			return
		}
	}

	sels, err := s.store.SearchSelections(r.Context(), f)
	if err != nil {
		s.storeError(w, "search selections", err)
		return
	}

	out := make([]dto.SelectionResponse, 0, len(sels))
	for _, sel := range sels {
		out = append(out, selectionResponse(sel))
	}
	writeJSON(w, http.StatusOK, map[string][]dto.SelectionResponse{"selections": out})
}
