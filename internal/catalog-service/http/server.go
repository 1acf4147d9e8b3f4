package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/dto"
	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/repo"
	"github.com/radieske/sportsbook-catalog-service/pkg/contracts/events"
)

// ChangePublisher emite mudanças do catálogo (Kafka). Opcional: nil desliga
type ChangePublisher interface {
	PublishCatalogChange(ctx context.Context, e events.CatalogChange) error
}

// StatusBroadcaster transmite desativações em cascata (Redis pub/sub). Opcional
type StatusBroadcaster interface {
	PublishStatusNotice(ctx context.Context, n events.StatusNotice) error
}

// Server expõe a API REST do catálogo esportivo.
// Falha de publisher nunca falha a request — a escrita no banco é a verdade
type Server struct {
	log   *zap.Logger
	store *repo.Store
	publ  ChangePublisher
	bcast StatusBroadcaster

	timeLayout  string // layout dos timestamps locais da busca por janela
	defaultZone string // zona assumida quando o cliente não manda tz

	// Callbacks de métricas, ligadas no main
	OnMutation func(entity, action string)
	OnCascade  func(level string)
}

func NewServer(log *zap.Logger, store *repo.Store, publ ChangePublisher, bcast StatusBroadcaster, timeLayout, defaultZone string) *Server {
	return &Server{
		log:         log,
		store:       store,
		publ:        publ,
		bcast:       bcast,
		timeLayout:  timeLayout,
		defaultZone: defaultZone,
	}
}

// Router retorna o mux HTTP com as rotas da API do catálogo
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /sports", s.createSport)
	mux.HandleFunc("GET /sports", s.searchSports)
	mux.HandleFunc("GET /sports/active-events", s.sportsWithActiveEvents)
	mux.HandleFunc("GET /sports/{id}", s.getSport)
	mux.HandleFunc("PUT /sports/{id}", s.updateSport)
	mux.HandleFunc("DELETE /sports/{id}", s.deleteSport)
	mux.HandleFunc("GET /sports/{id}/events", s.eventsBySport)

	mux.HandleFunc("POST /events", s.createEvent)
	mux.HandleFunc("GET /events", s.searchEvents)
	mux.HandleFunc("GET /events/timeframe", s.eventsInTimeframe)
	mux.HandleFunc("GET /events/{id}", s.getEvent)
	mux.HandleFunc("PUT /events/{id}", s.updateEvent)
	mux.HandleFunc("DELETE /events/{id}", s.deleteEvent)
	mux.HandleFunc("GET /events/{id}/selections", s.selectionsByEvent)

	mux.HandleFunc("POST /selections", s.createSelection)
	mux.HandleFunc("GET /selections", s.searchSelections)
	mux.HandleFunc("GET /selections/{id}", s.getSelection)
	mux.HandleFunc("PUT /selections/{id}", s.updateSelection)
	mux.HandleFunc("DELETE /selections/{id}", s.deleteSelection)

	return mux
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

// pathID extrai o {id} numérico da rota
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// parseActive coerça o filtro active=true|false pro bool do banco
func parseActive(v string) (bool, bool) {
	switch v {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

// storeError mapeia erros do repositório: violação de integridade → 409,
// resto → 500 com o erro propagado
func (s *Server) storeError(w http.ResponseWriter, op string, err error) {
	if repo.IsConstraintViolation(err) {
		writeError(w, http.StatusConflict, "constraint violation: "+err.Error())
		return
	}
	s.log.Error(op, zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

// emitChange publica a mutação no Kafka e incrementa a métrica.
// Best effort: falha só vira log
func (s *Server) emitChange(ctx context.Context, entity string, id int64, action string) {
	if s.OnMutation != nil {
		s.OnMutation(entity, action)
	}
	if s.publ == nil {
		return
	}
	e := events.CatalogChange{Entity: entity, EntityID: id, Action: action}
	if err := s.publ.PublishCatalogChange(ctx, e); err != nil {
		s.log.Warn("catalog change publish failed",
			zap.String("entity", entity), zap.Int64("id", id), zap.Error(err))
	}
}

// emitCascade transmite o que a engine de cascata desativou
func (s *Server) emitCascade(ctx context.Context, res repo.CascadeResult) {
	if res.EventDeactivated {
		s.notice(ctx, "event", res.EventID)
	}
	if res.SportDeactivated {
		s.notice(ctx, "sport", res.SportID)
	}
}

func (s *Server) notice(ctx context.Context, level string, id int64) {
	if s.OnCascade != nil {
		s.OnCascade(level)
	}
	s.log.Info("cascade deactivation", zap.String("entity", level), zap.Int64("id", id))
	if s.bcast == nil {
		return
	}
	n := events.StatusNotice{Entity: level, EntityID: id, Reason: "cascade"}
	if err := s.bcast.PublishStatusNotice(ctx, n); err != nil {
		s.log.Warn("status notice publish failed", zap.Error(err))
	}
}

func cascadeInfo(res repo.CascadeResult) *dto.CascadeInfo {
	if !res.EventDeactivated && !res.SportDeactivated {
		return nil
	}
	return &dto.CascadeInfo{
		EventDeactivated: res.EventDeactivated,
		EventID:          res.EventID,
		SportDeactivated: res.SportDeactivated,
		SportID:          res.SportID,
	}
}
