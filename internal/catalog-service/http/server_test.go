package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/repo"
	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/timeconv"
	"github.com/radieske/sportsbook-catalog-service/internal/shared/db"
	"github.com/radieske/sportsbook-catalog-service/pkg/contracts/events"
)

type fakePublisher struct {
	changes []events.CatalogChange
}

func (f *fakePublisher) PublishCatalogChange(_ context.Context, e events.CatalogChange) error {
	f.changes = append(f.changes, e)
	return nil
}

type fakeBroadcaster struct {
	notices []events.StatusNotice
}

func (f *fakeBroadcaster) PublishStatusNotice(_ context.Context, n events.StatusNotice) error {
	f.notices = append(f.notices, n)
	return nil
}

func newTestAPI(t *testing.T) (http.Handler, *fakePublisher, *fakeBroadcaster) {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn, "sqlite"))

	store := repo.NewStore(conn, repo.DialectSQLite)
	publ := &fakePublisher{}
	bcast := &fakeBroadcaster{}
	srv := NewServer(zap.NewNop(), store, publ, bcast, timeconv.DefaultLayout, timeconv.DefaultZone)
	return srv.Router(), publ, bcast
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createSportID(t *testing.T, h http.Handler, name, slug string, active bool) int64 {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/sports",
		map[string]any{"name": name, "slug": slug, "active": active})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[struct {
		ID int64 `json:"id"`
	}](t, rec).ID
}

func createEventID(t *testing.T, h http.Handler, name, slug string, sportID int64, active bool, scheduled string) int64 {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/events", map[string]any{
		"name": name, "slug": slug, "active": active,
		"type": "preplay", "sport_id": sportID, "status": "Pending",
		"scheduled_start": scheduled,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[struct {
		ID int64 `json:"id"`
	}](t, rec).ID
}

func createSelectionID(t *testing.T, h http.Handler, name string, eventID int64, active bool) int64 {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/selections", map[string]any{
		"name": name, "event_id": eventID, "price": 2.0,
		"active": active, "outcome": "Unsettled",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[struct {
		ID int64 `json:"id"`
	}](t, rec).ID
}

func TestSportLifecycle(t *testing.T) {
	h, publ, _ := newTestAPI(t)

	id := createSportID(t, h, "Football", "football", true)

	rec := doJSON(t, h, http.MethodGet, fmt.Sprintf("/sports/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sport := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Football", sport["name"])

	// PUT parcial: só o nome
	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/sports/%d", id),
		map[string]any{"name": "Soccer"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/sports/%d", id), nil)
	sport = decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Soccer", sport["name"])
	assert.Equal(t, "football", sport["slug"])

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/sports/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/sports/%d", id), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// cada mutação virou um CatalogChange
	require.Len(t, publ.changes, 3)
	assert.Equal(t, "created", publ.changes[0].Action)
	assert.Equal(t, "updated", publ.changes[1].Action)
	assert.Equal(t, "deleted", publ.changes[2].Action)
	for _, c := range publ.changes {
		assert.Equal(t, "sport", c.Entity)
		assert.Equal(t, id, c.EntityID)
	}
}

func TestCreateSportValidation(t *testing.T) {
	h, _, _ := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/sports", map[string]any{"name": "Football", "slug": "football"})
	assert.Equal(t, http.StatusBadRequest, rec.Code) // active ausente

	req := httptest.NewRequest(http.MethodPost, "/sports", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDuplicateSlugIsConflict(t *testing.T) {
	h, _, _ := newTestAPI(t)

	createSportID(t, h, "Football", "football", true)
	rec := doJSON(t, h, http.MethodPost, "/sports",
		map[string]any{"name": "Footy", "slug": "football", "active": true})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateEventValidation(t *testing.T) {
	h, _, _ := newTestAPI(t)
	sport := createSportID(t, h, "Football", "football", true)

	base := map[string]any{
		"name": "Final", "slug": "final", "active": true,
		"type": "preplay", "sport_id": sport, "status": "Pending",
		"scheduled_start": "2023-07-10 20:00:00",
	}

	bad := func(k string, v any) map[string]any {
		m := map[string]any{}
		for key, val := range base {
			m[key] = val
		}
		m[k] = v
		return m
	}

	rec := doJSON(t, h, http.MethodPost, "/events", bad("type", "halftime"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/events", bad("status", "Paused"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/events", bad("scheduled_start", "10/07/2023"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// evento sob esporte inexistente estoura a FK → 409
	rec = doJSON(t, h, http.MethodPost, "/events", bad("sport_id", 9999))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSearchFiltersAllowListAndCoercion(t *testing.T) {
	h, _, _ := newTestAPI(t)

	createSportID(t, h, "Football", "football", true)
	createSportID(t, h, "Tennis", "tennis", false)

	rec := doJSON(t, h, http.MethodGet, "/sports?active=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string][]map[string]any](t, rec)
	require.Len(t, body["sports"], 1)
	assert.Equal(t, "Football", body["sports"][0]["name"])

	rec = doJSON(t, h, http.MethodGet, "/sports?active=banana", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/sports?colour=red", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/events?sport_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// sem filtros: todo o catálogo
	rec = doJSON(t, h, http.MethodGet, "/sports", nil)
	body = decodeBody[map[string][]map[string]any](t, rec)
	assert.Len(t, body["sports"], 2)
}

func TestCascadeVisibleThroughAPI(t *testing.T) {
	h, _, bcast := newTestAPI(t)

	sport := createSportID(t, h, "Tennis", "tennis", true)
	ev := createEventID(t, h, "Wimbledon", "wimbledon", sport, true, "2023-07-10 14:00:00")
	sel1 := createSelectionID(t, h, "Player A", ev, true)
	sel2 := createSelectionID(t, h, "Player B", ev, true)

	rec := doJSON(t, h, http.MethodPut, fmt.Sprintf("/selections/%d", sel1),
		map[string]any{"active": false})
	require.Equal(t, http.StatusOK, rec.Code)
	upd := decodeBody[map[string]any](t, rec)
	assert.Nil(t, upd["cascade"]) // ainda tem seleção ativa

	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/selections/%d", sel2),
		map[string]any{"active": false})
	require.Equal(t, http.StatusOK, rec.Code)
	upd = decodeBody[map[string]any](t, rec)
	require.NotNil(t, upd["cascade"])
	cascade := upd["cascade"].(map[string]any)
	assert.Equal(t, true, cascade["event_deactivated"])
	assert.Equal(t, true, cascade["sport_deactivated"]) // único evento do esporte

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/events/%d", ev), nil)
	event := decodeBody[map[string]any](t, rec)
	assert.Equal(t, false, event["active"])

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/sports/%d", sport), nil)
	sp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, false, sp["active"])

	// fan-out: um aviso por nível desativado
	require.Len(t, bcast.notices, 2)
	assert.Equal(t, "event", bcast.notices[0].Entity)
	assert.Equal(t, "sport", bcast.notices[1].Entity)
	assert.Equal(t, "cascade", bcast.notices[0].Reason)
}

func TestEventsInTimeframeEndpoint(t *testing.T) {
	h, _, _ := newTestAPI(t)

	sport := createSportID(t, h, "Football", "football", true)
	createEventID(t, h, "Early", "early", sport, true, "2023-07-10 18:00:00")
	createEventID(t, h, "Late", "late", sport, true, "2023-07-10 23:00:00")

	// 19:00–21:30 em Londres (BST) = 18:00–20:30 UTC: pega só o Early
	q := url.Values{}
	q.Set("start", "2023-07-10 19:00:00")
	q.Set("end", "2023-07-10 21:30:00")
	rec := doJSON(t, h, http.MethodGet, "/events/timeframe?"+q.Encode(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody[map[string][]map[string]any](t, rec)
	require.Len(t, body["events"], 1)
	assert.Equal(t, "Early", body["events"][0]["name"])

	// zona explícita
	q.Set("tz", "UTC")
	q.Set("start", "2023-07-10 17:00:00")
	q.Set("end", "2023-07-10 23:30:00")
	rec = doJSON(t, h, http.MethodGet, "/events/timeframe?"+q.Encode(), nil)
	body = decodeBody[map[string][]map[string]any](t, rec)
	assert.Len(t, body["events"], 2)

	q.Set("tz", "Atlantis/Capital")
	rec = doJSON(t, h, http.MethodGet, "/events/timeframe?"+q.Encode(), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/events/timeframe?start=2023-07-10%2019:00:00", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code) // end ausente
}

func TestSportsWithActiveEventsEndpoint(t *testing.T) {
	h, _, _ := newTestAPI(t)

	busy := createSportID(t, h, "Football", "football", true)
	createEventID(t, h, "F1", "f1", busy, true, "2023-07-10 18:00:00")
	createEventID(t, h, "F2", "f2", busy, true, "2023-07-10 19:00:00")
	createEventID(t, h, "F3", "f3", busy, false, "2023-07-10 20:00:00")

	quiet := createSportID(t, h, "Tennis", "tennis", true)
	createEventID(t, h, "T1", "t1", quiet, true, "2023-07-10 18:00:00")

	rec := doJSON(t, h, http.MethodGet, "/sports/active-events?threshold=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string][]map[string]any](t, rec)
	require.Len(t, body["sports"], 1)
	assert.Equal(t, "Football", body["sports"][0]["name"])
	assert.Equal(t, float64(2), body["sports"][0]["active_events"])

	rec = doJSON(t, h, http.MethodGet, "/sports/active-events?threshold=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubresourceListings(t *testing.T) {
	h, _, _ := newTestAPI(t)

	sport := createSportID(t, h, "Football", "football", true)
	ev := createEventID(t, h, "Final", "final", sport, true, "2023-07-10 20:00:00")
	createSelectionID(t, h, "Home Win", ev, true)
	createSelectionID(t, h, "Away Win", ev, true)

	rec := doJSON(t, h, http.MethodGet, fmt.Sprintf("/sports/%d/events", sport), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	evBody := decodeBody[map[string][]map[string]any](t, rec)
	assert.Len(t, evBody["events"], 1)

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/events/%d/selections", ev), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	selBody := decodeBody[map[string][]map[string]any](t, rec)
	assert.Len(t, selBody["selections"], 2)

	// lista vazia é 200, não 404
	rec = doJSON(t, h, http.MethodGet, "/sports/9999/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	evBody = decodeBody[map[string][]map[string]any](t, rec)
	assert.Len(t, evBody["events"], 0)
}
