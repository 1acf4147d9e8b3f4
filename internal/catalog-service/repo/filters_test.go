package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := "SELECT * FROM sports WHERE name = ? AND active = ?"

	assert.Equal(t, q, DialectSQLite.Rebind(q))
	assert.Equal(t,
		"SELECT * FROM sports WHERE name = $1 AND active = $2",
		DialectPostgres.Rebind(q))
	assert.Equal(t, "SELECT 1", DialectPostgres.Rebind("SELECT 1"))
}

func TestSearchWithoutFiltersReturnsAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustSport(t, s, "Football", "football", true)
	mustSport(t, s, "Tennis", "tennis", false)

	sports, err := s.SearchSports(ctx, SportFilters{})
	require.NoError(t, err)
	require.Len(t, sports, 2)
}

func TestFiltersCombineWithAnd(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sport := mustSport(t, s, "Football", "football", true)
	mustEvent(t, s, "Derby", "derby-a", sport, true, "2023-07-10 18:00:00")
	mustEvent(t, s, "Derby", "derby-b", sport, false, "2023-07-10 20:00:00")

	evs, err := s.SearchEvents(ctx, EventFilters{
		Name:   ptr("Derby"),
		Active: ptr(true),
	})
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "derby-a", evs[0].Slug)

	// mesmo nome, active=false pega a outra linha
	evs, err = s.SearchEvents(ctx, EventFilters{
		Name:   ptr("Derby"),
		Active: ptr(false),
	})
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "derby-b", evs[0].Slug)
}

// Valor de filtro com metacaracteres SQL é literal, nunca statement
func TestFilterValueWithSQLMetacharacters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	hostile := "x'; DROP TABLE sports;--"
	mustSport(t, s, hostile, "hostile", true)
	mustSport(t, s, "Football", "football", true)

	sports, err := s.SearchSports(ctx, SportFilters{Name: &hostile})
	require.NoError(t, err)
	require.Len(t, sports, 1)
	assert.Equal(t, hostile, sports[0].Name)

	// a tabela continua inteira
	all, err := s.SearchSports(ctx, SportFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSearchSelectionsByOutcomeAndEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sport := mustSport(t, s, "Football", "football", true)
	ev := mustEvent(t, s, "Final", "final", sport, true, "2023-07-10 20:00:00")

	win := mustSelection(t, s, "Home Win", ev, true)
	_, err := s.UpdateSelection(ctx, win, UpdateSelectionParams{Outcome: ptr(string(OutcomeWin))})
	require.NoError(t, err)
	mustSelection(t, s, "Away Win", ev, true)

	sels, err := s.SearchSelections(ctx, SelectionFilters{
		EventID: &ev,
		Outcome: ptr(string(OutcomeWin)),
	})
	require.NoError(t, err)
	require.Len(t, sels, 1)
	assert.Equal(t, win, sels[0].ID)
}
