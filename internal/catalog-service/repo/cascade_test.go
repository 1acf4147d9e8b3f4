package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func activeOf(t *testing.T, s *Store, kind string, id int64) bool {
	t.Helper()
	ctx := context.Background()
	switch kind {
	case "sport":
		sp, err := s.GetSport(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, sp)
		return sp.Active
	case "event":
		e, err := s.GetEvent(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, e)
		return e.Active
	default:
		sel, err := s.GetSelection(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, sel)
		return sel.Active
	}
}

// Cenário completo: Tennis com dois eventos, duas seleções no primeiro.
// A desativação propaga nível a nível, só quando todos os filhos caem
func TestCascadeScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tennis := mustSport(t, s, "Tennis", "tennis", true)
	ev1 := mustEvent(t, s, "Wimbledon Final", "wimbledon-final", tennis, true, "2023-07-10 14:00:00")
	ev2 := mustEvent(t, s, "US Open Final", "us-open-final", tennis, true, "2023-09-10 18:00:00")
	sel1 := mustSelection(t, s, "Player A Win", ev1, true)
	sel2 := mustSelection(t, s, "Player B Win", ev1, true)

	// desativa a primeira seleção: a segunda segue ativa, nada cascateia
	res, err := s.UpdateSelection(ctx, sel1, UpdateSelectionParams{Active: ptr(false)})
	require.NoError(t, err)
	require.False(t, res.EventDeactivated)
	require.True(t, activeOf(t, s, "event", ev1))

	// desativa a última: o evento 1 cai, o evento 2 e o esporte ficam
	res, err = s.UpdateSelection(ctx, sel2, UpdateSelectionParams{Active: ptr(false)})
	require.NoError(t, err)
	require.True(t, res.EventDeactivated)
	require.Equal(t, ev1, res.EventID)
	require.False(t, res.SportDeactivated) // ev2 ainda ativo
	require.False(t, activeOf(t, s, "event", ev1))
	require.True(t, activeOf(t, s, "event", ev2))
	require.True(t, activeOf(t, s, "sport", tennis))

	// desativa o evento 2 explicitamente: agora o esporte cai também
	res, err = s.UpdateEvent(ctx, ev2, UpdateEventParams{Active: ptr(false)})
	require.NoError(t, err)
	require.True(t, res.SportDeactivated)
	require.Equal(t, tennis, res.SportID)
	require.False(t, activeOf(t, s, "sport", tennis))
}

// A queda da última seleção propaga os dois níveis na mesma transação
func TestSelectionCascadeChainsToSport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sport := mustSport(t, s, "Snooker", "snooker", true)
	ev := mustEvent(t, s, "Masters", "masters", sport, true, "2023-01-08 13:00:00")
	sel := mustSelection(t, s, "Defending Champion", ev, true)

	res, err := s.UpdateSelection(ctx, sel, UpdateSelectionParams{Active: ptr(false)})
	require.NoError(t, err)
	require.True(t, res.EventDeactivated)
	require.True(t, res.SportDeactivated)
	require.False(t, activeOf(t, s, "event", ev))
	require.False(t, activeOf(t, s, "sport", sport))
}

// Pai sem filhos nunca é desativado pela cascata
func TestCascadeEmptyChildSetIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sport := mustSport(t, s, "Darts", "darts", true)
	ev := mustEvent(t, s, "World Championship", "world-championship", sport, true, "2023-12-15 19:00:00")

	deactivated, err := s.ReevaluateEvent(ctx, ev)
	require.NoError(t, err)
	require.False(t, deactivated)
	require.True(t, activeOf(t, s, "event", ev))

	emptySport := mustSport(t, s, "Curling", "curling", true)
	deactivated, err = s.ReevaluateSport(ctx, emptySport)
	require.NoError(t, err)
	require.False(t, deactivated)
	require.True(t, activeOf(t, s, "sport", emptySport))
}

// Reavaliar com filhos inalterados converge sem novo efeito
func TestCascadeIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sport := mustSport(t, s, "Boxing", "boxing", true)
	ev := mustEvent(t, s, "Title Fight", "title-fight", sport, true, "2023-05-20 22:00:00")
	sel := mustSelection(t, s, "Champion KO", ev, false)
	_ = sel

	deactivated, err := s.ReevaluateEvent(ctx, ev)
	require.NoError(t, err)
	require.True(t, deactivated) // primeira avaliação faz a transição

	deactivated, err = s.ReevaluateEvent(ctx, ev)
	require.NoError(t, err)
	require.False(t, deactivated) // segunda é no-op
	require.False(t, activeOf(t, s, "event", ev))
}

// A engine nunca reativa: pai inativo com filhos ativos fica inativo
func TestCascadeNeverReactivates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sport := mustSport(t, s, "Golf", "golf", true)
	ev := mustEvent(t, s, "The Open", "the-open", sport, false, "2023-07-20 09:00:00")
	sel := mustSelection(t, s, "Leader Wins", ev, false)

	// seleção reativada explicitamente NÃO reativa o evento
	res, err := s.UpdateSelection(ctx, sel, UpdateSelectionParams{Active: ptr(true)})
	require.NoError(t, err)
	require.False(t, res.EventDeactivated)
	require.False(t, activeOf(t, s, "event", ev))

	deactivated, err := s.ReevaluateEvent(ctx, ev)
	require.NoError(t, err)
	require.False(t, deactivated)
	require.False(t, activeOf(t, s, "event", ev))

	// reativação é sempre ação explícita do chamador
	_, err = s.UpdateEvent(ctx, ev, UpdateEventParams{Active: ptr(true)})
	require.NoError(t, err)
	require.True(t, activeOf(t, s, "event", ev))
}

// Update de evento reavalia o esporte lido da própria linha
func TestEventUpdateCascadesToItsSport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sport := mustSport(t, s, "Rugby", "rugby", true)
	ev1 := mustEvent(t, s, "Six Nations", "six-nations", sport, true, "2023-02-04 15:00:00")
	ev2 := mustEvent(t, s, "World Cup", "world-cup", sport, false, "2023-09-08 20:00:00")
	_ = ev2

	res, err := s.UpdateEvent(ctx, ev1, UpdateEventParams{Active: ptr(false)})
	require.NoError(t, err)
	require.True(t, res.SportDeactivated)
	require.Equal(t, sport, res.SportID)
	require.False(t, activeOf(t, s, "sport", sport))
}
