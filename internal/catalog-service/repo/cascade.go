package repo

import (
	"context"
	"database/sql"
	"fmt"
)

// Engine de consistência em cascata.
//
// Regra: quando TODOS os filhos de um pai estão inativos — e o conjunto de
// filhos não é vazio — o pai é desativado. A transição é só nesse sentido:
// a engine nunca reativa um pai; reativação é ação explícita do chamador.
// Pai sem filhos fica como está.
//
// Cada avaliação roda dentro da transação do update que a disparou, então a
// leitura dos filhos e a escrita condicional do pai são atômicas. O UPDATE
// condicionado em `AND active` torna a operação idempotente e permite
// detectar a transição pelo RowsAffected.

// CascadeResult reporta o que a cascata fez durante um update
type CascadeResult struct {
	EventDeactivated bool
	EventID          int64
	SportDeactivated bool
	SportID          int64
}

// evaluateEvent desativa o evento se ele tem ao menos uma seleção e todas
// estão inativas. Retorna true só quando houve transição ativo → inativo
func (s *Store) evaluateEvent(ctx context.Context, tx *sql.Tx, eventID int64) (bool, error) {
	var total, active int
	err := tx.QueryRowContext(ctx, s.dialect.Rebind(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END), 0)
		FROM selections WHERE event_id = ?`), eventID,
	).Scan(&total, &active)
	if err != nil {
		return false, fmt.Errorf("count selections: %w", err)
	}

	if total == 0 || active > 0 {
		return false, nil // conjunto vazio ou algum filho ativo: no-op
	}

	res, err := tx.ExecContext(ctx,
		s.dialect.Rebind(`UPDATE events SET active = ? WHERE id = ? AND active`),
		false, eventID,
	)
	if err != nil {
		return false, fmt.Errorf("deactivate event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// evaluateSport desativa o esporte se ele tem ao menos um evento e todos
// estão inativos. Mesma disciplina de evaluateEvent
func (s *Store) evaluateSport(ctx context.Context, tx *sql.Tx, sportID int64) (bool, error) {
	var total, active int
	err := tx.QueryRowContext(ctx, s.dialect.Rebind(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END), 0)
		FROM events WHERE sport_id = ?`), sportID,
	).Scan(&total, &active)
	if err != nil {
		return false, fmt.Errorf("count events: %w", err)
	}

	if total == 0 || active > 0 {
		return false, nil
	}

	res, err := tx.ExecContext(ctx,
		s.dialect.Rebind(`UPDATE sports SET active = ? WHERE id = ? AND active`),
		false, sportID,
	)
	if err != nil {
		return false, fmt.Errorf("deactivate sport: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReevaluateEvent roda a avaliação do evento em transação própria.
// Retorna true se o evento foi desativado agora
func (s *Store) ReevaluateEvent(ctx context.Context, eventID int64) (bool, error) {
	var deactivated bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		deactivated, err = s.evaluateEvent(ctx, tx, eventID)
		return err
	})
	return deactivated, err
}

// ReevaluateSport roda a avaliação do esporte em transação própria
func (s *Store) ReevaluateSport(ctx context.Context, sportID int64) (bool, error) {
	var deactivated bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		deactivated, err = s.evaluateSport(ctx, tx, sportID)
		return err
	})
	return deactivated, err
}
