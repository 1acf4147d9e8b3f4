package repo

import (
	"context"
	"database/sql"
	"fmt"
)

const selectionCols = "id, name, event_id, price, active, outcome"

// CreateSelection insere uma nova seleção e retorna o id gerado
func (s *Store) CreateSelection(ctx context.Context, sel Selection) (int64, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO selections (name, event_id, price, active, outcome)
		 VALUES (?, ?, ?, ?, ?)`,
		sel.Name, sel.EventID, sel.Price, sel.Active, sel.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("create selection: %w", err)
	}
	return id, nil
}

// GetSelection retorna a seleção pelo id, ou nil se não existir
func (s *Store) GetSelection(ctx context.Context, id int64) (*Selection, error) {
	var sel Selection
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT `+selectionCols+` FROM selections WHERE id = ?`), id,
	).Scan(&sel.ID, &sel.Name, &sel.EventID, &sel.Price, &sel.Active, &sel.Outcome)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get selection: %w", err)
	}
	return &sel, nil
}

// UpdateSelectionParams são os campos atualizáveis de uma seleção (PATCH).
// event_id é imutável, como sport_id em eventos
type UpdateSelectionParams struct {
	Name    *string
	Price   *float64
	Active  *bool
	Outcome *string
}

func (p UpdateSelectionParams) sets() ([]string, []any) {
	var sets []string
	var args []any
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *p.Price)
	}
	if p.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, *p.Active)
	}
	if p.Outcome != nil {
		sets = append(sets, "outcome = ?")
		args = append(args, *p.Outcome)
	}
	return sets, args
}

// UpdateSelection aplica um update parcial e reavalia o evento pai na MESMA
// transação. Se o evento foi desativado pela cascata, o esporte dele também é
// reavaliado — a desativação do último filho propaga os dois níveis
func (s *Store) UpdateSelection(ctx context.Context, id int64, p UpdateSelectionParams) (CascadeResult, error) {
	var res CascadeResult

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		sets, args := p.sets()
		if q := buildUpdate("selections", sets); q != "" {
			args = append(args, id)
			if _, err := tx.ExecContext(ctx, s.dialect.Rebind(q), args...); err != nil {
				return fmt.Errorf("update selection: %w", err)
			}
		}

		var eventID int64
		err := tx.QueryRowContext(ctx,
			s.dialect.Rebind(`SELECT event_id FROM selections WHERE id = ?`), id,
		).Scan(&eventID)
		if err == sql.ErrNoRows {
			return nil // seleção não existe: nada a cascatear
		}
		if err != nil {
			return fmt.Errorf("load selection parent: %w", err)
		}

		deactivated, err := s.evaluateEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if !deactivated {
			return nil
		}
		res.EventDeactivated = true
		res.EventID = eventID

		var sportID int64
		if err := tx.QueryRowContext(ctx,
			s.dialect.Rebind(`SELECT sport_id FROM events WHERE id = ?`), eventID,
		).Scan(&sportID); err != nil {
			return fmt.Errorf("load event parent: %w", err)
		}

		sportDeactivated, err := s.evaluateSport(ctx, tx, sportID)
		if err != nil {
			return err
		}
		if sportDeactivated {
			res.SportDeactivated = true
			res.SportID = sportID
		}
		return nil
	})

	return res, err
}

// DeleteSelection remove a seleção; id inexistente é no-op
func (s *Store) DeleteSelection(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		s.dialect.Rebind(`DELETE FROM selections WHERE id = ?`), id,
	); err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	return nil
}

// SearchSelections retorna as seleções que casam com todos os filtros
func (s *Store) SearchSelections(ctx context.Context, f SelectionFilters) ([]Selection, error) {
	conds, args := f.clauses()
	q := buildSelect(selectionCols, "selections", conds)

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("search selections: %w", err)
	}
	defer rows.Close()

	var out []Selection
	for rows.Next() {
		var sel Selection
		if err := rows.Scan(&sel.ID, &sel.Name, &sel.EventID, &sel.Price, &sel.Active, &sel.Outcome); err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, rows.Err()
}

// SelectionsByEvent retorna as seleções de um evento
func (s *Store) SelectionsByEvent(ctx context.Context, eventID int64) ([]Selection, error) {
	return s.SearchSelections(ctx, SelectionFilters{EventID: &eventID})
}
