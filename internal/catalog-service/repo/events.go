package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const eventCols = "id, name, slug, active, type, sport_id, status, scheduled_start, actual_start"

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	var actual sql.NullString
	err := row.Scan(&e.ID, &e.Name, &e.Slug, &e.Active, &e.Type, &e.SportID,
		&e.Status, &e.ScheduledStart, &actual)
	if actual.Valid {
		e.ActualStart = &actual.String
	}
	return e, err
}

// CreateEvent insere um novo evento e retorna o id gerado.
// sport_id inexistente estoura a FK (violação de integridade)
func (s *Store) CreateEvent(ctx context.Context, e Event) (int64, error) {
	var actual any
	if e.ActualStart != nil {
		actual = *e.ActualStart
	}

	id, err := s.insertReturningID(ctx,
		`INSERT INTO events (name, slug, active, type, sport_id, status, scheduled_start, actual_start)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Slug, e.Active, e.Type, e.SportID, e.Status, e.ScheduledStart, actual,
	)
	if err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	return id, nil
}

// GetEvent retorna o evento pelo id, ou nil se não existir
func (s *Store) GetEvent(ctx context.Context, id int64) (*Event, error) {
	row := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT `+eventCols+` FROM events WHERE id = ?`), id)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// UpdateEventParams são os campos atualizáveis de um evento (PATCH).
// sport_id é imutável: re-parenting não é uma operação do catálogo
type UpdateEventParams struct {
	Name           *string
	Slug           *string
	Active         *bool
	Type           *string
	Status         *string
	ScheduledStart *string
	ActualStart    *string
}

func (p UpdateEventParams) sets() ([]string, []any) {
	var sets []string
	var args []any
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *p.Slug)
	}
	if p.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, *p.Active)
	}
	if p.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *p.Type)
	}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	if p.ScheduledStart != nil {
		sets = append(sets, "scheduled_start = ?")
		args = append(args, *p.ScheduledStart)
	}
	if p.ActualStart != nil {
		sets = append(sets, "actual_start = ?")
		args = append(args, *p.ActualStart)
	}
	return sets, args
}

// UpdateEvent aplica um update parcial e reavalia o esporte pai na MESMA
// transação: se todos os eventos do esporte ficaram inativos, o esporte é
// desativado. Id inexistente é no-op
func (s *Store) UpdateEvent(ctx context.Context, id int64, p UpdateEventParams) (CascadeResult, error) {
	var res CascadeResult

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		sets, args := p.sets()
		if q := buildUpdate("events", sets); q != "" {
			args = append(args, id)
			if _, err := tx.ExecContext(ctx, s.dialect.Rebind(q), args...); err != nil {
				return fmt.Errorf("update event: %w", err)
			}
		}

		// pai vem da própria linha, nunca do chamador
		var sportID int64
		err := tx.QueryRowContext(ctx,
			s.dialect.Rebind(`SELECT sport_id FROM events WHERE id = ?`), id,
		).Scan(&sportID)
		if err == sql.ErrNoRows {
			return nil // evento não existe: nada a cascatear
		}
		if err != nil {
			return fmt.Errorf("load event parent: %w", err)
		}

		deactivated, err := s.evaluateSport(ctx, tx, sportID)
		if err != nil {
			return err
		}
		if deactivated {
			res.SportDeactivated = true
			res.SportID = sportID
		}
		return nil
	})

	return res, err
}

// DeleteEvent remove o evento; id inexistente é no-op
func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		s.dialect.Rebind(`DELETE FROM events WHERE id = ?`), id,
	); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// SearchEvents retorna os eventos que casam com todos os filtros informados
func (s *Store) SearchEvents(ctx context.Context, f EventFilters) ([]Event, error) {
	conds, args := f.clauses()
	q := buildSelect(eventCols, "events", conds)

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EventsBySport retorna os eventos de um esporte
func (s *Store) EventsBySport(ctx context.Context, sportID int64) ([]Event, error) {
	return s.SearchEvents(ctx, EventFilters{SportID: &sportID})
}

// EventsInTimeframe retorna eventos com scheduled_start dentro da janela
// [from, to], ambos instantes UTC já normalizados pelo chamador
func (s *Store) EventsInTimeframe(ctx context.Context, from, to time.Time) ([]Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE scheduled_start BETWEEN ? AND ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q),
		from.Format(TimeLayout), to.Format(TimeLayout))
	if err != nil {
		return nil, fmt.Errorf("events in timeframe: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
