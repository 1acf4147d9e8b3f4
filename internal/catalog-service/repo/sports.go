package repo

import (
	"context"
	"database/sql"
	"fmt"
)

const sportCols = "id, name, slug, active"

// CreateSport insere um novo esporte e retorna o id gerado
func (s *Store) CreateSport(ctx context.Context, sp Sport) (int64, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO sports (name, slug, active) VALUES (?, ?, ?)`,
		sp.Name, sp.Slug, sp.Active,
	)
	if err != nil {
		return 0, fmt.Errorf("create sport: %w", err)
	}
	return id, nil
}

// GetSport retorna o esporte pelo id, ou nil se não existir —
// ausência não é erro
func (s *Store) GetSport(ctx context.Context, id int64) (*Sport, error) {
	var sp Sport
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT `+sportCols+` FROM sports WHERE id = ?`), id,
	).Scan(&sp.ID, &sp.Name, &sp.Slug, &sp.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sport: %w", err)
	}
	return &sp, nil
}

// UpdateSportParams são os campos atualizáveis de um esporte.
// Semântica PATCH: campo nil não entra no SET
type UpdateSportParams struct {
	Name   *string
	Slug   *string
	Active *bool
}

// UpdateSport aplica um update parcial. Id inexistente é no-op;
// sem campos informados também
func (s *Store) UpdateSport(ctx context.Context, id int64, p UpdateSportParams) error {
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

	q := buildUpdate("sports", sets)
	if q == "" {
		return nil
	}
	args = append(args, id)

	if _, err := s.db.ExecContext(ctx, s.dialect.Rebind(q), args...); err != nil {
		return fmt.Errorf("update sport: %w", err)
	}
	return nil
}

// DeleteSport remove o esporte; id inexistente é no-op
func (s *Store) DeleteSport(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		s.dialect.Rebind(`DELETE FROM sports WHERE id = ?`), id,
	); err != nil {
		return fmt.Errorf("delete sport: %w", err)
	}
	return nil
}

// SearchSports retorna os esportes que casam com todos os filtros informados
func (s *Store) SearchSports(ctx context.Context, f SportFilters) ([]Sport, error) {
	conds, args := f.clauses()
	q := buildSelect(sportCols, "sports", conds)

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("search sports: %w", err)
	}
	defer rows.Close()

	var out []Sport
	for rows.Next() {
		var sp Sport
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Slug, &sp.Active); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// SportsWithActiveEventsAbove retorna esportes cuja contagem de eventos
// ativos excede (estritamente) o limiar. Join interno: esporte sem evento
// ativo fica fora do resultado, não vira linha com zero
func (s *Store) SportsWithActiveEventsAbove(ctx context.Context, threshold int) ([]SportActivity, error) {
	const q = `
		SELECT s.id, s.name, COUNT(e.id) AS active_events
		FROM sports s
		JOIN events e ON e.sport_id = s.id
		WHERE e.active = ?
		GROUP BY s.id, s.name
		HAVING COUNT(e.id) > ?
		ORDER BY s.id
	`
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(q), true, threshold)
	if err != nil {
		return nil, fmt.Errorf("sports with active events: %w", err)
	}
	defer rows.Close()

	var out []SportActivity
	for rows.Next() {
		var sa SportActivity
		if err := rows.Scan(&sa.SportID, &sa.Name, &sa.ActiveEvents); err != nil {
			return nil, err
		}
		out = append(out, sa)
	}
	return out, rows.Err()
}
