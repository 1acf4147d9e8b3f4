package repo

import "strings"

// Filtros tipados por entidade: o conjunto de campos filtráveis é o próprio
// struct, então campo desconhecido nem compila. Valores entram SEMPRE como
// parâmetros bind — nunca concatenados na query (injeção vira literal).
// Campo nil = sem filtro; struct zerado = select sem WHERE.

type SportFilters struct {
	Name   *string
	Slug   *string
	Active *bool
}

func (f SportFilters) clauses() ([]string, []any) {
	var conds []string
	var args []any
	if f.Name != nil {
		conds = append(conds, "name = ?")
		args = append(args, *f.Name)
	}
	if f.Slug != nil {
		conds = append(conds, "slug = ?")
		args = append(args, *f.Slug)
	}
	if f.Active != nil {
		conds = append(conds, "active = ?")
		args = append(args, *f.Active)
	}
	return conds, args
}

type EventFilters struct {
	Name           *string
	Slug           *string
	Active         *bool
	Type           *string
	SportID        *int64
	Status         *string
	ScheduledStart *string
	ActualStart    *string
}

func (f EventFilters) clauses() ([]string, []any) {
	var conds []string
	var args []any
	if f.Name != nil {
		conds = append(conds, "name = ?")
		args = append(args, *f.Name)
	}
	if f.Slug != nil {
		conds = append(conds, "slug = ?")
		args = append(args, *f.Slug)
	}
	if f.Active != nil {
		conds = append(conds, "active = ?")
		args = append(args, *f.Active)
	}
	if f.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, *f.Type)
	}
	if f.SportID != nil {
		conds = append(conds, "sport_id = ?")
		args = append(args, *f.SportID)
	}
	if f.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, *f.Status)
	}
	if f.ScheduledStart != nil {
		conds = append(conds, "scheduled_start = ?")
		args = append(args, *f.ScheduledStart)
	}
	if f.ActualStart != nil {
		conds = append(conds, "actual_start = ?")
		args = append(args, *f.ActualStart)
	}
	return conds, args
}

type SelectionFilters struct {
	Name    *string
	EventID *int64
	Price   *float64
	Active  *bool
	Outcome *string
}

func (f SelectionFilters) clauses() ([]string, []any) {
	var conds []string
	var args []any
	if f.Name != nil {
		conds = append(conds, "name = ?")
		args = append(args, *f.Name)
	}
	if f.EventID != nil {
		conds = append(conds, "event_id = ?")
		args = append(args, *f.EventID)
	}
	if f.Price != nil {
		conds = append(conds, "price = ?")
		args = append(args, *f.Price)
	}
	if f.Active != nil {
		conds = append(conds, "active = ?")
		args = append(args, *f.Active)
	}
	if f.Outcome != nil {
		conds = append(conds, "outcome = ?")
		args = append(args, *f.Outcome)
	}
	return conds, args
}

// buildSelect monta o SELECT filtrado (AND entre campos) com placeholders `?`.
// ORDER BY id fixo pra resultado determinístico
func buildSelect(cols, table string, conds []string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(cols)
	b.WriteString(" FROM ")
	b.WriteString(table)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY id")
	return b.String()
}

// buildUpdate monta o UPDATE parcial (PATCH): só os campos informados entram
// no SET. Retorna query vazia quando não há nada a atualizar
func buildUpdate(table string, sets []string) string {
	if len(sets) == 0 {
		return ""
	}
	return "UPDATE " + table + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
}
