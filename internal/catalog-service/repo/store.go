package repo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
)

// Dialect resolve a única diferença de SQL entre os bancos suportados:
// o estilo de placeholder. Queries internas usam sempre `?` e são
// reescritas para `$n` quando o banco é Postgres.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// Rebind reescreve placeholders `?` para o estilo do banco
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// Store implementa as operações de persistência do catálogo.
// O handle do banco é injetado — cada teste pode usar um sqlite em memória
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// NewStore retorna uma instância do repositório do catálogo
func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB expõe o handle subjacente (ping de health, seed)
func (s *Store) DB() *sql.DB { return s.db }

// ErrConstraintViolation marca violações de unicidade/FK detectadas
// via IsConstraintViolation; o erro original segue encadeado
var ErrConstraintViolation = errors.New("constraint violation")

// IsConstraintViolation reporta se o erro veio de uma violação de
// integridade (classe 23 no Postgres, código 19 no SQLite)
func IsConstraintViolation(err error) bool {
	if errors.Is(err, ErrConstraintViolation) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code()&0xff == 19 // SQLITE_CONSTRAINT
	}

	return false
}

// insertReturningID insere e devolve o id gerado. Postgres não suporta
// LastInsertId, então lá o INSERT ganha RETURNING id
func (s *Store) insertReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	if s.dialect == DialectPostgres {
		var id int64
		err := s.db.QueryRowContext(ctx, s.dialect.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// withTx executa fn dentro de uma transação com rollback garantido em falha.
// A engine de cascata depende disso: leitura dos filhos + escrita condicional
// do pai precisam ser atômicas junto com o update que disparou a avaliação
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}
