package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// queryBuilder accumulates WHERE conditions. Conditions use ? placeholders
// which are numbered in the order they are added.
type queryBuilder struct {
	conds []string
	args  []any
}

func (b *queryBuilder) where(cond string, args ...any) {
	var sb strings.Builder
	n := 0
	for _, r := range cond {
		if r == '?' && n < len(args) {
			b.args = append(b.args, args[n])
			sb.WriteString("$" + strconv.Itoa(len(b.args)))
			n++
			continue
		}
		sb.WriteRune(r)
	}
	b.conds = append(b.conds, sb.String())
}

func (b *queryBuilder) search(term string, cols ...string) {
	if term == "" || len(cols) == 0 {
		return
	}
	pattern := "%" + escapeLike(term) + "%"
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		parts[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	b.where("("+strings.Join(parts, " OR ")+")", args...)
}

func (b *queryBuilder) trashed(col, mode string) {
	switch mode {
	case models.TrashedWith:
	case models.TrashedOnly:
		b.where(col + " IS NOT NULL")
	default:
		b.where(col + " IS NULL")
	}
}

// uuidFilter adds col = value when value parses as a UUID. Unparsable
// values match nothing.
func (b *queryBuilder) uuidFilter(col, value string) {
	if value == "" {
		return
	}
	id, err := uuid.Parse(value)
	if err != nil {
		b.where("FALSE")
		return
	}
	b.where(col+" = ?", id)
}

func (b *queryBuilder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// page returns the ORDER BY / LIMIT / OFFSET suffix and the full argument
// list. sortable maps public sort keys to qualified columns.
func (b *queryBuilder) page(q models.ListQuery, sortable map[string]string, defaultSort string) (string, []any) {
	col, ok := sortable[q.Sort]
	if !ok {
		col = defaultSort
	}
	dir := "DESC"
	if q.Order == "asc" {
		dir = "ASC"
	}
	args := append(append([]any{}, b.args...), q.PerPage, q.Offset())
	clause := fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", col, dir, len(args)-1, len(args))
	return clause, args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func count(ctx context.Context, pool *pgxpool.Pool, from string, b *queryBuilder) (int, error) {
	var total int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) "+from+b.whereClause(), b.args...).Scan(&total)
	return total, err
}

func softDelete(ctx context.Context, pool *pgxpool.Pool, table string, id uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, table)
	result, err := pool.Exec(ctx, query, id)
	if err != nil {
		return mapPgError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func restore(ctx context.Context, pool *pgxpool.Pool, table string, id uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, table)
	result, err := pool.Exec(ctx, query, id)
	if err != nil {
		return mapPgError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func forceDelete(ctx context.Context, pool *pgxpool.Pool, table string, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	result, err := pool.Exec(ctx, query, id)
	if err != nil {
		return mapPgError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func trashedCond(alias string, withTrashed bool) string {
	if withTrashed {
		return ""
	}
	return " AND " + alias + "deleted_at IS NULL"
}
