// Package sqlxstore implements pagesearch.Store with hand-written SQL executed
// through sqlx. Placeholders are rebound to the bindvar style of the driver the
// *sqlx.DB was opened with.
package sqlxstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/Alp4ka/pagesearch"
	"github.com/jmoiron/sqlx"
)

const (
	selectRows = "SELECT member.member_id AS member_id, member.username AS username, member.age AS age, " +
		"team.team_id AS team_id, team.name AS team_name"
	selectCount = "SELECT COUNT(*)"
	fromJoined  = "FROM member LEFT JOIN team ON member.team_id = team.team_id"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// FetchRows - implements pagesearch.Store.
func (s *Store) FetchRows(ctx context.Context, q pagesearch.Query) ([]pagesearch.ResultRow, error) {
	query, args := s.build(selectRows, q, true)

	rows := make([]pagesearch.ResultRow, 0)
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select member rows: %w", err)
	}

	return rows, nil
}

// CountRows - implements pagesearch.Store.
func (s *Store) CountRows(ctx context.Context, q pagesearch.Query) (int64, error) {
	query, args := s.build(selectCount, q, false)

	var total int64
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count member rows: %w", err)
	}

	return total, nil
}

// build renders the statement with "?" placeholders and rebinds it for the
// driver. Orderings, offset and limit are only rendered for content queries.
// Column names in orderings are validated by PageRequest.Validate, and offset
// and limit are integers, so inlining them is safe.
func (s *Store) build(selectClause string, q pagesearch.Query, paged bool) (string, []any) {
	var sb strings.Builder
	sb.WriteString(selectClause)
	sb.WriteString(" ")
	sb.WriteString(fromJoined)

	where, args := q.Predicates.ToSQL()
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	if paged {
		if len(q.Orderings) > 0 {
			sb.WriteString(" ORDER BY ")
			sb.WriteString(q.Orderings.ToSQL())
		}
		if q.Limit != pagesearch.NoLimit {
			fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
		} else if q.Offset > 0 {
			sb.WriteString(s.unboundedLimit())
		}
		if q.Offset > 0 {
			fmt.Fprintf(&sb, " OFFSET %d", q.Offset)
		}
	}

	return s.db.Rebind(sb.String()), args
}

// unboundedLimit returns the LIMIT clause that lets OFFSET stand on its own.
// SQLite and MySQL reject OFFSET without LIMIT, Postgres does not.
func (s *Store) unboundedLimit() string {
	switch s.db.DriverName() {
	case "sqlite3", "sqlite":
		return " LIMIT -1"
	case "mysql":
		return " LIMIT 18446744073709551615"
	default:
		return ""
	}
}

var _ pagesearch.Store = (*Store)(nil)
