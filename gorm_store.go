package pagesearch

import (
	"context"
	"math"
	"strings"

	"gorm.io/gorm"
)

const (
	memberTable = "member"
	teamJoin    = "LEFT JOIN team ON member.team_id = team.team_id"
)

var _projection = strings.Join([]string{
	ColumnMemberID + " AS member_id",
	ColumnUsername + " AS username",
	ColumnAge + " AS age",
	ColumnTeamID + " AS team_id",
	ColumnTeamName + " AS team_name",
}, ", ")

// GORMStore implements Store over a *gorm.DB connected to a database holding
// the member and team tables.
//
// Expected schema:
//
//	member(member_id, username, age, team_id NULL)
//	team(team_id, name)
type GORMStore struct {
	db *gorm.DB
}

func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// FetchRows - implements Store.
func (s *GORMStore) FetchRows(ctx context.Context, q Query) ([]ResultRow, error) {
	db := q.Predicates.Apply(s.joined(ctx).Select(_projection))
	db = q.Orderings.Apply(db)

	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	switch {
	case q.Limit != NoLimit:
		db = db.Limit(q.Limit)
	case q.Offset > 0:
		// MySQL rejects OFFSET without LIMIT.
		db = db.Limit(math.MaxInt)
	}

	rows := make([]ResultRow, 0)
	if err := db.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// CountRows - implements Store.
func (s *GORMStore) CountRows(ctx context.Context, q Query) (int64, error) {
	var total int64
	if err := q.Predicates.Apply(s.joined(ctx)).Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

func (s *GORMStore) joined(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(memberTable).Joins(teamJoin)
}

var _ Store = (*GORMStore)(nil)
