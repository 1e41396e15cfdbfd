package pagesearch

import "context"

// ResultRow is the member/team projection returned by searches. Team fields
// are nil for members without a team.
type ResultRow struct {
	MemberID int64   `json:"memberId" gorm:"column:member_id" db:"member_id"`
	Username string  `json:"username" gorm:"column:username" db:"username"`
	Age      int     `json:"age" gorm:"column:age" db:"age"`
	TeamID   *int64  `json:"teamId" gorm:"column:team_id" db:"team_id"`
	TeamName *string `json:"teamName" gorm:"column:team_name" db:"team_name"`
}

// Query describes one read against the member LEFT JOIN team relation.
type Query struct {
	Predicates Predicates
	// Orderings - ignored by CountRows.
	Orderings Orderings
	// Offset - ignored by CountRows.
	Offset int
	// Limit - NoLimit returns every matching row after Offset. Ignored by
	// CountRows.
	Limit int
}

// Store is the storage collaborator the Executor issues its queries through.
// Implementations must be safe for concurrent use when the Executor is.
type Store interface {
	// FetchRows returns the projected rows matching q in q.Orderings order,
	// sliced by q.Offset and q.Limit. Returns an empty slice when nothing
	// matches.
	FetchRows(ctx context.Context, q Query) ([]ResultRow, error)
	// CountRows returns the number of rows matching q.Predicates under the
	// same join as FetchRows.
	CountRows(ctx context.Context, q Query) (int64, error)
}
