package pagesearch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction for the requested dataset.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to fully qualified column names.
	// Both tables carry a team_id column, so bare names would be ambiguous.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

// DefaultOrderBy is the ordering used when a page request carries no sort.
var DefaultOrderBy = OrderBy{Column: ColumnMemberID, Direction: DirectionASC}

// MemberColumnMapping exposes the sortable columns of the member/team
// projection under the names used by the API.
var MemberColumnMapping = ColumnMapping{
	"id":       ColumnMemberID,
	"memberId": ColumnMemberID,
	"username": ColumnUsername,
	"age":      ColumnAge,
	"teamId":   ColumnTeamID,
	"teamName": ColumnTeamName,
}

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	// Guard against SQL injection by restricting allowed characters in column names.
	if !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", o.Column)
	}

	return nil
}

// String renders the ordering as "<column> <direction>".
func (o OrderBy) String() string {
	return o.Column + " " + string(o.Direction)
}

// ToSQL renders the orderings as an ORDER BY list, e.g.
// "member.age DESC, member.member_id ASC".
func (o Orderings) ToSQL() string {
	return strings.Join(lo.Map(o, func(ob OrderBy, _ int) string { return ob.String() }), ", ")
}

// Apply applies the ordering to a gorm query. Empty orderings are a no-op.
func (o Orderings) Apply(db *gorm.DB) *gorm.DB {
	if len(o) == 0 {
		return db
	}

	return db.Order(o.ToSQL())
}

// With appends orderings without overwriting existing ones. A column that is
// already present is moved to the new position with the new direction.
// Order is preserved as if calling:
//
//	OrderBy(o1).ThenBy(o2).ThenBy(o3)...
func (o Orderings) With(orderBy ...OrderBy) Orderings {
	ret := slices.Clone(o)

	for _, ob := range orderBy {
		idx := slices.IndexFunc(ret, func(processed OrderBy) bool {
			return processed.Column == ob.Column
		})

		// Remove previous occurrence (avoid duplication).
		if idx != -1 {
			ret = slices.Delete(ret, idx, idx+1)
		}

		ret = append(ret, ob)
	}

	return ret
}

// Deterministic returns the orderings with the member id as the final
// tiebreaker. Without a unique last column, LIMIT/OFFSET windows over rows
// with equal sort keys may overlap or skip rows between pages.
func (o Orderings) Deterministic() Orderings {
	if len(o) == 0 {
		return Orderings{DefaultOrderBy}
	}

	if slices.ContainsFunc(o, func(ob OrderBy) bool { return ob.Column == ColumnMemberID }) {
		return o
	}

	return o.With(DefaultOrderBy)
}

func (o Orderings) validate() error {
	if len(o) == 0 {
		return fmt.Errorf("empty ordering list")
	}

	var err error
	for _, ordering := range o {
		err = ordering.validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// ParseSort builds Orderings from "alias asc|desc" items. Aliases are
// resolved through columnMapping; every failure wraps ErrInvalidSort, and an
// unknown alias is reported with the closest known one.
func ParseSort(items []string, columnMapping ColumnMapping) (Orderings, error) {
	ret := make(Orderings, 0, len(items))

	for _, item := range items {
		ob, err := parseOrderBy(item, columnMapping)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSort, err)
		}

		ret = append(ret, ob)
	}

	return ret, nil
}

func parseOrderBy(item string, columnMapping ColumnMapping) (OrderBy, error) {
	alias, rawDirection, ok := strings.Cut(strings.TrimSpace(item), " ")
	rawDirection = strings.TrimSpace(rawDirection)
	if !ok || rawDirection == "" || strings.ContainsAny(rawDirection, " \t") {
		return OrderBy{}, fmt.Errorf("sort item '%s' is not 'alias asc|desc'", item)
	}

	direction := Direction(strings.ToUpper(rawDirection))
	if !direction.Valid() {
		return OrderBy{}, fmt.Errorf("unknown direction '%s'", rawDirection)
	}

	column, known := columnMapping[alias]
	if !known {
		return OrderBy{}, fmt.Errorf("unknown column alias '%s', closest: '%s'", alias, closestAlias(alias, lo.Keys(columnMapping)))
	}

	return OrderBy{Column: column, Direction: direction}, nil
}

// closestAlias picks the alias with the smallest edit distance to input. Ties
// go to the alphabetically first alias.
func closestAlias(input ColumnAlias, aliases []ColumnAlias) ColumnAlias {
	slices.Sort(aliases)
	target := []rune(input)

	return lo.MinBy(aliases, func(a, b ColumnAlias) bool {
		return levenshtein([]rune(a), target) < levenshtein([]rune(b), target)
	})
}
