package pagesearch

import "strings"

// Columns the engine filters, sorts and projects on. The member table is the
// left side of the join; team fields are NULL for members without a team.
const (
	ColumnMemberID = "member.member_id"
	ColumnUsername = "member.username"
	ColumnAge      = "member.age"
	ColumnTeamID   = "team.team_id"
	ColumnTeamName = "team.name"
)

// FilterCondition is a sparse set of optional match criteria. Any subset of the
// fields may be set, including none of them.
//
// Usage in API payloads:
//
//	type MemberSearchRequest struct {
//	    Condition FilterCondition `json:",inline"`
//	}
type FilterCondition struct {
	// Username - exact username match. Blank values are ignored.
	Username *string `json:"username,omitempty" form:"username"`
	// TeamName - exact match on the joined team's name. Blank values are ignored.
	TeamName *string `json:"teamName,omitempty" form:"teamName"`
	// AgeMin - inclusive lower age bound. Zero is a valid bound.
	AgeMin *int `json:"ageGoe,omitempty" form:"ageGoe"`
	// AgeMax - inclusive upper age bound. Zero is a valid bound.
	AgeMax *int `json:"ageLoe,omitempty" form:"ageLoe"`
}

// Predicates returns the conjunction of active filters in a fixed order:
// username, team name, minimum age, maximum age.
//
// A field contributes a predicate only when it is present (and, for strings,
// non-blank). An empty condition yields an empty conjunction, which applies no
// WHERE clause at all.
func (c FilterCondition) Predicates() Predicates {
	ret := make(Predicates, 0, 4)

	if hasText(c.Username) {
		ret = append(ret, Predicate{Column: ColumnUsername, Operator: OperatorEq, Value: *c.Username})
	}
	if hasText(c.TeamName) {
		ret = append(ret, Predicate{Column: ColumnTeamName, Operator: OperatorEq, Value: *c.TeamName})
	}
	if c.AgeMin != nil {
		ret = append(ret, Predicate{Column: ColumnAge, Operator: OperatorGTE, Value: *c.AgeMin})
	}
	if c.AgeMax != nil {
		ret = append(ret, Predicate{Column: ColumnAge, Operator: OperatorLTE, Value: *c.AgeMax})
	}

	return ret
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
