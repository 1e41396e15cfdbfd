package pagesearch

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// Predicate is a single filter of the form Operator(Column, Value).
	Predicate struct {
		Column   string
		Operator Operator
		Value    any
	}

	// Predicates is a conjunction of predicates:
	//
	//	P = A1 AND A2 ... AND An
	//
	// An empty conjunction is a no-op rather than a TRUE clause.
	Predicates []Predicate
)

// toGORMExpression converts a predicate of the form Operator(Column, Value)
// into an SQL condition "Column Operator ?" represented as a clause.Expression.
//
// Example:
//
//	Predicate = { Column: "member.age", Operator: ">=", Value: 35}
//
// Result:
//
//	"member.age >= ?" with Vars [35]
func (p Predicate) toGORMExpression() clause.Expression {
	sqlClause, arg := p.toSQLClause()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: []any{arg},
	}
}

// toSQLClause converts a predicate to an SQL condition of the form
// "Column Operator ?" with a corresponding value.
func (p Predicate) toSQLClause() (string, any) {
	return fmt.Sprintf("%s %s ?", p.Column, p.Operator), p.Value
}

func (p Predicate) validate() error {
	if !p.Operator.Valid() {
		return fmt.Errorf("invalid predicate operator '%s'", p.Operator)
	}

	if !lo.Every(_availableColumnNameSymbols, []rune(p.Column)) {
		return fmt.Errorf("predicate column name contains forbidden symbols '%s'", p.Column)
	}

	return nil
}

// IsEmpty returns true when no predicate is active.
func (p Predicates) IsEmpty() bool {
	return len(p) == 0
}

// Apply adds one WHERE expression per predicate to a gorm query. GORM joins
// them with AND. An empty conjunction leaves the query untouched.
func (p Predicates) Apply(db *gorm.DB) *gorm.DB {
	for _, predicate := range p {
		db = db.Clauses(predicate.toGORMExpression())
	}

	return db
}

// ToSQL converts the conjunction to "A1 AND A2 ... AND An" with values for the
// "?" placeholders. Returns an empty string for an empty conjunction so that
// callers omit the WHERE keyword altogether.
//
// Example:
//
//	Predicates = {
//		{Column: "team.name", Operator: "=", Value: "teamY"},
//		{Column: "member.age", Operator: ">=", Value: 35},
//	}
//
// Result:
//
//	("team.name = ? AND member.age >= ?", ["teamY", 35])
func (p Predicates) ToSQL() (string, []any) {
	if p.IsEmpty() {
		return "", nil
	}

	clauses := make([]string, 0, len(p))
	values := make([]any, 0, len(p))

	for _, predicate := range p {
		sqlClause, value := predicate.toSQLClause()
		clauses = append(clauses, sqlClause)
		values = append(values, value)
	}

	return strings.Join(clauses, " AND "), values
}

func (p Predicates) validate() error {
	for _, predicate := range p {
		if err := predicate.validate(); err != nil {
			return err
		}
	}

	return nil
}
