package pagesearch

// Operator defines a comparison operator applied to a filtered column.
type Operator string

func (o Operator) Valid() bool {
	return o == OperatorEq || o == OperatorGTE || o == OperatorLTE
}

const (
	OperatorEq  Operator = "="
	OperatorGTE Operator = ">="
	OperatorLTE Operator = "<="
)
