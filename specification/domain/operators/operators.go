package operators

type Operator string

const (
	// Comparison

	OperatorEq  Operator = "="
	OperatorNe  Operator = "!="
	OperatorGt  Operator = ">"
	OperatorGte Operator = ">="
	OperatorLt  Operator = "<"
	OperatorLte Operator = "<="

	// Logical

	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
	OperatorNot Operator = "NOT"

	// Arithmetic, kept for timestamp/interval math inside rules

	OperatorAdd Operator = "+"
	OperatorSub Operator = "-"

	// Postfix

	OperatorIsNull    Operator = "IS NULL"
	OperatorIsNotNull Operator = "IS NOT NULL"
)

func (o Operator) IsComparison() bool {
	switch o {
	case OperatorEq, OperatorNe, OperatorGt, OperatorGte, OperatorLt, OperatorLte:
		return true
	}
	return false
}
