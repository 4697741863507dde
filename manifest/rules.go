package manifest

// Rule phases.
const (
	PhaseRequest  = "request"
	PhaseResponse = "response"
)

// Rule is one normalized rule. Order is assigned by declaration position
// within its phase, starting at 2; slot 1 is reserved for the implicit
// default rule. Criteria is a disjunction of conjunctions: the outer array
// ORs groups, each inner array ANDs its conditions. Behaviors keeps the
// user's declaration order.
type Rule struct {
	Name        string        `json:"name"`
	Phase       string        `json:"phase"`
	Description string        `json:"description"`
	IsActive    bool          `json:"is_active"`
	Order       int           `json:"order"`
	Criteria    [][]Criterion `json:"criteria"`
	Behaviors   []Behavior    `json:"behaviors"`
}

// Criterion is one normalized match condition. Variable is always wrapped
// in ${} delimiters. InputValue is present exactly when the operator is
// value-bearing.
type Criterion struct {
	Variable    string  `json:"variable"`
	Conditional string  `json:"conditional"`
	Operator    string  `json:"operator"`
	InputValue  *string `json:"input_value,omitempty"`
}

// Behavior is one normalized behavior record. Target is nil for no-arg
// behaviors, a string for single-valued ones and a structured object for
// the rest.
type Behavior struct {
	Name   string `json:"name"`
	Target any    `json:"target,omitempty"`
}
