package config

// Rules groups rule declarations by processing phase.
type Rules struct {
	Request  []Rule `json:"request,omitempty" yaml:"request,omitempty"`
	Response []Rule `json:"response,omitempty" yaml:"response,omitempty"`
}

// Rule is one rule declaration. A rule matches either through the simple
// Variable/Match pair (compiled into a single criteria group) or through an
// explicit Criteria array, never both.
//
// Behavior is the declared behavior bag; Behaviors is only populated by the
// legacy V3 migration, which resolves the bag ahead of time.
type Rule struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Active      *bool            `json:"active,omitempty" yaml:"active,omitempty"`
	Variable    string           `json:"variable,omitempty" yaml:"variable,omitempty"`
	Match       string           `json:"match,omitempty" yaml:"match,omitempty"`
	Criteria    [][]Criterion    `json:"criteria,omitempty" yaml:"criteria,omitempty"`
	Behavior    Bag              `json:"behavior,omitempty" yaml:"behavior,omitempty"`
	Behaviors   []LegacyBehavior `json:"behaviors,omitempty" yaml:"behaviors,omitempty"`
}

// IsActive reports whether the rule is active, defaulting to true.
func (r *Rule) IsActive() bool {
	return r.Active == nil || *r.Active
}

// Criterion is one user-declared match condition. Argument is required for
// value-bearing operators (is_equal, matches, ...) and forbidden for
// valueless ones (exists, does_not_exist).
type Criterion struct {
	Variable    string `json:"variable" yaml:"variable"`
	Conditional string `json:"conditional,omitempty" yaml:"conditional,omitempty"`
	Operator    string `json:"operator" yaml:"operator"`
	Argument    string `json:"argument,omitempty" yaml:"argument,omitempty"`
	HasArgument bool   `json:"-" yaml:"-"`
}

type criterionAlias struct {
	Variable    string  `json:"variable" yaml:"variable"`
	Conditional string  `json:"conditional,omitempty" yaml:"conditional,omitempty"`
	Operator    string  `json:"operator" yaml:"operator"`
	Argument    *string `json:"argument,omitempty" yaml:"argument,omitempty"`
}

// UnmarshalJSON tracks argument presence so that an explicit empty-string
// argument is distinguishable from an absent one.
func (c *Criterion) UnmarshalJSON(data []byte) error {
	var a criterionAlias
	if err := jsonUnmarshal(data, &a); err != nil {
		return err
	}
	c.fromAlias(a)
	return nil
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (c *Criterion) UnmarshalYAML(data []byte) error {
	var a criterionAlias
	if err := yamlUnmarshal(data, &a); err != nil {
		return err
	}
	c.fromAlias(a)
	return nil
}

func (c *Criterion) fromAlias(a criterionAlias) {
	c.Variable = a.Variable
	c.Conditional = a.Conditional
	c.Operator = a.Operator
	if a.Argument != nil {
		c.Argument = *a.Argument
		c.HasArgument = true
	}
}

// LegacyBehavior is a behavior record in the legacy V3 import flavor.
type LegacyBehavior struct {
	Type       string `json:"type" yaml:"type"`
	Attributes any    `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}
