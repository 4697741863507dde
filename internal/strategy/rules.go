package strategy

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/internal/behaviors"
	"github.com/wudi/edgeconfig/internal/vocabulary"
	"github.com/wudi/edgeconfig/manifest"
)

// rulesStrategy runs last: behavior resolution validates setOrigin,
// setCache and runFunction references against the original document's
// declared entities.
var rulesStrategy = Strategy{
	Name: "rules",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.Rules == nil {
			return nil
		}
		refs := behaviors.NewRefs(ctx.Config)
		var out []manifest.Rule
		for _, phase := range []behaviors.Phase{behaviors.PhaseRequest, behaviors.PhaseResponse} {
			rules := ctx.Config.Rules.Request
			if phase == behaviors.PhaseResponse {
				rules = ctx.Config.Rules.Response
			}
			for i, r := range rules {
				entry, err := ruleToManifest(ctx, r, phase, i, refs)
				if err != nil {
					return err
				}
				out = append(out, entry)
			}
		}
		ctx.Manifest.Rules = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.Rules == nil {
			return nil
		}
		out := &config.Rules{}
		for _, r := range ctx.Manifest.Rules {
			entry := ruleToConfig(ctx, r)
			if r.Phase == manifest.PhaseResponse {
				out.Response = append(out.Response, entry)
			} else {
				out.Request = append(out.Request, entry)
			}
		}
		ctx.Config.Rules = out
		return nil
	},
}

func ruleToManifest(ctx *Context, r config.Rule, phase behaviors.Phase, idx int, refs *behaviors.Refs) (manifest.Rule, error) {
	criteria, err := criteriaFromRule(r)
	if err != nil {
		return manifest.Rule{}, err
	}

	var records []manifest.Behavior
	if len(r.Behaviors) > 0 {
		// Pre-resolved by the legacy migration.
		records = behaviors.FromLegacy(r.Behaviors)
	} else {
		var dropped []string
		records, dropped, err = behaviors.Resolve(r.Behavior, phase, refs, r.Name)
		if err != nil {
			return manifest.Rule{}, err
		}
		if len(dropped) > 0 {
			ctx.Logger.Debug("dropped unknown behavior keys",
				zap.String("rule", r.Name),
				zap.Strings("keys", dropped))
		}
	}
	if records == nil {
		// Empty array, never null: the manifest schema wants behaviors
		// present on every rule.
		records = []manifest.Behavior{}
	}

	return manifest.Rule{
		Name:        r.Name,
		Phase:       string(phase),
		Description: r.Description,
		IsActive:    r.IsActive(),
		Order:       idx + 2, // slot 1 is the implicit default rule
		Criteria:    criteria,
		Behaviors:   records,
	}, nil
}

// criteriaFromRule builds the normalized criteria groups from either the
// simple variable/match pair or the explicit criteria array. Declaring
// both forms on one rule is rejected.
func criteriaFromRule(r config.Rule) ([][]manifest.Criterion, error) {
	hasSimple := r.Variable != "" || r.Match != ""
	if hasSimple && len(r.Criteria) > 0 {
		return nil, fmt.Errorf("rule %q: cannot declare both match/variable and criteria", r.Name)
	}

	if len(r.Criteria) == 0 {
		match := stringOr(r.Match, ".*")
		return [][]manifest.Criterion{{{
			Variable:    vocabulary.Wrap(stringOr(r.Variable, "uri")),
			Conditional: "if",
			Operator:    "matches",
			InputValue:  &match,
		}}}, nil
	}

	out := make([][]manifest.Criterion, 0, len(r.Criteria))
	for _, group := range r.Criteria {
		converted := make([]manifest.Criterion, 0, len(group))
		for i, c := range group {
			entry, err := criterionToManifest(r.Name, c, i)
			if err != nil {
				return nil, err
			}
			converted = append(converted, entry)
		}
		out = append(out, converted)
	}
	return out, nil
}

func criterionToManifest(ruleName string, c config.Criterion, idx int) (manifest.Criterion, error) {
	name := vocabulary.Unwrap(c.Variable)
	if !vocabulary.IsVariable(name) {
		return manifest.Criterion{}, fmt.Errorf("rule %q: unknown criterion variable %q", ruleName, c.Variable)
	}

	conditional := c.Conditional
	if conditional == "" {
		conditional = "and"
		if idx == 0 {
			conditional = "if"
		}
	}
	if !vocabulary.IsConditional(conditional) {
		return manifest.Criterion{}, fmt.Errorf("rule %q: unknown conditional %q", ruleName, c.Conditional)
	}
	if idx == 0 && conditional != "if" {
		return manifest.Criterion{}, fmt.Errorf("rule %q: the first criterion in a group must use the \"if\" conditional", ruleName)
	}

	takes, known := vocabulary.OperatorTakesValue(c.Operator)
	if !known {
		return manifest.Criterion{}, fmt.Errorf("rule %q: unknown operator %q", ruleName, c.Operator)
	}
	if takes && !c.HasArgument {
		return manifest.Criterion{}, fmt.Errorf("rule %q: operator %q requires an argument", ruleName, c.Operator)
	}
	if !takes && c.HasArgument {
		return manifest.Criterion{}, fmt.Errorf("rule %q: operator %q does not take an argument", ruleName, c.Operator)
	}

	entry := manifest.Criterion{
		Variable:    vocabulary.Wrap(name),
		Conditional: conditional,
		Operator:    c.Operator,
	}
	if takes {
		arg := c.Argument
		entry.InputValue = &arg
	}
	return entry, nil
}

func ruleToConfig(ctx *Context, r manifest.Rule) config.Rule {
	phase := behaviors.PhaseRequest
	if r.Phase == manifest.PhaseResponse {
		phase = behaviors.PhaseResponse
	}
	entry := config.Rule{
		Name:        r.Name,
		Description: r.Description,
		Criteria:    criteriaToConfig(r.Criteria),
		Behavior:    behaviors.ReverseRule(r.Behaviors, phase, manifestOriginType(ctx.Manifest)),
	}
	if !r.IsActive {
		entry.Active = boolPtr(false)
	}
	return entry
}

func criteriaToConfig(criteria [][]manifest.Criterion) [][]config.Criterion {
	out := make([][]config.Criterion, 0, len(criteria))
	for _, group := range criteria {
		converted := make([]config.Criterion, 0, len(group))
		for _, c := range group {
			entry := config.Criterion{
				Variable:    vocabulary.Unwrap(c.Variable),
				Conditional: c.Conditional,
				Operator:    c.Operator,
			}
			if c.InputValue != nil {
				entry.Argument = *c.InputValue
				entry.HasArgument = true
			}
			converted = append(converted, entry)
		}
		out = append(out, converted)
	}
	return out
}

// manifestOriginType resolves an origin name to its declared type for the
// reverse setOrigin mapping.
func manifestOriginType(m *manifest.Manifest) func(name string) string {
	return func(name string) string {
		for _, o := range m.Origin {
			if o.Name == name {
				return o.OriginType
			}
		}
		return ""
	}
}
