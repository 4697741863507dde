package strategy

import (
	"strings"
	"testing"

	"github.com/wudi/edgeconfig/config"
)

func TestRulesSimplePathDefaults(t *testing.T) {
	cfg := &config.Config{Rules: &config.Rules{
		Request: []config.Rule{{
			Name:     "catch all",
			Behavior: config.Bag{{Key: "deliver", Value: true}},
		}},
	}}
	m, err := Dispatch(cfg, nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	r := m.Rules[0]
	if r.Phase != "request" || !r.IsActive {
		t.Errorf("phase/active: %q/%v", r.Phase, r.IsActive)
	}
	if len(r.Criteria) != 1 || len(r.Criteria[0]) != 1 {
		t.Fatalf("expected one criteria group with one entry, got %+v", r.Criteria)
	}
	c := r.Criteria[0][0]
	if c.Variable != "${uri}" || c.Conditional != "if" || c.Operator != "matches" {
		t.Errorf("unexpected criterion: %+v", c)
	}
	if c.InputValue == nil || *c.InputValue != ".*" {
		t.Errorf("default match should be .*, got %v", c.InputValue)
	}
}

func TestRulesOrderAssignment(t *testing.T) {
	cfg := &config.Config{Rules: &config.Rules{
		Request: []config.Rule{
			{Name: "first", Behavior: config.Bag{{Key: "deliver", Value: true}}},
			{Name: "second", Behavior: config.Bag{{Key: "deliver", Value: true}}},
		},
		Response: []config.Rule{
			{Name: "resp", Behavior: config.Bag{{Key: "deliver", Value: true}}},
		},
	}}
	m, err := Dispatch(cfg, nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	// Order restarts per phase; slot 1 is reserved for the default rule.
	want := []struct {
		name  string
		phase string
		order int
	}{
		{"first", "request", 2},
		{"second", "request", 3},
		{"resp", "response", 2},
	}
	if len(m.Rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(m.Rules))
	}
	for i, w := range want {
		r := m.Rules[i]
		if r.Name != w.name || r.Phase != w.phase || r.Order != w.order {
			t.Errorf("rule %d: got %s/%s/%d, want %s/%s/%d",
				i, r.Name, r.Phase, r.Order, w.name, w.phase, w.order)
		}
	}
}

func TestRulesCriteriaValidation(t *testing.T) {
	rule := func(criteria [][]config.Criterion) *config.Config {
		return &config.Config{Rules: &config.Rules{
			Request: []config.Rule{{
				Name:     "r",
				Criteria: criteria,
				Behavior: config.Bag{{Key: "deliver", Value: true}},
			}},
		}}
	}

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr string
	}{
		{
			name: "both forms rejected",
			cfg: &config.Config{Rules: &config.Rules{
				Request: []config.Rule{{
					Name:     "r",
					Variable: "uri",
					Criteria: [][]config.Criterion{{{Variable: "uri", Operator: "exists"}}},
					Behavior: config.Bag{{Key: "deliver", Value: true}},
				}},
			}},
			wantErr: "cannot declare both match/variable and criteria",
		},
		{
			name:    "unknown variable",
			cfg:     rule([][]config.Criterion{{{Variable: "moon_phase", Operator: "exists"}}}),
			wantErr: "unknown criterion variable",
		},
		{
			name:    "unknown operator",
			cfg:     rule([][]config.Criterion{{{Variable: "uri", Operator: "resembles"}}}),
			wantErr: `unknown operator "resembles"`,
		},
		{
			name:    "value operator without argument",
			cfg:     rule([][]config.Criterion{{{Variable: "uri", Operator: "matches"}}}),
			wantErr: `operator "matches" requires an argument`,
		},
		{
			name: "valueless operator with argument",
			cfg: rule([][]config.Criterion{{{
				Variable: "uri", Operator: "exists", Argument: "x", HasArgument: true,
			}}}),
			wantErr: `operator "exists" does not take an argument`,
		},
		{
			name: "first conditional must be if",
			cfg: rule([][]config.Criterion{{{
				Variable: "uri", Conditional: "and", Operator: "exists",
			}}}),
			wantErr: `must use the "if" conditional`,
		},
		{
			name: "unknown conditional",
			cfg: rule([][]config.Criterion{{
				{Variable: "uri", Operator: "exists"},
				{Variable: "uri", Conditional: "unless", Operator: "exists"},
			}}),
			wantErr: "unknown conditional",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Dispatch(tt.cfg, nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRulesCriteriaConditionalDefaults(t *testing.T) {
	cfg := &config.Config{Rules: &config.Rules{
		Request: []config.Rule{{
			Name: "multi",
			Criteria: [][]config.Criterion{{
				{Variable: "uri", Operator: "starts_with", Argument: "/api", HasArgument: true},
				{Variable: "host", Operator: "exists"},
			}},
			Behavior: config.Bag{{Key: "deliver", Value: true}},
		}},
	}}
	m, err := Dispatch(cfg, nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	group := m.Rules[0].Criteria[0]
	if group[0].Conditional != "if" {
		t.Errorf("first conditional should default to if, got %q", group[0].Conditional)
	}
	if group[1].Conditional != "and" {
		t.Errorf("later conditionals should default to and, got %q", group[1].Conditional)
	}
	if group[1].InputValue != nil {
		t.Errorf("exists should carry no input_value, got %v", group[1].InputValue)
	}
}

func TestRulesLegacyPreResolvedBehaviors(t *testing.T) {
	cfg := &config.Config{Rules: &config.Rules{
		Request: []config.Rule{{
			Name: "migrated",
			Behaviors: []config.LegacyBehavior{
				{Type: "redirect_http_to_https"},
				{Type: "set_origin", Attributes: map[string]any{"name": "api"}},
			},
		}},
	}}
	m, err := Dispatch(cfg, nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	records := m.Rules[0].Behaviors
	if len(records) != 2 {
		t.Fatalf("expected 2 behavior records, got %d", len(records))
	}
	if records[0].Name != "redirect_http_to_https" || records[1].Name != "set_origin" {
		t.Errorf("unexpected record names: %+v", records)
	}
}

func TestRulesBehaviorReferenceChecked(t *testing.T) {
	cfg := &config.Config{Rules: &config.Rules{
		Request: []config.Rule{{
			Name:     "route",
			Behavior: config.Bag{{Key: "setOrigin", Value: map[string]any{"name": "missing"}}},
		}},
	}}
	if _, err := Dispatch(cfg, nil); err == nil {
		t.Fatal("expected undefined origin reference to fail")
	}

	cfg.Origin = []config.Origin{{
		Name:      "missing",
		Type:      config.OriginSingle,
		Addresses: []config.Address{{Address: "h"}},
	}}
	if _, err := Dispatch(cfg, nil); err != nil {
		t.Fatalf("declared origin reference should pass, got %v", err)
	}
}

func TestRulesRoundTrip(t *testing.T) {
	active := false
	cfg := &config.Config{Rules: &config.Rules{
		Request: []config.Rule{{
			Name:        "rewrite api",
			Description: "strip the prefix",
			Active:      &active,
			Criteria: [][]config.Criterion{{
				{Variable: "uri", Operator: "starts_with", Argument: "/api", HasArgument: true},
			}},
			Behavior: config.Bag{
				{Key: "rewrite", Value: "/v2"},
				{Key: "httpToHttps", Value: true},
			},
		}},
		Response: []config.Rule{{
			Name:     "headers",
			Behavior: config.Bag{{Key: "setHeaders", Value: []any{"X-App: edge"}}},
		}},
	}}
	m, err := Dispatch(cfg, nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	back, err := DispatchReverse(m, nil)
	if err != nil {
		t.Fatalf("reverse dispatch failed: %v", err)
	}

	if len(back.Rules.Request) != 1 || len(back.Rules.Response) != 1 {
		t.Fatalf("phases lost: %+v", back.Rules)
	}
	req := back.Rules.Request[0]
	if req.Name != "rewrite api" || req.Description != "strip the prefix" {
		t.Errorf("metadata lost: %+v", req)
	}
	if req.Active == nil || *req.Active {
		t.Error("inactive flag lost")
	}
	if len(req.Criteria) != 1 || req.Criteria[0][0].Variable != "uri" || req.Criteria[0][0].Argument != "/api" {
		t.Errorf("criteria lost: %+v", req.Criteria)
	}
	if v, ok := req.Behavior.Get("rewrite"); !ok || v != "/v2" {
		t.Errorf("rewrite lost: %v %v", v, ok)
	}
	if v, ok := req.Behavior.Get("httpToHttps"); !ok || v != true {
		t.Errorf("httpToHttps lost: %v %v", v, ok)
	}
	resp := back.Rules.Response[0]
	if _, ok := resp.Behavior.Get("setHeaders"); !ok {
		t.Error("setHeaders lost in response phase")
	}
}

func TestRulesPhaseBifurcation(t *testing.T) {
	cfg := &config.Config{Rules: &config.Rules{
		Request:  []config.Rule{{Name: "req", Behavior: config.Bag{{Key: "setHeaders", Value: []any{"A: 1"}}}}},
		Response: []config.Rule{{Name: "resp", Behavior: config.Bag{{Key: "setHeaders", Value: []any{"B: 2"}}}}},
	}}
	m, err := Dispatch(cfg, nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if m.Rules[0].Behaviors[0].Name != "add_request_header" {
		t.Errorf("request phase: %q", m.Rules[0].Behaviors[0].Name)
	}
	if m.Rules[1].Behaviors[0].Name != "add_response_header" {
		t.Errorf("response phase: %q", m.Rules[1].Behaviors[0].Name)
	}
}

func TestRulesUnknownBehaviorKeysDropped(t *testing.T) {
	cfg := &config.Config{Rules: &config.Rules{
		Request: []config.Rule{{
			Name: "r",
			Behavior: config.Bag{
				{Key: "deliver", Value: true},
				{Key: "teleport", Value: true},
			},
		}},
	}}
	m, err := Dispatch(cfg, nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if len(m.Rules[0].Behaviors) != 1 || m.Rules[0].Behaviors[0].Name != "deliver" {
		t.Errorf("unknown keys should be dropped, got %+v", m.Rules[0].Behaviors)
	}
}
