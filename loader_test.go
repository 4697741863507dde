package edgeconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderParseJSON(t *testing.T) {
	l := NewLoader()
	cfg, err := l.Parse([]byte(`{"name": "site", "origin": [{"name": "api", "type": "single_origin", "addresses": ["h"]}]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Name != "site" || len(cfg.Origin) != 1 || cfg.Origin[0].Addresses[0].Address != "h" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoaderParseYAML(t *testing.T) {
	l := NewLoader()
	cfg, err := l.Parse([]byte(`
name: site
rules:
  request:
    - name: ordered
      behavior:
        rewrite: /v2
        deliver: true
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	bag := cfg.Rules.Request[0].Behavior
	if len(bag) != 2 || bag[0].Key != "rewrite" || bag[1].Key != "deliver" {
		t.Errorf("behavior order lost: %+v", bag)
	}
}

func TestLoaderEnvExpansion(t *testing.T) {
	t.Setenv("EDGE_SITE_NAME", "from-env")
	l := NewLoader()
	cfg, err := l.Parse([]byte(`{"name": "${EDGE_SITE_NAME}"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("env expansion: %q", cfg.Name)
	}
}

func TestLoaderUnsetVariablesKeepPlaceholder(t *testing.T) {
	l := NewLoader()
	cfg, err := l.Parse([]byte(`{
		"rules": {"request": [{
			"name": "r",
			"criteria": [[{"variable": "${uri}", "operator": "matches", "argument": ".*"}]],
			"behavior": {"deliver": true}
		}]}
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := cfg.Rules.Request[0].Criteria[0][0].Variable; got != "${uri}" {
		t.Errorf("criterion variable should pass through untouched, got %q", got)
	}
}

func TestLoaderHoistsFlatBehaviors(t *testing.T) {
	l := NewLoader()
	cfg, err := l.Parse([]byte(`{
		"rules": {"request": [{
			"name": "old style",
			"criteria": [[{"variable": "${uri}", "operator": "matches", "argument": ".*"}]],
			"httpToHttps": true,
			"rewrite": "/v2"
		}]}
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	bag := cfg.Rules.Request[0].Behavior
	if v, ok := bag.Get("httpToHttps"); !ok || v != true {
		t.Errorf("httpToHttps not hoisted: %v %v", v, ok)
	}
	if v, ok := bag.Get("rewrite"); !ok || v != "/v2" {
		t.Errorf("rewrite not hoisted: %v %v", v, ok)
	}
}

func TestLoaderMigratesV3Rules(t *testing.T) {
	l := NewLoader()
	cfg, err := l.Parse([]byte(`{
		"rules": {"request": [{
			"name": "v3 rule",
			"variable": "uri",
			"match": "^/api",
			"behavior": {"httpToHttps": true}
		}]}
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := cfg.Rules.Request[0]
	if r.Variable != "" || r.Match != "" {
		t.Errorf("v3 fields should be consumed: %+v", r)
	}
	if len(r.Criteria) != 1 || r.Criteria[0][0].Argument != "^/api" {
		t.Errorf("criteria: %+v", r.Criteria)
	}
	if len(r.Behaviors) != 1 || r.Behaviors[0].Type != "redirect_http_to_https" {
		t.Errorf("behaviors: %+v", r.Behaviors)
	}
}

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edgeconfig.yaml")
	if err := os.WriteFile(path, []byte("name: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader()
	cfg, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "from-file" {
		t.Errorf("name: %q", cfg.Name)
	}

	if _, err := l.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected missing file to fail")
	}
}
