package behaviors

import (
	"strings"
	"testing"

	"github.com/wudi/edgeconfig/config"
)

func refsWith(origins map[string]string, caches, functions []string) *Refs {
	r := &Refs{
		Origins:       origins,
		CacheSettings: make(map[string]bool),
		Functions:     make(map[string]bool),
	}
	if r.Origins == nil {
		r.Origins = make(map[string]string)
	}
	for _, c := range caches {
		r.CacheSettings[c] = true
	}
	for _, f := range functions {
		r.Functions[f] = true
	}
	return r
}

func TestResolvePreservesBagOrder(t *testing.T) {
	var bag config.Bag
	bag.Set("setHeaders", "X-One: 1")
	bag.Set("httpToHttps", true)
	bag.Set("rewrite", "/new")

	records, dropped, err := Resolve(bag, PhaseRequest, nil, "order")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped keys: %v", dropped)
	}

	want := []string{"add_request_header", "redirect_http_to_https", "rewrite_request"}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i, name := range want {
		if records[i].Name != name {
			t.Errorf("record %d: expected %q, got %q", i, name, records[i].Name)
		}
	}
}

func TestResolveDropsUnknownKeys(t *testing.T) {
	var bag config.Bag
	bag.Set("futureBehavior", "whatever")
	bag.Set("deliver", true)

	records, dropped, err := Resolve(bag, PhaseRequest, nil, "forward-compat")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(records) != 1 || records[0].Name != "deliver" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if len(dropped) != 1 || dropped[0] != "futureBehavior" {
		t.Fatalf("unexpected dropped: %v", dropped)
	}
}

func TestResolveSkipsNilAndFalseFlags(t *testing.T) {
	bag := config.Bag{
		{Key: "httpToHttps", Value: false},
		{Key: "forwardCookies", Value: nil},
		{Key: "bypassCache", Value: true},
	}
	records, _, err := Resolve(bag, PhaseRequest, nil, "flags")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(records) != 1 || records[0].Name != "bypass_cache_phase" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestResolvePhaseBifurcation(t *testing.T) {
	tests := []struct {
		phase Phase
		key   string
		value any
		want  string
	}{
		{PhaseRequest, "setHeaders", "A: 1", "add_request_header"},
		{PhaseResponse, "setHeaders", "A: 1", "add_response_header"},
		{PhaseRequest, "setCookie", "k=v", "add_request_cookie"},
		{PhaseResponse, "setCookie", "k=v", "set_response_cookie"},
		{PhaseRequest, "filterHeader", "X-Internal", "filter_request_header"},
		{PhaseResponse, "filterHeader", "X-Internal", "filter_response_header"},
		{PhaseRequest, "filterCookie", "session", "filter_request_cookie"},
		{PhaseResponse, "filterCookie", "session", "filter_response_cookie"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			bag := config.Bag{{Key: tt.key, Value: tt.value}}
			records, _, err := Resolve(bag, tt.phase, nil, "phase")
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			if len(records) != 1 || records[0].Name != tt.want {
				t.Fatalf("expected %q, got %+v", tt.want, records)
			}
		})
	}
}

func TestSetHeadersMultiRecord(t *testing.T) {
	bag := config.Bag{{Key: "setHeaders", Value: []any{"A:1", "B :  2"}}}
	records, _, err := Resolve(bag, PhaseRequest, nil, "headers")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Target != "A: 1" || records[1].Target != "B: 2" {
		t.Errorf("unexpected targets: %v, %v", records[0].Target, records[1].Target)
	}
}

func TestNormalizePair(t *testing.T) {
	tests := []struct {
		in, sep, want string
	}{
		{"A:1", ":", "A: 1"},
		{"A : 1", ":", "A: 1"},
		{"A", ":", "A:"},
		{"A:", ":", "A:"},
		{"k=v", "=", "k=v"},
		{"k = v", "=", "k=v"},
		{"k", "=", "k="},
		{"k=", "=", "k="},
	}
	for _, tt := range tests {
		if got := normalizePair(tt.in, tt.sep); got != tt.want {
			t.Errorf("normalizePair(%q, %q) = %q, want %q", tt.in, tt.sep, got, tt.want)
		}
	}
}

func TestSetOriginReference(t *testing.T) {
	refs := refsWith(map[string]string{"api": "single_origin"}, nil, nil)

	bag := config.Bag{{Key: "setOrigin", Value: map[string]any{"name": "api", "type": "single_origin"}}}
	records, _, err := Resolve(bag, PhaseRequest, refs, "ok")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if records[0].Name != "set_origin" || records[0].Target != "api" {
		t.Fatalf("unexpected record: %+v", records[0])
	}

	bag = config.Bag{{Key: "setOrigin", Value: "missing"}}
	_, _, err = Resolve(bag, PhaseRequest, refs, "bad")
	if err == nil || !strings.Contains(err.Error(), `references origin "missing", which is not defined in the origin section`) {
		t.Fatalf("expected missing origin error, got %v", err)
	}
}

func TestSetOriginSkipsCheckWithoutRefs(t *testing.T) {
	bag := config.Bag{{Key: "setOrigin", Value: "anything"}}
	if _, _, err := Resolve(bag, PhaseRequest, nil, "legacy"); err != nil {
		t.Fatalf("expected referential check to be skipped, got %v", err)
	}
}

func TestSetCacheReference(t *testing.T) {
	refs := refsWith(nil, []string{"static"}, nil)

	bag := config.Bag{{Key: "setCache", Value: "static"}}
	records, _, err := Resolve(bag, PhaseRequest, refs, "ok")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if records[0].Name != "set_cache_policy" {
		t.Fatalf("unexpected record: %+v", records[0])
	}

	bag = config.Bag{{Key: "setCache", Value: "missing"}}
	if _, _, err := Resolve(bag, PhaseRequest, refs, "bad"); err == nil {
		t.Fatal("expected missing cache setting error")
	}

	// Inline definitions pass through with a name.
	bag = config.Bag{{Key: "setCache", Value: map[string]any{"name": "inline", "browser_cache_settings_maximum_ttl": float64(60)}}}
	if _, _, err := Resolve(bag, PhaseRequest, refs, "inline"); err != nil {
		t.Fatalf("inline cache failed: %v", err)
	}
}

func TestRunFunctionReference(t *testing.T) {
	refs := refsWith(nil, nil, []string{"auth"})

	bag := config.Bag{{Key: "runFunction", Value: "auth"}}
	if _, _, err := Resolve(bag, PhaseRequest, refs, "ok"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	bag = config.Bag{{Key: "runFunction", Value: "ghost"}}
	if _, _, err := Resolve(bag, PhaseRequest, refs, "bad"); err == nil {
		t.Fatal("expected missing function error")
	}

	// Numeric IDs are assumed pre-resolved.
	bag = config.Bag{{Key: "runFunction", Value: float64(42)}}
	if _, _, err := Resolve(bag, PhaseRequest, refs, "id"); err != nil {
		t.Fatalf("numeric id failed: %v", err)
	}
}

func TestCaptureTarget(t *testing.T) {
	bag := config.Bag{{Key: "capture", Value: map[string]any{
		"match":    "^/v(\\d+)",
		"captured": "version",
		"subject":  "uri",
	}}}
	records, _, err := Resolve(bag, PhaseRequest, nil, "capture")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	target, ok := records[0].Target.(map[string]any)
	if !ok {
		t.Fatalf("expected map target, got %T", records[0].Target)
	}
	if target["subject"] != "${uri}" {
		t.Errorf("expected wrapped subject, got %v", target["subject"])
	}
	if target["regex"] != "^/v(\\d+)" || target["captured_array"] != "version" {
		t.Errorf("unexpected target: %v", target)
	}
}

func TestToLegacyFromLegacy(t *testing.T) {
	var bag config.Bag
	bag.Set("httpToHttps", true)
	bag.Set("rewrite", "/new")

	records, _, err := Resolve(bag, PhaseRequest, nil, "legacy")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	legacy := ToLegacy(records)
	if legacy[0].Type != "redirect_http_to_https" || legacy[1].Type != "rewrite_request" {
		t.Fatalf("unexpected legacy records: %+v", legacy)
	}
	back := FromLegacy(legacy)
	for i := range records {
		if back[i].Name != records[i].Name {
			t.Errorf("record %d: expected %q, got %q", i, records[i].Name, back[i].Name)
		}
	}
}
