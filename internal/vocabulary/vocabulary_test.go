package vocabulary

import "testing"

func TestIsVariable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"uri", true},
		{"request_method", true},
		{"geoip_country_code", true},
		{"arg_page", true},
		{"cookie_session", true},
		{"http_x_forwarded_for", true},
		{"arg_", false},
		{"nope", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsVariable(tt.name); got != tt.want {
			t.Errorf("IsVariable(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseDynamic(t *testing.T) {
	prefix, suffix, ok := ParseDynamic("cookie_session_id")
	if !ok || prefix != "cookie" || suffix != "session_id" {
		t.Errorf("got (%q, %q, %v)", prefix, suffix, ok)
	}
	if _, _, ok := ParseDynamic("uri"); ok {
		t.Error("static variable should not parse as dynamic")
	}
}

func TestWrapUnwrap(t *testing.T) {
	if got := Wrap("uri"); got != "${uri}" {
		t.Errorf("Wrap = %q", got)
	}
	if got := Wrap("${uri}"); got != "${uri}" {
		t.Errorf("Wrap idempotence = %q", got)
	}
	if got := Unwrap("${uri}"); got != "uri" {
		t.Errorf("Unwrap = %q", got)
	}
	if got := Unwrap("uri"); got != "uri" {
		t.Errorf("Unwrap passthrough = %q", got)
	}
}

func TestOperatorTakesValue(t *testing.T) {
	tests := []struct {
		op    string
		takes bool
		known bool
	}{
		{"matches", true, true},
		{"is_equal", true, true},
		{"does_not_start_with", true, true},
		{"exists", false, true},
		{"does_not_exist", false, true},
		{"regex", false, false},
	}
	for _, tt := range tests {
		takes, known := OperatorTakesValue(tt.op)
		if takes != tt.takes || known != tt.known {
			t.Errorf("OperatorTakesValue(%q) = (%v, %v), want (%v, %v)", tt.op, takes, known, tt.takes, tt.known)
		}
	}
}

func TestIsConditional(t *testing.T) {
	for _, c := range []string{"if", "and", "or"} {
		if !IsConditional(c) {
			t.Errorf("expected %q to be a conditional", c)
		}
	}
	if IsConditional("unless") {
		t.Error("unexpected conditional accepted")
	}
}
