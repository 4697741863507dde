// Package behaviors resolves a rule's behavior bag into the ordered list
// of normalized behavior records.
//
// One registry serves both manifest flavors: records are produced in the
// primary {name, target} representation and converted to the legacy
// {type, attributes} form by ToLegacy when the V3 import path needs it.
// Unknown bag keys are skipped, never rejected, so configurations carrying
// hints from newer versions keep working.
package behaviors

import (
	"fmt"
	"strings"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

// Phase selects the behavior vocabulary.
type Phase string

// Rule phases.
const (
	PhaseRequest  Phase = "request"
	PhaseResponse Phase = "response"
)

// Refs carries the entity names declared by the source configuration
// document. Referential checks are skipped entirely when Refs is nil
// (legacy best-effort conversion).
type Refs struct {
	Origins       map[string]string // name -> origin type
	CacheSettings map[string]bool
	Functions     map[string]bool
}

// NewRefs collects the referenceable entity names from a configuration.
func NewRefs(cfg *config.Config) *Refs {
	r := &Refs{
		Origins:       make(map[string]string),
		CacheSettings: make(map[string]bool),
		Functions:     make(map[string]bool),
	}
	for _, o := range cfg.Origin {
		r.Origins[o.Name] = o.Type
	}
	for _, c := range cfg.Cache {
		r.CacheSettings[c.Name] = true
	}
	for _, f := range cfg.Functions {
		r.Functions[f.Name] = true
	}
	return r
}

type resolveContext struct {
	phase Phase
	refs  *Refs
	rule  string
}

type transform func(value any, rc resolveContext) ([]manifest.Behavior, error)

// Resolve converts a behavior bag into ordered behavior records for the
// given phase. The returned record order is the bag's declaration order.
// Keys absent from the phase vocabulary are returned in dropped.
func Resolve(bag config.Bag, phase Phase, refs *Refs, ruleName string) (records []manifest.Behavior, dropped []string, err error) {
	table := requestTransforms
	if phase == PhaseResponse {
		table = responseTransforms
	}

	rc := resolveContext{phase: phase, refs: refs, rule: ruleName}
	for _, entry := range bag {
		if entry.Value == nil {
			continue
		}
		fn, ok := table[entry.Key]
		if !ok {
			dropped = append(dropped, entry.Key)
			continue
		}
		recs, err := fn(entry.Value, rc)
		if err != nil {
			return nil, dropped, err
		}
		records = append(records, recs...)
	}
	return records, dropped, nil
}

// ToLegacy converts primary-flavor records to the legacy V3 import flavor.
func ToLegacy(records []manifest.Behavior) []config.LegacyBehavior {
	out := make([]config.LegacyBehavior, 0, len(records))
	for _, r := range records {
		out = append(out, config.LegacyBehavior{Type: r.Name, Attributes: r.Target})
	}
	return out
}

// FromLegacy converts pre-resolved legacy records back to the primary
// flavor, used when a migrated V3 document flows through the pipeline.
func FromLegacy(records []config.LegacyBehavior) []manifest.Behavior {
	out := make([]manifest.Behavior, 0, len(records))
	for _, r := range records {
		out = append(out, manifest.Behavior{Name: r.Type, Target: r.Attributes})
	}
	return out
}

var requestTransforms = map[string]transform{
	"httpToHttps":    flag("redirect_http_to_https"),
	"bypassCache":    flag("bypass_cache_phase"),
	"forwardCookies": flag("forward_cookies"),
	"deliver":        flag("deliver"),
	"capture":        capture,
	"setOrigin":      setOrigin,
	"rewrite":        stringTarget("rewrite_request"),
	"setCookie":      setCookie,
	"setHeaders":     setHeaders,
	"runFunction":    runFunction,
	"setCache":       setCache,
	"redirectTo301":  stringTarget("redirect_to_301"),
	"redirectTo302":  stringTarget("redirect_to_302"),
	"filterHeader":   filterHeader,
	"filterCookie":   filterCookie,
}

var responseTransforms = map[string]transform{
	"enableGZIP":    flag("enable_gzip"),
	"deliver":       flag("deliver"),
	"capture":       capture,
	"setCookie":     setCookie,
	"setHeaders":    setHeaders,
	"runFunction":   runFunction,
	"redirectTo301": stringTarget("redirect_to_301"),
	"redirectTo302": stringTarget("redirect_to_302"),
	"filterHeader":  filterHeader,
	"filterCookie":  filterCookie,
}

// flag builds a transform for boolean-valued no-arg behaviors. A false
// value skips the record instead of producing a disabled one.
func flag(name string) transform {
	return func(value any, _ resolveContext) ([]manifest.Behavior, error) {
		if b, ok := value.(bool); ok && !b {
			return nil, nil
		}
		return []manifest.Behavior{{Name: name}}, nil
	}
}

// stringTarget builds a transform for behaviors carrying a single string.
func stringTarget(name string) transform {
	return func(value any, rc resolveContext) ([]manifest.Behavior, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("rule %q: %s requires a string value", rc.rule, name)
		}
		return []manifest.Behavior{{Name: name, Target: s}}, nil
	}
}

func capture(value any, rc resolveContext) ([]manifest.Behavior, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rule %q: capture requires an object value", rc.rule)
	}
	subject, _ := m["subject"].(string)
	if subject == "" {
		subject = "uri"
	}
	target := map[string]any{
		"regex":          m["match"],
		"captured_array": m["captured"],
		"subject":        "${" + subject + "}",
	}
	return []manifest.Behavior{{Name: "capture_match_groups", Target: target}}, nil
}

func setOrigin(value any, rc resolveContext) ([]manifest.Behavior, error) {
	var name string
	switch v := value.(type) {
	case string:
		name = v
	case map[string]any:
		name, _ = v["name"].(string)
	}
	if name == "" {
		return nil, fmt.Errorf("rule %q: setOrigin requires an origin name", rc.rule)
	}
	if rc.refs != nil {
		if _, ok := rc.refs.Origins[name]; !ok {
			return nil, fmt.Errorf("rule %q: setOrigin references origin %q, which is not defined in the origin section", rc.rule, name)
		}
	}
	return []manifest.Behavior{{Name: "set_origin", Target: name}}, nil
}

func setCache(value any, rc resolveContext) ([]manifest.Behavior, error) {
	switch v := value.(type) {
	case string:
		if rc.refs != nil && !rc.refs.CacheSettings[v] {
			return nil, fmt.Errorf("rule %q: setCache references cache setting %q, which is not defined in the cache section", rc.rule, v)
		}
		return []manifest.Behavior{{Name: "set_cache_policy", Target: v}}, nil
	case map[string]any:
		// Inline cache definition: passed through with its declared name.
		if name, _ := v["name"].(string); name == "" {
			return nil, fmt.Errorf("rule %q: inline setCache requires a name", rc.rule)
		}
		return []manifest.Behavior{{Name: "set_cache_policy", Target: v}}, nil
	default:
		return nil, fmt.Errorf("rule %q: setCache requires a name or an inline cache object", rc.rule)
	}
}

func runFunction(value any, rc resolveContext) ([]manifest.Behavior, error) {
	switch v := value.(type) {
	case string:
		if rc.refs != nil && !rc.refs.Functions[v] {
			return nil, fmt.Errorf("rule %q: runFunction references function %q, which is not defined in the functions section", rc.rule, v)
		}
		return []manifest.Behavior{{Name: "run_function", Target: v}}, nil
	case float64, int:
		// Numeric function IDs are assumed pre-resolved.
		return []manifest.Behavior{{Name: "run_function", Target: v}}, nil
	default:
		return nil, fmt.Errorf("rule %q: runFunction requires a function name or ID", rc.rule)
	}
}

func setHeaders(value any, rc resolveContext) ([]manifest.Behavior, error) {
	name := "add_request_header"
	if rc.phase == PhaseResponse {
		name = "add_response_header"
	}
	headers, err := stringList(value)
	if err != nil {
		return nil, fmt.Errorf("rule %q: setHeaders requires a header string or list", rc.rule)
	}
	var records []manifest.Behavior
	for _, h := range headers {
		records = append(records, manifest.Behavior{Name: name, Target: normalizePair(h, ":")})
	}
	return records, nil
}

func setCookie(value any, rc resolveContext) ([]manifest.Behavior, error) {
	name := "add_request_cookie"
	if rc.phase == PhaseResponse {
		name = "set_response_cookie"
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("rule %q: setCookie requires a string value", rc.rule)
	}
	return []manifest.Behavior{{Name: name, Target: normalizePair(s, "=")}}, nil
}

func filterHeader(value any, rc resolveContext) ([]manifest.Behavior, error) {
	name := "filter_request_header"
	if rc.phase == PhaseResponse {
		name = "filter_response_header"
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("rule %q: filterHeader requires a header name", rc.rule)
	}
	return []manifest.Behavior{{Name: name, Target: s}}, nil
}

func filterCookie(value any, rc resolveContext) ([]manifest.Behavior, error) {
	name := "filter_request_cookie"
	if rc.phase == PhaseResponse {
		name = "filter_response_cookie"
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("rule %q: filterCookie requires a cookie name", rc.rule)
	}
	return []manifest.Behavior{{Name: name, Target: s}}, nil
}

// normalizePair splits on the first separator, trims both sides and joins
// them back. A missing remainder defaults to the empty string, so "A:1"
// becomes "A: 1" while "A" and "A:" both become "A:" (or "A=" for "=").
func normalizePair(s, sep string) string {
	key, val, _ := strings.Cut(s, sep)
	key = strings.TrimSpace(key)
	val = strings.TrimSpace(val)
	if sep == "=" {
		return key + "=" + val
	}
	return strings.TrimSpace(key + ": " + val)
}

// stringList accepts a string, []string or []any of strings.
func stringList(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string or string list, got %T", value)
	}
}
