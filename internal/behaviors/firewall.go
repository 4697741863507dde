package behaviors

import (
	"fmt"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

// finalNames are the behaviors that terminate firewall rule processing.
// At most one may appear in a single rule's behavior set.
var finalNames = map[string]bool{
	"deny":                true,
	"drop":                true,
	"set_rate_limit":      true,
	"set_custom_response": true,
}

var firewallTransforms = map[string]transform{
	"deny":              flag("deny"),
	"drop":              flag("drop"),
	"setRateLimit":      setRateLimit,
	"setCustomResponse": setCustomResponse,
	"setWafRuleset":     setWafRuleset,
	"runFunction":       runFunction,
	"tagEvent":          stringTarget("tag_event"),
}

// ResolveFirewall converts a firewall rule's behavior bag into ordered
// records, enforcing the final-behavior mutual exclusion.
func ResolveFirewall(bag config.Bag, refs *Refs, ruleName string) (records []manifest.Behavior, dropped []string, err error) {
	rc := resolveContext{phase: PhaseRequest, refs: refs, rule: ruleName}
	finals := 0
	for _, entry := range bag {
		if entry.Value == nil {
			continue
		}
		fn, ok := firewallTransforms[entry.Key]
		if !ok {
			dropped = append(dropped, entry.Key)
			continue
		}
		recs, err := fn(entry.Value, rc)
		if err != nil {
			return nil, dropped, err
		}
		for _, r := range recs {
			if finalNames[r.Name] {
				finals++
			}
		}
		records = append(records, recs...)
	}
	if finals > 1 {
		return nil, dropped, fmt.Errorf("rule %q: cannot use multiple final behaviors", ruleName)
	}
	return records, dropped, nil
}

func setRateLimit(value any, rc resolveContext) ([]manifest.Behavior, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rule %q: setRateLimit requires an object value", rc.rule)
	}
	target := map[string]any{
		"type":     stringOr(m["type"], "second"),
		"limit_by": stringOr(m["limitBy"], "client_ip"),
	}
	if v, ok := m["averageRateLimit"]; ok {
		target["average_rate_limit"] = v
	}
	if v, ok := m["maximumBurstSize"]; ok {
		target["maximum_burst_size"] = v
	}
	return []manifest.Behavior{{Name: "set_rate_limit", Target: target}}, nil
}

func setCustomResponse(value any, rc resolveContext) ([]manifest.Behavior, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rule %q: setCustomResponse requires an object value", rc.rule)
	}
	target := map[string]any{
		"status_code":  m["statusCode"],
		"content_type": m["contentType"],
		"content_body": m["contentBody"],
	}
	return []manifest.Behavior{{Name: "set_custom_response", Target: target}}, nil
}

func setWafRuleset(value any, rc resolveContext) ([]manifest.Behavior, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rule %q: setWafRuleset requires an object value", rc.rule)
	}
	target := map[string]any{
		"mode": stringOr(m["mode"], "blocking"),
	}
	if v, ok := m["id"]; ok {
		target["waf_id"] = v
	}
	if v, ok := m["name"]; ok {
		target["name"] = v
	}
	return []manifest.Behavior{{Name: "set_waf_ruleset", Target: target}}, nil
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}
