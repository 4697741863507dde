package behaviors

import (
	"strings"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

// ReverseRule reconstructs a behavior bag from normalized records for the
// manifest-to-config direction. originType resolves an origin name to its
// declared type for the setOrigin object form; it may be nil. Records
// whose names are not part of the vocabulary are skipped, mirroring the
// forward direction's permissiveness.
func ReverseRule(records []manifest.Behavior, phase Phase, originType func(name string) string) config.Bag {
	var bag config.Bag
	for _, rec := range records {
		switch rec.Name {
		case "redirect_http_to_https":
			bag.Set("httpToHttps", true)
		case "bypass_cache_phase":
			bag.Set("bypassCache", true)
		case "forward_cookies":
			bag.Set("forwardCookies", true)
		case "deliver":
			bag.Set("deliver", true)
		case "enable_gzip":
			bag.Set("enableGZIP", true)
		case "rewrite_request":
			bag.Set("rewrite", rec.Target)
		case "redirect_to_301":
			bag.Set("redirectTo301", rec.Target)
		case "redirect_to_302":
			bag.Set("redirectTo302", rec.Target)
		case "run_function":
			bag.Set("runFunction", rec.Target)
		case "set_cache_policy":
			bag.Set("setCache", rec.Target)
		case "set_origin":
			name, _ := rec.Target.(string)
			typ := config.OriginSingle
			if originType != nil {
				if t := originType(name); t != "" {
					typ = t
				}
			}
			bag.Set("setOrigin", map[string]any{"name": name, "type": typ})
		case "add_request_header", "add_response_header":
			appendToList(&bag, "setHeaders", rec.Target)
		case "filter_request_header", "filter_response_header":
			bag.Set("filterHeader", rec.Target)
		case "add_request_cookie", "set_response_cookie":
			bag.Set("setCookie", rec.Target)
		case "filter_request_cookie", "filter_response_cookie":
			bag.Set("filterCookie", rec.Target)
		case "capture_match_groups":
			if m, ok := rec.Target.(map[string]any); ok {
				capture := map[string]any{
					"match":    m["regex"],
					"captured": m["captured_array"],
				}
				if s, ok := m["subject"].(string); ok {
					capture["subject"] = unwrapVariable(s)
				}
				bag.Set("capture", capture)
			}
		}
	}
	return bag
}

// ReverseFirewall reconstructs a firewall behavior bag from records.
func ReverseFirewall(records []manifest.Behavior) config.Bag {
	var bag config.Bag
	for _, rec := range records {
		switch rec.Name {
		case "deny":
			bag.Set("deny", true)
		case "drop":
			bag.Set("drop", true)
		case "tag_event":
			bag.Set("tagEvent", rec.Target)
		case "run_function":
			bag.Set("runFunction", rec.Target)
		case "set_rate_limit":
			if m, ok := rec.Target.(map[string]any); ok {
				value := map[string]any{
					"type":    m["type"],
					"limitBy": m["limit_by"],
				}
				if v, ok := m["average_rate_limit"]; ok {
					value["averageRateLimit"] = v
				}
				if v, ok := m["maximum_burst_size"]; ok {
					value["maximumBurstSize"] = v
				}
				bag.Set("setRateLimit", value)
			}
		case "set_custom_response":
			if m, ok := rec.Target.(map[string]any); ok {
				bag.Set("setCustomResponse", map[string]any{
					"statusCode":  m["status_code"],
					"contentType": m["content_type"],
					"contentBody": m["content_body"],
				})
			}
		case "set_waf_ruleset":
			if m, ok := rec.Target.(map[string]any); ok {
				value := map[string]any{"mode": m["mode"]}
				if v, ok := m["waf_id"]; ok {
					value["id"] = v
				}
				if v, ok := m["name"]; ok {
					value["name"] = v
				}
				bag.Set("setWafRuleset", value)
			}
		}
	}
	return bag
}

// appendToList accumulates multi-record behaviors (headers) into one list
// valued bag entry.
func appendToList(bag *config.Bag, key string, target any) {
	s, ok := target.(string)
	if !ok {
		return
	}
	existing, found := bag.Get(key)
	if !found {
		bag.Set(key, []string{s})
		return
	}
	if list, ok := existing.([]string); ok {
		bag.Set(key, append(list, s))
	}
}

func unwrapVariable(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return s[2 : len(s)-1]
	}
	return s
}
