// Package legacy detects pre-v4 rule shapes in raw configuration
// documents and rewrites them into the current criteria/behaviors shape.
//
// Conversion runs on raw JSON bytes, before the typed decode: legacy
// behavior properties live as arbitrary siblings of the rule's own fields
// and would be silently dropped by a struct decode. Conversion is
// best-effort and never fails; documents already in the current shape pass
// through unchanged.
package legacy

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/internal/behaviors"
)

var phases = []string{"request", "response"}

// hoistable lists, per phase, the behavior keys that old documents declare
// as direct siblings of the rule's fields instead of inside the behavior
// bag. Keys outside these lists are left untouched (and later dropped by
// the typed decode).
var hoistable = map[string]map[string]bool{
	"request": setOf(
		"httpToHttps", "bypassCache", "forwardCookies", "capture",
		"setOrigin", "rewrite", "setCookie", "setHeaders", "runFunction",
		"setCache", "redirectTo301", "redirectTo302", "deliver",
	),
	"response": setOf(
		"enableGZIP", "filterHeader", "filterCookie", "capture",
		"setCookie", "setHeaders", "runFunction",
		"redirectTo301", "redirectTo302", "deliver",
	),
}

func setOf(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// Convert normalizes a raw configuration document: flat behavior
// properties are hoisted into each rule's behavior bag, and V3-shaped
// documents are migrated to the criteria/behaviors form.
func Convert(data []byte) []byte {
	data = hoistFlatBehaviors(data)
	if IsV3Config(data) {
		data = convertV3ToV4(data)
	}
	return data
}

// IsV3Config reports whether the document uses the old rule-engine shape:
// at least one rule carries both variable and match, and no rule already
// declares criteria plus behaviors. Mixed documents are treated as already
// current to avoid double-processing.
func IsV3Config(data []byte) bool {
	hasLegacy := false
	for _, phase := range phases {
		for _, rule := range gjson.GetBytes(data, "rules."+phase).Array() {
			if rule.Get("criteria").Exists() && rule.Get("behaviors").Exists() {
				return false
			}
			if rule.Get("variable").Exists() && rule.Get("match").Exists() {
				hasLegacy = true
			}
		}
	}
	return hasLegacy
}

// hoistFlatBehaviors moves allow-listed behavior keys declared at the
// rule's top level into rule.behavior, preserving value and encounter
// order. Pre-existing behavior keys keep their position; hoisted keys are
// appended after them.
func hoistFlatBehaviors(data []byte) []byte {
	for _, phase := range phases {
		allow := hoistable[phase]
		count := len(gjson.GetBytes(data, "rules."+phase).Array())
		for i := 0; i < count; i++ {
			base := fmt.Sprintf("rules.%s.%d", phase, i)
			var hoist []string
			gjson.GetBytes(data, base).ForEach(func(key, _ gjson.Result) bool {
				if allow[key.String()] {
					hoist = append(hoist, key.String())
				}
				return true
			})
			for _, key := range hoist {
				raw := gjson.GetBytes(data, base+"."+key).Raw
				var err error
				data, err = sjson.SetRawBytes(data, base+".behavior."+key, []byte(raw))
				if err != nil {
					continue
				}
				data, _ = sjson.DeleteBytes(data, base+"."+key)
			}
		}
	}
	return data
}

// convertV3ToV4 rewrites every V3-shaped rule: the flat variable/match
// pair becomes a single criteria group and the behavior bag is resolved
// into legacy-flavor records. A bag yielding no records still produces a
// deliver record as a safety default.
func convertV3ToV4(data []byte) []byte {
	for _, phase := range phases {
		count := len(gjson.GetBytes(data, "rules."+phase).Array())
		for i := 0; i < count; i++ {
			base := fmt.Sprintf("rules.%s.%d", phase, i)
			rule := gjson.GetBytes(data, base)
			if !rule.Get("variable").Exists() && !rule.Get("match").Exists() {
				continue
			}

			variable := rule.Get("variable").String()
			if variable == "" {
				variable = "uri"
			}
			match := rule.Get("match").String()
			if match == "" {
				match = ".*"
			}

			criteria := [][]map[string]any{{{
				"variable":    variable,
				"conditional": "if",
				"operator":    "matches",
				"argument":    match,
			}}}

			records := resolveBag(rule.Get("behavior"), phase, rule.Get("name").String())
			if len(records) == 0 {
				records = []config.LegacyBehavior{{Type: "deliver"}}
			}

			data, _ = sjson.SetBytes(data, base+".criteria", criteria)
			data, _ = sjson.SetBytes(data, base+".behaviors", records)
			data, _ = sjson.DeleteBytes(data, base+".variable")
			data, _ = sjson.DeleteBytes(data, base+".match")
			data, _ = sjson.DeleteBytes(data, base+".behavior")
		}
	}
	return data
}

// resolveBag resolves a raw behavior object through the shared registry
// without referential checks. Resolution errors skip the offending bag
// rather than failing the conversion.
func resolveBag(raw gjson.Result, phase, ruleName string) []config.LegacyBehavior {
	if !raw.IsObject() {
		return nil
	}
	var bag config.Bag
	if err := bag.UnmarshalJSON([]byte(raw.Raw)); err != nil {
		return nil
	}
	records, _, err := behaviors.Resolve(bag, behaviors.Phase(phase), nil, ruleName)
	if err != nil {
		return nil
	}
	return behaviors.ToLegacy(records)
}
