// Package vocabulary holds the fixed criterion vocabulary: variable names,
// dynamic variable prefixes, operators and conditionals.
package vocabulary

import "strings"

// variables is the fixed set of static criterion variables.
var variables = map[string]bool{
	"uri":                     true,
	"scheme":                  true,
	"host":                    true,
	"domain":                  true,
	"request_uri":             true,
	"request_method":          true,
	"query_string":            true,
	"remote_addr":             true,
	"device_group":            true,
	"geoip_city":              true,
	"geoip_city_country_iso":  true,
	"geoip_city_country_name": true,
	"geoip_continent_code":    true,
	"geoip_country_code":      true,
	"geoip_country_name":      true,
	"geoip_region":            true,
	"geoip_region_name":       true,
	"ssl_verification_status": true,
}

// dynamicPrefixes are the prefixes of dynamically named variables such as
// arg_page, cookie_session or http_x_forwarded_for.
var dynamicPrefixes = []string{"arg_", "cookie_", "http_"}

// ParseDynamic splits a dynamic variable name into prefix and suffix.
// e.g. "arg_page" returns ("arg", "page", true).
func ParseDynamic(name string) (prefix, suffix string, ok bool) {
	for _, p := range dynamicPrefixes {
		if strings.HasPrefix(name, p) && len(name) > len(p) {
			return p[:len(p)-1], name[len(p):], true
		}
	}
	return "", "", false
}

// IsVariable reports whether name (without ${} delimiters) is a valid
// criterion variable.
func IsVariable(name string) bool {
	if variables[name] {
		return true
	}
	_, _, ok := ParseDynamic(name)
	return ok
}

// Wrap surrounds a variable name with ${} delimiters if missing.
func Wrap(name string) string {
	if strings.HasPrefix(name, "${") && strings.HasSuffix(name, "}") {
		return name
	}
	return "${" + name + "}"
}

// Unwrap strips the ${} delimiters if present.
func Unwrap(name string) string {
	if strings.HasPrefix(name, "${") && strings.HasSuffix(name, "}") {
		return name[2 : len(name)-1]
	}
	return name
}

// valueOperators take an input value; valuelessOperators forbid one.
var valueOperators = map[string]bool{
	"is_equal":            true,
	"is_not_equal":        true,
	"starts_with":         true,
	"does_not_start_with": true,
	"matches":             true,
	"does_not_match":      true,
}

var valuelessOperators = map[string]bool{
	"exists":         true,
	"does_not_exist": true,
}

// OperatorTakesValue reports whether op requires an input value and
// whether op is part of the vocabulary at all.
func OperatorTakesValue(op string) (takes, known bool) {
	if valueOperators[op] {
		return true, true
	}
	if valuelessOperators[op] {
		return false, true
	}
	return false, false
}

// conditionals joins criteria within a group.
var conditionals = map[string]bool{"if": true, "and": true, "or": true}

// IsConditional reports whether c is a valid conditional.
func IsConditional(c string) bool { return conditionals[c] }
