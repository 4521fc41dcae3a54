package extractor

import "github.com/tidwall/gjson"

// Rule resolves the items of one API page.
// Apply reports false when the rule does not match the page shape.
type Rule struct {
	Name  string
	Apply func(page gjson.Result) ([]gjson.Result, bool)
}

// Rule names, in evaluation order
const (
	RuleValueEnvelope   = "value-envelope"
	RuleBareArray       = "bare-array"
	RuleFirstArrayField = "first-array-field"
	RuleWholePage       = "whole-page"
)

// Rules is the ordered resolution policy; the first matching rule wins.
// The order is part of the output contract.
var Rules = []Rule{
	{Name: RuleValueEnvelope, Apply: valueEnvelope},
	{Name: RuleBareArray, Apply: bareArray},
	{Name: RuleFirstArrayField, Apply: firstArrayField},
	{Name: RuleWholePage, Apply: wholePage},
}

// Normalize extracts the flat item list from one page payload
func Normalize(page gjson.Result) []gjson.Result {
	items, _ := NormalizeWithRule(page)
	return items
}

// NormalizeWithRule is Normalize that also names the rule that matched
func NormalizeWithRule(page gjson.Result) ([]gjson.Result, string) {
	for _, rule := range Rules {
		if items, ok := rule.Apply(page); ok {
			return items, rule.Name
		}
	}
	// Unreachable while RuleWholePage is last
	return []gjson.Result{page}, RuleWholePage
}

// valueEnvelope matches {"value": [...], ...}
func valueEnvelope(page gjson.Result) ([]gjson.Result, bool) {
	if !page.IsObject() {
		return nil, false
	}
	var items []gjson.Result
	found := false
	page.ForEach(func(key, value gjson.Result) bool {
		if key.String() != "value" {
			return true
		}
		if value.IsArray() {
			items = value.Array()
			found = true
		}
		return false
	})
	return items, found
}

// bareArray matches a page that is itself an array
func bareArray(page gjson.Result) ([]gjson.Result, bool) {
	if !page.IsArray() {
		return nil, false
	}
	return page.Array(), true
}

// firstArrayField matches an object holding at least one array, taking the first in document order
func firstArrayField(page gjson.Result) ([]gjson.Result, bool) {
	if !page.IsObject() {
		return nil, false
	}
	var items []gjson.Result
	found := false
	page.ForEach(func(_, value gjson.Result) bool {
		if value.IsArray() {
			items = value.Array()
			found = true
			return false
		}
		return true
	})
	return items, found
}

// wholePage wraps anything else as a single item
func wholePage(page gjson.Result) ([]gjson.Result, bool) {
	return []gjson.Result{page}, true
}
