package catalog

// GroupingRule links a combined room to the component rooms it is partitioned
// into. When the combined room is occupied its components cannot be used, so
// availability listings must hide them whenever the combined room is absent
// from the available set. Component occupancy does not hide the combined room;
// the asymmetry is deliberate and must not be "fixed" without changing the
// user-visible contract.
type GroupingRule struct {
	CombinedCode   string
	ComponentCodes []string
}

// defaultGroupingRules mirrors the physical combined/split spaces on campus.
var defaultGroupingRules = []GroupingRule{
	{CombinedCode: "2.62/63", ComponentCodes: []string{"2.62", "2.63"}},
	{CombinedCode: "2.66/67", ComponentCodes: []string{"2.66", "2.67"}},
	{CombinedCode: "4.467", ComponentCodes: []string{"4.46", "4.47"}},
	{CombinedCode: "5.134", ComponentCodes: []string{"5.13", "5.14"}},
	{CombinedCode: "6.345", ComponentCodes: []string{"6.34", "6.35"}},
}

// DefaultGroupingRules returns a copy of the static grouping table.
func DefaultGroupingRules() []GroupingRule {
	out := make([]GroupingRule, len(defaultGroupingRules))
	for i, rule := range defaultGroupingRules {
		components := make([]string, len(rule.ComponentCodes))
		copy(components, rule.ComponentCodes)
		out[i] = GroupingRule{CombinedCode: rule.CombinedCode, ComponentCodes: components}
	}
	return out
}

// ApplyGroupingExclusions filters a set of available room short codes: for
// each rule whose combined room is absent from the set, every component code
// is removed as well. The pass is conservative; it does not ask why the
// combined room is unavailable. The input set is not modified.
func ApplyGroupingExclusions(available map[string]struct{}, rules []GroupingRule) map[string]struct{} {
	filtered := make(map[string]struct{}, len(available))
	for code := range available {
		filtered[code] = struct{}{}
	}
	for _, rule := range rules {
		if _, ok := filtered[rule.CombinedCode]; ok {
			continue
		}
		for _, component := range rule.ComponentCodes {
			delete(filtered, component)
		}
	}
	return filtered
}
