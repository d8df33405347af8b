package core

import (
	"fmt"
	"strings"

	"github.com/akedrou/textdiff"
)

// Explain reports, condition by condition, how a call to method with args
// would resolve. Failed equality conditions include a diff of wanted against
// actual. It is meant for test failure output.
func (m *Mock) Explain(method string, args ...any) string {
	var out strings.Builder

	sets := m.conditions[method]
	params := m.paramNames(method)

	fmt.Fprintf(&out, "%s: %d condition set(s), parameters %v\n", method, len(sets), params)

	for _, set := range sets {
		verdict := "no match"
		if set.matches(params, args) {
			verdict = "match"
		}

		fmt.Fprintf(&out, "  %s (%d condition(s)): %s\n", set.key, len(set.conditions), verdict)

		for _, condition := range set.conditions {
			explainCondition(&out, condition, params, args)
		}
	}

	key := m.resolve(method, args)

	switch _, faulted := m.faults[key]; {
	case faulted:
		fmt.Fprintf(&out, "resolves to %s: fault\n", key)
	case m.members[key] != nil && !m.members[key].property:
		fmt.Fprintf(&out, "resolves to %s: registration\n", key)
	default:
		fmt.Fprintf(&out, "resolves to %s: pass-through\n", key)
	}

	return out.String()
}

func explainCondition(out *strings.Builder, condition Condition, params []string, args []any) {
	actual, found := condition.argument(params, args)
	if !found {
		fmt.Fprintf(out, "    %s: parameter %q not supplied\n", condition.Descriptor, condition.Parameter)

		return
	}

	if condition.Holds(params, args) {
		fmt.Fprintf(out, "    %s: ok\n", condition.Descriptor)

		return
	}

	fmt.Fprintf(out, "    %s: failed for %#v\n", condition.Descriptor, actual)

	if !condition.hasWant {
		return
	}

	diff := textdiff.Unified("want", "got",
		fmt.Sprintf("%#v\n", condition.want), fmt.Sprintf("%#v\n", actual))
	for line := range strings.Lines(diff) {
		out.WriteString("      " + line)
	}
}
