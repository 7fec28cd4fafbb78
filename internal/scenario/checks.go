package scenario

import (
	"errors"
	"strconv"

	"github.com/smil-anim/timing-go/pkg/timegraph"
	"github.com/smil-anim/timing-go/pkg/timing"
)

// Check evaluates an expect step against the graph. Expected values that
// fail to parse produce a failed check.
func Check(g *timegraph.Graph, step *Step) []*CheckResult {
	var out []*CheckResult
	exp := step.Expectation

	if exp.Suppressed != nil {
		out = append(out, compareInt("pass.suppressed", *exp.Suppressed, g.LastPass().Suppressed))
	}

	if step.Element == "" {
		return out
	}
	e, ok := g.Element(step.Element)
	if !ok {
		return append(out, &CheckResult{Key: step.Element, Expected: "element", Actual: "unknown element"})
	}
	prefix := step.Element + "."

	if exp.Begin != nil {
		out = append(out, compareList(prefix+"begin", *exp.Begin, e.Instances(timing.Begin).Times()))
	}
	if exp.End != nil {
		out = append(out, compareList(prefix+"end", *exp.End, e.Instances(timing.End).Times()))
	}

	if exp.NoInterval {
		actual := "none"
		if iv := e.Interval(); iv != nil {
			actual = iv.String()
		}
		out = append(out, &CheckResult{Key: prefix + "interval", Expected: "none", Actual: actual, Passed: e.Interval() == nil})
	}
	if exp.Interval != nil {
		out = append(out, compareInterval(prefix+"interval", exp.Interval, e.Interval()))
	}

	errs := e.Errors()
	if exp.Errors != nil {
		out = append(out, compareInt(prefix+"errors", *exp.Errors, len(errs)))
	}
	if exp.CyclicErrors != nil {
		out = append(out, compareInt(prefix+"cyclic_errors", *exp.CyclicErrors, countErrors(errs, timing.ErrCyclicDependency)))
	}
	if exp.UnresolvedErrors != nil {
		out = append(out, compareInt(prefix+"unresolved_errors", *exp.UnresolvedErrors, countErrors(errs, timing.ErrUnresolvedReference)))
	}
	return out
}

func compareList(key string, expected []string, actual []timing.Time) *CheckResult {
	res := &CheckResult{Key: key, Actual: FormatTimes(actual)}
	want, err := ParseTimes(expected)
	if err != nil {
		res.Expected = err.Error()
		return res
	}
	res.Expected = FormatTimes(want)
	if len(want) != len(actual) {
		return res
	}
	for i := range want {
		if want[i] != actual[i] {
			return res
		}
	}
	res.Passed = true
	return res
}

func compareInterval(key string, expected *IntervalExpect, iv *timing.Interval) *CheckResult {
	res := &CheckResult{Key: key, Actual: "none"}
	begin, err := ParseTime(expected.Begin)
	if err != nil {
		res.Expected = err.Error()
		return res
	}
	end, err := ParseTime(expected.End)
	if err != nil {
		res.Expected = err.Error()
		return res
	}
	res.Expected = "[" + begin.String() + ", " + end.String() + ")"
	if iv == nil {
		return res
	}
	res.Actual = "[" + iv.Begin().String() + ", " + iv.End().String() + ")"
	res.Passed = iv.Begin() == begin && iv.End() == end
	return res
}

func compareInt(key string, expected, actual int) *CheckResult {
	return &CheckResult{
		Key:      key,
		Expected: strconv.Itoa(expected),
		Actual:   strconv.Itoa(actual),
		Passed:   expected == actual,
	}
}

func countErrors(errs []error, target error) int {
	n := 0
	for _, err := range errs {
		if errors.Is(err, target) {
			n++
		}
	}
	return n
}
