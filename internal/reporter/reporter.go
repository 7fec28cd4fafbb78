// Package reporter formats scenario results.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/smil-anim/timing-go/internal/config"
	"github.com/smil-anim/timing-go/internal/scenario"
)

// Reporter formats and outputs scenario results.
type Reporter interface {
	// ReportSuite reports results for a suite of scenarios.
	ReportSuite(result *scenario.SuiteResult)

	// ReportScenario reports results for a single scenario.
	ReportScenario(result *scenario.Result)
}

// New returns the reporter for format ("text", "json" or "junit").
func New(format string, w io.Writer, verbose bool) (Reporter, error) {
	switch format {
	case config.FormatText, "":
		return NewTextReporter(w, verbose), nil
	case config.FormatJSON:
		return NewJSONReporter(w, verbose), nil
	case config.FormatJUnit:
		return NewJUnitReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown report format: %s", format)
	}
}

func status(result *scenario.Result) string {
	switch {
	case result.Skipped:
		return "SKIP"
	case result.Passed:
		return "PASS"
	default:
		return "FAIL"
	}
}

func passRate(result *scenario.SuiteResult) float64 {
	total := result.PassCount + result.FailCount
	if total == 0 {
		return 0
	}
	return float64(result.PassCount) / float64(total) * 100
}

// TextReporter outputs human-readable text reports.
type TextReporter struct {
	writer  io.Writer
	verbose bool
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(w io.Writer, verbose bool) *TextReporter {
	return &TextReporter{
		writer:  w,
		verbose: verbose,
	}
}

// ReportSuite reports suite results in text format.
func (r *TextReporter) ReportSuite(result *scenario.SuiteResult) {
	fmt.Fprintf(r.writer, "\n=== Suite: %s ===\n", result.Name)
	fmt.Fprintf(r.writer, "Duration: %s\n\n", result.Duration.Round(time.Millisecond))

	for _, res := range result.Results {
		r.ReportScenario(res)
	}

	fmt.Fprintf(r.writer, "\n--- Summary ---\n")
	fmt.Fprintf(r.writer, "Total:   %d\n", len(result.Results))
	fmt.Fprintf(r.writer, "Passed:  %d\n", result.PassCount)
	fmt.Fprintf(r.writer, "Failed:  %d\n", result.FailCount)
	fmt.Fprintf(r.writer, "Skipped: %d\n", result.SkipCount)
	if result.PassCount+result.FailCount > 0 {
		fmt.Fprintf(r.writer, "Pass Rate: %.1f%%\n", passRate(result))
	}
}

// ReportScenario reports a single scenario result in text format.
func (r *TextReporter) ReportScenario(result *scenario.Result) {
	sc := result.Scenario

	fmt.Fprintf(r.writer, "[%s] %s - %s (%s)\n",
		status(result), sc.ID, sc.Name, result.Duration.Round(time.Millisecond))

	if result.Skipped && result.SkipReason != "" {
		fmt.Fprintf(r.writer, "       Skip reason: %s\n", result.SkipReason)
	}
	if !result.Passed && result.Error != nil {
		fmt.Fprintf(r.writer, "       Error: %v\n", result.Error)
	}

	if !r.verbose {
		return
	}
	for _, sr := range result.StepResults {
		stepStatus := "PASS"
		if !sr.Passed {
			stepStatus = "FAIL"
		}
		fmt.Fprintf(r.writer, "    [%s] Step %d: %s", stepStatus, sr.StepIndex+1, sr.Step.Action)
		if sr.Step.Element != "" {
			fmt.Fprintf(r.writer, " %s", sr.Step.Element)
		}
		if sr.Pass.ID != "" && sr.Step.Action != scenario.ActionExpect {
			fmt.Fprintf(r.writer, " (pass %s: %d notifications", shortID(sr.Pass.ID), sr.Pass.Notifications)
			if sr.Pass.Suppressed > 0 {
				fmt.Fprintf(r.writer, ", %d suppressed", sr.Pass.Suppressed)
			}
			fmt.Fprint(r.writer, ")")
		}
		fmt.Fprintln(r.writer)

		if !sr.Passed && sr.Error != nil {
			fmt.Fprintf(r.writer, "           Error: %v\n", sr.Error)
		}
		for _, c := range sr.Checks {
			checkStatus := "OK"
			if !c.Passed {
				checkStatus = "FAILED"
			}
			fmt.Fprintf(r.writer, "           [%s] %s = %s\n", checkStatus, c.Key, c.Actual)
		}
	}
}

// JSONReporter outputs JSON-formatted reports.
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{
		writer: w,
		pretty: pretty,
	}
}

// JSONSuiteResult is the JSON representation of suite results.
type JSONSuiteResult struct {
	Name      string               `json:"name"`
	Duration  string               `json:"duration"`
	Total     int                  `json:"total"`
	Passed    int                  `json:"passed"`
	Failed    int                  `json:"failed"`
	Skipped   int                  `json:"skipped"`
	PassRate  float64              `json:"pass_rate"`
	Scenarios []JSONScenarioResult `json:"scenarios"`
}

// JSONScenarioResult is the JSON representation of a scenario result.
type JSONScenarioResult struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Status     string           `json:"status"`
	Duration   string           `json:"duration"`
	Error      string           `json:"error,omitempty"`
	SkipReason string           `json:"skip_reason,omitempty"`
	Steps      []JSONStepResult `json:"steps,omitempty"`
}

// JSONStepResult is the JSON representation of a step result.
type JSONStepResult struct {
	Index         int         `json:"index"`
	Action        string      `json:"action"`
	Element       string      `json:"element,omitempty"`
	Status        string      `json:"status"`
	Error         string      `json:"error,omitempty"`
	PassID        string      `json:"pass_id,omitempty"`
	Notifications int         `json:"notifications,omitempty"`
	Suppressed    int         `json:"suppressed,omitempty"`
	Checks        []JSONCheck `json:"checks,omitempty"`
}

// JSONCheck is the JSON representation of a check result.
type JSONCheck struct {
	Key      string `json:"key"`
	Passed   bool   `json:"passed"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// ReportSuite reports suite results in JSON format.
func (r *JSONReporter) ReportSuite(result *scenario.SuiteResult) {
	jr := JSONSuiteResult{
		Name:      result.Name,
		Duration:  result.Duration.Round(time.Millisecond).String(),
		Total:     len(result.Results),
		Passed:    result.PassCount,
		Failed:    result.FailCount,
		Skipped:   result.SkipCount,
		PassRate:  passRate(result),
		Scenarios: make([]JSONScenarioResult, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		jr.Scenarios = append(jr.Scenarios, scenarioToJSON(res))
	}
	r.writeJSON(jr)
}

// ReportScenario reports a single scenario result in JSON format.
func (r *JSONReporter) ReportScenario(result *scenario.Result) {
	r.writeJSON(scenarioToJSON(result))
}

func scenarioToJSON(result *scenario.Result) JSONScenarioResult {
	jr := JSONScenarioResult{
		ID:         result.Scenario.ID,
		Name:       result.Scenario.Name,
		Status:     strings.ToLower(status(result)),
		Duration:   result.Duration.Round(time.Millisecond).String(),
		SkipReason: result.SkipReason,
	}
	if result.Error != nil {
		jr.Error = result.Error.Error()
	}

	for _, sr := range result.StepResults {
		jsr := JSONStepResult{
			Index:         sr.StepIndex,
			Action:        sr.Step.Action,
			Element:       sr.Step.Element,
			Status:        "passed",
			PassID:        sr.Pass.ID,
			Notifications: sr.Pass.Notifications,
			Suppressed:    sr.Pass.Suppressed,
		}
		if !sr.Passed {
			jsr.Status = "failed"
		}
		if sr.Error != nil {
			jsr.Error = sr.Error.Error()
		}
		for _, c := range sr.Checks {
			jsr.Checks = append(jsr.Checks, JSONCheck{
				Key:      c.Key,
				Passed:   c.Passed,
				Expected: c.Expected,
				Actual:   c.Actual,
			})
		}
		jr.Steps = append(jr.Steps, jsr)
	}
	return jr
}

func (r *JSONReporter) writeJSON(v any) {
	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		fmt.Fprintf(r.writer, `{"error": "failed to marshal: %s"}`, err)
		return
	}
	fmt.Fprintln(r.writer, string(data))
}

// JUnitReporter outputs JUnit XML format for CI integration.
type JUnitReporter struct {
	writer io.Writer
}

// NewJUnitReporter creates a new JUnit reporter.
func NewJUnitReporter(w io.Writer) *JUnitReporter {
	return &JUnitReporter{writer: w}
}

// ReportSuite reports suite results in JUnit XML format.
func (r *JUnitReporter) ReportSuite(result *scenario.SuiteResult) {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("\n")
	fmt.Fprintf(&b, `<testsuite name="%s" tests="%d" failures="%d" skipped="%d" time="%.3f">`,
		escapeXML(result.Name),
		len(result.Results),
		result.FailCount,
		result.SkipCount,
		result.Duration.Seconds())
	b.WriteString("\n")

	for _, res := range result.Results {
		sc := res.Scenario
		fmt.Fprintf(&b, `  <testcase name="%s" classname="%s" time="%.3f">`,
			escapeXML(sc.Name),
			escapeXML(sc.ID),
			res.Duration.Seconds())
		b.WriteString("\n")

		if res.Skipped {
			fmt.Fprintf(&b, `    <skipped message="%s"/>`, escapeXML(res.SkipReason))
			b.WriteString("\n")
		} else if !res.Passed && res.Error != nil {
			fmt.Fprintf(&b, `    <failure message="%s">`, escapeXML(res.Error.Error()))
			b.WriteString("\n      <![CDATA[")
			for _, sr := range res.StepResults {
				if !sr.Passed {
					fmt.Fprintf(&b, "Step %d (%s): %v\n", sr.StepIndex+1, sr.Step.Action, sr.Error)
				}
			}
			b.WriteString("]]>\n")
			b.WriteString("    </failure>\n")
		}
		b.WriteString("  </testcase>\n")
	}
	b.WriteString("</testsuite>\n")

	fmt.Fprint(r.writer, b.String())
}

// ReportScenario reports one scenario wrapped in a single-entry suite.
func (r *JUnitReporter) ReportScenario(result *scenario.Result) {
	suite := &scenario.SuiteResult{
		Name:     result.Scenario.ID,
		Results:  []*scenario.Result{result},
		Duration: result.Duration,
	}
	switch {
	case result.Skipped:
		suite.SkipCount = 1
	case result.Passed:
		suite.PassCount = 1
	default:
		suite.FailCount = 1
	}
	r.ReportSuite(suite)
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
