package validate

import (
	"fmt"
	"strings"
)

// GenerateReport renders a result as a human-readable report. For a fixed
// match input the report is deterministic: checks emit findings in a fixed
// order and the result timestamp is deliberately omitted.
func GenerateReport(rec MatchRecord, res ValidationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "match integrity report: %s\n", rec.MatchID)
	fmt.Fprintf(&b, "fixture: %s %d-%d %s (%.0f min)\n",
		rec.HomeTeam, rec.HomeScore, rec.AwayScore, rec.AwayTeam, rec.DurationMinutes)
	fmt.Fprintf(&b, "trust score: %d/100\n", res.Score)
	fmt.Fprintf(&b, "verdict: %s\n", verdict(res))

	if len(res.Issues) > 0 {
		b.WriteString("issues:\n")
		for _, issue := range res.Issues {
			fmt.Fprintf(&b, "  [%s] %s: %s\n", issue.Severity, issue.Code, issue.Message)
		}
	}
	if len(res.Warnings) > 0 {
		b.WriteString("warnings:\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "  %s: %s\n", w.Code, w.Message)
		}
	}
	if len(res.SkippedChecks) > 0 {
		fmt.Fprintf(&b, "skipped checks: %s\n", strings.Join(res.SkippedChecks, ", "))
	}

	return b.String()
}

func verdict(res ValidationResult) string {
	if res.IsValid {
		return "valid"
	}
	return "suspicious"
}
