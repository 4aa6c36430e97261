// Package parse reduces heterogeneous test-runner output to the canonical
// result shape. Every parser here is total: unrecognized output yields zero
// counts and empty details, never a panic or an error, with the single
// exception of the JUnit harness document, which is well-formed JSON by
// construction and whose absence is an infrastructure failure.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/codewit-us/codeval/result"
)

var (
	pytestTotals     = regexp.MustCompile(`(\d+) passed, (\d+) failed`)
	pytestPassedOnly = regexp.MustCompile(`(\d+) passed`)
	pytestFailedOnly = regexp.MustCompile(`(\d+) failed`)
	pytestFailures   = regexp.MustCompile(`={10,} FAILURES ={10,}`)
	pytestSection    = regexp.MustCompile(`={10,}`)
	pytestDetail     = regexp.MustCompile(`(?s)_{5,}\s*(\S+)\s*_{5,}.*?>\s+assert\s+([^\n]+)\nE\s+assert\s+([^\n]+)(?:\nE\s+\+\s+where\s+(\S+)\s+=)?`)
)

// Pytest extracts totals and per-failure details from a pytest terminal
// report. The combined "N passed, M failed" form is tried first, then the
// standalone counts (which is what real summary lines match, failed first).
func Pytest(stdout, stderr string) result.Result {
	r := result.New()

	if m := pytestTotals.FindStringSubmatch(stdout); m != nil {
		r.Passed = atoi(m[1])
		r.Failed = atoi(m[2])
	} else {
		if m := pytestPassedOnly.FindStringSubmatch(stdout); m != nil {
			r.Passed = atoi(m[1])
		}
		if m := pytestFailedOnly.FindStringSubmatch(stdout); m != nil {
			r.Failed = atoi(m[1])
		}
	}
	r.TestsRun = r.Passed + r.Failed

	block := failureBlock(stdout)
	if block == "" {
		return r
	}

	rawout := stdout + "\n" + stderr
	for _, m := range pytestDetail.FindAllStringSubmatch(block, -1) {
		assertion := strings.TrimSpace(m[2])
		failedExpr := strings.TrimSpace(m[3])
		evaluated := m[4]

		expected := ""
		received := failedExpr
		if lhs, rhs, ok := strings.Cut(failedExpr, "=="); ok {
			expected = strings.TrimSpace(rhs)
			received = strings.TrimSpace(lhs)
		}
		if evaluated != "" {
			received = evaluated
		}

		r.FailureDetails = append(r.FailureDetails, result.FailureDetail{
			TestCase:     m[1],
			Expected:     expected,
			Received:     received,
			ErrorMessage: "Assertion failed: " + assertion,
			Rawout:       rawout,
		})
	}
	return r
}

// failureBlock isolates the text between the FAILURES banner and the next
// long ===== section break.
func failureBlock(stdout string) string {
	parts := pytestFailures.Split(stdout, 2)
	if len(parts) < 2 {
		return ""
	}
	return pytestSection.Split(parts[1], 2)[0]
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
