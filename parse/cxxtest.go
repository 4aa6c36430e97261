package parse

import (
	"regexp"
	"strings"

	"github.com/codewit-us/codeval/result"
)

var (
	cxxRunning = regexp.MustCompile(`Running cxxtest tests \((\d+) tests?\)`)
	cxxSummary = regexp.MustCompile(`Failed (\d+) and Skipped \d+ of (\d+) tests`)
	cxxError   = regexp.MustCompile(`Error: Expected \((.+?)\), found \((.+?)\)`)
)

// CxxTest extracts totals and assertion failures from the error-printer
// runner's output. The runner reports no per-test names in its error lines,
// so failure details are numbered by position.
func CxxTest(stdout, stderr string) result.Result {
	r := result.New()

	if m := cxxRunning.FindStringSubmatch(stdout); m != nil {
		r.TestsRun = atoi(m[1])
	}
	if m := cxxSummary.FindStringSubmatch(stdout); m != nil {
		r.Failed = atoi(m[1])
		r.TestsRun = atoi(m[2])
	}
	r.Passed = r.TestsRun - r.Failed
	if r.Passed < 0 {
		r.Passed = 0
	}

	rawout := stdout + "\n" + stderr
	for i, m := range cxxError.FindAllStringSubmatch(stdout, -1) {
		// "Expected (add(-1,1) == 1), found (0 != 1)"
		expected := strings.TrimSpace(m[1])
		if _, rhs, ok := strings.Cut(m[1], "=="); ok {
			expected = strings.TrimSpace(rhs)
		}
		received := strings.TrimSpace(m[2])
		if lhs, _, ok := strings.Cut(m[2], "!="); ok {
			received = strings.TrimSpace(lhs)
		}
		r.FailureDetails = append(r.FailureDetails, result.FailureDetail{
			TestCase:     i + 1,
			Expected:     expected,
			Received:     received,
			ErrorMessage: "AssertionError: Output did not match expected result",
			Rawout:       rawout,
		})
	}
	return r
}
