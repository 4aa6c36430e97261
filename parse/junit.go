package parse

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/codewit-us/codeval/result"
)

// JUnit recovers the JSON document the in-workspace TestRunner prints to
// stdout, possibly surrounded by JVM noise, by taking the first '{' through
// the last '}'. A missing or malformed document is an infrastructure
// failure, not a test failure, so this parser alone returns an error.
func JUnit(stdout, stderr string) (result.Result, error) {
	start := strings.Index(stdout, "{")
	end := strings.LastIndex(stdout, "}")
	if start < 0 || end <= start {
		return result.Result{}, errors.New("no result document in runner output")
	}

	var payload struct {
		State          string                 `json:"state"`
		TestsRun       int                    `json:"tests_run"`
		Passed         int                    `json:"passed"`
		Failed         int                    `json:"failed"`
		FailureDetails []result.FailureDetail `json:"failure_details"`
	}
	if err := json.Unmarshal([]byte(stdout[start:end+1]), &payload); err != nil {
		return result.Result{}, err
	}

	r := result.New()
	r.State = result.State(payload.State)
	r.TestsRun = payload.TestsRun
	r.Passed = payload.Passed
	r.Failed = payload.Failed
	if payload.FailureDetails != nil {
		r.FailureDetails = payload.FailureDetails
	}
	return r, nil
}
