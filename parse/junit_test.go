package parse

import (
	"testing"

	"github.com/codewit-us/codeval/result"
)

func TestJUnitRecoversDocumentFromNoise(t *testing.T) {
	stdout := `WARNING: A Java agent has been loaded dynamically
Picked up JAVA_TOOL_OPTIONS:
{"state": "failed","tests_run": 2,"passed": 1,"failed": 1,"failure_details": [{"test_case": "testAddNegative()","expected": "1","received": "0","error_message": "expected: <1> but was: <0>","rawout": ""}]}
some trailing jvm noise without braces
`
	r, err := JUnit(stdout, "")
	if err != nil {
		t.Fatalf("JUnit: %v", err)
	}
	if r.State != result.StateFailed {
		t.Errorf("state = %q, want failed", r.State)
	}
	if r.TestsRun != 2 || r.Passed != 1 || r.Failed != 1 {
		t.Fatalf("totals = %d/%d/%d, want 2/1/1", r.TestsRun, r.Passed, r.Failed)
	}
	if len(r.FailureDetails) != 1 {
		t.Fatalf("details = %d, want 1", len(r.FailureDetails))
	}
	d := r.FailureDetails[0]
	if d.TestCase != "testAddNegative()" || d.Expected != "1" || d.Received != "0" {
		t.Errorf("detail = %+v", d)
	}
}

func TestJUnitPassedDocument(t *testing.T) {
	r, err := JUnit(`{"state": "passed","tests_run": 1,"passed": 1,"failed": 0,"failure_details": []}`, "")
	if err != nil {
		t.Fatalf("JUnit: %v", err)
	}
	if r.State != result.StatePassed || r.TestsRun != 1 || r.Passed != 1 {
		t.Errorf("result = %+v", r)
	}
	if r.FailureDetails == nil {
		t.Error("failure_details is nil, want []")
	}
}

func TestJUnitMissingDocument(t *testing.T) {
	if _, err := JUnit("Exception in thread main: NoClassDefFoundError", ""); err == nil {
		t.Fatal("want error for output without a JSON document")
	}
}

func TestJUnitMalformedDocument(t *testing.T) {
	if _, err := JUnit(`{"state": "passed", "tests_run": `+"}", ""); err == nil {
		t.Fatal("want error for malformed JSON")
	}
}
