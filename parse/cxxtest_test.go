package parse

import "testing"

const cxxMixed = `Running cxxtest tests (2 tests)
In AddSuite::testAddNegative:
test_program.h:12: Error: Expected (add(-1,1) == 1), found (0 != 1)
Failed 1 and Skipped 0 of 2 tests
Success rate: 50%
`

const cxxAllPassed = `Running cxxtest tests (2 tests)..OK!
`

func TestCxxTestMixed(t *testing.T) {
	r := CxxTest(cxxMixed, "")
	if r.TestsRun != 2 || r.Passed != 1 || r.Failed != 1 {
		t.Fatalf("totals = %d/%d/%d, want 2/1/1", r.TestsRun, r.Passed, r.Failed)
	}
	if len(r.FailureDetails) != 1 {
		t.Fatalf("details = %d, want 1", len(r.FailureDetails))
	}
	d := r.FailureDetails[0]
	if d.TestCase != 1 {
		t.Errorf("test_case = %v, want 1", d.TestCase)
	}
	if d.Expected != "1" {
		t.Errorf("expected = %q, want %q", d.Expected, "1")
	}
	if d.Received != "0" {
		t.Errorf("received = %q, want %q", d.Received, "0")
	}
	if d.ErrorMessage != "AssertionError: Output did not match expected result" {
		t.Errorf("error_message = %q", d.ErrorMessage)
	}
}

func TestCxxTestAllPassed(t *testing.T) {
	r := CxxTest(cxxAllPassed, "")
	if r.TestsRun != 2 || r.Passed != 2 || r.Failed != 0 {
		t.Fatalf("totals = %d/%d/%d, want 2/2/0", r.TestsRun, r.Passed, r.Failed)
	}
}

func TestCxxTestExpectedWithoutComparison(t *testing.T) {
	out := `Running cxxtest tests (1 test)
In S::testThrow:
test_program.h:4: Error: Expected (throws), found (nothing thrown)
Failed 1 and Skipped 0 of 1 tests
`
	r := CxxTest(out, "")
	if len(r.FailureDetails) != 1 {
		t.Fatalf("details = %d, want 1", len(r.FailureDetails))
	}
	d := r.FailureDetails[0]
	if d.Expected != "throws" {
		t.Errorf("expected = %q, want %q", d.Expected, "throws")
	}
	if d.Received != "nothing thrown" {
		t.Errorf("received = %q, want %q", d.Received, "nothing thrown")
	}
}

func TestCxxTestUnrecognizedOutput(t *testing.T) {
	r := CxxTest("Segmentation fault", "core dumped")
	if r.TestsRun != 0 || r.Passed != 0 || r.Failed != 0 {
		t.Fatalf("totals = %d/%d/%d, want all zero", r.TestsRun, r.Passed, r.Failed)
	}
}
