// Package lang holds the per-language rules: file layout, compile steps, run
// commands, test-harness construction, and the output-parser binding. The
// set of profiles is closed and small, so it is a plain registry of records
// with function-typed fields rather than an interface hierarchy.
package lang

import (
	"strings"

	"github.com/codewit-us/codeval/enclave"
	"github.com/codewit-us/codeval/result"
)

// Toolchain carries the external tool locations a profile needs. All fields
// come from the environment; defaults assume the tools are on PATH.
type Toolchain struct {
	Cxx            string
	CxxTestGen     string
	CxxTestInclude string
	Javac          string
	Java           string
	JUnitClasspath string
	Python         string
	Pytest         string
}

// Step is one toolchain invocation, run inside the workspace.
type Step struct {
	Command string
	Args    []string
}

// Harness is the product of a profile's test-harness builder: the compile
// steps that remain to be run, and the command that executes the tests.
type Harness struct {
	Steps   []Step
	Command string
	Args    []string
}

// Profile bundles everything that distinguishes one supported language.
type Profile struct {
	Name string
	Ext  string

	// Compiled controls the failure taxonomy: a compiled language's nonzero
	// exit or timeout in plain-run mode is a runtime error, an interpreted
	// one's is a test failure (its framework signals failure via exit code).
	Compiled bool

	// SourceName decides the filename the user program is written to. For
	// Java this extracts the public class name and can fail.
	SourceName func(code string) (string, error)

	// CompileSteps are the plain (non-test) build steps; nil when the
	// language has none.
	CompileSteps func(ws, src string, tc Toolchain) []Step

	// RunCommand executes the plain program.
	RunCommand func(ws, src string, tc Toolchain) (string, []string)

	// BuildHarness writes the test sources into the enclave and returns the
	// remaining compile steps plus the test run command.
	BuildHarness func(e *enclave.Enclave, code, testCode, src string, tc Toolchain) (*Harness, error)

	// Parse reduces the test run's captured output to the canonical result.
	// Only the Java profile can fail here (missing harness document).
	Parse func(stdout, stderr string) (result.Result, error)
}

var profiles = map[string]*Profile{
	"cpp":    cppProfile(),
	"java":   javaProfile(),
	"python": pythonProfile(),
}

// Resolve looks a profile up by case-insensitive language name.
func Resolve(name string) (*Profile, bool) {
	p, ok := profiles[strings.ToLower(name)]
	return p, ok
}
