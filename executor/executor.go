// Package executor sequences the pipeline for one request: resolve the
// language profile, allocate the enclave, write sources, compile, run, parse
// or compare, and tear down. Inner failures are converted to result states
// here; nothing propagates to the transport layer.
package executor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/codewit-us/codeval/driver"
	"github.com/codewit-us/codeval/enclave"
	"github.com/codewit-us/codeval/lang"
	"github.com/codewit-us/codeval/result"
)

// Request is the execution payload posted by the client. Code may be empty
// when RepoURL names a repository to fetch the program from; TestCode is
// required when RunTests is set.
type Request struct {
	Language       string `json:"language"`
	Code           string `json:"code"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expectedOutput"`
	RunTests       bool   `json:"runTests"`
	TestCode       string `json:"testCode"`
	RepoURL        string `json:"repoUrl"`
	RepoFile       string `json:"repoFile"`
	Commit         string `json:"commit"`
}

// Executor owns the temp root and the toolchain configuration shared by all
// requests. Requests never share an enclave, so there is no locking.
type Executor struct {
	TempRoot  string
	Timeout   time.Duration
	Toolchain lang.Toolchain
	Disabled  map[string]bool

	log *zap.Logger
}

// New builds an Executor. disabled lists administratively blocked languages.
func New(tempRoot string, timeout time.Duration, tc lang.Toolchain, disabled []string, log *zap.Logger) *Executor {
	blocked := make(map[string]bool, len(disabled))
	for _, d := range disabled {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			blocked[d] = true
		}
	}
	return &Executor{
		TempRoot:  tempRoot,
		Timeout:   timeout,
		Toolchain: tc,
		Disabled:  blocked,
		log:       log,
	}
}

// Execute runs one request through the pipeline and always returns an
// orderly Result. The enclave is destroyed on every exit path.
func (x *Executor) Execute(ctx context.Context, req Request) result.Result {
	p, ok := lang.Resolve(req.Language)
	if !ok {
		return result.ExecutionError("unknown language: " + req.Language)
	}
	if x.Disabled[p.Name] {
		return result.Blocked()
	}

	e, err := enclave.New(x.TempRoot, x.log)
	if err != nil {
		return result.ExecutionError("workspace allocation failed: " + err.Error())
	}
	defer e.Close()

	code := req.Code
	if code == "" && req.RepoURL != "" {
		file := req.RepoFile
		if file == "" {
			file = "program." + p.Ext
		}
		data, err := e.CloneSource(ctx, enclave.GitSource{URL: req.RepoURL, Commit: req.Commit, File: file})
		if err != nil {
			return result.ExecutionError(err.Error())
		}
		code = string(data)
	}

	src, err := p.SourceName(code)
	if err != nil {
		return result.CompileError(err.Error())
	}
	if err := e.WriteFile(src, []byte(code)); err != nil {
		return result.ExecutionError(err.Error())
	}

	var runCmd string
	var runArgs []string
	if req.RunTests {
		h, err := p.BuildHarness(e, code, req.TestCode, src, x.Toolchain)
		if err != nil {
			return result.CompileError(err.Error())
		}
		if r := x.runSteps(e, h.Steps); r != nil {
			return *r
		}
		runCmd, runArgs = h.Command, h.Args
	} else {
		if p.CompileSteps != nil {
			if r := x.runSteps(e, p.CompileSteps(e.Path, src, x.Toolchain)); r != nil {
				return *r
			}
		}
		runCmd, runArgs = p.RunCommand(e.Path, src, x.Toolchain)
	}

	out, err := driver.Run(runCmd, runArgs, e.Path, req.Stdin, x.Timeout)
	if err != nil {
		var timeoutErr *driver.TimeoutError
		var exitErr *driver.ExitError
		switch {
		case errors.As(err, &timeoutErr):
			r := result.New()
			r.ExecutionTimeExceeded = true
			r.RuntimeError = timeoutErr.Error()
			if p.Compiled {
				r.State = result.StateRuntimeError
			} else {
				r.State = result.StateFailed
			}
			return r
		case errors.As(err, &exitErr):
			if req.RunTests {
				// Test runners report failures through the exit code; the
				// parser decides from the captured output.
				out = exitErr.Outcome
			} else if p.Compiled {
				r := result.New()
				r.State = result.StateRuntimeError
				r.RuntimeError = exitErr.Outcome.Stderr
				return r
			} else {
				return interpreterFailure(req, exitErr.Outcome)
			}
		default:
			return result.ExecutionError(err.Error())
		}
	}

	if !req.RunTests {
		return compareOutput(req, out)
	}

	parsed, perr := p.Parse(out.Stdout, out.Stderr)
	if perr != nil {
		return result.ExecutionError("unparseable harness output: " + perr.Error())
	}
	if parsed.State == "" {
		if parsed.Failed > 0 {
			parsed.State = result.StateFailed
		} else {
			parsed.State = result.StatePassed
		}
	}
	x.log.Debug("execution finished",
		zap.String("language", p.Name),
		zap.String("state", string(parsed.State)),
		zap.Int("tests_run", parsed.TestsRun))
	return parsed
}

// runSteps executes compile steps in order; the first failure terminates the
// pipeline with a compile_error (tool diagnostics) or execution_error
// (spawn failure).
func (x *Executor) runSteps(e *enclave.Enclave, steps []lang.Step) *result.Result {
	for _, s := range steps {
		if err := driver.Compile(s.Command, s.Args, e.Path); err != nil {
			var cerr *driver.CompileError
			if errors.As(err, &cerr) {
				r := result.CompileError(cerr.Stderr)
				return &r
			}
			r := result.ExecutionError(err.Error())
			return &r
		}
	}
	return nil
}

// compareOutput grades a plain run as a single implicit test: trimmed
// byte-exact equality between the captured stdout and the expected output.
func compareOutput(req Request, out driver.Outcome) result.Result {
	r := result.New()
	r.TestsRun = 1
	if strings.TrimSpace(out.Stdout) == strings.TrimSpace(req.ExpectedOutput) {
		r.Passed = 1
		r.State = result.StatePassed
		return r
	}
	r.Failed = 1
	r.State = result.StateFailed
	r.FailureDetails = append(r.FailureDetails, result.FailureDetail{
		TestCase:     1,
		Expected:     req.ExpectedOutput,
		Received:     out.Stdout,
		ErrorMessage: "Output did not match expected output",
		Rawout:       out.Stdout + out.Stderr,
		Diff:         unifiedDiff(req.ExpectedOutput, out.Stdout),
	})
	return r
}

// interpreterFailure maps a nonzero interpreter exit in plain-run mode: the
// taxonomy reserves runtime_error for compiled languages, so the traceback
// becomes a single failed test.
func interpreterFailure(req Request, out driver.Outcome) result.Result {
	r := result.New()
	r.State = result.StateFailed
	r.TestsRun = 1
	r.Failed = 1
	r.FailureDetails = append(r.FailureDetails, result.FailureDetail{
		TestCase:     1,
		Expected:     req.ExpectedOutput,
		Received:     out.Stdout,
		ErrorMessage: strings.TrimSpace(out.Stderr),
		Rawout:       out.Stdout + out.Stderr,
	})
	return r
}

func unifiedDiff(expected, received string) []string {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		FromFile: "expected",
		B:        difflib.SplitLines(received),
		ToFile:   "received",
		Context:  0,
	})
	if err != nil || text == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
