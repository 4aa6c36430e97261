package lang

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/codewit-us/codeval/enclave"
	"github.com/codewit-us/codeval/parse"
	"github.com/codewit-us/codeval/result"
)

// Matches top-level function definitions with scalar return types so their
// prototypes can be prepended to the test header. Test code that already
// declares the functions it exercises still works; a duplicate prototype is
// legal C++.
var cppFuncDef = regexp.MustCompile(`(?m)^\s*((?:int|bool|void|float|double|char|string)\s+[A-Za-z_]\w*\s*\([^)]*\))\s*\{`)

func cppProfile() *Profile {
	return &Profile{
		Name:     "cpp",
		Ext:      "cpp",
		Compiled: true,
		SourceName: func(string) (string, error) {
			return "program.cpp", nil
		},
		CompileSteps: func(ws, src string, tc Toolchain) []Step {
			return []Step{{Command: tc.Cxx, Args: []string{"-o", "program", src}}}
		},
		RunCommand: func(ws, src string, tc Toolchain) (string, []string) {
			return filepath.Join(ws, "program"), nil
		},
		BuildHarness: func(e *enclave.Enclave, code, testCode, src string, tc Toolchain) (*Harness, error) {
			header := forwardDecls(code) + testCode
			if err := e.WriteFile("test_program.h", []byte(header)); err != nil {
				return nil, err
			}

			compileArgs := []string{"-o", "runner"}
			if tc.CxxTestInclude != "" {
				compileArgs = append(compileArgs, "-I"+tc.CxxTestInclude)
			}
			compileArgs = append(compileArgs, "runner.cpp", src)

			return &Harness{
				Steps: []Step{
					{Command: tc.CxxTestGen, Args: []string{"--error-printer", "-o", "runner.cpp", "test_program.h"}},
					{Command: tc.Cxx, Args: compileArgs},
				},
				Command: filepath.Join(e.Path, "runner"),
			}, nil
		},
		Parse: func(stdout, stderr string) (result.Result, error) {
			return parse.CxxTest(stdout, stderr), nil
		},
	}
}

// forwardDecls extracts prototypes for the top-level functions found in the
// student code, one per line, terminated by a blank line. Returns "" when
// nothing matches.
func forwardDecls(code string) string {
	matches := cppFuncDef.FindAllStringSubmatch(code, -1)
	if len(matches) == 0 {
		return ""
	}
	var b strings.Builder
	for _, m := range matches {
		b.WriteString(strings.TrimSpace(m[1]))
		b.WriteString(";\n")
	}
	b.WriteString("\n")
	return b.String()
}
