package lang

import (
	"github.com/codewit-us/codeval/enclave"
	"github.com/codewit-us/codeval/parse"
	"github.com/codewit-us/codeval/result"
)

func pythonProfile() *Profile {
	return &Profile{
		Name:     "python",
		Ext:      "py",
		Compiled: false,
		SourceName: func(string) (string, error) {
			return "program.py", nil
		},
		CompileSteps: nil,
		RunCommand: func(ws, src string, tc Toolchain) (string, []string) {
			return tc.Python, []string{src}
		},
		BuildHarness: func(e *enclave.Enclave, code, testCode, src string, tc Toolchain) (*Harness, error) {
			// The test file conventionally does "import program"; it lands
			// next to program.py and pytest picks it up by path.
			if err := e.WriteFile("test_program.py", []byte(testCode)); err != nil {
				return nil, err
			}
			return &Harness{
				Command: tc.Pytest,
				Args:    []string{e.Join("test_program.py")},
			}, nil
		},
		Parse: func(stdout, stderr string) (result.Result, error) {
			return parse.Pytest(stdout, stderr), nil
		},
	}
}
