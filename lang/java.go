package lang

import (
	"errors"
	"regexp"
	"strings"

	"github.com/codewit-us/codeval/enclave"
	"github.com/codewit-us/codeval/parse"
)

var javaClass = regexp.MustCompile(`public\s+class\s+(\w+)`)

// ErrNoPublicClass is reported when a Java source declares no public class;
// the executor maps it to a compile error.
var ErrNoPublicClass = errors.New("no public class declaration found")

func javaProfile() *Profile {
	return &Profile{
		Name:     "java",
		Ext:      "java",
		Compiled: true,
		SourceName: func(code string) (string, error) {
			name, err := publicClass(code)
			if err != nil {
				return "", err
			}
			return name + ".java", nil
		},
		CompileSteps: func(ws, src string, tc Toolchain) []Step {
			return []Step{{Command: tc.Javac, Args: []string{"-d", ws, src}}}
		},
		RunCommand: func(ws, src string, tc Toolchain) (string, []string) {
			return tc.Java, []string{"-cp", ws, strings.TrimSuffix(src, ".java")}
		},
		BuildHarness: func(e *enclave.Enclave, code, testCode, src string, tc Toolchain) (*Harness, error) {
			testClass, err := publicClass(testCode)
			if err != nil {
				return nil, err
			}
			if err := e.WriteFile(testClass+".java", []byte(testCode)); err != nil {
				return nil, err
			}

			// The runner template selects MainTest by default; point it at
			// the posted test class instead.
			runner := strings.ReplaceAll(testRunnerJava, "MainTest", testClass)
			if err := e.WriteFile("TestRunner.java", []byte(runner)); err != nil {
				return nil, err
			}

			cp := e.Path
			if tc.JUnitClasspath != "" {
				cp += ":" + tc.JUnitClasspath
			}
			return &Harness{
				Steps: []Step{
					{Command: tc.Javac, Args: []string{"-cp", cp, "-d", e.Path, src, testClass + ".java", "TestRunner.java"}},
				},
				Command: tc.Java,
				Args:    []string{"-cp", cp, "TestRunner"},
			}, nil
		},
		Parse: parse.JUnit,
	}
}

func publicClass(code string) (string, error) {
	m := javaClass.FindStringSubmatch(code)
	if m == nil {
		return "", ErrNoPublicClass
	}
	return m[1], nil
}
