// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package corpora provides a mechanism for managing test corpora, i.e.,
// a collection of files that each define a parser test case.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	gocmp "github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// A Corpus describes a test data corpus. This is essentially a way for doing
// table-driven tests where the "table" is in your file system.
type Corpus struct {
	// The root of the test data directory. This path is relative to the file
	// that calls [Corpus.Run].
	Root string

	// An environment variable holding a glob. Test cases whose names match it
	// have their outputs rewritten instead of checked.
	Refresh string

	// The file extension (without a dot) of files which define a test case,
	// e.g. "expr".
	Extension string

	// Possible outputs of the test, which are found using Output.Extension.
	// If the file for a particular output is missing, it is treated as being
	// expected to be empty.
	Outputs []Output

	// Test executes one test case from the corpus. Returns a slice of strings
	// corresponding to the elements of Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Run runs every test case in the corpus as a subtest of t.
func (c Corpus) Run(t *testing.T) {
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)
	t.Logf("corpora: searching for files in %q", root)

	var tests []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.TrimPrefix(filepath.Ext(p), ".") == c.Extension {
			tests = append(tests, p)
		}
		return nil
	})
	if err != nil {
		t.Fatal("corpora: error while walking testdata:", err)
	}
	if len(tests) == 0 {
		t.Fatalf("corpora: no *.%s files under %q", c.Extension, root)
	}
	slices.Sort(tests)

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("corpora: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, path := range tests {
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			bytes, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpora: error while loading input file %q: %v", path, err)
			}

			results := c.Test(t, name, string(bytes))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			refresh, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				path := fmt.Sprint(path, ".", output.Extension)
				if refresh {
					if err := write(path, results[i]); err != nil {
						t.Errorf("corpora: %v", err)
					}
					continue
				}

				bytes, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: error while loading output file %q: %v", path, err)
					continue
				}

				cmp := output.Compare
				if cmp == nil {
					cmp = defaultCompare
				}
				if diff := cmp(results[i], string(bytes)); diff != "" {
					t.Errorf("output mismatch for %q:\n%s", path, diff)
				}
			}
		})
	}
}

// write replaces the output file at path with text, or deletes it if text is
// empty.
func write(path, text string) error {
	if text == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error while deleting output file %q: %w", path, err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("error while writing output file %q: %w", path, err)
	}
	return nil
}

// Output represents the output of a test case.
type Output struct {
	// The extension of the output. This is a suffix to the name of the
	// testcase's main file; so if Corpus.Extension is "expr", and this is
	// "stderr", for a test "foo.expr" the test runner will look for a file
	// named "foo.expr.stderr".
	Extension string

	// The comparison function for this output. May be nil, in which case the
	// values will be compared byte-for-byte.
	Compare Compare
}

// Compare is a comparison function between strings, used in [Output].
//
// Returns empty string if the strings match, otherwise returns an error message.
type Compare func(got, want string) string

// CompareYAML compares two YAML documents by value, so that differences in
// layout or quoting do not matter.
func CompareYAML(got, want string) string {
	if got == "" || want == "" {
		return defaultCompare(got, want)
	}

	var gotValue, wantValue any
	if err := yaml.Unmarshal([]byte(got), &gotValue); err != nil {
		return fmt.Sprintf("got invalid YAML: %v", err)
	}
	if err := yaml.Unmarshal([]byte(want), &wantValue); err != nil {
		return fmt.Sprintf("want invalid YAML: %v", err)
	}
	if diff := gocmp.Diff(wantValue, gotValue); diff != "" {
		return "(-want +got)\n" + diff
	}
	return ""
}

// CompareJSON compares two JSON documents by value, so that differences in
// whitespace or key order do not matter.
func CompareJSON(got, want string) string {
	if got == "" || want == "" {
		return defaultCompare(got, want)
	}

	gotValue, wantValue := new(structpb.Value), new(structpb.Value)
	if err := protojson.Unmarshal([]byte(got), gotValue); err != nil {
		return fmt.Sprintf("got invalid JSON: %v", err)
	}
	if err := protojson.Unmarshal([]byte(want), wantValue); err != nil {
		return fmt.Sprintf("want invalid JSON: %v", err)
	}
	if diff := gocmp.Diff(wantValue, gotValue, protocmp.Transform()); diff != "" {
		return "(-want +got)\n" + diff
	}
	return ""
}

func defaultCompare(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	// Colorize the diff so it's easier to read.
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = "\033[1;92m" + line + "\033[0m"
		case strings.HasPrefix(line, "-"):
			lines[i] = "\033[1;91m" + line + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
