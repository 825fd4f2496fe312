// Package testutil provides shared test infrastructure for the schedsim kernel.
// It consolidates golden scenario types and assertion helpers used across
// sim/ and its sub-package tests. It must not import sim or its sub-packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-verified scenario: a workload, the engine settings,
// and the exact expected outputs.
type GoldenTestCase struct {
	Name     string   `json:"name"`
	Engine   string   `json:"engine"`
	Capacity int      `json:"capacity"`
	Quantum  int64    `json:"quantum"` // 0 = engine default
	Workload []string `json:"workload"`

	// Expected outputs
	EndClock  int64    `json:"end_clock"`
	BusyTicks int64    `json:"busy_ticks"`
	Summary   []string `json:"summary"` // results rows, completion order
	Trace     []string `json:"trace"`   // console trace lines; nil = not checked
	Error     string   `json:"error"`   // "" or "capacity"
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}
	return &dataset
}

// TestdataPath returns the absolute path of a file under the repo root testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// AssertLinesEqual compares two line sequences and reports a unified diff on mismatch.
func AssertLinesEqual(t *testing.T, name string, want, got []string) {
	t.Helper()
	if equalLines(want, got) {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(want),
		B:        withNewlines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		t.Errorf("%s: lines differ (diff failed: %v)\nwant: %q\ngot:  %q", name, err, want, got)
		return
	}
	t.Errorf("%s: lines differ\n%s", name, diff)
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}
