package testkit_test

import (
	"context"
	"path/filepath"
	"testing"

	"graft/internal/testkit"
)

func TestFixtureCases(t *testing.T) {
	cases, err := testkit.LoadCases(filepath.Join("testdata", "expand_cases.toml"))
	if err != nil {
		t.Fatalf("LoadCases: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no cases loaded")
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			testkit.Verify(t, c.Spec(testMacros))
		})
	}
}

func TestLoadCasesMissingFile(t *testing.T) {
	if _, err := testkit.LoadCases(filepath.Join("testdata", "no_such_file.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestVerifyAll(t *testing.T) {
	cases, err := testkit.LoadCases(filepath.Join("testdata", "expand_cases.toml"))
	if err != nil {
		t.Fatalf("LoadCases: %v", err)
	}
	specs := make([]testkit.NamedSpec, len(cases))
	for i, c := range cases {
		specs[i] = testkit.NamedSpec{Name: c.Name, Spec: c.Spec(testMacros)}
	}

	results, err := testkit.VerifyAll(context.Background(), specs, 2)
	if err != nil {
		t.Fatalf("VerifyAll: %v", err)
	}
	if len(results) != len(specs) {
		t.Fatalf("got %d results for %d specs", len(results), len(specs))
	}
	for i, r := range results {
		if r.Name != specs[i].Name {
			t.Errorf("result %d is %q, want %q (order must be preserved)", i, r.Name, specs[i].Name)
		}
		if r.Failed() {
			t.Errorf("case %q failed: err=%v failures=%q", r.Name, r.Err, r.Failures)
		}
	}
}

func TestVerifyAllHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	specs := []testkit.NamedSpec{{Name: "never runs", Spec: testkit.Spec{Source: "let x = 1;\n", Macros: testMacros}}}
	if _, err := testkit.VerifyAll(ctx, specs, 1); err == nil {
		t.Error("expected context error")
	}
}
