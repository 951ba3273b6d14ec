package testkit_test

import (
	"strings"
	"testing"

	"graft/internal/diag"
	"graft/internal/testkit"
)

func run(t *testing.T, spec testkit.Spec) []string {
	t.Helper()
	var rec testkit.Recorder
	if err := testkit.Run(&rec, spec); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return rec.Failures
}

func TestVerifyStringify(t *testing.T) {
	testkit.Verify(t, testkit.Spec{
		Source:   "let y = #stringify(x + y);\n",
		Expanded: "let y = (x + y, \"x + y\");\n",
		Macros:   testMacros,
	})
}

func TestVerifyDeclarationMacro(t *testing.T) {
	testkit.Verify(t, testkit.Spec{
		Source:   "#defineConstants;\n",
		Expanded: "let a = 1;\nlet b = 2;\n",
		Macros:   testMacros,
	})
}

func TestCleanExpansionEmitsNoFailures(t *testing.T) {
	failures := run(t, testkit.Spec{
		Source:   "let y = #stringify(x);\n",
		Expanded: "let y = (x, \"x\");\n",
		Macros:   testMacros,
	})
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %q", failures)
	}
}

func TestBlankLineRunsAreInsignificant(t *testing.T) {
	failures := run(t, testkit.Spec{
		Source:   "let y = #stringify(x);\n",
		Expanded: "\n\nlet y = (x, \"x\");\n\n\n",
		Macros:   testMacros,
	})
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %q", failures)
	}
}

func TestExpandedTextMismatch(t *testing.T) {
	failures := run(t, testkit.Spec{
		Source:   "let y = #stringify(x);\n",
		Expanded: "let y = (x, \"wrong\");\n",
		Macros:   testMacros,
	})
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %q", failures)
	}
	if !strings.Contains(failures[0], "expanded source mismatch") {
		t.Errorf("failure does not name the expanded text: %s", failures[0])
	}
	if !strings.Contains(failures[0], `let y = (x, "x");`) {
		t.Errorf("failure does not carry the actual text: %s", failures[0])
	}
}

func TestDiagnosticCountMismatchIsOneAggregate(t *testing.T) {
	// Zero actual diagnostics against one expectation: exactly one
	// aggregate failure, no field comparison.
	failures := run(t, testkit.Spec{
		Source:      "let y = #stringify(x);\n",
		Expanded:    "let y = (x, \"x\");\n",
		Diagnostics: []testkit.ExpectedDiagnostic{testkit.Expect("anything", 1, 1)},
		Macros:      testMacros,
	})
	if len(failures) != 1 {
		t.Fatalf("expected exactly 1 failure, got %q", failures)
	}
	if !strings.Contains(failures[0], "0 diagnostics, expected 1") {
		t.Errorf("unexpected aggregate message: %s", failures[0])
	}
}

func TestWarningWithFixIt(t *testing.T) {
	spec := testkit.Spec{
		Source:   "let s = #oldSum(1, 2);\n",
		Expanded: "let s = 1 + 2;\n",
		Diagnostics: []testkit.ExpectedDiagnostic{
			testkit.Expect("'#oldSum' is deprecated", 1, 9).
				WithSeverity(diag.SevWarning).
				WithFixIt("use '+' instead"),
		},
		Macros: testMacros,
	}
	if failures := run(t, spec); len(failures) != 0 {
		t.Fatalf("unexpected failures: %q", failures)
	}

	// A wrong expected line yields exactly one failure citing the line.
	spec.Diagnostics[0].Line = 5
	failures := run(t, spec)
	if len(failures) != 1 {
		t.Fatalf("expected exactly 1 failure, got %q", failures)
	}
	if !strings.Contains(failures[0], "line") {
		t.Errorf("failure does not cite the line: %s", failures[0])
	}
}

func TestOrderingIsPositional(t *testing.T) {
	// Two identical warnings on different lines, expectations swapped:
	// index-wise matching must surface line mismatches, not search for a
	// better pairing.
	failures := run(t, testkit.Spec{
		Source:   "let p = #oldSum(1, 2);\nlet q = #oldSum(3, 4);\n",
		Expanded: "let p = 1 + 2;\nlet q = 3 + 4;\n",
		Diagnostics: []testkit.ExpectedDiagnostic{
			testkit.Expect("'#oldSum' is deprecated", 2, 9).
				WithSeverity(diag.SevWarning).WithFixIt("use '+' instead"),
			testkit.Expect("'#oldSum' is deprecated", 1, 9).
				WithSeverity(diag.SevWarning).WithFixIt("use '+' instead"),
		},
		Macros: testMacros,
	})
	if len(failures) != 2 {
		t.Fatalf("expected 2 line-mismatch failures, got %q", failures)
	}
	for _, f := range failures {
		if !strings.Contains(f, "line") {
			t.Errorf("failure does not cite the line: %s", f)
		}
	}
}

func TestHighlightsAndID(t *testing.T) {
	spec := testkit.Spec{
		Source:   "let y = #nope(1);\n",
		Expanded: "let y = #nope(1);\n",
		Diagnostics: []testkit.ExpectedDiagnostic{
			testkit.Expect(`unknown macro "nope"`, 1, 10).
				WithID("MAC4001").
				WithHighlight("#nope(1)"),
		},
		Macros: testMacros,
	}
	if failures := run(t, spec); len(failures) != 0 {
		t.Fatalf("unexpected failures: %q", failures)
	}

	// Highlight count mismatch: one aggregate failure for the group.
	spec.Diagnostics[0] = testkit.Expect(`unknown macro "nope"`, 1, 10).
		WithHighlights("#nope(1)", "extra")
	failures := run(t, spec)
	if len(failures) != 1 {
		t.Fatalf("expected exactly 1 failure, got %q", failures)
	}
	if !strings.Contains(failures[0], "highlights") {
		t.Errorf("unexpected aggregate message: %s", failures[0])
	}
}

func TestNotes(t *testing.T) {
	spec := testkit.Spec{
		Source:   "let y = #hint(7);\n",
		Expanded: "let y = 7;\n",
		Diagnostics: []testkit.ExpectedDiagnostic{
			testkit.Expect("hint applied", 1, 9).
				WithSeverity(diag.SevWarning).
				WithNote("argument here", 1, 15),
		},
		Macros: testMacros,
	}
	if failures := run(t, spec); len(failures) != 0 {
		t.Fatalf("unexpected failures: %q", failures)
	}

	// Note count mismatch: one aggregate failure listing actual notes.
	spec.Diagnostics[0] = testkit.Expect("hint applied", 1, 9).
		WithSeverity(diag.SevWarning)
	failures := run(t, spec)
	if len(failures) != 1 {
		t.Fatalf("expected exactly 1 failure, got %q", failures)
	}
	if !strings.Contains(failures[0], "notes") || !strings.Contains(failures[0], "argument here") {
		t.Errorf("aggregate does not list actual notes: %s", failures[0])
	}
}

func TestFixedSourceComparison(t *testing.T) {
	// Default selection: first fix-it of every diagnostic.
	failures := run(t, testkit.Spec{
		Source:   "let s = #oldSum(1, 2);\n",
		Expanded: "let s = 1 + 2;\n",
		Diagnostics: []testkit.ExpectedDiagnostic{
			testkit.Expect("'#oldSum' is deprecated", 1, 9).
				WithSeverity(diag.SevWarning).WithFixIt("use '+' instead"),
		},
		FixedSource: "let s = 1 + 2;\n",
		Macros:      testMacros,
	})
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %q", failures)
	}
}

func TestFixedSourceAllowList(t *testing.T) {
	spec := testkit.Spec{
		Source:   "let s = #oldSum(1, 2);\n",
		Expanded: "let s = 1 + 2;\n",
		Diagnostics: []testkit.ExpectedDiagnostic{
			testkit.Expect("'#oldSum' is deprecated", 1, 9).
				WithSeverity(diag.SevWarning).WithFixIt("use '+' instead"),
		},
		ApplyFixIts: []string{"use '+' instead"},
		FixedSource: "let s = 1 + 2;\n",
		Macros:      testMacros,
	}
	if failures := run(t, spec); len(failures) != 0 {
		t.Fatalf("unexpected failures: %q", failures)
	}

	// An allow-list matching nothing applies no edits, so the fixed text
	// stays the original and the comparison fails.
	spec.ApplyFixIts = []string{"no such fix"}
	failures := run(t, spec)
	if len(failures) != 1 {
		t.Fatalf("expected exactly 1 failure, got %q", failures)
	}
	if !strings.Contains(failures[0], "fixed source mismatch") {
		t.Errorf("unexpected failure: %s", failures[0])
	}
}

func TestFixItsApplyToNormalizedSource(t *testing.T) {
	// CRLF line endings are rewritten to LF before spans are assigned, so
	// fix-it edits must land on the normalized content. Each CRLF before
	// the edited range would otherwise shift the edit one byte left.
	failures := run(t, testkit.Spec{
		Source:   "let a = 1;\r\nlet s = #oldSum(1, 2);\r\n",
		Expanded: "let a = 1;\nlet s = 1 + 2;\n",
		Diagnostics: []testkit.ExpectedDiagnostic{
			testkit.Expect("'#oldSum' is deprecated", 2, 9).
				WithSeverity(diag.SevWarning).WithFixIt("use '+' instead"),
		},
		FixedSource: "let a = 1;\nlet s = 1 + 2;\n",
		Macros:      testMacros,
	})
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %q", failures)
	}
}

func TestIllFormedExpansionIsReported(t *testing.T) {
	failures := run(t, testkit.Spec{
		Source:   "let y = #broken(1);\n",
		Expanded: "let y = ???;\n",
		Macros:   testMacros,
	})
	if len(failures) != 1 {
		t.Fatalf("expected exactly 1 failure, got %q", failures)
	}
	if !strings.Contains(failures[0], "invalid syntax") {
		t.Errorf("failure does not mention invalid syntax: %s", failures[0])
	}
	if !strings.Contains(failures[0], "expanded tree:") {
		t.Errorf("failure does not carry the tree dump: %s", failures[0])
	}
}

func TestRunIsFatalOnUnparsableSource(t *testing.T) {
	var rec testkit.Recorder
	err := testkit.Run(&rec, testkit.Spec{
		Source:   "let = ;\n",
		Expanded: "",
		Macros:   testMacros,
	})
	if err == nil {
		t.Fatal("expected an error for unparsable source")
	}
	if len(rec.Failures) != 0 {
		t.Errorf("fatal parse must not also record failures: %q", rec.Failures)
	}
}

func TestDiagnosticTruncationIsReported(t *testing.T) {
	// More diagnostics than the bag holds: the aggregate failure must say
	// the list is incomplete rather than present the capped count as exact.
	src := strings.Repeat("let x = #nope(1);\n", 70)
	failures := run(t, testkit.Spec{
		Source:   src,
		Expanded: src,
		Macros:   testMacros,
	})
	if len(failures) != 1 {
		t.Fatalf("expected exactly 1 failure, got %d", len(failures))
	}
	if !strings.Contains(failures[0], "dropped past the limit") {
		t.Errorf("aggregate does not mention truncation: %s", failures[0])
	}
}

func TestFailuresAccumulateAcrossSteps(t *testing.T) {
	// Wrong expanded text AND a diagnostic count mismatch: both reported.
	failures := run(t, testkit.Spec{
		Source:      "let s = #oldSum(1, 2);\n",
		Expanded:    "let s = wrong;\n",
		Diagnostics: nil,
		Macros:      testMacros,
	})
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %q", failures)
	}
}
