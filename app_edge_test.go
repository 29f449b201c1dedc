package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// 1. Empty editor: empty string -> 0 meshes, 0 errors.
// ---------------------------------------------------------------------------

func TestE2EEmptySourceExtended(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected 0 warnings for empty source, got %d", len(result.Warnings))
	}
	// Ensure slices are non-nil (JSON should serialize as [] not null).
	if result.Meshes == nil {
		t.Error("Meshes should be non-nil empty slice, got nil")
	}
	if result.Parts == nil {
		t.Error("Parts should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
	if result.Warnings == nil {
		t.Error("Warnings should be non-nil empty slice, got nil")
	}
}

// ---------------------------------------------------------------------------
// 2. Syntax errors: unmatched parens -> eval error, 0 meshes.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	app := NewApp()

	// Put valid code on line 1, broken code on line 2 so line info is meaningful.
	source := "(+ 1 2)\n(defpanel \"test\""
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}

	e := result.Errors[0]
	if e.Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	t.Logf("syntax error: line=%d, col=%d, message=%q", e.Line, e.Col, e.Message)
}

func TestE2ESyntaxErrorSingleLineMissingParen(t *testing.T) {
	app := NewApp()

	result := app.Evaluate("(+ 1 2")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for missing closing paren")
	}
	if result.Errors[0].Message == "" {
		t.Error("error message should not be empty")
	}
}

// ---------------------------------------------------------------------------
// 3. Undefined panel reference -> eval error naming the panel.
// ---------------------------------------------------------------------------

func TestE2EUndefinedPanelReference(t *testing.T) {
	app := NewApp()

	source := `
(defpanel "shelf" (rect-path 0 0 120 60))

(assembly "unit"
  (place (panel "nonexistent") :at (vec3 0 0 0)))
`
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for undefined panel reference")
	}

	found := false
	for _, e := range result.Errors {
		if strings.Contains(e.Message, "nonexistent") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected error mentioning 'nonexistent', got: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

// ---------------------------------------------------------------------------
// 4. Degenerate input: must error or render, never panic.
// ---------------------------------------------------------------------------

func TestE2EZeroWidthPanel(t *testing.T) {
	app := NewApp()

	result := app.Evaluate(`(defpanel "bad" (rect-path 0 0 0 50))`)

	if len(result.Errors) > 0 {
		t.Logf("zero-width panel produced error (acceptable): %s", result.Errors[0].Message)
		return
	}
	t.Logf("zero-width panel produced %d meshes (no error)", len(result.Meshes))
}

func TestE2ENegativeThickness(t *testing.T) {
	app := NewApp()

	result := app.Evaluate(`(defpanel "neg" (rect-path 0 0 90 50) :material (material :thickness -3))`)

	if len(result.Errors) == 0 {
		t.Fatal("expected a validation error for negative material thickness")
	}
	if result.Errors[0].NodeID == "" {
		t.Error("validation error should name the offending node")
	}
}

func TestE2EJointOnDegenerateEdge(t *testing.T) {
	app := NewApp()

	// A single point has no edge to put a joint on.
	result := app.Evaluate(`
(defpanel "dot" (svg-path "M 5 5"))
(finger-joint (panel "dot") :edge 1)
`)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for a joint on a path with no drawable edge")
	}
}

// ---------------------------------------------------------------------------
// 5. Rapid evaluation (debounce simulation): no panics, no data races.
//    Run with `go test -race` to detect data races.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluation(t *testing.T) {
	// Simulates debounce: rapid sequential calls to Evaluate on the same App.
	// Calls are sequential because zygomys has internal global state that is
	// not safe for concurrent sandbox creation.
	app := NewApp()

	sources := []string{
		`(defpanel "a" (rect-path 0 0 100 50))`,
		`(defpanel "b" (rect-path 0 0 200 100))`,
		`(+ 1 2)`,
		``,
		`(defpanel "c" (rect-path 0 0 60 30)) (finger-joint (panel "c") :edge 1)`,
		`(joint-defaults :teeth 5)`,
		`(+ 100 200)`,
		``,
		`(defpanel "e" (polygon-path 0 0 50 0 25 40))`,
		`(defpanel "f" (svg-path "M 0 0 H 60 V 40 H 0 Z"))`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked: %v", i, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}
}

func TestE2ERapidEvaluationAlternating(t *testing.T) {
	// Alternates between valid and invalid sources rapidly.
	// Ensures the engine recovers cleanly between error and success states.
	app := NewApp()

	sources := []string{
		`(defpanel "ok" (rect-path 0 0 100 50))`,
		`(defpanel "broken"`,
		``,
		`(panel "missing")`,
		`(defpanel "also-ok" (rect-path 0 0 200 100))`,
		`(+ 1 2)`,
		`;; just a comment`,
		`(finger-joint (panel "nope"))`,
		`(undefined-func 1 2 3)`,
		`(defpanel "last" (rect-path 0 0 400 200))`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, source, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}
}

// ---------------------------------------------------------------------------
// 6. Large dimensions: big panel -> valid mesh without crash.
// ---------------------------------------------------------------------------

func TestE2ELargeDimensions(t *testing.T) {
	app := NewApp()

	source := `(defpanel "huge" (rect-path 0 0 1000 1000) :material (material :thickness 18))`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors for large panel: %v", result.Errors)
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh for large panel, got %d", len(result.Meshes))
	}

	m := result.Meshes[0]
	if len(m.Vertices) == 0 {
		t.Error("large panel mesh should have vertices")
	}
	if m.PartName != "huge" {
		t.Errorf("expected part name 'huge', got %q", m.PartName)
	}
}

// ---------------------------------------------------------------------------
// 7. Multiple assemblies: two assemblies in one source -> meshes from both.
// ---------------------------------------------------------------------------

func TestE2EMultipleAssemblies(t *testing.T) {
	app := NewApp()

	source := `
(def ply (material :name "ply" :thickness 4))

(defpanel "shelf-a" (rect-path 0 0 120 60) :material ply)
(defpanel "shelf-b" (rect-path 0 0 80 40) :material ply)

(assembly "unit-a"
  (place (panel "shelf-a") :at (vec3 0 0 0)))

(assembly "unit-b"
  (place (panel "shelf-b") :at (vec3 200 0 0)))
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}

	if len(result.Meshes) != 2 {
		t.Fatalf("expected 2 meshes from two assemblies, got %d", len(result.Meshes))
	}

	names := make(map[string]bool)
	for _, m := range result.Meshes {
		names[m.PartName] = true
		if len(m.Vertices) == 0 {
			t.Errorf("mesh %q should have vertices", m.PartName)
		}
		if m.Color == "" {
			t.Errorf("mesh %q should have a color assigned", m.PartName)
		}
	}
	if !names["shelf-a"] || !names["shelf-b"] {
		t.Errorf("missing meshes, got %v", names)
	}
}

func TestE2EMultipleAssembliesWithSharedPanels(t *testing.T) {
	app := NewApp()

	source := `
(defpanel "panel" (rect-path 0 0 100 60))
(defpanel "rail"  (rect-path 0 0 100 20))

(assembly "frame-a"
  (place (panel "panel") :at (vec3 0 0 0))
  (place (panel "rail")  :at (vec3 0 60 0)))

(assembly "frame-b"
  (place (panel "panel") :at (vec3 150 0 0))
  (place (panel "rail")  :at (vec3 150 60 0)))
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}

	// Each assembly places both panels: 4 meshes, but only 2 parts to cut.
	if len(result.Meshes) != 4 {
		t.Fatalf("expected 4 meshes from two assemblies sharing panels, got %d", len(result.Meshes))
	}
	if len(result.Parts) != 2 {
		t.Errorf("expected 2 cut parts, got %d", len(result.Parts))
	}
}

// ---------------------------------------------------------------------------
// 8. Standalone panels with no assembly become roots.
// ---------------------------------------------------------------------------

func TestE2EMultipleStandalonePanels(t *testing.T) {
	app := NewApp()

	source := `
(defpanel "top" (rect-path 0 0 120 60))
(defpanel "bottom" (rect-path 0 0 120 60))
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != 2 {
		t.Fatalf("expected 2 meshes from two standalone panels, got %d", len(result.Meshes))
	}
}

// ---------------------------------------------------------------------------
// 9. Comments only: source that is only comments -> 0 meshes, 0 errors.
// ---------------------------------------------------------------------------

func TestE2ECommentsOnly(t *testing.T) {
	app := NewApp()

	source := `
;; This is a comment
;; Another comment
; And another
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for comments-only source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for comments-only source, got %d", len(result.Meshes))
	}
}

// ---------------------------------------------------------------------------
// 10. Nested expressions: def with arithmetic, then use in a panel.
// ---------------------------------------------------------------------------

func TestE2EComplexArithmeticExpressions(t *testing.T) {
	app := NewApp()

	source := `
(def base-length 400)
(def margin 19)
(def inner-length (- base-length (* 2 margin)))
(def half (/ inner-length 2))

(defpanel "inner-panel" (rect-path 0 0 half 100))
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}

	// half = (400 - 2*19) / 2 = 181
	if result.Parts[0].Outline != "M0 0 L181 0 L181 100 L0 100 Z" {
		t.Errorf("outline = %q", result.Parts[0].Outline)
	}
}

// ---------------------------------------------------------------------------
// 11. Advisory warnings reach the frontend without blocking the render.
// ---------------------------------------------------------------------------

func TestE2EThicknessMismatchWarning(t *testing.T) {
	app := NewApp()

	source := `
(defpanel "front" (rect-path 0 0 90 50))
(defpanel "side"  (rect-path 0 0 90 40))
(finger-joint (panel "front") :edge 1 :type :tabs :mate (panel "side") :thickness 4)
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 2 {
		t.Errorf("expected 2 meshes, got %d", len(result.Meshes))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "does not match") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a thickness mismatch warning, got %v", result.Warnings)
	}
}

func TestE2EKerfHazardWarning(t *testing.T) {
	app := NewApp()

	source := `
(defpanel "strip" (rect-path 0 0 30 20))
(finger-joint (panel "strip") :edge 1 :type :tabs :kerf 10)
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Fatalf("hazards should warn, not fail: %v", result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "kerf") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a kerf warning, got %v", result.Warnings)
	}
}
