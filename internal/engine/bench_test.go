package engine

import (
	"strings"
	"testing"
)

// ============================================================================
// Setup helpers
// ============================================================================

func setupLargeEditor(b *testing.B, lines int) *Editor {
	b.Helper()
	var sb strings.Builder
	line := strings.Repeat("word ", 16) + "\n"
	for i := 0; i < lines; i++ {
		sb.WriteString(line)
	}
	e := New(WithContent(sb.String()))
	e.SetViewWidth(80)
	return e
}

// ============================================================================
// Editing benchmarks
// ============================================================================

func BenchmarkInsertChar(b *testing.B) {
	e := setupLargeEditor(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.InsertChar('x')
	}
}

func BenchmarkInsertDeleteCycle(b *testing.B) {
	e := setupLargeEditor(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.InsertChar('x')
		e.Backspace()
	}
}

func BenchmarkUndoRedo(b *testing.B) {
	e := setupLargeEditor(b, 1000)
	for i := 0; i < 100; i++ {
		e.InsertChar('x')
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.Undo()
		e.Redo()
	}
}

// ============================================================================
// Motion benchmarks
// ============================================================================

func BenchmarkMoveDownWrapped(b *testing.B) {
	e := setupLargeEditor(b, 2000)
	e.SetViewWidth(40)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.MoveDown(false)
		if i%1000 == 999 {
			e.MoveDocStart(false)
		}
	}
}

func BenchmarkCaretPosition(b *testing.B) {
	e := setupLargeEditor(b, 2000)
	e.MoveDocEnd(false)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = e.CaretPosition()
	}
}

func BenchmarkTotalRowsAfterEdit(b *testing.B) {
	e := setupLargeEditor(b, 2000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.InsertChar('x')
		_ = e.TotalRows()
	}
}

// ============================================================================
// Search benchmarks
// ============================================================================

func BenchmarkSetFindQuery(b *testing.B) {
	e := setupLargeEditor(b, 2000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.SetFindQuery("word")
	}
}

func BenchmarkReplaceAll(b *testing.B) {
	content := strings.Repeat("alpha beta ", 500)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := New(WithContent(content))
		e.SetViewWidth(80)
		e.SetFindQuery("beta")
		b.StartTimer()

		e.ReplaceAll("gamma")
	}
}
