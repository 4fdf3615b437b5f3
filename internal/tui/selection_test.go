package tui

import (
	"testing"

	"github.com/tinytelemetry/sheepcount/internal/model"
)

func years(n int) []model.YearlyAggregate {
	out := make([]model.YearlyAggregate, n)
	for i := range out {
		out[i] = model.YearlyAggregate{Year: 2000 + i, TotalCount: int64(1_000_000 * (i + 1))}
	}
	return out
}

func TestSelection_StartsOnLastYearWithFullWindow(t *testing.T) {
	t.Parallel()

	s := newSelection(years(10))
	if s.cursor != 9 {
		t.Fatalf("cursor = %d, want 9", s.cursor)
	}
	if s.lo != 0 || s.hi != 9 {
		t.Fatalf("window = [%d, %d], want [0, 9]", s.lo, s.hi)
	}
}

func TestSelection_MoveClampsToData(t *testing.T) {
	t.Parallel()

	s := newSelection(years(3))
	s.move(5)
	if s.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", s.cursor)
	}
	s.move(-10)
	if s.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", s.cursor)
	}
}

func TestSelection_ZoomKeepsCursorVisible(t *testing.T) {
	t.Parallel()

	s := newSelection(years(16))
	s.jump(3)

	s.zoomIn()
	if s.span() != 8 {
		t.Fatalf("span after zoom in = %d, want 8", s.span())
	}
	if s.cursor < s.lo || s.cursor > s.hi {
		t.Fatalf("cursor %d outside window [%d, %d]", s.cursor, s.lo, s.hi)
	}

	s.zoomIn()
	s.zoomIn()
	s.zoomIn()
	if s.span() != 2 {
		t.Fatalf("span after repeated zoom in = %d, want 2", s.span())
	}
	if z := s.zoom(); z != 8 {
		t.Fatalf("zoom = %v, want 8", z)
	}

	s.zoomOut()
	if s.span() != 4 {
		t.Fatalf("span after zoom out = %d, want 4", s.span())
	}

	s.reset()
	if s.lo != 0 || s.hi != 15 {
		t.Fatalf("window after reset = [%d, %d], want [0, 15]", s.lo, s.hi)
	}
}

func TestSelection_MoveScrollsWindow(t *testing.T) {
	t.Parallel()

	s := newSelection(years(10))
	s.jump(0)
	s.zoomIn()
	s.zoomIn() // span 2 at the start
	if s.lo != 0 || s.hi != 1 {
		t.Fatalf("window = [%d, %d], want [0, 1]", s.lo, s.hi)
	}

	s.move(1)
	s.move(1)
	if s.lo != 1 || s.hi != 2 || s.cursor != 2 {
		t.Fatalf("window = [%d, %d] cursor %d, want [1, 2] cursor 2", s.lo, s.hi, s.cursor)
	}
}

func TestSelection_PanDragsCursor(t *testing.T) {
	t.Parallel()

	s := newSelection(years(10))
	s.jump(0)
	s.zoomIn() // span 5 -> [0, 4]

	s.pan(3)
	if s.lo != 3 || s.hi != 7 {
		t.Fatalf("window = [%d, %d], want [3, 7]", s.lo, s.hi)
	}
	if s.cursor != 3 {
		t.Fatalf("cursor = %d, want 3", s.cursor)
	}

	s.pan(100)
	if s.hi != 9 {
		t.Fatalf("hi = %d, want 9 after panning past the end", s.hi)
	}
}

func TestSelection_Empty(t *testing.T) {
	t.Parallel()

	s := newSelection(nil)
	s.move(1)
	s.zoomIn()
	s.zoomOut()
	s.pan(1)
	if _, ok := s.current(); ok {
		t.Fatal("current() should report no data")
	}
	if s.visible() != nil {
		t.Fatal("visible() should be nil for no data")
	}
}
