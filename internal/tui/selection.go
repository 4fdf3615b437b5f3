package tui

import "github.com/tinytelemetry/sheepcount/internal/model"

// selection is the cursor and visible year window shared by every page.
// lo and hi are inclusive indexes into data.
type selection struct {
	data   []model.YearlyAggregate
	cursor int
	lo, hi int
}

func newSelection(data []model.YearlyAggregate) *selection {
	s := &selection{data: data}
	s.reset()
	s.cursor = max(0, len(data)-1)
	return s
}

func (s *selection) count() int { return len(s.data) }
func (s *selection) span() int { return s.hi - s.lo + 1 }

func (s *selection) current() (model.YearlyAggregate, bool) {
	if s.cursor < 0 || s.cursor >= len(s.data) {
		return model.YearlyAggregate{}, false
	}
	return s.data[s.cursor], true
}

func (s *selection) visible() []model.YearlyAggregate {
	if len(s.data) == 0 {
		return nil
	}
	return s.data[s.lo : s.hi+1]
}

func (s *selection) move(delta int) { s.jump(s.cursor + delta) }

func (s *selection) jump(idx int) {
	if len(s.data) == 0 {
		return
	}
	s.cursor = min(max(idx, 0), len(s.data)-1)
	if s.cursor < s.lo {
		s.setWindow(s.cursor, s.span())
	} else if s.cursor > s.hi {
		s.setWindow(s.cursor-s.span()+1, s.span())
	}
}

func (s *selection) zoomIn() {
	span := s.span()
	if span <= 2 {
		return
	}
	s.centerWindow(max(2, span/2))
}

func (s *selection) zoomOut() {
	s.centerWindow(min(len(s.data), s.span()*2))
}

func (s *selection) reset() {
	s.lo = 0
	s.hi = max(0, len(s.data)-1)
}

// pan shifts the window and drags the cursor along so it stays visible.
func (s *selection) pan(delta int) {
	s.setWindow(s.lo+delta, s.span())
	s.cursor = min(max(s.cursor, s.lo), s.hi)
}

func (s *selection) centerWindow(span int) {
	s.setWindow(s.cursor-span/2, span)
}

func (s *selection) setWindow(lo, span int) {
	n := len(s.data)
	if n == 0 {
		s.lo, s.hi = 0, 0
		return
	}
	span = min(max(span, 1), n)
	lo = min(max(lo, 0), n-span)
	s.lo, s.hi = lo, lo+span-1
}

// zoom reports how many times narrower the window is than the full range.
func (s *selection) zoom() float64 {
	if s.span() <= 0 {
		return 1
	}
	return float64(len(s.data)) / float64(s.span())
}
