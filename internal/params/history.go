package params

import "fmt"

// History is a fixed-depth ring over past values of one float parameter.
// The framework records into it once per computed tick; stages that want a
// window of past values bind it once and read Values each call.
type History struct {
	src    *float64
	values []float64
	depth  int
	count  int
	head   int
}

// DefineHistory attaches a ring of the given depth to an existing float
// parameter. The ring starts empty; nothing is recorded until RecordHistories.
func (a *Array) DefineHistory(name string, depth int) (*History, error) {
	if a.sealed {
		return nil, fmt.Errorf("%s array is sealed, cannot track %q", a.label, name)
	}
	if depth <= 0 {
		return nil, fmt.Errorf("history depth for %q must be positive, got %d", name, depth)
	}
	if _, ok := a.hists[name]; ok {
		return nil, fmt.Errorf("history for %q already defined in %s array", name, a.label)
	}
	src, ok := a.floats[name]
	if !ok {
		return nil, fmt.Errorf("no float parameter %q in %s array to track", name, a.label)
	}
	h := &History{src: src, values: make([]float64, depth), depth: depth}
	a.hists[name] = h
	return h, nil
}

// History looks up a previously defined ring. Counts as a store read.
func (a *Array) History(name string) (*History, error) {
	a.reads++
	h, ok := a.hists[name]
	if !ok {
		return nil, fmt.Errorf("no history for %q in %s array", name, a.label)
	}
	return h, nil
}

// RecordHistories pushes the current value of every tracked parameter into
// its ring. Called once per computed tick by the entry stage.
func (a *Array) RecordHistories() {
	for _, h := range a.hists {
		h.push(*h.src)
	}
}

func (h *History) push(v float64) {
	h.values[h.head] = v
	h.head = (h.head + 1) % h.depth
	if h.count < h.depth {
		h.count++
	}
}

func (h *History) Depth() int { return h.depth }

// Len reports how many values have been recorded so far, up to the depth.
func (h *History) Len() int { return h.count }

// Values returns the recorded window newest-first.
func (h *History) Values() []float64 {
	out := make([]float64, h.count)
	for i := 0; i < h.count; i++ {
		idx := (h.head - 1 - i + h.depth*2) % h.depth
		out[i] = h.values[idx]
	}
	return out
}
