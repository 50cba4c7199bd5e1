package params

import "fmt"

// Array is an ordered, string-keyed store of simulation values. Stages bind
// pointers to individual cells once on their own first run and read or write
// through them on every tick; the Array itself is never reassigned.
//
// Two arrays exist per run: a dynamic one mutated every tick and a fixed one
// sealed after initial seeding. Sealing only blocks new definitions; values
// already defined stay reachable through their bound pointers.
type Array struct {
	label  string
	order  []string
	floats map[string]*float64
	ints   map[string]*int
	strs   map[string]*string
	hists  map[string]*History
	sealed bool
	reads  int
}

func New(label string) *Array {
	return &Array{
		label:  label,
		floats: make(map[string]*float64),
		ints:   make(map[string]*int),
		strs:   make(map[string]*string),
		hists:  make(map[string]*History),
	}
}

func (a *Array) Label() string { return a.label }

// Seal marks the array read-only for definitions. Lookups keep working.
func (a *Array) Seal() { a.sealed = true }

// Reads reports how many lookups have been served. Wiring tests use this to
// verify that configuration is read exactly once per process.
func (a *Array) Reads() int { return a.reads }

func (a *Array) exists(name string) bool {
	_, f := a.floats[name]
	_, i := a.ints[name]
	_, s := a.strs[name]
	return f || i || s
}

func (a *Array) define(name string) error {
	if a.sealed {
		return fmt.Errorf("%s array is sealed, cannot define %q", a.label, name)
	}
	if a.exists(name) {
		return fmt.Errorf("parameter %q already defined in %s array", name, a.label)
	}
	a.order = append(a.order, name)
	return nil
}

func (a *Array) DefineFloat(name string, v float64) (*float64, error) {
	if err := a.define(name); err != nil {
		return nil, err
	}
	p := new(float64)
	*p = v
	a.floats[name] = p
	return p, nil
}

func (a *Array) DefineInt(name string, v int) (*int, error) {
	if err := a.define(name); err != nil {
		return nil, err
	}
	p := new(int)
	*p = v
	a.ints[name] = p
	return p, nil
}

func (a *Array) DefineString(name string, v string) (*string, error) {
	if err := a.define(name); err != nil {
		return nil, err
	}
	p := new(string)
	*p = v
	a.strs[name] = p
	return p, nil
}

func (a *Array) Float(name string) (*float64, error) {
	a.reads++
	p, ok := a.floats[name]
	if !ok {
		return nil, fmt.Errorf("no float parameter %q in %s array", name, a.label)
	}
	return p, nil
}

func (a *Array) Int(name string) (*int, error) {
	a.reads++
	p, ok := a.ints[name]
	if !ok {
		return nil, fmt.Errorf("no int parameter %q in %s array", name, a.label)
	}
	return p, nil
}

func (a *Array) String(name string) (*string, error) {
	a.reads++
	p, ok := a.strs[name]
	if !ok {
		return nil, fmt.Errorf("no string parameter %q in %s array", name, a.label)
	}
	return p, nil
}

// Names returns the parameter names in definition order.
func (a *Array) Names() []string {
	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// Snapshot copies the current numeric values, for logging and monitoring.
func (a *Array) Snapshot() map[string]float64 {
	snap := make(map[string]float64, len(a.floats)+len(a.ints))
	for name, p := range a.floats {
		snap[name] = *p
	}
	for name, p := range a.ints {
		snap[name] = float64(*p)
	}
	return snap
}
