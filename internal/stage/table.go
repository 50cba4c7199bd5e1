package stage

// Entry pairs a selectable name with an implementation of one kind.
type Entry[F any] struct {
	Name string
	Fn   F
}

// Table is the closed set of named implementations for one stage kind.
// Built once at startup, immutable afterwards. Entry order is preserved for
// deterministic listings but carries no other meaning.
type Table[F any] struct {
	kind  Kind
	order []string
	fns   map[string]F
}

// NewTable builds a table, rejecting duplicate names outright rather than
// letting a later entry shadow an earlier one.
func NewTable[F any](kind Kind, entries ...Entry[F]) (*Table[F], error) {
	t := &Table[F]{
		kind: kind,
		fns:  make(map[string]F, len(entries)),
	}
	for _, e := range entries {
		if _, ok := t.fns[e.Name]; ok {
			return nil, &DuplicateNameError{Kind: kind, Name: e.Name}
		}
		t.order = append(t.order, e.Name)
		t.fns[e.Name] = e.Fn
	}
	return t, nil
}

// Resolve looks up an implementation by exact, case-sensitive name. Pure
// lookup: no side effects, no allocation on the call path afterwards.
func (t *Table[F]) Resolve(name string) (F, error) {
	fn, ok := t.fns[name]
	if !ok {
		var zero F
		return zero, &UnknownNameError{Kind: t.kind, Name: name, Valid: t.Names()}
	}
	return fn, nil
}

func (t *Table[F]) Kind() Kind { return t.kind }

// Names returns the registered names in registration order.
func (t *Table[F]) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}
