package stage

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/turbsim/internal/params"
)

func marker(out *string, tag string) ControlFunc {
	return func(dyn, fixed *params.Array) error {
		*out = tag
		return nil
	}
}

func TestResolveIdentity(t *testing.T) {
	var called string
	table, err := NewTable(KindTurbineControl,
		Entry[ControlFunc]{Name: "a", Fn: marker(&called, "a")},
		Entry[ControlFunc]{Name: "b", Fn: marker(&called, "b")},
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, name := range []string{"a", "b"} {
		fn, err := table.Resolve(name)
		if err != nil {
			t.Fatalf("resolve %q: %v", name, err)
		}
		fn(nil, nil)
		if called != name {
			t.Errorf("resolve %q invoked implementation %q", name, called)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	table, _ := NewTable(KindDrivetrain,
		Entry[DrivetrainFunc]{Name: "example_drivetrain", Fn: func(dyn, fixed *params.Array) error { return nil }},
	)

	_, err := table.Resolve("missing-impl")
	if err == nil {
		t.Fatal("expected error for unknown name")
	}

	var unknown *UnknownNameError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownNameError, got %T", err)
	}
	if unknown.Kind != KindDrivetrain || unknown.Name != "missing-impl" {
		t.Errorf("error should carry kind and name, got %v / %v", unknown.Kind, unknown.Name)
	}
	if !strings.Contains(err.Error(), "example_drivetrain") {
		t.Errorf("error should list valid options: %v", err)
	}
}

func TestResolveCaseSensitive(t *testing.T) {
	table, _ := NewTable(KindTurbineControl,
		Entry[ControlFunc]{Name: "kw2", Fn: func(dyn, fixed *params.Array) error { return nil }},
	)
	if _, err := table.Resolve("KW2"); err == nil {
		t.Error("lookup must be case-sensitive exact match")
	}
}

func TestDuplicateRejected(t *testing.T) {
	noop := func(dyn, fixed *params.Array) error { return nil }
	_, err := NewTable(KindTurbineControl,
		Entry[ControlFunc]{Name: "kw2", Fn: noop},
		Entry[ControlFunc]{Name: "kw2", Fn: noop},
	)
	if err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %T", err)
	}
	if dup.Name != "kw2" {
		t.Errorf("error should carry the duplicated name, got %q", dup.Name)
	}
}

func TestNamesOrdered(t *testing.T) {
	noop := func(dyn, fixed *params.Array) error { return nil }
	table, _ := NewTable(KindTurbineControl,
		Entry[ControlFunc]{Name: "c", Fn: noop},
		Entry[ControlFunc]{Name: "a", Fn: noop},
		Entry[ControlFunc]{Name: "b", Fn: noop},
	)
	names := table.Names()
	want := []string{"c", "a", "b"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want registration order %v", names, want)
		}
	}
}
