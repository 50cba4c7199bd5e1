package params

import "testing"

func TestDefineAndBind(t *testing.T) {
	a := New("dynamic")
	p, err := a.DefineFloat("omega", 2.0)
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	bound, err := a.Float("omega")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if bound != p {
		t.Error("lookup should return the defined cell, not a copy")
	}

	*bound = 3.5
	if *p != 3.5 {
		t.Errorf("write through bound pointer not visible, got %f", *p)
	}
}

func TestDuplicateDefine(t *testing.T) {
	a := New("fixed")
	if _, err := a.DefineFloat("k", 1.0); err != nil {
		t.Fatalf("define: %v", err)
	}
	if _, err := a.DefineInt("k", 1); err == nil {
		t.Error("expected error defining duplicate name across types")
	}
}

func TestUnknownLookup(t *testing.T) {
	a := New("fixed")
	if _, err := a.Float("missing"); err == nil {
		t.Error("expected error for unknown float")
	}
	if _, err := a.String("missing"); err == nil {
		t.Error("expected error for unknown string")
	}
}

func TestSealBlocksDefine(t *testing.T) {
	a := New("fixed")
	if _, err := a.DefineFloat("rho", 1.225); err != nil {
		t.Fatalf("define: %v", err)
	}
	a.Seal()
	if _, err := a.DefineFloat("R", 2.0); err == nil {
		t.Error("expected error defining on sealed array")
	}
	if _, err := a.DefineHistory("rho", 4); err == nil {
		t.Error("expected error tracking history on sealed array")
	}
	if _, err := a.Float("rho"); err != nil {
		t.Errorf("lookup should still work after seal: %v", err)
	}
}

func TestReadCounter(t *testing.T) {
	a := New("fixed")
	a.DefineString("turbine_control_function_call", "kw2_turbine_control")

	before := a.Reads()
	a.String("turbine_control_function_call")
	a.String("turbine_control_function_call")
	if got := a.Reads() - before; got != 2 {
		t.Errorf("expected 2 reads counted, got %d", got)
	}
}

func TestHistoryWindow(t *testing.T) {
	a := New("dynamic")
	omega, _ := a.DefineFloat("omega", 0.0)
	if _, err := a.DefineHistory("omega", 3); err != nil {
		t.Fatalf("define history: %v", err)
	}

	h, err := a.History("omega")
	if err != nil {
		t.Fatalf("bind history: %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("new history should be empty, got %d", h.Len())
	}

	for _, v := range []float64{1, 2, 3, 4} {
		*omega = v
		a.RecordHistories()
	}

	got := h.Values()
	want := []float64{4, 3, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("values[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestHistoryRequiresFloat(t *testing.T) {
	a := New("dynamic")
	a.DefineInt("loop_count", 0)
	if _, err := a.DefineHistory("loop_count", 4); err == nil {
		t.Error("expected error tracking non-float parameter")
	}
	if _, err := a.DefineHistory("nothing", 4); err == nil {
		t.Error("expected error tracking unknown parameter")
	}
}
