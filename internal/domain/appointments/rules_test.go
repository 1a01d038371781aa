package appointments

import "testing"

func TestStatusRules_KnownStates(t *testing.T) {
	cases := []struct {
		status     Status
		editable   bool
		cancelable bool
		terminal   bool
	}{
		{StatusPending, true, true, false},
		{StatusUpcoming, true, true, false},
		{StatusCompleted, false, false, true},
		{StatusCancelled, false, false, true},
	}

	for _, c := range cases {
		if got := IsEditable(c.status); got != c.editable {
			t.Errorf("IsEditable(%s) = %v, want %v", c.status, got, c.editable)
		}
		if got := IsCancelable(c.status); got != c.cancelable {
			t.Errorf("IsCancelable(%s) = %v, want %v", c.status, got, c.cancelable)
		}
		if got := IsTerminal(c.status); got != c.terminal {
			t.Errorf("IsTerminal(%s) = %v, want %v", c.status, got, c.terminal)
		}
	}
}

// Editable y cancelable son el mismo predicado hoy; si alguna vez divergen,
// este test obliga a decidirlo a propósito.
func TestStatusRules_EditableEqualsCancelable(t *testing.T) {
	all := []Status{StatusPending, StatusUpcoming, StatusCompleted, StatusCancelled, Status("Weird"), Status("")}
	for _, st := range all {
		if IsEditable(st) != IsCancelable(st) {
			t.Errorf("IsEditable(%q) != IsCancelable(%q)", st, st)
		}
	}
}

// Un estado desconocido no habilita nada: ni editar, ni cancelar, y tampoco
// cuenta como terminal.
func TestStatusRules_UnknownStatusFailsSafe(t *testing.T) {
	for _, st := range []Status{"", "Unknown", "pending-ish", "DONE"} {
		if IsEditable(st) {
			t.Errorf("IsEditable(%q) = true, want false", st)
		}
		if IsCancelable(st) {
			t.Errorf("IsCancelable(%q) = true, want false", st)
		}
		if IsTerminal(st) {
			t.Errorf("IsTerminal(%q) = true, want false", st)
		}
	}
}

func TestStatusRules_CaseInsensitive(t *testing.T) {
	if !IsCancelable(Status("pending")) {
		t.Error("IsCancelable(pending) = false, want true")
	}
	if !IsCancelable(Status("UPCOMING")) {
		t.Error("IsCancelable(UPCOMING) = false, want true")
	}
	if !IsTerminal(Status("completed")) {
		t.Error("IsTerminal(completed) = false, want true")
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"Pending", StatusPending, true},
		{"pending", StatusPending, true},
		{"UPCOMING", StatusUpcoming, true},
		{"completed", StatusCompleted, true},
		{"CANCELLED", StatusCancelled, true},
		{"  Pending  ", StatusPending, true},
		{"", "", false},
		{"done", "", false},
	}

	for _, c := range cases {
		got, ok := NormalizeStatus(c.in)
		if ok != c.ok {
			t.Errorf("NormalizeStatus(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
