package appointments

import "testing"

func sampleList() []Appointment {
	return []Appointment{
		{ID: "1", PetName: "Milo", OwnerName: "Ana", Status: StatusPending},
		{ID: "2", PetName: "Luna", OwnerName: "Bruno", Status: StatusCompleted},
		{ID: "3", PetName: "Rocky", OwnerName: "Ana", Status: StatusUpcoming},
	}
}

func ids(list []Appointment) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []Appointment, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got ids %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got ids %v, want %v", g, want)
		}
	}
}

func TestFilter_AllKeepsOrderAndLength(t *testing.T) {
	list := sampleList()

	got := Filter(list, FilterAll, "")
	assertIDs(t, got, "1", "2", "3")

	// Nunca devuelve el mismo slice: mutar el resultado no toca la entrada
	if len(got) > 0 {
		got[0].ID = "mutated"
		if list[0].ID != "1" {
			t.Fatal("Filter returned the input slice, expected a copy")
		}
	}
}

func TestFilter_ByStatus(t *testing.T) {
	list := sampleList()

	assertIDs(t, Filter(list, FilterUpcoming, ""), "3")
	assertIDs(t, Filter(list, FilterPending, ""), "1")
	assertIDs(t, Filter(list, FilterCancelled, ""))
}

func TestFilter_QueryMatchesPetAndOwner(t *testing.T) {
	list := sampleList()

	// substring case-insensitive sobre mascota
	assertIDs(t, Filter(list, FilterAll, "mi"), "1")
	assertIDs(t, Filter(list, FilterAll, "LUNA"), "2")

	// y sobre dueño
	assertIDs(t, Filter(list, FilterAll, "ana"), "1", "3")

	// combinado con estado
	assertIDs(t, Filter(list, FilterUpcoming, "ana"), "3")
	assertIDs(t, Filter(list, FilterPending, "bruno"))
}

func TestFilter_Idempotent(t *testing.T) {
	list := sampleList()

	once := Filter(list, FilterAll, "ana")
	twice := Filter(once, FilterAll, "ana")

	assertIDs(t, twice, ids(once)...)
}

func TestFilter_EmptyInput(t *testing.T) {
	if got := Filter(nil, FilterUpcoming, "x"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
	if got := Filter([]Appointment{}, FilterAll, ""); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", got)
	}
}

// Casing sucio en storage no rompe el filtro por estado.
func TestFilter_ToleratesDirtyStatusCasing(t *testing.T) {
	list := []Appointment{
		{ID: "1", PetName: "Milo", Status: Status("upcoming")},
		{ID: "2", PetName: "Luna", Status: Status("UPCOMING")},
		{ID: "3", PetName: "Rocky", Status: StatusPending},
	}
	assertIDs(t, Filter(list, FilterUpcoming, ""), "1", "2")
}
