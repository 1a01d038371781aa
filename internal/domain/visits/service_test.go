package visits

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Visit
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Visit{}}
}

func (r *testRepo) Create(ctx context.Context, v Visit) error {
	if v.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Visit, error) {
	v, ok := r.byID[id]
	if !ok {
		return Visit{}, ErrNotFound
	}
	return v, nil
}

func (r *testRepo) ListRange(ctx context.Context, from, to *time.Time) ([]Visit, error) {
	out := make([]Visit, 0)
	for _, v := range r.byID {
		if from != nil && (v.VisitedAt.IsZero() || v.VisitedAt.Before(*from)) {
			continue
		}
		if to != nil && (v.VisitedAt.IsZero() || v.VisitedAt.After(*to)) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo
}

func TestCreate_DefaultsToScheduled(t *testing.T) {
	svc, _ := newTestService()

	v, err := svc.Create(context.Background(), CreateInput{
		PetName: "Milo",
		Date:    "2024-05-12",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.VisitType != TypeScheduled {
		t.Fatalf("visit type = %s, want Scheduled", v.VisitType)
	}
	if !v.HasValidDate() {
		t.Fatal("expected valid visit date")
	}
}

func TestCreate_WalkInSpellings(t *testing.T) {
	svc, _ := newTestService()

	for _, spelling := range []string{"walk-in", "Walk-In", "walkin", "walk_in"} {
		v, err := svc.Create(context.Background(), CreateInput{
			PetName:   "Milo",
			Date:      "2024-05-12",
			VisitType: spelling,
		})
		if err != nil {
			t.Fatalf("create %q: %v", spelling, err)
		}
		if v.VisitType != TypeWalkIn {
			t.Fatalf("visit type for %q = %s, want Walk-in", spelling, v.VisitType)
		}
	}
}

func TestCreate_CombinedDateEncoding(t *testing.T) {
	svc, _ := newTestService()

	v, err := svc.Create(context.Background(), CreateInput{
		PetName: "Luna",
		Date:    "2024-05-12 • 9:00 AM",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := v.VisitedAt.Format("2006-01-02"); got != "2024-05-12" {
		t.Fatalf("visited date = %s, want 2024-05-12", got)
	}
	if v.TimeLabel != "9:00 AM" {
		t.Fatalf("time label = %q, want 9:00 AM", v.TimeLabel)
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc, _ := newTestService()

	cases := []CreateInput{
		{Date: "2024-05-12"},                                  // sin mascota
		{PetName: "Milo", Date: "garbage"},                    // fecha inválida
		{PetName: "Milo", Date: "2024-05-12", VisitType: "x"}, // tipo desconocido
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestListRange(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Create(context.Background(), CreateInput{PetName: "Milo", Date: "2024-05-12"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{PetName: "Luna", Date: "2024-06-12"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 5, 31, 23, 59, 59, 0, time.Local)

	got, err := svc.ListRange(context.Background(), &from, &to)
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(got) != 1 || got[0].PetName != "Milo" {
		t.Fatalf("range result = %+v, want only Milo", got)
	}
}
