package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	mem "raphavets/internal/adapters/storage/memory"
	"raphavets/internal/domain/appointments"
	"raphavets/internal/platform/logger"
)

type fakeNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (n *fakeNotifier) Notify(ctx context.Context, a appointments.Appointment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, a.ID)
	return nil
}

func testLogger() logger.Logger {
	return logger.New(logger.Options{Level: logger.Error})
}

func TestSweeper_Run_NotifiesTomorrowsUpcoming(t *testing.T) {
	repo := mem.NewAppointmentRepo()
	svc := appointments.NewService(repo)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	mustCreate := func(date, status string) appointments.Appointment {
		t.Helper()
		a, err := svc.Create(context.Background(), appointments.CreateInput{
			PetName:     "Milo",
			OwnerUserID: "owner-1",
			OwnerName:   "Ana",
			Date:        date,
			Status:      status,
		})
		if err != nil {
			t.Fatalf("create appointment: %v", err)
		}
		return a
	}

	want := mustCreate(tomorrow, "Upcoming")
	mustCreate(tomorrow, "Pending")   // no está confirmada, no se recuerda
	mustCreate(tomorrow, "Cancelled") // cancelada, fuera
	mustCreate(nextWeek, "Upcoming")  // fuera de la ventana

	notifier := &fakeNotifier{}
	s := NewSweeper(svc, notifier, testLogger(), "@daily")

	s.Run(context.Background())

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.ids) != 1 {
		t.Fatalf("notified %d appointments, want 1 (%v)", len(notifier.ids), notifier.ids)
	}
	if notifier.ids[0] != want.ID {
		t.Fatalf("notified %s, want %s", notifier.ids[0], want.ID)
	}
}

func TestSweeper_Start_RejectsBadCronSpec(t *testing.T) {
	repo := mem.NewAppointmentRepo()
	svc := appointments.NewService(repo)

	s := NewSweeper(svc, &fakeNotifier{}, testLogger(), "not a cron spec")
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestSweeper_StartAndStop(t *testing.T) {
	repo := mem.NewAppointmentRepo()
	svc := appointments.NewService(repo)

	s := NewSweeper(svc, &fakeNotifier{}, testLogger(), "0 9 * * *")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()
}
