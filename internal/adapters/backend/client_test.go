package backend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"raphavets/internal/adapters/backend"
	"raphavets/internal/domain/appointments"
	"raphavets/internal/router"
	"raphavets/internal/session"
)

// El cliente REST debe poder enchufarse como colaborador de la sesión.
var _ session.Backend = (*backend.Client)(nil)

func TestClient_AgainstRealServer(t *testing.T) {
	h, _ := router.NewRouter(router.Options{AuthVerifier: nil})
	ts := httptest.NewServer(h)
	defer ts.Close()

	ownerID := "owner-1"

	// Alta por staff directo contra el server
	apptID := seedAppointment(t, ts.URL, map[string]any{
		"pet_name":      "Milo",
		"owner_user_id": ownerID,
		"owner":         "Ana",
		"date":          "2024-05-12 • 10:30 AM",
		"status":        "Upcoming",
	})

	client, err := backend.NewClient(backend.Options{
		BaseURL:     ts.URL,
		DebugUserID: ownerID,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	// Fetch trae la cita con los campos canónicos reconstruidos
	items, err := client.FetchAppointments(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("fetched %d appointments, want 1", len(items))
	}
	got := items[0]
	if got.ID != apptID || got.Status != appointments.StatusUpcoming {
		t.Fatalf("fetched appointment = %+v", got)
	}
	if !got.HasValidDate() || got.ScheduledAt.Format("2006-01-02") != "2024-05-12" {
		t.Fatalf("scheduled date not reconstructed: %v", got.ScheduledAt)
	}

	// Y la sesión completa el ciclo: refresh + cancel + re-cancel local
	s := session.New(client)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("session refresh: %v", err)
	}

	if err := s.Apply(context.Background(), session.CancelAppointment{ID: apptID}); err != nil {
		t.Fatalf("session cancel: %v", err)
	}
	view := s.View()
	if len(view) != 1 || view[0].Status != appointments.StatusCancelled {
		t.Fatalf("view after cancel = %+v, want Cancelled", view)
	}

	// La segunda cancelación se corta en la copia local, sin red
	if err := s.Apply(context.Background(), session.CancelAppointment{ID: apptID}); !errors.Is(err, session.ErrNotCancelable) {
		t.Fatalf("second cancel err = %v, want ErrNotCancelable", err)
	}
}

func TestClient_BulkOpsRoundTrip(t *testing.T) {
	h, _ := router.NewRouter(router.Options{AuthVerifier: nil})
	ts := httptest.NewServer(h)
	defer ts.Close()

	a1 := seedAppointment(t, ts.URL, map[string]any{
		"pet_name": "Milo", "owner_user_id": "owner-1", "date": "2024-05-12",
	})

	admin, err := backend.NewClient(backend.Options{
		BaseURL:       ts.URL,
		DebugUserID:   "admin-1",
		DebugUserRole: "admin",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	res, err := admin.BulkUpdateStatus(context.Background(), []string{a1, "ghost"}, appointments.StatusCompleted)
	if err != nil {
		t.Fatalf("bulk status: %v", err)
	}
	if len(res.Updated) != 1 || res.Updated[0] != a1 {
		t.Fatalf("updated = %v, want [%s]", res.Updated, a1)
	}
	if len(res.Failed) != 1 || res.Failed[0].ID != "ghost" {
		t.Fatalf("failed = %+v, want only ghost", res.Failed)
	}

	res, err = admin.BulkDelete(context.Background(), []string{a1})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if len(res.Updated) != 1 {
		t.Fatalf("deleted = %v, want [%s]", res.Updated, a1)
	}
}

func seedAppointment(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	b, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", baseURL+"/appointment/", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Debug-User-ID", "vet-1")
	req.Header.Set("X-Debug-User-Role", "vet")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 seed appointment, got %d body=%s", res.StatusCode, string(body))
	}

	var out struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &out)
	if out.ID == "" {
		t.Fatalf("seed appointment: missing id body=%s", string(body))
	}
	return out.ID
}
