package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"raphavets/internal/adapters/ml"
	"raphavets/internal/router"
)

func newTestServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	h, _ := router.NewRouter(opts)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_AppointmentLifecycle(t *testing.T) {
	ts := newTestServer(t, router.Options{AuthVerifier: nil})

	ownerID := "owner-1"
	vetID := "vet-1"

	// 1) Owner registra su mascota
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":    "Milo",
		"species": "dog",
		"breed":   "mixed",
		"sex":     "male",
	})

	// 2) Owner todavía no tiene citas
	{
		st, body := doReq(t, ts.URL, "GET", "/appointment/user", ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 empty list, got %d body=%s", st, string(body))
		}
		var list []map[string]any
		_ = json.Unmarshal(body, &list)
		if len(list) != 0 {
			t.Fatalf("expected empty list, got %d items", len(list))
		}
	}

	// 3) Un owner no puede crear citas (staff only)
	{
		st, _ := doReq(t, ts.URL, "POST", "/appointment/", ownerID, "", map[string]any{
			"pet_name": "Milo", "owner_user_id": ownerID, "date": "2024-05-12",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 create by owner, got %d", st)
		}
	}

	// 4) El vet agenda la cita con codificación legada de fecha
	apptID := createAppointment(t, ts.URL, vetID, map[string]any{
		"pet_id":        petID,
		"pet_name":      "Milo",
		"owner_user_id": ownerID,
		"owner":         "Ana",
		"date":          "2024-05-12 • 10:30 AM",
		"status":        "Upcoming",
	})

	// 5) Owner la ve, con fecha canónica y hora de display
	{
		st, body := doReq(t, ts.URL, "GET", "/appointment/user", ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var list []struct {
			ID     string `json:"id"`
			Date   string `json:"date"`
			Time   string `json:"time"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 {
			t.Fatalf("expected 1 appointment, got %d", len(list))
		}
		if list[0].Date != "2024-05-12" || list[0].Time != "10:30 AM" || list[0].Status != "Upcoming" {
			t.Fatalf("unexpected appointment: %+v", list[0])
		}
	}

	// 6) El filtro por estado respeta el contrato de la vista de lista
	{
		st, body := doReq(t, ts.URL, "GET", "/appointment/user?status=completed", ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 filtered list, got %d", st)
		}
		var list []map[string]any
		_ = json.Unmarshal(body, &list)
		if len(list) != 0 {
			t.Fatalf("completed filter should be empty, got %d", len(list))
		}

		st, _ = doReq(t, ts.URL, "GET", "/appointment/user?status=bogus", ownerID, "", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown status filter, got %d", st)
		}
	}

	// 7) Otro usuario no puede cancelarla
	{
		st, _ := doReq(t, ts.URL, "PUT", "/appointment/cancel/"+apptID, "intruder", "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 foreign cancel, got %d", st)
		}
	}

	// 8) Owner cancela
	{
		st, body := doReq(t, ts.URL, "PUT", "/appointment/cancel/"+apptID, ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "Cancelled" {
			t.Fatalf("status after cancel = %q, want Cancelled", resp.Status)
		}
	}

	// 9) Re-cancelar una cita terminal es conflicto, no no-op silencioso
	{
		st, _ := doReq(t, ts.URL, "PUT", "/appointment/cancel/"+apptID, ownerID, "", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 second cancel, got %d", st)
		}
	}
}

func TestHTTP_AdminBulkOps(t *testing.T) {
	ts := newTestServer(t, router.Options{AuthVerifier: nil})

	vetID := "vet-1"
	adminID := "admin-1"

	a1 := createAppointment(t, ts.URL, vetID, map[string]any{
		"pet_name": "Milo", "owner_user_id": "owner-1", "date": "2024-05-12",
	})
	a2 := createAppointment(t, ts.URL, vetID, map[string]any{
		"pet_name": "Luna", "owner_user_id": "owner-2", "date": "2024-05-13",
	})

	// Vet no alcanza: bulk ops son de admin
	{
		st, _ := doReq(t, ts.URL, "PUT", "/appointment/status", vetID, "vet", map[string]any{
			"ids": []string{a1}, "status": "Completed",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 bulk by vet, got %d", st)
		}
	}

	// Admin: cambia estados con reconciliación por id
	{
		st, body := doReq(t, ts.URL, "PUT", "/appointment/status", adminID, "admin", map[string]any{
			"ids": []string{a1, "ghost"}, "status": "completed",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 bulk status, got %d body=%s", st, string(body))
		}
		var resp struct {
			Updated []string `json:"updated"`
			Failed  []struct {
				ID     string `json:"id"`
				Reason string `json:"reason"`
			} `json:"failed"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Updated) != 1 || resp.Updated[0] != a1 {
			t.Fatalf("updated = %v, want [%s]", resp.Updated, a1)
		}
		if len(resp.Failed) != 1 || resp.Failed[0].ID != "ghost" {
			t.Fatalf("failed = %+v, want only ghost", resp.Failed)
		}
	}

	// Admin: borra en lote
	{
		st, body := doReq(t, ts.URL, "DELETE", "/appointment/", adminID, "admin", map[string]any{
			"ids": []string{a1, a2},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 bulk delete, got %d body=%s", st, string(body))
		}
		var resp struct {
			Updated []string `json:"updated"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Updated) != 2 {
			t.Fatalf("deleted = %v, want both ids", resp.Updated)
		}
	}
}

func TestHTTP_StaffAssignments(t *testing.T) {
	ts := newTestServer(t, router.Options{AuthVerifier: nil})

	adminID := "admin-1"
	userID := "user-9"

	// Sin asignación y sin rol de token, user-9 no es staff
	{
		st, _ := doReq(t, ts.URL, "POST", "/visits/", userID, "", map[string]any{
			"pet_name": "Milo", "date": "2024-05-12",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 visit by plain owner, got %d", st)
		}
	}

	// Admin lo asigna como vet
	var assignmentID string
	{
		st, body := doReq(t, ts.URL, "POST", "/staff/", adminID, "admin", map[string]any{
			"user_id": userID, "role": "vet",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 assign, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		assignmentID = resp.ID
	}

	// Ahora storage manda: user-9 es staff aunque su token no diga nada
	{
		st, body := doReq(t, ts.URL, "POST", "/visits/", userID, "", map[string]any{
			"pet_name": "Milo", "owner": "Ana", "date": "2024-05-12", "visit_type": "walk-in",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 visit by assigned vet, got %d body=%s", st, string(body))
		}
		var resp struct {
			VisitType string `json:"visit_type"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.VisitType != "Walk-in" {
			t.Fatalf("visit_type = %q, want Walk-in", resp.VisitType)
		}
	}

	// Revocación con efecto inmediato
	{
		st, _ := doReq(t, ts.URL, "POST", "/staff/"+assignmentID+"/revoke", adminID, "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 revoke, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/visits/", userID, "", map[string]any{
			"pet_name": "Milo", "date": "2024-05-12",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 after revoke, got %d", st)
		}
	}
}

func TestHTTP_CalendarGridAndICS(t *testing.T) {
	ts := newTestServer(t, router.Options{AuthVerifier: nil})

	vetID := "vet-1"

	createAppointment(t, ts.URL, vetID, map[string]any{
		"pet_name": "Milo", "owner_user_id": "owner-1", "owner": "Ana",
		"date": "2022-06-15 • 10:30 AM", "status": "Upcoming",
	})
	{
		st, body := doReq(t, ts.URL, "POST", "/visits/", vetID, "vet", map[string]any{
			"pet_name": "Luna", "owner": "Bruno", "date": "2022-06-15", "time": "3:00 PM",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 visit, got %d body=%s", st, string(body))
		}
	}

	// El calendario es vista de staff
	{
		st, _ := doReq(t, ts.URL, "GET", "/calendar/2022/6", "owner-1", "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 calendar by owner, got %d", st)
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/calendar/2022/6?day=15", vetID, "vet", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 calendar, got %d body=%s", st, string(body))
		}

		var resp struct {
			LeadingBlanks int `json:"leading_blanks"`
			DaysInMonth   int `json:"days_in_month"`
			Cells         []struct {
				Day     int `json:"day"`
				Entries []struct {
					Kind string `json:"kind"`
				} `json:"entries"`
			} `json:"cells"`
			Selected *struct {
				Day          int   `json:"day"`
				Appointments []any `json:"appointments"`
				Visits       []any `json:"visits"`
			} `json:"selected"`
		}
		_ = json.Unmarshal(body, &resp)

		// Junio 2022 arranca miércoles
		if resp.LeadingBlanks != 3 || resp.DaysInMonth != 30 {
			t.Fatalf("grid shape = %d blanks / %d days, want 3/30", resp.LeadingBlanks, resp.DaysInMonth)
		}
		if len(resp.Cells) != 33 {
			t.Fatalf("cells = %d, want 33", len(resp.Cells))
		}
		cell := resp.Cells[3+14] // día 15
		if cell.Day != 15 || len(cell.Entries) != 2 {
			t.Fatalf("day 15 cell = %+v, want 2 entries", cell)
		}
		if resp.Selected == nil || len(resp.Selected.Appointments) != 1 || len(resp.Selected.Visits) != 1 {
			t.Fatalf("selected partition = %+v, want 1 appointment + 1 visit", resp.Selected)
		}
	}

	// Export ICS
	{
		req, err := http.NewRequest("GET", ts.URL+"/calendar/2022/6/ics", nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("X-Debug-User-ID", vetID)
		req.Header.Set("X-Debug-User-Role", "vet")

		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("ics request: %v", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 ics, got %d", res.StatusCode)
		}
		if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
			t.Fatalf("content-type = %q, want text/calendar", ct)
		}
		body, _ := io.ReadAll(res.Body)
		if !strings.Contains(string(body), "BEGIN:VCALENDAR") {
			t.Fatalf("ics body missing VCALENDAR: %s", string(body))
		}
		if !strings.Contains(string(body), "Milo") {
			t.Fatalf("ics body missing appointment summary: %s", string(body))
		}
	}
}

func TestHTTP_BreedPrediction(t *testing.T) {
	// Fake del microservicio de ML
	mlSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/breed/predict" {
			http.NotFound(w, r)
			return
		}
		if _, _, err := r.FormFile("file"); err != nil {
			http.Error(w, "missing file", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"breed":"beagle","confidence":0.97}`))
	}))
	defer mlSrv.Close()

	predictor, err := ml.NewClient(ml.Config{BaseURL: mlSrv.URL})
	if err != nil {
		t.Fatalf("ml client: %v", err)
	}

	ts := newTestServer(t, router.Options{AuthVerifier: nil, Predictor: predictor})

	// Respuesta del modelo pasa tal cual
	{
		st, body := doMultipart(t, ts.URL+"/predict/breed", "file", "milo.jpg", []byte("fake-image-bytes"))
		if st != http.StatusOK {
			t.Fatalf("expected 200 predict, got %d body=%s", st, string(body))
		}
		if strings.TrimSpace(string(body)) != `{"breed":"beagle","confidence":0.97}` {
			t.Fatalf("body not passed through verbatim: %s", string(body))
		}
	}

	// Sin campo file => 400
	{
		st, _ := doMultipart(t, ts.URL+"/predict/breed", "photo", "milo.jpg", []byte("x"))
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 missing field, got %d", st)
		}
	}

	// ML caído => 500 con el error opaco del contrato
	mlSrv.Close()
	{
		st, body := doMultipart(t, ts.URL+"/predict/breed", "file", "milo.jpg", []byte("x"))
		if st != http.StatusInternalServerError {
			t.Fatalf("expected 500 with ml down, got %d", st)
		}
		if strings.TrimSpace(string(body)) != `{"error":"Prediction failed"}` {
			t.Fatalf("unexpected error body: %s", string(body))
		}
	}
}

// -------------------------
// Helpers
// -------------------------

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets/", userID, "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func createAppointment(t *testing.T, baseURL, staffUserID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/appointment/", staffUserID, "vet", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create appointment, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create appointment: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if debugRole != "" {
		req.Header.Set("X-Debug-User-Role", debugRole)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res.StatusCode, b
}

func doMultipart(t *testing.T, url, field, filename string, content []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()

	req, err := http.NewRequest("POST", url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res.StatusCode, b
}
