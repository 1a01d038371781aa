package backend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"raphavets/internal/domain/appointments"
	"raphavets/internal/platform/httpclient"
)

// Client es el colaborador REST visto desde el lado consumidor: los mismos
// paths que sirve este servicio, usados por la capa de sesión (y por
// cualquier integración Go que quiera la librería en vez de HTTP crudo).
type Client struct {
	http *httpclient.Client

	// Auth: token Bearer o, en dev, el par de headers de depuración.
	token         string
	debugUserID   string
	debugUserRole string
}

type Options struct {
	BaseURL string
	Timeout time.Duration

	Token         string
	DebugUserID   string
	DebugUserRole string
}

func NewClient(opts Options) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(opts.BaseURL, opts.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:          hc,
		token:         strings.TrimSpace(opts.Token),
		debugUserID:   strings.TrimSpace(opts.DebugUserID),
		debugUserRole: strings.TrimSpace(opts.DebugUserRole),
	}, nil
}

func (c *Client) headers() map[string]string {
	h := map[string]string{}
	if c.token != "" {
		h["Authorization"] = "Bearer " + c.token
	}
	if c.debugUserID != "" {
		h["X-Debug-User-ID"] = c.debugUserID
	}
	if c.debugUserRole != "" {
		h["X-Debug-User-Role"] = c.debugUserRole
	}
	return h
}

// wireAppointment refleja el JSON de appointmentResponse.
type wireAppointment struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	PetName   string    `json:"pet_name"`
	OwnerName string    `json:"owner"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type wireBulk struct {
	Updated []string `json:"updated"`
	Failed  []struct {
		ID     string `json:"id"`
		Reason string `json:"reason"`
	} `json:"failed"`
}

func (c *Client) FetchAppointments(ctx context.Context) ([]appointments.Appointment, error) {
	var out []wireAppointment
	if err := c.http.DoJSON(ctx, http.MethodGet, "/appointment/user", c.headers(), nil, &out); err != nil {
		return nil, err
	}

	items := make([]appointments.Appointment, 0, len(out))
	for _, w := range out {
		items = append(items, fromWire(w))
	}
	return items, nil
}

func (c *Client) Cancel(ctx context.Context, id string) (appointments.Appointment, error) {
	var out wireAppointment
	if err := c.http.DoJSON(ctx, http.MethodPut, "/appointment/cancel/"+id, c.headers(), nil, &out); err != nil {
		return appointments.Appointment{}, err
	}
	return fromWire(out), nil
}

func (c *Client) BulkUpdateStatus(ctx context.Context, ids []string, status appointments.Status) (appointments.BulkResult, error) {
	body := map[string]any{"ids": ids, "status": string(status)}
	var out wireBulk
	if err := c.http.DoJSON(ctx, http.MethodPut, "/appointment/status", c.headers(), body, &out); err != nil {
		return appointments.BulkResult{}, err
	}
	return fromWireBulk(out), nil
}

func (c *Client) BulkDelete(ctx context.Context, ids []string) (appointments.BulkResult, error) {
	body := map[string]any{"ids": ids}
	var out wireBulk
	if err := c.http.DoJSON(ctx, http.MethodDelete, "/appointment", c.headers(), body, &out); err != nil {
		return appointments.BulkResult{}, err
	}
	return fromWireBulk(out), nil
}

func fromWire(w wireAppointment) appointments.Appointment {
	a := appointments.Appointment{
		ID:        w.ID,
		PetID:     w.PetID,
		PetName:   w.PetName,
		OwnerName: w.OwnerName,
		DateLabel: w.Date,
		TimeLabel: w.Time,
		Notes:     w.Notes,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}

	if st, ok := appointments.NormalizeStatus(w.Status); ok {
		a.Status = st
	} else {
		a.Status = appointments.Status(w.Status)
	}

	// "Invalid Date" queda con ScheduledAt en cero, igual que en el server.
	if t, err := time.ParseInLocation("2006-01-02", w.Date, time.Local); err == nil {
		a.ScheduledAt = t
	}

	return a
}

func fromWireBulk(w wireBulk) appointments.BulkResult {
	res := appointments.BulkResult{Updated: w.Updated}
	for _, f := range w.Failed {
		res.Failed = append(res.Failed, appointments.BulkFailure{ID: f.ID, Reason: f.Reason})
	}
	return res
}
