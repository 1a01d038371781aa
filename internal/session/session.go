package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"raphavets/internal/domain/appointments"
)

var (
	// ErrNotCancelable: la copia local está en estado terminal; no se hace
	// ninguna llamada de red.
	ErrNotCancelable = errors.New("appointment is not cancelable")
	ErrNotInSession  = errors.New("appointment not in session")
	// ErrStaleResponse: llegó la respuesta de un refresh ya superado por un
	// cambio de filtro u otro refresh; se descarta para evitar flicker.
	ErrStaleResponse = errors.New("stale response discarded")
)

// Backend es el colaborador remoto visto desde la sesión. Lo implementa
// adapters/backend (REST) y cualquier fake de test.
type Backend interface {
	FetchAppointments(ctx context.Context) ([]appointments.Appointment, error)
	Cancel(ctx context.Context, id string) (appointments.Appointment, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status appointments.Status) (appointments.BulkResult, error)
	BulkDelete(ctx context.Context, ids []string) (appointments.BulkResult, error)
}

// Session mantiene la lista de citas de una sesión de usuario en memoria y
// procesa comandos contra el backend. El estado es por sesión: nada se
// comparte entre sesiones ni se persiste acá.
type Session struct {
	mu      sync.Mutex
	backend Backend

	list   []appointments.Appointment
	filter appointments.StatusFilter
	query  string

	// gen crece con cada refresh o cambio de filtro; una respuesta traída
	// bajo una generación vieja se descarta.
	gen uint64

	onChange []func()
}

func New(backend Backend) *Session {
	return &Session{
		backend: backend,
		filter:  appointments.FilterAll,
	}
}

// OnChange registra un callback de actualización de estado (la capa de
// render de turno decide qué hacer con él).
func (s *Session) OnChange(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Refresh trae la lista completa del backend. Si mientras la llamada estaba
// en vuelo la sesión cambió (otro refresh, cambio de filtro), la respuesta
// se descarta y se devuelve ErrStaleResponse.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	g := s.gen
	s.mu.Unlock()

	items, err := s.backend.FetchAppointments(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if g != s.gen {
		s.mu.Unlock()
		return ErrStaleResponse
	}
	s.list = items
	s.mu.Unlock()

	s.notify()
	return nil
}

// View devuelve la lista filtrada según el estado actual de la sesión
// (copia; el caller no puede mutar el estado interno).
func (s *Session) View() []appointments.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appointments.Filter(s.list, s.filter, s.query)
}

// Apply procesa un comando. Los errores de red dejan la copia local intacta.
func (s *Session) Apply(ctx context.Context, cmd Command) error {
	switch c := cmd.(type) {
	case SetFilter:
		return s.applySetFilter(c)
	case CancelAppointment:
		return s.applyCancel(ctx, c)
	case BulkUpdateStatus:
		return s.applyBulkStatus(ctx, c)
	case BulkDelete:
		return s.applyBulkDelete(ctx, c)
	default:
		return fmt.Errorf("session: unknown command %T", cmd)
	}
}

func (s *Session) applySetFilter(c SetFilter) error {
	f := c.Status
	if f == "" {
		f = appointments.FilterAll
	}

	s.mu.Lock()
	s.filter = f
	s.query = c.Query
	s.gen++ // supersede refreshes en vuelo
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *Session) applyCancel(ctx context.Context, c CancelAppointment) error {
	s.mu.Lock()
	idx := s.indexOf(c.ID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotInSession
	}
	if !appointments.IsCancelable(s.list[idx].Status) {
		s.mu.Unlock()
		return ErrNotCancelable
	}
	s.mu.Unlock()

	updated, err := s.backend.Cancel(ctx, c.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if idx := s.indexOf(c.ID); idx >= 0 {
		s.list[idx] = updated
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *Session) applyBulkStatus(ctx context.Context, c BulkUpdateStatus) error {
	res, err := s.backend.BulkUpdateStatus(ctx, c.IDs, c.Status)
	if err != nil {
		return err
	}

	// Reconciliación: solo los ids que el server confirmó cambian localmente.
	s.mu.Lock()
	for _, id := range res.Updated {
		if idx := s.indexOf(id); idx >= 0 {
			s.list[idx].Status = c.Status
		}
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *Session) applyBulkDelete(ctx context.Context, c BulkDelete) error {
	res, err := s.backend.BulkDelete(ctx, c.IDs)
	if err != nil {
		return err
	}

	deleted := make(map[string]struct{}, len(res.Updated))
	for _, id := range res.Updated {
		deleted[id] = struct{}{}
	}

	s.mu.Lock()
	kept := s.list[:0]
	for _, a := range s.list {
		if _, gone := deleted[a.ID]; !gone {
			kept = append(kept, a)
		}
	}
	s.list = kept
	s.mu.Unlock()

	s.notify()
	return nil
}

// indexOf requiere s.mu tomado.
func (s *Session) indexOf(id string) int {
	for i, a := range s.list {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.onChange))
	copy(subs, s.onChange)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
