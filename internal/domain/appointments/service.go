package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"raphavets/internal/platform/dateparse"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	// ErrBadState: la cita está en un estado terminal y no admite la operación.
	ErrBadState = errors.New("invalid state")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID   string
	PetName string

	OwnerUserID string
	OwnerName   string

	// Date admite las codificaciones legadas ("2024-05-12 • 10:30 AM",
	// "May 12, 2024 - 16:00", fecha sola). Time pisa la hora embebida.
	Date string
	Time string

	Status string // opcional; default Pending
	Notes  string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	if strings.TrimSpace(in.PetName) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.OwnerUserID) == "" {
		return Appointment{}, ErrInvalidInput
	}

	res, err := dateparse.Parse(in.Date)
	if err != nil {
		// En alta nueva la fecha inválida es error de validación; el fail-soft
		// aplica solo a data legada que ya vive en storage.
		return Appointment{}, ErrInvalidInput
	}

	timeLabel := strings.TrimSpace(in.Time)
	if timeLabel == "" {
		timeLabel = res.TimeLabel
	}

	st := StatusPending
	if strings.TrimSpace(in.Status) != "" {
		norm, ok := NormalizeStatus(in.Status)
		if !ok {
			return Appointment{}, ErrInvalidInput
		}
		st = norm
	}

	now := s.now()
	a := Appointment{
		ID:          uuid.NewString(),
		PetID:       strings.TrimSpace(in.PetID),
		PetName:     strings.TrimSpace(in.PetName),
		OwnerUserID: strings.TrimSpace(in.OwnerUserID),
		OwnerName:   strings.TrimSpace(in.OwnerName),
		ScheduledAt: res.Date,
		DateLabel:   strings.TrimSpace(in.Date),
		TimeLabel:   timeLabel,
		Status:      st,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Appointment, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Appointment, error) {
	return s.repo.List(ctx, filter)
}

// Cancel: Pending|Upcoming --(cancel)--> Cancelled. Ninguna otra transición
// se expone por esta vía. El dueño solo puede cancelar sus propias citas;
// staff puede cancelar cualquiera.
func (s *Service) Cancel(ctx context.Context, id, actorUserID string, actorIsStaff bool) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if !actorIsStaff && a.OwnerUserID != actorUserID {
		return Appointment{}, ErrForbidden
	}
	if !IsCancelable(a.Status) {
		return Appointment{}, ErrBadState
	}

	a.Status = StatusCancelled
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// BulkResult es la reconciliación por id de una operación masiva, para que
// un caller optimista pueda converger con lo que realmente pasó.
type BulkResult struct {
	Updated []string
	Failed  []BulkFailure
}

type BulkFailure struct {
	ID     string
	Reason string
}

// BulkUpdateStatus aplica un único estado destino a cada id del set.
// Herramienta de admin: puede sacar una cita de estado terminal.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []string, status string) (BulkResult, error) {
	target, ok := NormalizeStatus(status)
	if !ok {
		return BulkResult{}, ErrInvalidInput
	}
	if len(ids) == 0 {
		return BulkResult{}, ErrInvalidInput
	}

	now := s.now()
	var res BulkResult
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			res.Failed = append(res.Failed, BulkFailure{ID: id, Reason: "empty id"})
			continue
		}

		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			res.Failed = append(res.Failed, BulkFailure{ID: id, Reason: "not found"})
			continue
		}

		a.Status = target
		a.UpdatedAt = now
		if err := s.repo.Update(ctx, a); err != nil {
			res.Failed = append(res.Failed, BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		res.Updated = append(res.Updated, id)
	}
	return res, nil
}

// BulkDelete borra físicamente (solo tooling de admin; la vista del dueño
// nunca borra, cancela).
func (s *Service) BulkDelete(ctx context.Context, ids []string) (BulkResult, error) {
	if len(ids) == 0 {
		return BulkResult{}, ErrInvalidInput
	}

	var res BulkResult
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			res.Failed = append(res.Failed, BulkFailure{ID: id, Reason: "empty id"})
			continue
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			res.Failed = append(res.Failed, BulkFailure{ID: id, Reason: "not found"})
			continue
		}
		res.Updated = append(res.Updated, id)
	}
	return res, nil
}
