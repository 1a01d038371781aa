package visits

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
	PetID     string
	PetName   string
	OwnerName string
	Date      string // mismas codificaciones que las citas
	Time      string
	VisitType string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Visit, error) {
	if strings.TrimSpace(in.PetName) == "" {
		return Visit{}, ErrInvalidInput
	}

	vt, ok := parseVisitType(in.VisitType)
	if !ok {
		return Visit{}, ErrInvalidInput
	}

	res, err := dateparse.Parse(in.Date)
	if err != nil {
		return Visit{}, ErrInvalidInput
	}

	timeLabel := strings.TrimSpace(in.Time)
	if timeLabel == "" {
		timeLabel = res.TimeLabel
	}

	v := Visit{
		ID:        uuid.NewString(),
		PetID:     strings.TrimSpace(in.PetID),
		PetName:   strings.TrimSpace(in.PetName),
		OwnerName: strings.TrimSpace(in.OwnerName),
		VisitedAt: res.Date,
		DateLabel: strings.TrimSpace(in.Date),
		TimeLabel: timeLabel,
		VisitType: vt,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Visit{}, err
	}
	return v, nil
}

func (s *Service) ListRange(ctx context.Context, from, to *time.Time) ([]Visit, error) {
	return s.repo.ListRange(ctx, from, to)
}

func parseVisitType(s string) (VisitType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scheduled":
		return TypeScheduled, true
	case "walk-in", "walkin", "walk_in":
		return TypeWalkIn, true
	default:
		return "", false
	}
}
