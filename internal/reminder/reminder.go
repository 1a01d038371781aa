package reminder

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"raphavets/internal/domain/appointments"
	"raphavets/internal/platform/logger"
)

// Notifier recibe los recordatorios. La implementación por defecto loguea;
// un canal real (mail, push) se enchufa acá sin tocar el barrido.
type Notifier interface {
	Notify(ctx context.Context, a appointments.Appointment) error
}

type LogNotifier struct {
	Log logger.Logger
}

func (n LogNotifier) Notify(ctx context.Context, a appointments.Appointment) error {
	n.Log.Info("appointment reminder", map[string]any{
		"appointment_id": a.ID,
		"pet":            a.PetName,
		"owner":          a.OwnerName,
		"date":           a.ScheduledAt.Format("2006-01-02"),
		"time":           a.TimeLabel,
	})
	return nil
}

// Sweeper recorre las citas Upcoming del día siguiente y las notifica.
// No muta estados: es un barrido de solo lectura.
type Sweeper struct {
	svc      *appointments.Service
	notifier Notifier
	log      logger.Logger
	now      func() time.Time

	cron *cron.Cron
	spec string
}

func NewSweeper(svc *appointments.Service, notifier Notifier, log logger.Logger, cronSpec string) *Sweeper {
	return &Sweeper{
		svc:      svc,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		spec:     cronSpec,
	}
}

// Start agenda el barrido. Error si el cron spec no parsea.
func (s *Sweeper) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.Run(ctx)
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c

	s.log.Info("reminder sweeper started", map[string]any{"cron": s.spec})
	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run ejecuta un barrido: citas Upcoming con fecha dentro de mañana.
// Exportado para tests y para disparos manuales.
func (s *Sweeper) Run(ctx context.Context) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)
	end := start.Add(24*time.Hour - time.Nanosecond)

	items, err := s.svc.List(ctx, appointments.ListFilter{
		Status: appointments.FilterUpcoming,
		From:   &start,
		To:     &end,
	})
	if err != nil {
		s.log.Error("reminder sweep failed", logger.Err(err))
		return
	}

	for _, a := range items {
		if err := s.notifier.Notify(ctx, a); err != nil {
			s.log.Warn("reminder notify failed", map[string]any{
				"appointment_id": a.ID,
				"err":            err.Error(),
			})
		}
	}

	s.log.Debug("reminder sweep done", map[string]any{"count": len(items)})
}
