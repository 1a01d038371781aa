package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "raphavets/docs"
	"raphavets/internal/adapters/ml"
	mem "raphavets/internal/adapters/storage/memory"
	pg "raphavets/internal/adapters/storage/postgres"
	"raphavets/internal/domain/appointments"
	"raphavets/internal/domain/breeds"
	"raphavets/internal/domain/calendar"
	"raphavets/internal/domain/pets"
	"raphavets/internal/domain/staff"
	"raphavets/internal/domain/visits"
	"raphavets/internal/middleware"
	"raphavets/internal/platform/logger"
	"raphavets/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Predictor de raza; nil => se arma uno desde ML_URL
	// (default http://localhost:5001).
	Predictor breeds.Predictor

	Log logger.Logger
}

// Deps expone los services armados por el router para quien necesite
// engancharles trabajo fuera de HTTP (p.ej. el barrido de recordatorios).
type Deps struct {
	Appointments *appointments.Service
	Visits       *visits.Service
	Pets         *pets.Service
	Staff        *staff.Service
}

func NewRouter(opts Options) (http.Handler, Deps) {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		apptRepo  appointments.Repository
		visitRepo visits.Repository
		petRepo   pets.Repository
		staffRepo staff.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", logger.Err(err))
			}
		}
	}

	if db != nil {
		apptRepo = pg.NewAppointmentsRepo(db)
		visitRepo = pg.NewVisitsRepo(db)
		petRepo = pg.NewPetsRepo(db)
		staffRepo = pg.NewStaffRepo(db)
	} else {
		apptRepo = mem.NewAppointmentRepo()
		visitRepo = mem.NewVisitRepo()
		petRepo = mem.NewPetRepo()
		staffRepo = mem.NewStaffRepo()
	}

	// Services por módulo
	apptSvc := appointments.NewService(apptRepo)
	visitSvc := visits.NewService(visitRepo)
	petSvc := pets.NewService(petRepo)
	staffSvc := staff.NewService(staffRepo)

	predictor := opts.Predictor
	if predictor == nil {
		base := os.Getenv("ML_URL")
		if base == "" {
			base = "http://localhost:5001"
		}
		client, err := ml.NewClient(ml.Config{BaseURL: base})
		if err != nil {
			log.Warn("ml client misconfigured, breed prediction will fail", logger.Err(err))
			client = nil
		}
		// *ml.Client nil sigue siendo un Predictor válido: responde
		// ErrNotConfigured y el handler lo convierte en el 500 estándar.
		predictor = client
	}

	// Rutas por módulo
	appointments.RegisterRoutes(r, apptSvc, staffSvc)
	visits.RegisterRoutes(r, visitSvc, staffSvc)
	pets.RegisterRoutes(r, petSvc, apptSvc, staffSvc)
	staff.RegisterRoutes(r, staffSvc)
	calendar.RegisterRoutes(r, apptSvc, visitSvc, staffSvc)
	breeds.RegisterRoutes(r, predictor, log)

	return r, Deps{
		Appointments: apptSvc,
		Visits:       visitSvc,
		Pets:         petSvc,
		Staff:        staffSvc,
	}
}
