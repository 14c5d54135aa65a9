package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/psicare/clinic-scheduling/internal/clinic"
)

type RouterConfig struct {
	Registry     *clinic.RegistryService
	Slots        *clinic.SlotService
	Appointments *clinic.AppointmentService
	Agenda       *clinic.AgendaService
	Notes        *clinic.NotesService
	Deletion     *clinic.DeletionService
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
	Logger       zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/practitioners", func(r chi.Router) {
		r.Post("/", createPractitionerHandler(cfg.Registry))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getPractitionerHandler(cfg.Registry))

			r.Post("/patients", createPatientHandler(cfg.Registry))
			r.Get("/patients", listPatientsHandler(cfg.Registry))

			r.Post("/posts", createPostHandler(cfg.Registry))
			r.Get("/posts", listPostsHandler(cfg.Registry))

			r.Post("/slots", createSlotHandler(cfg.Slots))
			r.Post("/slots/schedule", createScheduleHandler(cfg.Slots))
			r.Get("/slots", freeSlotsByDateHandler(cfg.Slots))
			r.Get("/availability", availabilityHandler(cfg.Slots))

			r.Get("/appointments", listAppointmentsHandler(cfg.Appointments))
			r.Get("/agenda", listAgendaHandler(cfg.Agenda))
			r.Delete("/agenda/groups/{groupID}", deleteAgendaSeriesHandler(cfg.Agenda))

			r.Get("/deletion-plan", deletionPlanHandler(cfg.Deletion))
			r.Delete("/", deleteAccountHandler(cfg.Deletion))
			r.Post("/transfer", transferPatientsHandler(cfg.Deletion))
		})
	})

	r.Route("/patients/{id}", func(r chi.Router) {
		r.Get("/", getPatientHandler(cfg.Registry))
		r.Post("/notes", createNoteHandler(cfg.Notes))
		r.Get("/notes", listPatientNotesHandler(cfg.Notes))
	})

	r.Route("/slots/{id}", func(r chi.Router) {
		r.Patch("/", updateSlotHandler(cfg.Slots))
		r.Delete("/", deleteSlotHandler(cfg.Slots))
		r.Post("/book", bookSlotHandler(cfg.Slots))
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Post("/", createAppointmentHandler(cfg.Appointments))
		r.Get("/{id}", getAppointmentHandler(cfg.Appointments))
		r.Post("/{id}/status", changeAppointmentStatusHandler(cfg.Appointments))
	})

	r.Route("/agenda", func(r chi.Router) {
		r.Post("/", createAgendaEntryHandler(cfg.Agenda))
		r.Get("/{id}", getAgendaEntryHandler(cfg.Agenda))
		r.Patch("/{id}", updateAgendaEntryHandler(cfg.Agenda))
		r.Post("/{id}/status", changeAgendaStatusHandler(cfg.Agenda))
		r.Delete("/{id}", deleteAgendaEntryHandler(cfg.Agenda))
	})

	r.Get("/notes/{id}", getNoteHandler(cfg.Notes))

	return r
}
