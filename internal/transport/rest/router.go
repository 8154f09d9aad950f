package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/activity"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/monthlydonate"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/mydata"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/participation"
	"github.com/heartmarshall/temple-api/internal/adapter/sqldb/registration"
	"github.com/heartmarshall/temple-api/internal/config"
	"github.com/heartmarshall/temple-api/internal/domain"
	"github.com/heartmarshall/temple-api/internal/transport/middleware"
)

// Repos holds the entity repositories served by the API.
type Repos struct {
	Activities     *activity.Repo
	Registrations  *registration.Repo
	MonthlyDonates *monthlydonate.Repo
	Participations *participation.Repo
	MyData         *mydata.Repo
}

// RouterDeps are the dependencies of NewRouter.
type RouterDeps struct {
	Logger  *slog.Logger
	DB      dbChecker
	Repos   Repos
	CORS    config.CORSConfig
	Version string
}

// NewRouter builds the HTTP handler: entity routes under /api, health
// checks and /metrics.
func NewRouter(d RouterDeps) http.Handler {
	log := d.Logger

	r := chi.NewRouter()
	r.Use(middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(d.CORS),
	))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	health := NewHealthHandler(d.DB, d.Version, log)
	r.Get("/live", health.Live)
	r.Get("/ready", health.Ready)
	r.Get("/health", health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Health)

		r.Route("/activities", NewResource[domain.Activity, int64,
			domain.CreateActivityInput, domain.UpdateActivityInput](
			"activity", d.Repos.Activities, log,
			Lookup{Path: "activity-id", Column: "activityId"},
		).Routes)

		r.Route("/registrations", NewResource[domain.Registration, int64,
			domain.CreateRegistrationInput, domain.UpdateRegistrationInput](
			"registration", d.Repos.Registrations, log,
			Lookup{Path: "form-id", Column: "formId"},
			Lookup{Path: "state", Column: "state"},
			Lookup{Path: "user", Column: "user_created"},
		).Routes)

		r.Route("/monthly-donates", NewResource[domain.MonthlyDonate, int64,
			domain.CreateMonthlyDonateInput, domain.UpdateMonthlyDonateInput](
			"monthly donate", d.Repos.MonthlyDonates, log,
			Lookup{Path: "donate-id", Column: "donateId"},
			Lookup{Path: "registration", Column: "registrationId"},
			Lookup{Path: "type", Column: "donateType"},
		).Routes)

		r.Route("/participation-records", NewResource[domain.ParticipationRecord, int64,
			domain.CreateParticipationInput, domain.UpdateParticipationInput](
			"participation record", d.Repos.Participations, log,
			Lookup{Path: "registration", Column: "registrationId"},
			Lookup{Path: "activity", Column: "activityId", Many: true},
		).Routes)

		r.Route("/my-data", NewResource[domain.FormSubmission, string,
			domain.CreateFormSubmissionInput, domain.UpdateFormSubmissionInput](
			"form submission", d.Repos.MyData, log,
			Lookup{Path: "state", Column: "state", Many: true},
		).Routes)
	})

	return r
}
