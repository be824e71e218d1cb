package router

import (
	"database/sql"
	"net/http"

	_ "livestock-assessment/docs"
	mem "livestock-assessment/internal/adapters/storage/memory"
	pg "livestock-assessment/internal/adapters/storage/postgres"
	"livestock-assessment/internal/domain/assessment"
	"livestock-assessment/internal/domain/records"
	"livestock-assessment/internal/domain/share"
	"livestock-assessment/internal/middleware"
	"livestock-assessment/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger

	// Servicio del wizard; su ciclo de vida (sweeper, Close) lo maneja quien lo crea.
	// Si es nil se arma uno en memoria sin cámara.
	Assessments *assessment.Service

	// Opcional: si viene, el catálogo se lee de Postgres. Si no, del seed embebido.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var recordRepo records.Repository
	if opts.DB != nil {
		recordRepo = pg.NewRecordsRepo(opts.DB)
	} else {
		seed, err := records.Seed()
		if err != nil {
			log.Error("herd seed invalid, serving empty catalog", map[string]any{"err": err})
		}
		recordRepo = mem.NewRecordRepo(seed)
	}

	assessmentsSvc := opts.Assessments
	if assessmentsSvc == nil {
		assessmentsSvc = assessment.NewService(mem.NewAssessmentRepo(), assessment.Options{Logger: log})
	}

	// Services por módulo
	recordsSvc := records.NewService(recordRepo)
	shareSvc := share.NewService(recordsSvc, log.With(map[string]any{"module": "share"}))

	// Rutas por módulo
	records.RegisterRoutes(r, recordsSvc)
	share.RegisterRoutes(r, shareSvc)
	assessment.RegisterRoutes(r, assessmentsSvc)

	return r
}
