package server

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	"github.com/swaggo/swag"

	"github.com/slangscope/slangscope/internal"
	"github.com/slangscope/slangscope/pkg/auth"
	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/server/apihandlers"
	"github.com/slangscope/slangscope/pkg/server/webhandlers"
	"github.com/slangscope/slangscope/pkg/web"

	// registers the swagger doc with swag
	_ "github.com/slangscope/slangscope/docs"
)

var log = internal.GetLogger()

const (
	ReadHeaderTimeout = 5 * time.Second
	RouterName        = "slangscope"
)

// Create creates a new HTTP server with the given app state
func Create(appState *models.AppState) (*http.Server, error) {
	router, err := setupRouter(appState)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", appState.Config.Server.Host, appState.Config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}, nil
}

// @title						SlangScope API
// @version					0.x
// @BasePath					/
// @schemes					http https
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and JWT token.
func setupRouter(appState *models.AppState) (*chi.Mux, error) {
	cfg := appState.Config

	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(SendVersion)
	router.Use(ApplyCustomHeaders(cfg.Server.CustomHeaders))
	router.Use(
		otelchi.Middleware(
			RouterName,
			otelchi.WithChiRoutes(router),
			otelchi.WithRequestMethodInSpanName(true),
		),
	)

	router.Get("/swagger/doc.json", SwaggerDocHandler)

	var apiAuth func(http.Handler) http.Handler
	if cfg.Auth.Required {
		log.Info("JWT authentication required")
		verifier, err := auth.JWTVerifier(cfg)
		if err != nil {
			return nil, err
		}
		apiAuth = verifier
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}))
		r.Use(LimitRequestSize(cfg.Server.MaxRequestSize))
		if apiAuth != nil {
			r.Use(apiAuth)
		}

		r.Post("/summarize", apihandlers.SummarizeHandler(appState))
		r.Post("/analyze", apihandlers.AnalyzeHandler(appState))
		r.Post("/lookup", apihandlers.LookupHandler(appState))

		r.Route("/scans", func(r chi.Router) {
			r.Post("/", apihandlers.CreateScanHandler(appState))
			r.Get("/{scanUUID}", apihandlers.GetScanHandler(appState))
		})
	})

	if cfg.Server.WebEnabled {
		if err := setupWebRoutes(router, appState); err != nil {
			return nil, err
		}
	}

	return router, nil
}

func setupWebRoutes(router chi.Router, appState *models.AppState) error {
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return err
	}
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	router.Group(func(r chi.Router) {
		r.Use(LimitRequestSize(appState.Config.Server.MaxRequestSize))
		r.Get("/", webhandlers.GetAnalyzerHandler())
		r.Post("/", webhandlers.PostAnalyzerHandler(appState))
	})

	if appState.Config.Store.History {
		router.Get("/history", webhandlers.GetHistoryHandler(appState))
		router.Get("/history/{analysisUUID}", webhandlers.GetAnalysisDetailsHandler(appState))
	}

	router.NotFound(web.NotFoundHandler())

	return nil
}

// SwaggerDocHandler serves the OpenAPI document.
func SwaggerDocHandler(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
