package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/shashank-sharma/backend/internal/config"
	"github.com/shashank-sharma/backend/internal/cronjobs"
	"github.com/shashank-sharma/backend/internal/gui"
	"github.com/shashank-sharma/backend/internal/logger"
	"github.com/shashank-sharma/backend/internal/metrics"
	"github.com/shashank-sharma/backend/internal/middleware"
	"github.com/shashank-sharma/backend/internal/routes"
	"github.com/shashank-sharma/backend/internal/services/credentials"
	"github.com/shashank-sharma/backend/internal/store"
)

// Application wires together the PocketBase instance, the credential usage
// tracker, and the cron scheduler. Nothing here reaches for a package-level
// singleton: every component that needs the tracker gets it handed in.
type Application struct {
	Pb           *pocketbase.PocketBase
	Tracker      *credentials.Tracker
	StatsService *credentials.StatsService
	CronRunner   *cronjobs.Runner

	postInitHooks []func()
}

// New creates and initializes a new Application instance
func New(configFlags config.ConfigFlags) (*Application, error) {
	pb := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir:  "./pb_data",
		HideStartBanner: false,
		DefaultDev:      configFlags.Dev,
	})

	store.InitApp(pb)
	if err := config.Init(pb, configFlags); err != nil {
		return nil, fmt.Errorf("failed to initialize configuration: %w", err)
	}

	app := &Application{
		Pb:            pb,
		postInitHooks: make([]func(), 0),
	}

	app.AddPostInitHook(func() {
		logger.LogInfo("Application is fully initialized")
	})

	metrics.RegisterPrometheusMetrics(pb)

	pb.OnServe().BindFunc(func(e *core.ServeEvent) error {
		logger.InitLog(pb)

		logger.LogInfo("Initializing application services")

		app.Tracker = credentials.NewTracker(credentials.DefaultConfig())
		app.StatsService = credentials.NewStatsService()
		logger.LogInfo("Credential usage tracker initialized")

		if err := app.initCronjobs(); err != nil {
			logger.LogError("Failed to initialize cron jobs: %v", err)
		}

		app.configureRoutes(e)

		if metricsEnabled, _ := app.Pb.Store().Get("METRICS_ENABLED").(bool); metricsEnabled {
			metricsPort, _ := app.Pb.Store().Get("METRICS_PORT").(string)
			metrics.StartMetricsServer(app.Pb, metricsPort)
		}

		logger.LogInfo("All application services initialized")

		app.registerHooks()
		app.RunPostInitHooks()

		return e.Next()
	})

	return app, nil
}

// configureRoutes sets up API routes for the application
func (app *Application) configureRoutes(e *core.ServeEvent) {
	apiRouter := e.Router.Group("/api")

	apiRouter.BindFunc(middleware.RequestIDMiddleware())
	apiRouter.BindFunc(middleware.PanicRecoveryMiddleware())

	routes.RegisterDevTokenRoutes(e)

	credentialUsageRouter := apiRouter.Group("/credential-usage")
	credentialUsageRouter.BindFunc(middleware.AuthMiddleware())
	routes.RegisterCredentialUsageRoutes(credentialUsageRouter, "")

	// Dev-token clients (the browser extension, CLI sync agents) reach the
	// same usage endpoints through AuthSyncToken instead of a user session.
	syncCredentialUsageRouter := apiRouter.Group("/sync/credential-usage")
	syncCredentialUsageRouter.BindFunc(middleware.DevTokenAuthMiddleware(app.Tracker))
	routes.RegisterCredentialUsageRoutes(syncCredentialUsageRouter, "")

	logger.LogInfo("All routes registered successfully")
}

// initCronjobs registers and starts the background jobs the application
// runs alongside request handling.
func (app *Application) initCronjobs() error {
	app.CronRunner = cronjobs.NewRunner()

	if err := app.CronRunner.Register(&cronjobs.CronJob{
		Name:     "aggregate-credential-stats",
		Schedule: "*/15 * * * *",
		Fn:       cronjobs.AggregateCredentialStats,
	}); err != nil {
		return fmt.Errorf("failed to register aggregate-credential-stats job: %w", err)
	}

	app.CronRunner.Run()
	return nil
}

// Start starts the application with optional GUI
func (app *Application) Start(httpAddr string) error {
	withGUI, _ := app.Pb.Store().Get("WITH_GUI").(bool)

	if withGUI {
		logFilePath, _ := app.Pb.Store().Get("LOG_FILE_PATH").(string)

		go func() {
			if err := app.Serve(httpAddr); err != nil {
				logger.LogInfo("Server closed error: " + err.Error())
			}
		}()

		time.Sleep(500 * time.Millisecond)

		guiStatus := gui.GUIStatus{
			ServerRunning:  true,
			MetricsEnabled: app.Pb.Store().Get("METRICS_ENABLED").(bool),
		}

		metadata := app.collectServerMetadata()
		return gui.StartGUI(logFilePath, guiStatus, metadata, app.Tracker)
	}

	return app.Serve(httpAddr)
}

// collectServerMetadata gathers information about the server for display in the GUI
func (app *Application) collectServerMetadata() gui.ServerMetadata {
	serverURL := "http://localhost:8090"
	if customURL, ok := app.Pb.Store().Get("SERVER_URL").(string); ok && customURL != "" {
		serverURL = customURL
	}

	environment := "production"
	if env, ok := app.Pb.Store().Get("APP_ENVIRONMENT").(string); ok && env != "" {
		environment = env
	}

	var cronJobs []gui.CronJob
	if app.CronRunner != nil {
		for _, job := range app.CronRunner.GetActiveJobs() {
			cronJobs = append(cronJobs, gui.CronJob{
				Name:     job.Name,
				Schedule: job.Schedule,
			})
		}
	}

	endpoints := []string{
		"/api/collections",
		"/api/credential-usage",
		"/api/dev-tokens",
		"/metrics",
	}

	return gui.ServerMetadata{
		ServerURL:     serverURL,
		ServerVersion: "v1.0.0",
		Environment:   environment,
		EnvVariables:  app.Pb.Store().GetAll(),
		CronJobs:      cronJobs,
		StartTime:     time.Now(),
		DataDirectory: "./pb_data",
		APIEndpoints:  endpoints,
	}
}

// Serve starts the PocketBase server
func (app *Application) Serve(httpAddr string) error {
	app.Pb.Bootstrap()

	logger.LogInfo("Starting server on " + httpAddr)
	err := apis.Serve(app.Pb, apis.ServeConfig{
		HttpAddr:        httpAddr,
		ShowStartBanner: false,
	})

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// AddPostInitHook adds a function to be executed after the server is fully initialized
func (app *Application) AddPostInitHook(hookFunc func()) {
	app.postInitHooks = append(app.postInitHooks, hookFunc)
}

// RunPostInitHooks executes all registered post-initialization hooks
func (app *Application) RunPostInitHooks() {
	logger.LogInfo("Running post-initialization hooks")
	for _, hook := range app.postInitHooks {
		hook()
	}
}
