package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ijanvdwesz/credential-management/internal"
	"github.com/ijanvdwesz/credential-management/internal/auth"
	authRepository "github.com/ijanvdwesz/credential-management/internal/auth/postgres"
	userDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/user"
	"github.com/ijanvdwesz/credential-management/internal/core/events"
	"github.com/ijanvdwesz/credential-management/internal/credential"
	credentialRepository "github.com/ijanvdwesz/credential-management/internal/credential/postgres"
	"github.com/ijanvdwesz/credential-management/internal/division"
	divisionRepository "github.com/ijanvdwesz/credential-management/internal/division/postgres"
	"github.com/ijanvdwesz/credential-management/internal/ou"
	ouRepository "github.com/ijanvdwesz/credential-management/internal/ou/postgres"
	"github.com/ijanvdwesz/credential-management/internal/transport"
	"github.com/ijanvdwesz/credential-management/internal/transport/rest"
	"github.com/ijanvdwesz/credential-management/internal/user"
	userRepository "github.com/ijanvdwesz/credential-management/internal/user/postgres"
	"github.com/ijanvdwesz/credential-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger

	eventBus := events.NewEventBus(lg)
	events.RegisterAuditLogger(eventBus, lg)

	baseHandler := transport.NewBaseHandler(lg)
	scopeResolver := auth.NewScopeResolver()
	roleGate := auth.NewRoleGate(lg)

	tokenGenerator := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenDuration)

	authRepo := authRepository.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGenerator, cfg.Security.BCryptCost)
	authHandler := auth.NewHandler(baseHandler, authService)

	ouRepo := ouRepository.NewOURepository(deps.GormDB)
	ouService := ou.NewService(ouRepo, lg)
	ouHandler := ou.NewHandler(baseHandler, ouService)

	divisionRepo := divisionRepository.NewDivisionRepository(deps.GormDB)
	divisionService := division.NewService(divisionRepo, lg)
	divisionHandler := division.NewHandler(baseHandler, divisionService)

	credentialRepo := credentialRepository.NewCredentialRepository(deps.GormDB)
	credentialService := credential.NewService(credentialRepo, scopeResolver, eventBus, lg, cfg.Access.EnforceDivisionScope)
	credentialHandler := credential.NewHandler(baseHandler, credentialService)

	userRepo := userRepository.NewUserRepository(deps.GormDB)
	userService := user.NewService(userRepo, eventBus, lg)
	userHandler := user.NewHandler(baseHandler, userService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, cfg, rest.Handlers{
		Auth:       authHandler,
		OU:         ouHandler,
		Division:   divisionHandler,
		Credential: credentialHandler,
		User:       userHandler,
	}, roleGate, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}
	if err := userDatamodel.RegisterJoinTables(gormDB); err != nil {
		return nil, fmt.Errorf("failed to register membership join tables: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pgx-backed connection pool used by gorm and the health
// endpoint.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
