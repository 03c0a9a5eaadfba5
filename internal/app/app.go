package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/haguru/elibrary/config"
	"github.com/haguru/elibrary/internal/covers"
	"github.com/haguru/elibrary/internal/credential"
	"github.com/haguru/elibrary/internal/interfaces"
	librarySQL "github.com/haguru/elibrary/internal/libraryrepo/sql"
	"github.com/haguru/elibrary/internal/libraryservice"
	appMetrics "github.com/haguru/elibrary/internal/metrics"
	"github.com/haguru/elibrary/internal/middleware"
	"github.com/haguru/elibrary/internal/routes"
	"github.com/haguru/elibrary/internal/server"
	mongoUserRepo "github.com/haguru/elibrary/internal/userrepo/mongo"
	sqlUserRepo "github.com/haguru/elibrary/internal/userrepo/sql"
	"github.com/haguru/elibrary/internal/userservice"
	"github.com/haguru/elibrary/pkg/databases/mongo"
	"github.com/haguru/elibrary/pkg/databases/sqlclient"
	"github.com/haguru/elibrary/pkg/metrics"
	"github.com/haguru/elibrary/pkg/zerolog"

	structValidator "github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server  interfaces.Server
	Config  *config.ServiceConfig
	Logger  interfaces.Logger
	Metrics *metrics.Metrics

	sqlClient   *sqlclient.Client
	mongoClient *mongo.MongoDBClient
}

type repositories struct {
	users   interfaces.UserRepository
	books   interfaces.BookRepository
	loans   interfaces.LoanRepository
	posts   interfaces.PostRepository
	reviews interfaces.ReviewRepository
}

// NewApp creates and configures a new App instance. Databases are connected and their
// tables created before any route is registered.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	validator := structValidator.New()
	if err := cfg.Validate(validator); err != nil {
		return nil, err
	}

	logger := zerolog.New(cfg.ServiceName, os.Stdout)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Metrics, err = app.initializeMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	if err := app.initializeDBClients(ctx); err != nil {
		app.Close(ctx)
		return nil, fmt.Errorf("failed to initialize database client: %w", err)
	}

	repos, err := app.initializeRepositories(ctx)
	if err != nil {
		app.Close(ctx)
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	coverStore, err := covers.NewStore(ctx, cfg.Covers, logger)
	if err != nil {
		app.Close(ctx)
		return nil, fmt.Errorf("failed to initialize cover store: %w", err)
	}

	services := routes.Services{
		Users:   userservice.NewUserService(repos.users, credential.NewHasher(), logger),
		Books:   libraryservice.NewBookService(repos.books, coverStore, logger),
		Loans:   libraryservice.NewLoanService(repos.loans, logger),
		Posts:   libraryservice.NewPostService(repos.posts, repos.users, logger),
		Reviews: libraryservice.NewReviewService(repos.reviews, logger),
	}

	srv := server.NewServer(cfg.Host, cfg.Port, logger)
	app.Server = srv

	route := routes.NewRoute(app.Metrics, services, logger, validator)
	if err := app.registerRoutes(route); err != nil {
		app.Close(ctx)
		return nil, err
	}

	srv.Use(
		middleware.CORS(cfg.CORS),
		middleware.RequestID(logger),
		middleware.Instrument(app.Metrics, logger),
	)

	return app, nil
}

// Run serves HTTP until Shutdown is called.
func (app *App) Run() error {
	app.Logger.Info("starting server", "host", app.Config.Host, "port", app.Config.Port)
	if err := app.Server.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops the server and then closes the database connections.
func (app *App) Shutdown(ctx context.Context) error {
	var err error
	if app.Server != nil {
		err = app.Server.Shutdown(ctx)
	}
	return errors.Join(err, app.Close(ctx))
}

// Close disconnects every database client that was opened.
func (app *App) Close(ctx context.Context) error {
	var errs []error
	if app.mongoClient != nil {
		errs = append(errs, app.mongoClient.Disconnect(ctx))
	}
	if app.sqlClient != nil {
		errs = append(errs, app.sqlClient.Disconnect(ctx))
	}
	return errors.Join(errs...)
}

func (app *App) initializeMetrics() (*metrics.Metrics, error) {
	m := metrics.NewMetrics(app.Config.ServiceName)
	if err := appMetrics.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (app *App) initializeDBClients(ctx context.Context) error {
	dbCfg := app.Config.Database

	dialect, err := sqlclient.ParseDialect(dbCfg.Type)
	if err != nil {
		return err
	}

	opts := dbCfg.SQL.Options
	app.sqlClient = sqlclient.NewClient(dialect, app.Logger, opts.MaxOpenConns, opts.MaxIdleConns, opts.ConnMaxLifetime)
	if err := app.sqlClient.Connect(ctx, dbCfg.SQL.DSN); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", dialect, err)
	}

	if dbCfg.UserStore != config.UserStoreMongo {
		return nil
	}

	mongoClient, err := mongo.NewMongoDB(dbCfg.MongoDB, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	if err := mongoClient.Connect(ctx, dbCfg.MongoDB.DSN); err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	app.mongoClient = mongoClient
	return nil
}

// initializeRepositories builds every repository and creates its table. Users come first
// because the library tables reference them when both live in the same database.
func (app *App) initializeRepositories(ctx context.Context) (*repositories, error) {
	repos := &repositories{}
	var err error

	if app.mongoClient != nil {
		repos.users, err = mongoUserRepo.NewMongoUserRepository(app.mongoClient, app.Logger)
	} else {
		repos.users, err = sqlUserRepo.NewSQLUserRepository(app.sqlClient, app.sqlClient.Dialect(), app.Logger)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user repository: %w", err)
	}
	if err := repos.users.EnsureIndices(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure user indices: %w", err)
	}

	opts := librarySQL.Options{
		Dialect:         app.sqlClient.Dialect(),
		UserForeignKeys: app.mongoClient == nil,
	}

	books, err := librarySQL.NewBookRepository(app.sqlClient, opts, app.Logger)
	if err != nil {
		return nil, err
	}
	loans, err := librarySQL.NewLoanRepository(app.sqlClient, opts, app.Logger)
	if err != nil {
		return nil, err
	}
	reviews, err := librarySQL.NewReviewRepository(app.sqlClient, opts, app.Logger)
	if err != nil {
		return nil, err
	}
	posts, err := librarySQL.NewPostRepository(app.sqlClient, opts, app.Logger)
	if err != nil {
		return nil, err
	}

	for _, schema := range []interface{ EnsureSchema(context.Context) error }{books, loans, reviews, posts} {
		if err := schema.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	repos.books, repos.loans, repos.reviews, repos.posts = books, loans, reviews, posts
	return repos, nil
}

// registerRoutes adds every endpoint to the server. Rate limited endpoints each get their
// own token bucket.
func (app *App) registerRoutes(route *routes.Route) error {
	limits := app.Config.RateLimit

	for _, endpoint := range route.Endpoints() {
		var handler http.Handler = endpoint.Handler
		if endpoint.RateLimited {
			limiter := rate.NewLimiter(rate.Limit(limits.RequestsPerSecond), limits.Burst)
			handler = middleware.RateLimitMiddleware(limiter, app.Metrics)(handler)
		}
		if err := app.Server.AddRoute(endpoint.Pattern, handler); err != nil {
			return err
		}
	}

	if err := app.Server.AddRoute(routes.MetricsRouteAPI, app.Metrics.Handler()); err != nil {
		return fmt.Errorf("failed to add metrics route: %w", err)
	}
	return nil
}
