package app

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	serviceAuth "github.com/Nazarious-ucu/weather-dashboard/internal/services/auth"
	serviceCache "github.com/Nazarious-ucu/weather-dashboard/internal/services/cache"
	serviceWeather "github.com/Nazarious-ucu/weather-dashboard/internal/services/weather"

	handlerAuth "github.com/Nazarious-ucu/weather-dashboard/internal/handlers/auth"
	handlerDashboard "github.com/Nazarious-ucu/weather-dashboard/internal/handlers/dashboard"

	"github.com/Nazarious-ucu/weather-dashboard/internal/config"
	"github.com/Nazarious-ucu/weather-dashboard/internal/handlers/session"
	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
	"github.com/Nazarious-ucu/weather-dashboard/internal/repository"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-dashboard/internal/warmer"
	"github.com/Nazarious-ucu/weather-dashboard/pkg/logger"

	_ "modernc.org/sqlite"
)

const (
	timeoutDuration = 5 * time.Second

	authModeOIDC = "oidc"

	cacheBackendRedis = "redis"
)

type App struct {
	cfg config.Config
	log *log.Logger
}

type ServiceContainer struct {
	WeatherService *serviceWeather.Service
	AuthService    *serviceAuth.Service
	OIDCService    *serviceAuth.OIDCService
	Warmer         *warmer.Warmer

	Users  *repository.UserRepository
	Cities *repository.CityRepository

	Router     *gin.Engine
	Srv        *http.Server
	Db         *sql.DB
	FileLogger *zap.Logger
}

func New(cfg config.Config, logger *log.Logger) *App {
	return &App{
		cfg: cfg,
		log: logger,
	}
}

func (a *App) Init(ctx context.Context) (ServiceContainer, error) {
	a.log.Println("Initializing application")

	db, err := CreateSqliteDb(a.cfg.DB.Source)
	if err != nil {
		return ServiceContainer{}, err
	}

	if err := InitSqliteDb(db, a.cfg.DB.MigrationsPath); err != nil {
		return ServiceContainer{}, err
	}

	router := gin.Default()
	router.LoadHTMLGlob(filepath.Join(a.cfg.TemplatesDir, "*.html"))

	store := cookie.NewStore([]byte(a.cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
	})
	router.Use(sessions.Sessions(a.cfg.Session.Name, store))

	apiServer := &http.Server{
		Addr:        a.cfg.Server.Address,
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	fileLogger, err := logger.NewFileLogger(a.cfg.LogsPath)
	if err != nil {
		return ServiceContainer{}, err
	}

	httpLogClient := &http.Client{
		Transport: logger.NewRoundTripper(fileLogger),
		Timeout:   time.Duration(a.cfg.HTTPTimeout) * time.Second,
	}

	clock := clockwork.NewRealClock()
	ttl := time.Duration(a.cfg.Cache.TTLSeconds) * time.Second

	collector := metrics.NewPromCollector()
	snapshotCache := a.newSnapshotCache(clock, ttl)
	meteredCache := serviceCache.NewMetricsDecorator[models.Snapshot](snapshotCache, collector)

	openWeatherClient := serviceWeather.NewClientOpenWeatherMap(
		a.cfg.OpenWeatherAPIKey,
		a.cfg.OpenWeatherURL,
		httpLogClient,
		clock,
		a.log,
	)
	weatherService := serviceWeather.NewService(openWeatherClient, meteredCache, a.log)

	userRepository := repository.NewUserRepository(db)
	cityRepository := repository.NewCityRepository(db)
	authService := serviceAuth.NewService(userRepository)

	var oidcService *serviceAuth.OIDCService
	if a.cfg.Auth.Mode == authModeOIDC {
		oidcService, err = serviceAuth.NewOIDCService(
			ctx,
			userRepository,
			a.cfg.Auth.OIDCIssuer,
			a.cfg.Auth.OIDCClientID,
			a.cfg.Auth.OIDCClientSecret,
			a.cfg.Auth.OIDCRedirectURL,
		)
		if err != nil {
			return ServiceContainer{}, err
		}
	}

	var cacheWarmer *warmer.Warmer
	if a.cfg.Warmer.Enabled {
		cacheWarmer = warmer.New(cityRepository, weatherService, a.log, a.cfg.Warmer.Schedule)
	}

	return ServiceContainer{
		WeatherService: weatherService,
		AuthService:    authService,
		OIDCService:    oidcService,
		Warmer:         cacheWarmer,

		Users:  userRepository,
		Cities: cityRepository,

		Router:     router,
		Srv:        apiServer,
		Db:         db,
		FileLogger: fileLogger,
	}, nil
}

func (a *App) Start(ctx context.Context, srvContainer ServiceContainer) error {
	a.log.Println("Starting server on", a.cfg.Server.Address)

	authHandler := handlerAuth.NewHandler(srvContainer.AuthService, a.log)
	dashboardHandler := handlerDashboard.NewHandler(
		srvContainer.WeatherService, srvContainer.Cities, a.log,
	)

	router := srvContainer.Router

	router.GET("/", authHandler.ShowLogin)
	router.POST("/", authHandler.Login)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.GET("/logout", authHandler.Logout)

	if srvContainer.OIDCService != nil {
		oidcHandler := handlerAuth.NewOIDCHandler(srvContainer.OIDCService, a.log)
		router.GET("/auth/login", oidcHandler.Login)
		router.GET("/auth/callback", oidcHandler.Callback)
	}

	authed := router.Group("/", session.RequireAuth())
	{
		authed.GET("/weather", dashboardHandler.Show)
		authed.POST("/add_city", dashboardHandler.AddCity)
		authed.GET("/delete_city/:id", dashboardHandler.DeleteCity)
		authed.GET("/city/:id", dashboardHandler.Detail)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	if srvContainer.Warmer != nil {
		if err := srvContainer.Warmer.Start(ctx); err != nil {
			return err
		}
		a.log.Println("Cache warmer started on schedule", a.cfg.Warmer.Schedule)
	}

	if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Stop(srvContainer ServiceContainer) error {
	a.log.Println("Stopping application")

	if srvContainer.Warmer != nil {
		srvContainer.Warmer.Stop()
		a.log.Println("Cache warmer stopped")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()

	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		a.log.Println("HTTP shutdown error:", err)
	} else {
		a.log.Println("HTTP server stopped")
	}

	if err := srvContainer.Db.Close(); err != nil {
		a.log.Println("DB close error:", err)
	} else {
		a.log.Println("Database closed")
	}

	if err := srvContainer.FileLogger.Sync(); err != nil {
		a.log.Println("File logger sync error:", err)
	}

	a.log.Println("Shutdown complete")
	return nil
}

//nolint:ireturn
func (a *App) newSnapshotCache(
	clock clockwork.Clock, ttl time.Duration,
) interface {
	Set(ctx context.Context, key string, value models.Snapshot) error
	Get(ctx context.Context, key string) (models.Snapshot, error)
} {
	if a.cfg.Cache.Backend == cacheBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr: a.cfg.Redis.Host + ":" + a.cfg.Redis.Port,
			DB:   a.cfg.Redis.DB,
		})
		return serviceCache.NewRedisClient[models.Snapshot](client, a.log, ttl)
	}
	return serviceCache.NewMemory[models.Snapshot](clock, ttl)
}

func CreateSqliteDb(name string) (*sql.DB, error) {
	if name == "" {
		return nil, errors.New("database name cannot be empty")
	}
	connectionString := "file:" + name + "?cache=shared&mode=rwc"
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitSqliteDb(db *sql.DB, migrationPath string) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	if err := goose.Up(db, migrationPath); err != nil {
		return err
	}

	return nil
}
