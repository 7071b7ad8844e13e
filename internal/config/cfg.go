package config

import "github.com/kelseyhightower/envconfig"

type Server struct {
	Address     string `envconfig:"SERVER_ADDRESS" default:":8080"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`
}

type DB struct {
	Source         string `envconfig:"DB_SOURCE" default:"weather-dashboard.db"`
	MigrationsPath string `envconfig:"DB_MIGRATIONS_PATH" default:"./migrations"`
}

type Cache struct {
	// Backend selects the snapshot cache implementation: "memory" or "redis".
	Backend string `envconfig:"CACHE_BACKEND" default:"memory"`
	// TTLSeconds is the fixed snapshot lifetime; entries expire on read.
	TTLSeconds int `envconfig:"CACHE_TTL" default:"300"`
}

type Redis struct {
	Host string `envconfig:"REDIS_HOST" default:"localhost"`
	Port string `envconfig:"REDIS_PORT" default:"6379"`
	DB   int    `envconfig:"REDIS_DB" default:"0"`
}

type Session struct {
	Secret string `envconfig:"SESSION_SECRET" required:"true"`
	Name   string `envconfig:"SESSION_NAME" default:"wdash_session"`
}

type Auth struct {
	// Mode is "local" (password accounts) or "oidc" (delegated identity).
	Mode string `envconfig:"AUTH_MODE" default:"local"`

	OIDCIssuer       string `envconfig:"OIDC_ISSUER"`
	OIDCClientID     string `envconfig:"OIDC_CLIENT_ID"`
	OIDCClientSecret string `envconfig:"OIDC_CLIENT_SECRET"`
	OIDCRedirectURL  string `envconfig:"OIDC_REDIRECT_URL"`
}

type Warmer struct {
	Enabled bool `envconfig:"WARMER_ENABLED" default:"false"`
	// Schedule is a robfig/cron spec, e.g. "@every 5m".
	Schedule string `envconfig:"WARMER_SCHEDULE" default:"@every 5m"`
}

type Config struct {
	OpenWeatherAPIKey string `envconfig:"OPEN_WEATHER_MAP_API_KEY" required:"true"`
	OpenWeatherURL    string `envconfig:"OPEN_WEATHER_MAP_URL" default:"https://api.openweathermap.org/data/2.5/weather"`
	// HTTPTimeout bounds each outbound weather-API call, in seconds.
	HTTPTimeout int `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10"`

	Server  Server
	DB      DB
	Cache   Cache
	Redis   Redis
	Session Session
	Auth    Auth
	Warmer  Warmer

	TemplatesDir string `envconfig:"TEMPLATES_DIR" default:"./templates"`
	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/weather-dashboard.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
