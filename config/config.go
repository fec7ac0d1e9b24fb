package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Game     GameConfig     `mapstructure:"game"`
	Selector SelectorConfig `mapstructure:"selector"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	HTTPAddress    string        `mapstructure:"http_address"`
	RPCAddress     string        `mapstructure:"rpc_address"`
	MetricsAddress string        `mapstructure:"metrics_address"`
	Heartbeat      time.Duration `mapstructure:"heartbeat"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// CatalogConfig selects where songs are read from. Driver is "postgres", "sqlite", or
// "gorm" to reuse the records database.
type CatalogConfig struct {
	Driver         string `mapstructure:"driver"`
	DSN            string `mapstructure:"dsn"`
	SongsPerArtist int    `mapstructure:"songs_per_artist"`
}

type GameConfig struct {
	EliminationLives int           `mapstructure:"elimination_lives"`
	Goal             int           `mapstructure:"goal"`
	RoundTimeout     time.Duration `mapstructure:"round_timeout"`
	MultiGuessDelay  time.Duration `mapstructure:"multiguess_delay"`
	NextRoundDelay   time.Duration `mapstructure:"next_round_delay"`
	PowerHours       []int         `mapstructure:"power_hours"`
	Timezone         string        `mapstructure:"timezone"`
	BonusArtists     []string      `mapstructure:"bonus_artists"`
}

// SelectorConfig holds the repeat-avoidance thresholds of the song selector.
type SelectorConfig struct {
	LastPlayedCapacity  int `mapstructure:"last_played_capacity"`
	SmallPoolThreshold  int `mapstructure:"small_pool_threshold"`
	MediumPoolThreshold int `mapstructure:"medium_pool_threshold"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns the configuration used when no file overrides a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddress:    ":8080",
			RPCAddress:     ":8081",
			MetricsAddress: ":9090",
			Heartbeat:      30 * time.Second,
		},
		Database: DatabaseConfig{
			Postgres: PostgresConfig{Host: "localhost", Port: 5432, DBName: "songquiz"},
		},
		Catalog: CatalogConfig{Driver: "sqlite", DSN: "catalog.db"},
		Game: GameConfig{
			EliminationLives: 10,
			RoundTimeout:     30 * time.Second,
			MultiGuessDelay:  1500 * time.Millisecond,
			NextRoundDelay:   3 * time.Second,
			Timezone:         "America/New_York",
		},
		Selector: SelectorConfig{
			LastPlayedCapacity:  10,
			SmallPoolThreshold:  10,
			MediumPoolThreshold: 20,
		},
		Log: LogConfig{Level: "info"},
	}
}

func LoadConfig(path string) (*Config, error) {
	// .env is optional; real environment variables still win over it
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SONGQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
