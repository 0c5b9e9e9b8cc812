package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

// OfferteConfig levert de defaults voor organisaties die nog geen eigen
// instellingen hebben opgeslagen.
type OfferteConfig struct {
	StandaardUurtarief float64
	StandaardMargePct  float64
	StandaardBtwPct    float64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Offerte     OfferteConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Offerte: OfferteConfig{
			StandaardUurtarief: v.GetFloat64("OFFERTE_STANDAARD_UURTARIEF"),
			StandaardMargePct:  v.GetFloat64("OFFERTE_STANDAARD_MARGE_PCT"),
			StandaardBtwPct:    v.GetFloat64("OFFERTE_STANDAARD_BTW_PCT"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Offerte.StandaardUurtarief == 0 {
		cfg.Offerte.StandaardUurtarief = 45
	}
	if cfg.Offerte.StandaardMargePct == 0 {
		cfg.Offerte.StandaardMargePct = 20
	}
	if cfg.Offerte.StandaardBtwPct == 0 {
		cfg.Offerte.StandaardBtwPct = 21
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Offerte.StandaardMargePct < 0 || cfg.Offerte.StandaardMargePct > 100 {
		return fmt.Errorf("OFFERTE_STANDAARD_MARGE_PCT must be within [0,100]")
	}
	if cfg.Offerte.StandaardBtwPct < 0 || cfg.Offerte.StandaardBtwPct > 100 {
		return fmt.Errorf("OFFERTE_STANDAARD_BTW_PCT must be within [0,100]")
	}
	return nil
}
