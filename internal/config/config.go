package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config es la configuración top-level del servicio. Se carga de un YAML
// opcional (CONFIG_PATH) y cualquier env var presente pisa al archivo,
// así el despliegue por contenedor no necesita archivo.
type Config struct {
	// Listen es la dirección HTTP (":8080" por defecto).
	Listen string `yaml:"listen"`

	// DBDSN: si está vacío se usan repos in-memory (modo dev).
	DBDSN string `yaml:"db_dsn"`

	// MLBaseURL es la URL base del microservicio de predicción de raza.
	MLBaseURL string `yaml:"ml_base_url"`

	// JWTSecret habilita el verificador de tokens. Vacío => modo dev
	// (headers X-Debug-User-ID / X-Debug-User-Role).
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`

	// ReminderCron es el schedule cron del barrido de recordatorios.
	// Vacío => recordatorios deshabilitados.
	ReminderCron string `yaml:"reminder_cron"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaults() Config {
	return Config{
		Listen:    ":8080",
		MLBaseURL: "http://localhost:5001",
	}
}

// Load arma la config final: defaults <- YAML (si existe) <- env.
func Load() (Config, error) {
	cfg := defaults()

	path := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("config: %s not found", path)
			}
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if strings.TrimSpace(cfg.Listen) == "" {
		cfg.Listen = ":8080"
	}
	if strings.TrimSpace(cfg.MLBaseURL) == "" {
		cfg.MLBaseURL = "http://localhost:5001"
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Listen = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		cfg.DBDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("ML_URL")); v != "" {
		cfg.MLBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("AUTH_JWT_ISSUER")); v != "" {
		cfg.JWTIssuer = v
	}
	if v := strings.TrimSpace(os.Getenv("REMINDER_CRON")); v != "" {
		cfg.ReminderCron = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
}
