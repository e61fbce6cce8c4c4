package config

import (
	"fmt"
	"os"
	"strconv"

	"taskrank-backend/internal/scoring"
)

type Config struct {
	Port int

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	// AuthSecret enables the bearer-JWT gate when non-empty.
	AuthSecret string

	Weights scoring.Weights
}

func Load() *Config {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080 // fallback
	}

	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		dbPort = 5432 // fallback
	}

	def := scoring.DefaultWeights()

	return &Config{
		Port: port,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     dbPort,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		AuthSecret: os.Getenv("AUTH_SECRET"),

		Weights: scoring.Weights{
			Urgency:    scoring.FloatOrDefault(os.Getenv("WEIGHT_URGENCY"), def.Urgency),
			Importance: scoring.FloatOrDefault(os.Getenv("WEIGHT_IMPORTANCE"), def.Importance),
			Effort:     scoring.FloatOrDefault(os.Getenv("WEIGHT_EFFORT"), def.Effort),
			Dependency: scoring.FloatOrDefault(os.Getenv("WEIGHT_DEPENDENCY"), def.Dependency),
		},
	}
}

// HasDB reports whether a Postgres connection is configured. Without one the
// service runs stateless: body-based analyze/suggest only.
func (c *Config) HasDB() bool {
	return c.DBHost != ""
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
