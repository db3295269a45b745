package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env                     string  `mapstructure:"ENV"`
	Seed                    int64   `mapstructure:"SEED"`
	Patients                int     `mapstructure:"PATIENTS"`
	Providers               int     `mapstructure:"PROVIDERS"`
	Medications             int     `mapstructure:"MEDICATIONS"`
	MaxEncountersPerPatient int     `mapstructure:"MAX_ENCOUNTERS_PER_PATIENT"`
	WeightInpatient         int     `mapstructure:"WEIGHT_INPATIENT"`
	WeightEmergency         int     `mapstructure:"WEIGHT_EMERGENCY"`
	WeightOutpatient        int     `mapstructure:"WEIGHT_OUTPATIENT"`
	WeightObservation       int     `mapstructure:"WEIGHT_OBSERVATION"`
	CancelledRate           float64 `mapstructure:"CANCELLED_RATE"`
	AllergyRate             float64 `mapstructure:"ALLERGY_RATE"`
	AbnormalFraction        float64 `mapstructure:"ABNORMAL_FRACTION"`
	MissedDoseRate          float64 `mapstructure:"MISSED_DOSE_RATE"`
	Workers                 int     `mapstructure:"WORKERS"`
	RunTimeoutSec           int     `mapstructure:"RUN_TIMEOUT_SEC"`
	OutputDir               string  `mapstructure:"OUTPUT_DIR"`
	DatabaseURL             string  `mapstructure:"DATABASE_URL"`
	DBMaxConns              int32   `mapstructure:"DB_MAX_CONNS"`
	DBMinConns              int32   `mapstructure:"DB_MIN_CONNS"`
	AsOf                    string  `mapstructure:"AS_OF"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("SEED", 12345)
	v.SetDefault("PATIENTS", 1000)
	v.SetDefault("PROVIDERS", 50)
	v.SetDefault("MEDICATIONS", 200)
	v.SetDefault("MAX_ENCOUNTERS_PER_PATIENT", 5)
	v.SetDefault("WEIGHT_INPATIENT", 40)
	v.SetDefault("WEIGHT_EMERGENCY", 30)
	v.SetDefault("WEIGHT_OUTPATIENT", 20)
	v.SetDefault("WEIGHT_OBSERVATION", 10)
	v.SetDefault("CANCELLED_RATE", 0.02)
	v.SetDefault("ALLERGY_RATE", 0.3)
	v.SetDefault("ABNORMAL_FRACTION", 0.2)
	v.SetDefault("MISSED_DOSE_RATE", 0.05)
	v.SetDefault("WORKERS", 1)
	v.SetDefault("RUN_TIMEOUT_SEC", 600)
	v.SetDefault("OUTPUT_DIR", "data/raw")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("SEED")
	v.BindEnv("PATIENTS")
	v.BindEnv("PROVIDERS")
	v.BindEnv("MEDICATIONS")
	v.BindEnv("MAX_ENCOUNTERS_PER_PATIENT")
	v.BindEnv("WEIGHT_INPATIENT")
	v.BindEnv("WEIGHT_EMERGENCY")
	v.BindEnv("WEIGHT_OUTPATIENT")
	v.BindEnv("WEIGHT_OBSERVATION")
	v.BindEnv("CANCELLED_RATE")
	v.BindEnv("ALLERGY_RATE")
	v.BindEnv("ABNORMAL_FRACTION")
	v.BindEnv("MISSED_DOSE_RATE")
	v.BindEnv("WORKERS")
	v.BindEnv("RUN_TIMEOUT_SEC")
	v.BindEnv("OUTPUT_DIR")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AS_OF")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ResolveAsOf returns the reference time generation measures "now" against.
// An empty AS_OF means wall-clock now; setting it pins a run so that two
// runs with the same seed produce identical output.
func (c *Config) ResolveAsOf() (time.Time, error) {
	if c.AsOf == "" {
		return time.Now().UTC().Truncate(time.Second), nil
	}
	t, err := time.Parse(time.RFC3339, c.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("AS_OF must be RFC3339 (e.g. 2025-06-01T00:00:00Z): %w", err)
	}
	return t.UTC(), nil
}

// RunTimeout returns the wall-clock budget for one generation run.
func (c *Config) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSec) * time.Second
}

// Validate checks that the configuration can produce a coherent data set.
// Counts must be positive, rates must be probabilities, and at least one
// encounter type must carry weight.
func (c *Config) Validate() error {
	if c.Patients <= 0 {
		return fmt.Errorf("PATIENTS must be positive, got %d", c.Patients)
	}
	if c.Providers <= 0 {
		return fmt.Errorf("PROVIDERS must be positive, got %d", c.Providers)
	}
	if c.Medications <= 0 {
		return fmt.Errorf("MEDICATIONS must be positive, got %d", c.Medications)
	}
	if c.MaxEncountersPerPatient <= 0 {
		return fmt.Errorf("MAX_ENCOUNTERS_PER_PATIENT must be positive, got %d", c.MaxEncountersPerPatient)
	}
	for name, w := range map[string]int{
		"WEIGHT_INPATIENT":   c.WeightInpatient,
		"WEIGHT_EMERGENCY":   c.WeightEmergency,
		"WEIGHT_OUTPATIENT":  c.WeightOutpatient,
		"WEIGHT_OBSERVATION": c.WeightObservation,
	} {
		if w < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, w)
		}
	}
	if c.WeightInpatient+c.WeightEmergency+c.WeightOutpatient+c.WeightObservation <= 0 {
		return fmt.Errorf("encounter type weights must have a positive sum")
	}
	for name, r := range map[string]float64{
		"CANCELLED_RATE":    c.CancelledRate,
		"ALLERGY_RATE":      c.AllergyRate,
		"ABNORMAL_FRACTION": c.AbnormalFraction,
		"MISSED_DOSE_RATE":  c.MissedDoseRate,
	} {
		if r < 0 || r > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %g", name, r)
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.Workers > c.Patients {
		return fmt.Errorf("WORKERS (%d) must not exceed PATIENTS (%d)", c.Workers, c.Patients)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	if _, err := c.ResolveAsOf(); err != nil {
		return err
	}
	return nil
}
