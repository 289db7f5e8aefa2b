package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type ServiceConfig struct {
	Id                        string
	Env                       string
	LogLevel                  zerolog.Level
	ApiAddr                   string
	HealthPort                uint16
	OpenTelemetryCollectorURL string
	DBPath                    string
	FillSessionTTL            time.Duration
	// Faucet exposes an endpoint minting test funds. It must stay disabled
	// outside of test deployments.
	Faucet bool
}

type RawServiceConfig struct {
	Id                        string `mapstructure:"id" json:"id"`
	Env                       string `mapstructure:"env" json:"env" default:"local"`
	LogLevel                  string `mapstructure:"logLevel" json:"logLevel" default:"info"`
	ApiAddr                   string `mapstructure:"apiAddr" json:"apiAddr" default:"0.0.0.0:3000"`
	HealthPort                uint16 `mapstructure:"healthPort" json:"healthPort" default:"9001"`
	OpenTelemetryCollectorURL string `mapstructure:"openTelemetryCollectorURL" json:"openTelemetryCollectorURL"`
	DBPath                    string `mapstructure:"dbPath" json:"dbPath" default:"./db"`
	FillSessionTTL            uint64 `mapstructure:"fillSessionTTL" json:"fillSessionTTL" default:"600"`
	Faucet                    bool   `mapstructure:"faucet" json:"faucet"`
}

func (c *RawServiceConfig) Validate() error {
	if c.Id == "" {
		return fmt.Errorf("required field service.id empty")
	}
	return nil
}

func newServiceConfig(raw RawServiceConfig) (ServiceConfig, error) {
	err := raw.Validate()
	if err != nil {
		return ServiceConfig{}, err
	}

	logLevel, err := zerolog.ParseLevel(raw.LogLevel)
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("unable to parse log level: %w", err)
	}

	dbPath := raw.DBPath
	if db := viper.GetString(DBFlagName); db != "" {
		dbPath = db
	}

	return ServiceConfig{
		Id:                        raw.Id,
		Env:                       raw.Env,
		LogLevel:                  logLevel,
		ApiAddr:                   raw.ApiAddr,
		HealthPort:                raw.HealthPort,
		OpenTelemetryCollectorURL: raw.OpenTelemetryCollectorURL,
		DBPath:                    dbPath,
		// nolint:gosec
		FillSessionTTL: time.Duration(raw.FillSessionTTL) * time.Second,
		Faucet:         raw.Faucet,
	}, nil
}
