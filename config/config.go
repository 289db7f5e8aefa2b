// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/creasty/defaults"
	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	ENV_PREFIX = "SETTLEMENT"
)

var serviceKeys = []string{
	"id",
	"env",
	"logLevel",
	"apiAddr",
	"healthPort",
	"openTelemetryCollectorURL",
	"dbPath",
	"fillSessionTTL",
	"faucet",
}

type Config struct {
	ServiceConfig ServiceConfig
	Genesis       GenesisConfig
}

type RawConfig struct {
	ServiceConfig RawServiceConfig `mapstructure:"service" json:"service"`
	Genesis       RawGenesisConfig `mapstructure:"genesis" json:"genesis"`
}

// GetConfigFromENV reads the service configuration from SETTLEMENT_SERVICE_*
// variables and the genesis from SETTLEMENT_GENESIS as JSON. Values missing
// from the environment are taken from the shared configuration.
func GetConfigFromENV(shared *RawConfig) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range serviceKeys {
		err := v.BindEnv(fmt.Sprintf("service.%s", key))
		if err != nil {
			return nil, err
		}
	}
	err := v.BindEnv("genesis")
	if err != nil {
		return nil, err
	}

	var rawService struct {
		ServiceConfig RawServiceConfig `mapstructure:"service"`
	}
	err = v.Unmarshal(&rawService)
	if err != nil {
		return nil, err
	}

	rawConfig := RawConfig{ServiceConfig: rawService.ServiceConfig}
	genesis := v.GetString("genesis")
	if genesis != "" {
		rawConfig.Genesis, err = decodeGenesis(genesis)
		if err != nil {
			return nil, fmt.Errorf("unable to decode genesis: %w", err)
		}
	}

	return processRawConfig(rawConfig, shared)
}

// GetConfigFromFile reads the configuration from a JSON, YAML or TOML file.
// Values missing from the file are taken from the shared configuration.
func GetConfigFromFile(path string, shared *RawConfig) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var rawConfig RawConfig
	err = v.Unmarshal(&rawConfig)
	if err != nil {
		return nil, err
	}

	return processRawConfig(rawConfig, shared)
}

// GetSharedConfigFromNetwork fetches the configuration shared by all
// deployments of the network, usually only the genesis.
func GetSharedConfigFromNetwork(url string) (*RawConfig, error) {
	// nolint:gosec
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch shared config: status %d", resp.StatusCode)
	}

	rawConfig := &RawConfig{}
	err = json.NewDecoder(resp.Body).Decode(rawConfig)
	if err != nil {
		return nil, err
	}
	return rawConfig, nil
}

// decodeGenesis decodes the genesis JSON the same way genesis sections of
// configuration files are decoded.
func decodeGenesis(genesis string) (RawGenesisConfig, error) {
	d := json.NewDecoder(strings.NewReader(genesis))
	d.UseNumber()
	var values map[string]interface{}
	err := d.Decode(&values)
	if err != nil {
		return RawGenesisConfig{}, err
	}

	var raw RawGenesisConfig
	err = mapstructure.Decode(values, &raw)
	if err != nil {
		return RawGenesisConfig{}, err
	}
	return raw, nil
}

func processRawConfig(rawConfig RawConfig, shared *RawConfig) (*Config, error) {
	if shared != nil {
		err := mergo.Merge(&rawConfig, shared)
		if err != nil {
			return nil, err
		}
	}

	err := defaults.Set(&rawConfig)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := newServiceConfig(rawConfig.ServiceConfig)
	if err != nil {
		return nil, err
	}
	genesis, err := newGenesisConfig(rawConfig.Genesis)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceConfig: serviceConfig,
		Genesis:       genesis,
	}, nil
}
