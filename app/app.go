// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jong-un-1/mcp-cross-chain/api"
	"github.com/jong-un-1/mcp-cross-chain/api/handlers"
	"github.com/jong-un-1/mcp-cross-chain/config"
	"github.com/jong-un-1/mcp-cross-chain/engine"
	"github.com/jong-un-1/mcp-cross-chain/health"
	"github.com/jong-un-1/mcp-cross-chain/ledger"
	"github.com/jong-un-1/mcp-cross-chain/metrics"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/sygmaprotocol/sygma-core/observability"
)

var Version string

// LoadConfig reads the configuration from the source selected by the config
// flag, merged with the shared configuration when config-url is set.
func LoadConfig() (*config.Config, error) {
	configFlag := viper.GetString(config.ConfigFlagName)
	configURL := viper.GetString("config-url")

	var shared *config.RawConfig
	var err error
	if configURL != "" {
		shared, err = config.GetSharedConfigFromNetwork(configURL)
		if err != nil {
			return nil, err
		}
	}

	if strings.ToLower(configFlag) == "env" {
		return config.GetConfigFromENV(shared)
	}
	return config.GetConfigFromFile(configFlag, shared)
}

func Run() error {
	configuration, err := LoadConfig()
	panicOnError(err)

	observability.ConfigureLogger(configuration.ServiceConfig.LogLevel, os.Stdout)

	log.Info().Msg("Successfully loaded configuration")

	db, err := store.NewLvlDB(configuration.ServiceConfig.DBPath)
	panicOnError(err)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Msgf("Error closing database: %v", err)
		}
	}()

	mp, err := observability.InitMetricProvider(context.Background(), configuration.ServiceConfig.OpenTelemetryCollectorURL)
	panicOnError(err)
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error().Msgf("Error shutting down meter provider: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settlementMetrics, err := metrics.NewSettlementMetrics(
		ctx,
		mp.Meter("settlement-metric-provider"),
		configuration.ServiceConfig.Env,
		configuration.ServiceConfig.Id,
		Version,
		configuration.ServiceConfig.FillSessionTTL)
	panicOnError(err)

	l := ledger.NewLedger()
	settlementEngine := engine.NewEngine(db, l, settlementMetrics)
	err = Bootstrap(ctx, settlementEngine, l, configuration.Genesis)
	panicOnError(err)

	go health.StartHealthEndpoint(configuration.ServiceConfig.HealthPort, func() error {
		_, err := settlementEngine.GlobalState()
		return err
	})

	var faucetHandler *handlers.FaucetHandler
	if configuration.ServiceConfig.Faucet {
		log.Warn().Msg("Faucet enabled, funds can be minted through the API")
		faucetHandler = handlers.NewFaucetHandler(settlementEngine, l)
	}
	router := api.NewRouter(
		handlers.NewOrderHandler(settlementEngine),
		handlers.NewVaultHandler(settlementEngine),
		handlers.NewAdminHandler(settlementEngine),
		handlers.NewQueryHandler(settlementEngine),
		faucetHandler,
	)
	go api.Serve(ctx, configuration.ServiceConfig.ApiAddr, router)

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	serviceName := viper.GetString("name")
	log.Info().Msgf("Started settlement service: %s with id: %s. Version: v%s", serviceName, configuration.ServiceConfig.Id, Version)

	sig := <-sysErr
	log.Info().Msgf("terminating got ` [%v] signal", sig)
	return nil
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
