package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jong-un-1/mcp-cross-chain/app"
	"github.com/jong-un-1/mcp-cross-chain/config"
	"github.com/jong-un-1/mcp-cross-chain/engine"
	"github.com/jong-un-1/mcp-cross-chain/ledger"
	"github.com/jong-un-1/mcp-cross-chain/metrics"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	stateCMD = &cobra.Command{
		Use:   "state",
		Short: "Inspect the settlement state",
	}
	stateShowCMD = &cobra.Command{
		Use:   "show",
		Short: "Print global state, orchestrators and vaults as JSON",
		RunE:  showState,
	}
)

func init() {
	stateCMD.AddCommand(stateShowCMD)
}

type stateDump struct {
	Global        *state.GlobalState    `json:"global"`
	Orchestrators []*state.Orchestrator `json:"orchestrators"`
	Vaults        []*state.Vault        `json:"vaults"`
}

func showState(cmd *cobra.Command, args []string) error {
	e, closeDB, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	dump := stateDump{}
	dump.Global, err = e.GlobalState()
	if err != nil {
		return err
	}
	dump.Orchestrators, err = e.Orchestrators()
	if err != nil {
		return err
	}
	dump.Vaults, err = e.Vaults()
	if err != nil {
		return err
	}
	return printJSON(cmd, dump)
}

// openEngine opens the settlement database from the db flag, falling back to
// the configured db path. Metrics are not exported from the cli.
func openEngine(ctx context.Context) (*engine.Engine, func(), error) {
	dbPath := viper.GetString(config.DBFlagName)
	if dbPath == "" {
		configuration, err := app.LoadConfig()
		if err != nil {
			return nil, nil, err
		}
		dbPath = configuration.ServiceConfig.DBPath
	}

	db, err := store.NewLvlDB(dbPath)
	if err != nil {
		return nil, nil, err
	}
	m, err := metrics.NewSettlementMetrics(ctx, noop.NewMeterProvider().Meter("settlement-cli"), "cli", "cli", app.Version, 0)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return engine.NewEngine(db, ledger.NewLedger(), m), func() { _ = db.Close() }, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
