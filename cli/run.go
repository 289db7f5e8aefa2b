package cli

import (
	"github.com/jong-un-1/mcp-cross-chain/app"
	"github.com/spf13/cobra"
)

var runCMD = &cobra.Command{
	Use:   "run",
	Short: "Run settlement service",
	Long:  "Run settlement service. The settlement state is initialized from the genesis config on the first start.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run()
	},
}
