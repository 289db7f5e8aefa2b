package cli

import (
	"github.com/spf13/cobra"
)

var (
	quoteCMD = &cobra.Command{
		Use:   "quote",
		Short: "Print the fee breakdown of an order",
		RunE:  quote,
	}
)

var (
	amount    uint64
	destChain uint32
)

func init() {
	quoteCMD.Flags().Uint64Var(&amount, "amount", 0, "order amount")
	quoteCMD.Flags().Uint32Var(&destChain, "dest-chain", 0, "destination chain id")
	_ = quoteCMD.MarkFlagRequired("amount")
	_ = quoteCMD.MarkFlagRequired("dest-chain")
}

func quote(cmd *cobra.Command, args []string) error {
	e, closeDB, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	breakdown, err := e.QuoteFee(amount, destChain)
	if err != nil {
		return err
	}
	return printJSON(cmd, breakdown)
}
