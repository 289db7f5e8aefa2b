// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jong-un-1/mcp-cross-chain/config"
)

var (
	rootCMD = &cobra.Command{
		Use: "",
	}
)

func init() {
	config.BindFlags(rootCMD)
	rootCMD.PersistentFlags().String("name", "", "settlement service name")
	_ = viper.BindPFlag("name", rootCMD.PersistentFlags().Lookup("name"))

	rootCMD.PersistentFlags().String("config-url", "", "URL of shared configuration")
	_ = viper.BindPFlag("config-url", rootCMD.PersistentFlags().Lookup("config-url"))

	rootCMD.AddCommand(runCMD, stateCMD, quoteCMD)
}

func Execute() {
	if err := rootCMD.Execute(); err != nil {
		log.Fatal().Err(err).Msg("failed to execute root cmd")
	}
}
