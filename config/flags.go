// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlagName = "config"
	DBFlagName     = "db"
)

// BindFlags binds the configuration source flags shared by every command.
func BindFlags(rootCMD *cobra.Command) {
	rootCMD.PersistentFlags().String(ConfigFlagName, ".", "Path to JSON configuration file or 'env' to read it from environment variables")
	_ = viper.BindPFlag(ConfigFlagName, rootCMD.PersistentFlags().Lookup(ConfigFlagName))

	rootCMD.PersistentFlags().String(DBFlagName, "", "Path to the settlement database, overrides service.dbPath")
	_ = viper.BindPFlag(DBFlagName, rootCMD.PersistentFlags().Lookup(DBFlagName))
}
