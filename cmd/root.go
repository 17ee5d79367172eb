package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	schemaFile string
)

var RootCmd = &cobra.Command{
	Use:   "schema-verify",
	Short: "Cross-dialect schema equivalence verifier",
	Long: `schema-verify checks that the schema produced by each configured
database engine is structurally equivalent to the canonical schema
definition, normalizing every engine's representation of types,
defaults and constraints.`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schema-verify.yaml)")
	RootCmd.PersistentFlags().StringVar(&schemaFile, "schema", "", "canonical schema definition file")

	viper.BindPFlag("schema.file", RootCmd.PersistentFlags().Lookup("schema"))
	viper.SetDefault("schema.file", "canonical-schema.yaml")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("schema-verify")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
