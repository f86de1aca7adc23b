package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool
)

// rootCmd is the base command when battlesim is called without a
// subcommand.
var rootCmd = &cobra.Command{
	Use:          "battlesim",
	Short:        "battlesim - hex-grid tactical battle simulator",
	SilenceUsage: true,
	Long: `battlesim runs deterministic, seeded battles between two army
rosters on a hex grid.

Examples:
  battlesim run armies.json              Run a battle to completion
  battlesim run armies.json --seed 42    Run with an explicit seed
  battlesim step armies.json -n 5        Advance 5 steps and print each
  battlesim repl armies.json             Step interactively, with undo

Global Flags:
  --config string   Config file (default is $HOME/.battlesim.yaml)
  --json            Output in JSON format
  --verbose         Show per-step diagnostics`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.battlesim.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "show per-step diagnostics")

	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig loads .env, then config file and BATTLESIM_-prefixed env vars.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".battlesim")
	}

	viper.SetEnvPrefix("BATTLESIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && isVerbose() {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func isJSONOutput() bool { return viper.GetBool("json") }
func isVerbose() bool    { return viper.GetBool("verbose") }
