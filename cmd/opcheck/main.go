package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/favbox/opchain/cmd/opcheck/commands"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "opcheck",
	Short: "Static checker for operator process definitions",
	Long: `opcheck loads a process definition, checks that every operator receives
the data types it consumes, and verifies learner capabilities against a dataset.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.DescribeCmd)
	rootCmd.AddCommand(commands.CapabilitiesCmd)
	rootCmd.AddCommand(commands.LearnerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.opcheck.yaml)")
	rootCmd.PersistentFlags().String("format", "text", "output format: text or json")
	rootCmd.PersistentFlags().Bool("only-warn", false, "log missing learner capabilities instead of failing")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level")
	rootCmd.PersistentFlags().Bool("dev", false, "development logging")

	for _, key := range []string{"format", "only-warn", "log-level", "dev"} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".opcheck")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("opcheck")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "read config %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}
