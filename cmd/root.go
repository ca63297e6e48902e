package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "headcheck",
	Short: "Scan websites for missing HTTP security headers",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".headcheck")
			viper.SetConfigType("yaml")
		}

		_ = viper.ReadInConfig()

		// init logger
		l, _ := zap.NewProduction()
		logger = l.Sugar()

		// config file values fill in wherever the user did not set the flag
		applyConfigDefaults()

		logger.Debugw("configuration loaded", "config_file", viper.ConfigFileUsed())

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.headcheck.yaml)")

	// add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(waitlistCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}
