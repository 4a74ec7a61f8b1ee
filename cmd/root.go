// Package cmd implements the command-line interface for postbot.
package cmd

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/postbot/cmd/common"
	"github.com/jonesrussell/north-cloud/postbot/cmd/diagnose"
	"github.com/jonesrussell/north-cloud/postbot/cmd/generate"
	"github.com/jonesrussell/north-cloud/postbot/cmd/post"
	"github.com/jonesrussell/north-cloud/postbot/cmd/serve"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug logging for all commands
	Debug bool

	rootCmd = &cobra.Command{
		Use:   "postbot",
		Short: "Generates a short post with an LLM and publishes it to X",
		Long: `postbot asks a generative-text API for a short coding tip, quote or fact
and publishes it to X. Run 'postbot serve' to post daily, 'postbot post' to
post once now and 'postbot diagnose' to check credentials.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $CONFIG_PATH or ./config.yml)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug logging")
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return bindFlags()
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "postbot version %s\n", common.Version)
		},
	})

	rootCmd.AddCommand(serve.Command())
	rootCmd.AddCommand(post.Command())
	rootCmd.AddCommand(diagnose.Command())
	rootCmd.AddCommand(generate.Command())
}

// bindFlags binds the persistent flags to Viper for the subcommands.
func bindFlags() error {
	if err := viper.BindPFlag(common.KeyDebug, rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := viper.BindPFlag(common.KeyConfig, rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("failed to bind config flag: %w", err)
	}
	return nil
}
