package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/internal"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	dumpConfig  bool
	generateKey bool
	tokenTTL    string
)

var cmd = &cobra.Command{
	Use:   "slangscope",
	Short: "slangscope finds the slang in a text and explains where it comes from and who uses it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
	SilenceUsage: true,
}

var dumpJsonSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for SlangScope's configuration file",
	Example: "slangscope json-schema > slangscope_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return nil
	},
}

func init() {
	cmd.AddCommand(dumpJsonSchemaCmd)
	cmd.AddCommand(analyzeCmd)
	cmd.AddCommand(summarizeCmd)
	cmd.AddCommand(lookupCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.Flags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")
	cmd.Flags().
		BoolVarP(&generateKey, "generate-token", "g", false, "generate a new JWT token")
	cmd.Flags().
		StringVar(&tokenTTL, "token-ttl", "0s", "lifetime of a generated token, e.g. 720h. 0 never expires")
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
