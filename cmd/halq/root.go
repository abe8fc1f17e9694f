package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	halgo "github.com/jagregory/halgo/v2"
)

// app holds state shared by the subcommands of one invocation.
type app struct {
	configFile string
	cfg        *viper.Viper
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "halq",
		Short: "Query the links and embedded resources of HAL documents",
		Long: `halq reads a HAL document from a file, or stdin when the file is
omitted or "-", and prints its relations, its self link, resolved
(templated) links or embedded resources.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.configFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			a.cfg = cfg

			a.log, err = newLogger(cfg.GetString(cfgKeyLogLevel), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			halgo.SetLogger(a.log)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./.halq.yaml or ~/.halq.yaml)")
	flags.String("base-url", "", "resolve relative hrefs against this URL")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newLinksCmd(a))
	rootCmd.AddCommand(newSelfCmd(a))
	rootCmd.AddCommand(newResolveCmd(a))
	rootCmd.AddCommand(newEmbeddedCmd(a))

	return rootCmd
}
