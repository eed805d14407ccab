package commands

import (
	"github.com/spf13/cobra"

	"spectre/internal/app"
	"spectre/internal/domain/types"
)

var (
	configPath string
	logLevel   string
	userName   string
	algorithm  int
	appCtx     *app.App
)

// Execute runs the CLI with the process arguments.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "spectre",
		Short:        "Stateless site password derivation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("user") {
				cfg.UserName = userName
			}
			if flags.Changed("algorithm") {
				cfg.AlgorithmVersion = types.AlgorithmVersion(algorithm)
			}

			appCtx, err = app.New(cfg, cmd.ErrOrStderr())
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ./spectre.yaml or ~/.spectre/config.yaml)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVarP(&userName, "user", "u", "", "full name of the user")
	pf.IntVarP(&algorithm, "algorithm", "a", int(types.AlgorithmCurrent), "algorithm version (0-3)")

	root.AddCommand(
		siteCmd("password", "Derive the password for a site", types.PurposeAuthentication),
		siteCmd("login", "Derive the login name for a site", types.PurposeIdentification),
		siteCmd("answer", "Derive a security answer for a site", types.PurposeRecovery),
		identiconCmd(),
		serveCmd(),
	)
	return root
}
