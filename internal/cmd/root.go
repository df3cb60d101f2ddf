package cmd

import (
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tictac/config"
)

// environment is shared by the commands of one invocation.
type environment struct {
	config config.Config
}

// seed returns the seed flag if given, the configured seed otherwise, and a
// time based seed as a last resort.
func (env *environment) seed(cmd *cobra.Command) uint64 {
	if flag := cmd.Flag("seed"); flag != nil && flag.Changed {
		seed, _ := cmd.Flags().GetUint64("seed")
		return seed
	}
	if env.config.Seed != nil {
		return *env.config.Seed
	}
	return uint64(time.Now().UnixNano())
}

func Root() *cobra.Command {
	env := &environment{config: config.Default()}

	root := &cobra.Command{
		Use:   "tictac",
		Short: "Play Tic-Tac-Toe variants against search algorithms",
		Long: heredoc.Doc(`tictac plays Tic-Tac-Toe and Ultimate Tic-Tac-Toe against
			Monte Carlo tree search and Minimax, pits the algorithms
			against each other and explains their choices.

			Defaults are read from the config.yaml file in the tictac
			directory of your XDG config home, if present.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			var err error
			if path != "" {
				env.config, err = config.Read(path)
			} else {
				env.config, err = config.Load()
			}
			if err != nil {
				return err
			}

			zerolog.SetGlobalLevel(env.config.Level())
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				zerolog.SetGlobalLevel(zerolog.TraceLevel)
			} else if cmd.Flag("quiet").Changed {
				zerolog.SetGlobalLevel(zerolog.WarnLevel)
			}
			log.Trace().Interface("config", env.config).Msg("loaded config")
			return nil
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show tictac's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().BoolP("quiet", "q", false, "Only Show Warnings and Errors")
	root.PersistentFlags().String("config", "", "Read the configuration from this file")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Play(env))
	root.AddCommand(Match(env))
	root.AddCommand(Explain(env))
	root.AddCommand(Games())

	return root
}
