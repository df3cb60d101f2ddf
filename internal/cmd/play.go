package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tictac/engine"
	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/player"
)

const SPIN = 14

// thinking shows a spinner while a computer agent searches.
type thinking struct {
	agent engine.Agent
	out   io.Writer
}

func (t thinking) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(t.out))
	s.Suffix = " thinking..."
	s.Start()
	action, metric, err := t.agent.FindMove(state)
	s.Stop()
	if err == nil {
		fmt.Fprintf(t.out, "Computer plays %s (%s)\n", action, metric.Duration.Round(time.Millisecond))
	}
	return action, metric, err
}

func addAgentFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().String(prefix+"algorithm", player.AlgorithmMCTS, "Search algorithm: mcts, minimax or random")
	cmd.Flags().Int(prefix+"simulations", 0, "MCTS simulations per move (default: per game)")
	cmd.Flags().Duration(prefix+"duration", 0, "MCTS time per move, instead of a simulation count")
	cmd.Flags().Int(prefix+"depth", 0, "Minimax search depth in plies, 0 for unlimited")
}

// agentConfig reads the flags added by addAgentFlags.
func (env *environment) agentConfig(cmd *cobra.Command, prefix string, id int) metrics.AgentConfig {
	flags := cmd.Flags()
	config := metrics.AgentConfig{ID: id, Seed: env.seed(cmd)}
	config.Algorithm, _ = flags.GetString(prefix + "algorithm")
	config.Simulations, _ = flags.GetInt(prefix + "simulations")
	config.Duration, _ = flags.GetDuration(prefix + "duration")
	config.MaxDepth = env.config.Minimax.MaxDepth
	if flags.Changed(prefix + "depth") {
		config.MaxDepth, _ = flags.GetInt(prefix + "depth")
	}
	return config
}

func Play(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game against the computer",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play starts a game between you and a search algorithm.
			Moves are typed on standard input when prompted: a cell
			number for Tic-Tac-Toe, a board and a cell number for the
			Ultimate variants.

			With --side none the computer plays against itself.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("game")
			info, err := lookupGame(name)
			if err != nil {
				return err
			}
			side, _ := cmd.Flags().GetString("side")

			config := env.agentConfig(cmd, "", 1)
			computer, err := player.FromConfig(config, env.config.Simulations(info))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			bot := thinking{agent: computer, out: out}
			human := player.NewHuman(cmd.InOrStdin(), out)

			var one, two engine.Agent
			switch strings.ToLower(side) {
			case "x", "1":
				one, two = human, bot
			case "o", "2":
				one, two = bot, human
			case "none":
				one, two = bot, bot
			default:
				return errors.Wrapf(game.ErrConfiguration, "unknown side %q, expected x, o or none", side)
			}

			state := info.New()
			fmt.Fprintf(out, "%s\n\n%s\n\n", info.Title, board(state))
			e := engine.LocalEngine(state, one, two, engine.WithObserver(func(u engine.Update) {
				fmt.Fprintf(out, "\n%s played %s\n\n%s\n\n", u.Player.Mark(), u.Action, board(u.State))
			}))
			outcome, err := e.Run()
			if err != nil {
				return err
			}

			if winner, ok := outcome.Result.Winner(); ok {
				fmt.Fprintf(out, "%s wins after %d moves.\n", winner.Mark(), outcome.Game.TotalMoves)
			} else {
				fmt.Fprintf(out, "Draw after %d moves.\n", outcome.Game.TotalMoves)
			}
			return nil
		},
	}

	cmd.Flags().StringP("game", "g", "tictactoe", "Game to play: "+strings.Join(gameNames(), ", "))
	cmd.Flags().StringP("side", "s", "x", "Your side: x, o or none")
	cmd.Flags().Uint64("seed", 0, "Seed of the computer's random source")
	addAgentFlags(cmd, "")

	return cmd
}
