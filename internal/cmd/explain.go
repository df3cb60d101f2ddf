package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tictac/game"
	"tictac/game/tictactoe"
	"tictac/searcher"
)

// replay plays the moves, separated by commas, typed the way a human would.
func replay(info game.Info, moves string) (game.State, error) {
	state := info.New()
	for i, input := range strings.Split(moves, ",") {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		parser, ok := state.(game.Parser)
		if !ok {
			return nil, errors.Errorf("%s cannot parse typed moves", info.Title)
		}
		action, err := parser.ParseAction(input)
		if err != nil {
			return nil, errors.WithMessagef(err, "move %d", i+1)
		}
		next, err := state.Play(action)
		if err != nil {
			return nil, errors.WithMessagef(err, "move %d", i+1)
		}
		state = next
	}
	return state, nil
}

func Explain(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [moves]",
		Short: "Show how MCTS and Minimax judge a position",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`explain replays the given comma separated moves and runs
			one MCTS search on the resulting position, printing the
			visits and win rate of every move considered. Minimax's
			choice and value are printed as well when --depth is given
			or the game is small enough to be solved.

			Use --dot to print the search tree in Graphviz format.`),
		Example: heredoc.Doc(`
			$ tictac explain "4, 0"
			$ tictac explain -g ultimate "4 4, 4 0" --simulations 2000
			$ tictac explain --dot 2 | dot -Tsvg > tree.svg`),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("game")
			info, err := lookupGame(name)
			if err != nil {
				return err
			}
			moves := ""
			if len(args) > 0 {
				moves = args[0]
			}
			state, err := replay(info, moves)
			if err != nil {
				return err
			}

			simulations, _ := cmd.Flags().GetInt("simulations")
			if simulations == 0 {
				simulations = env.config.Simulations(info)
			}
			mcts, err := searcher.NewMCTS(
				searcher.WithSimulations(simulations),
				searcher.WithSeed(env.seed(cmd)),
				searcher.WithMetrics(),
			)
			if err != nil {
				return err
			}
			tree, err := mcts.Search(state)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if depth, _ := cmd.Flags().GetInt("dot"); depth > 0 {
				dot, err := tree.Dot(depth)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, dot)
				return nil
			}

			fmt.Fprintf(out, "%s\n\n%s\n\n%s to move\n\n", info.Title, board(state), state.Player().Mark())
			fmt.Fprintf(out, "MCTS: %d simulations, %d nodes, %s\n", tree.RootVisits(), tree.Size(), tree.Metrics.Duration)
			best := tree.BestAction()
			for _, child := range tree.Children() {
				marker := " "
				if child.Action == best {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-18s %6d visits  %5.1f%% wins\n", marker, child.Action, child.Visits, 100*child.WinRate())
			}

			var options []searcher.MinimaxOption
			if cmd.Flags().Changed("depth") {
				depth, _ := cmd.Flags().GetInt("depth")
				options = append(options, searcher.WithMaxDepth(depth))
			} else if env.config.Minimax.MaxDepth > 0 {
				options = append(options, searcher.WithMaxDepth(env.config.Minimax.MaxDepth))
			} else if info.Name != tictactoe.Info.Name {
				return nil
			}
			minimax, err := searcher.NewMinimax(append(options, searcher.WithMinimaxMetrics())...)
			if err != nil {
				return err
			}
			e, err := minimax.Evaluate(state)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nMinimax: %s with value %+.0f (%d positions)\n", e.Action, e.Value, e.Metrics.Nodes)
			return nil
		},
	}

	cmd.Flags().StringP("game", "g", "tictactoe", "Game to analyse: "+strings.Join(gameNames(), ", "))
	cmd.Flags().Int("simulations", 0, "MCTS simulations (default: per game)")
	cmd.Flags().Int("depth", 0, "Minimax search depth in plies")
	cmd.Flags().Int("dot", 0, "Print the MCTS tree down to this depth in Graphviz format")
	cmd.Flags().Uint64("seed", 0, "Seed of the MCTS random source")

	return cmd
}
