package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tictac/game"
	"tictac/game/tictactoe"
	"tictac/game/ultimate"
)

var registry = map[string]game.Info{
	tictactoe.Info.Name:           tictactoe.Info,
	ultimate.Info.Name:            ultimate.Info,
	ultimate.SuddenDeathInfo.Name: ultimate.SuddenDeathInfo,
}

func gameNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupGame(name string) (game.Info, error) {
	info, ok := registry[name]
	if !ok {
		return game.Info{}, errors.Wrapf(game.ErrConfiguration, "unknown game %q, expected one of %s", name, strings.Join(gameNames(), ", "))
	}
	return info, nil
}

var (
	markX = color.New(color.FgRed, color.Bold).SprintFunc()
	markO = color.New(color.FgBlue, color.Bold).SprintFunc()
)

// board renders a state with colored marks.
func board(state game.State) string {
	return strings.NewReplacer("X", markX("X"), "O", markO("O")).Replace(state.String())
}

func Games() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List the available games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range gameNames() {
				info := registry[name]
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s (%d simulations per move)\n", name, info.Title, info.Simulations)
			}
			return nil
		},
	}
}
