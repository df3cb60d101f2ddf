package searcher

import (
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"tictac/game"
	"tictac/game/tictactoe"
	"tictac/game/ultimate"
	"tictac/meta"
)

func mustParse(t *testing.T, layout string) tictactoe.State {
	t.Helper()
	s, err := tictactoe.Parse(layout)
	require.NoError(t, err)
	return s
}

func mustMCTS(t *testing.T, options ...Option) *MCTS {
	t.Helper()
	m, err := NewMCTS(options...)
	require.NoError(t, err)
	return m
}

func TestNewMCTS(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := mustMCTS(t)
		require.Equal(t, meta.DefaultSimulations, m.simulations)
		require.Equal(t, CSquared, m.cSquared)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := NewMCTS(WithSimulations(-1), WithExploration(-2))

		require.True(t, errors.Is(err, game.ErrConfiguration), "Invalid options should be configuration errors")
		var merr *multierror.Error
		require.True(t, errors.As(err, &merr))
		require.Len(t, merr.Errors, 2, "Every invalid option should be reported")
	})

	t.Run("simulations and duration", func(t *testing.T) {
		_, err := NewMCTS(WithSimulations(10), WithDuration(time.Second))
		require.True(t, errors.Is(err, game.ErrConfiguration))
	})

	t.Run("non-positive duration", func(t *testing.T) {
		_, err := NewMCTS(WithDuration(0))
		require.True(t, errors.Is(err, game.ErrConfiguration))
	})
}

func TestMCTSNextAction(t *testing.T) {
	t.Run("terminal state", func(t *testing.T) {
		state := mustParse(t, "XXX OO. ...")
		_, err := mustMCTS(t, WithSeed(1)).NextAction(state)
		require.True(t, errors.Is(err, game.ErrIllegalState), "Searching a terminal state should fail")
	})

	t.Run("single legal action", func(t *testing.T) {
		state := mustParse(t, "XOX OXO OX.")
		for _, simulations := range []int{0, 1, 50} {
			action, err := mustMCTS(t, WithSimulations(simulations), WithSeed(1)).NextAction(state)
			require.NoError(t, err)
			require.Equal(t, tictactoe.Move(8), action, "The only legal action should be returned")
		}
	})

	t.Run("winning move", func(t *testing.T) {
		state := mustParse(t, "XX. OO. ...")
		action, err := mustMCTS(t, WithSimulations(1000), WithSeed(3)).NextAction(state)
		require.NoError(t, err)
		require.Equal(t, tictactoe.Move(2), action, "X should complete the top row")
	})

	t.Run("zero simulations", func(t *testing.T) {
		action, err := mustMCTS(t, WithSimulations(0)).NextAction(tictactoe.New())
		require.NoError(t, err)
		require.Equal(t, tictactoe.Move(0), action, "The first legal action should be returned without search")
	})

	t.Run("idempotence", func(t *testing.T) {
		state := ultimate.New(ultimate.Classic)
		first, err := mustMCTS(t, WithSimulations(300), WithSeed(42)).NextAction(state)
		require.NoError(t, err)
		second, err := mustMCTS(t, WithSimulations(300), WithSeed(42)).NextAction(state)
		require.NoError(t, err)
		require.Equal(t, first, second, "Seeded searches of the same state should agree")
	})

	t.Run("time budget", func(t *testing.T) {
		m := mustMCTS(t, WithDuration(20*time.Millisecond), WithMetrics())
		tree, err := m.Search(tictactoe.New())
		require.NoError(t, err)
		require.Positive(t, tree.Metrics.Episodes, "Search should run at least one simulation")
		require.Equal(t, tree.RootVisits(), tree.Metrics.Episodes)
	})
}

func TestMCTSSearch(t *testing.T) {
	const simulations = 500
	m := mustMCTS(t, WithSimulations(simulations), WithSeed(5), WithMetrics())

	tree, err := m.Search(ultimate.New(ultimate.SuddenDeath))
	require.NoError(t, err)

	children := tree.Children()
	sum := 0
	best := children[0]
	for _, c := range children {
		sum += c.Visits
		if c.Visits > best.Visits {
			best = c
		}
	}
	require.Equal(t, simulations, tree.RootVisits(), "Every simulation should pass through the root")
	require.LessOrEqual(t, sum, simulations, "Root children cannot be visited more than the simulation budget")
	require.Equal(t, best.Action, tree.BestAction(), "The most visited child should be chosen")
	require.Len(t, children, 81, "Every opening move should be tried")
	require.Equal(t, simulations, tree.Metrics.Episodes)
	require.Equal(t, simulations, tree.Metrics.Rollouts, "Every simulation should run a rollout")
	require.Equal(t, tree.Size(), tree.Metrics.Nodes)
}

func TestMCTSConcurrentSearches(t *testing.T) {
	m := mustMCTS(t, WithSimulations(200), WithSeed(9))
	want, err := m.NextAction(ultimate.New(ultimate.Classic))
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([]game.Action, 4)
	errs := make([]error, 4)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = m.NextAction(ultimate.New(ultimate.Classic))
		}(i)
	}
	wg.Wait()

	for i := range got {
		require.NoError(t, errs[i])
		require.Equal(t, want, got[i], "Concurrent searches should not share state")
	}
}

func TestTreeDot(t *testing.T) {
	tree, err := mustMCTS(t, WithSimulations(20), WithSeed(1)).Search(tictactoe.New())
	require.NoError(t, err)

	dot, err := tree.Dot(1)
	require.NoError(t, err)
	require.Contains(t, dot, "digraph mcts")
	require.Contains(t, dot, "n0->n1")
	require.Contains(t, dot, `"cell 0"`)

	dot, err = tree.Dot(0)
	require.NoError(t, err)
	require.NotContains(t, dot, "->", "Depth 0 should only render the root")
}

func TestChildStatsWinRate(t *testing.T) {
	require.Equal(t, 0.0, ChildStats{}.WinRate())
	require.Equal(t, 0.25, ChildStats{Visits: 4, Rewards: 1}.WinRate())
}
