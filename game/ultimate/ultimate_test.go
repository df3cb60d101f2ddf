package ultimate

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tictac/game"
)

// boardZeroTopRow is a legal line where X completes the top row of board 0.
var boardZeroTopRow = []Move{
	{4, 4}, {4, 0}, {0, 0}, {0, 4}, {4, 3}, {3, 0}, {0, 1}, {1, 0}, {0, 2},
}

func mustReplay(t *testing.T, variant Variant, moves ...Move) State {
	t.Helper()
	s, err := Replay(variant, moves...)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := New(Classic)

	require.Equal(t, game.PlayerOne, s.Player())
	require.False(t, s.IsTerminal())
	_, forced := s.Forced()
	require.False(t, forced, "The first move should be free")

	actions := s.LegalActions()
	require.Len(t, actions, 81)
	require.Equal(t, Move{0, 0}, actions[0])
	require.Equal(t, Move{0, 1}, actions[1], "Actions should be enumerated board by board, then cell by cell")
	require.Equal(t, Move{8, 8}, actions[80])
}

func TestForcedBoard(t *testing.T) {
	t.Run("cell played decides the next board", func(t *testing.T) {
		s := mustReplay(t, Classic, Move{4, 2})

		board, forced := s.Forced()
		require.True(t, forced)
		require.Equal(t, 2, board)
		actions := s.LegalActions()
		require.Len(t, actions, 9)
		for _, a := range actions {
			require.Equal(t, 2, a.(Move).Board, "Every legal action should be in the forced board")
		}
	})

	t.Run("rejects a move outside the forced board", func(t *testing.T) {
		s := mustReplay(t, Classic, Move{4, 2})

		_, err := s.Play(Move{3, 3})

		require.ErrorIs(t, err, game.ErrIllegalAction)
		require.Len(t, s.LegalActions(), 9, "Rejected action should not change the state")
	})

	t.Run("decided board frees the next move", func(t *testing.T) {
		moves := append(append([]Move{}, boardZeroTopRow...), Move{2, 0})
		s := mustReplay(t, Classic, moves...)

		_, forced := s.Forced()
		require.False(t, forced, "Board 0 is won so the move should be free")
		actions := s.LegalActions()
		require.Len(t, actions, 81-10-5, "All empty cells outside board 0 should be playable")
		for _, a := range actions {
			require.NotEqual(t, 0, a.(Move).Board)
		}

		_, err := s.Play(Move{0, 3})
		require.ErrorIs(t, err, game.ErrIllegalAction, "Decided boards should not accept moves")
	})
}

func TestLocalWin(t *testing.T) {
	t.Run("classic continues after a local win", func(t *testing.T) {
		s := mustReplay(t, Classic, boardZeroTopRow...)

		require.Equal(t, game.PlayerOne, s.Owner(0))
		require.False(t, s.IsTerminal())
		require.Equal(t, game.PlayerTwo, s.Player())
		_, err := s.Result()
		require.ErrorIs(t, err, game.ErrIllegalState)
	})

	t.Run("sudden death ends on a local win", func(t *testing.T) {
		s := mustReplay(t, SuddenDeath, boardZeroTopRow...)

		require.True(t, s.IsTerminal())
		require.Empty(t, s.LegalActions())
		result, err := s.Result()
		require.NoError(t, err)
		require.Equal(t, game.PlayerOneWins, result)

		_, err = s.Play(Move{2, 0})
		require.ErrorIs(t, err, game.ErrIllegalAction)
	})
}

func TestMetaBoard(t *testing.T) {
	t.Run("three boards in a line win", func(t *testing.T) {
		s := New(Classic)
		s.status = [Boards]status{wonByTwo, open, open, open, wonByTwo, open, drawn, open, wonByTwo}

		require.True(t, s.IsTerminal())
		require.Nil(t, s.LegalActions())
		result, err := s.Result()
		require.NoError(t, err)
		require.Equal(t, game.PlayerTwoWins, result)
	})

	t.Run("all boards decided without a line is a draw", func(t *testing.T) {
		s := New(Classic)
		s.status = [Boards]status{wonByOne, wonByTwo, wonByOne, wonByOne, wonByTwo, wonByTwo, wonByTwo, wonByOne, drawn}

		require.True(t, s.IsTerminal())
		result, err := s.Result()
		require.NoError(t, err)
		require.Equal(t, game.Draw, result)
	})
}

func TestReplayReportsTheFailingMove(t *testing.T) {
	_, err := Replay(Classic, Move{4, 2}, Move{3, 3})

	require.ErrorIs(t, err, game.ErrIllegalAction)
	require.Contains(t, err.Error(), "replaying move 2")
}

func TestHashAndEqual(t *testing.T) {
	a := mustReplay(t, Classic, Move{4, 4}, Move{4, 0})
	b := mustReplay(t, Classic, Move{4, 4}, Move{4, 0})
	c := mustReplay(t, Classic, Move{4, 4}, Move{4, 1})
	d := mustReplay(t, SuddenDeath, Move{4, 4}, Move{4, 0})

	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.False(t, a.Equal(c))
	require.NotEqual(t, a.Hash(), c.Hash())
	require.False(t, a.Equal(d), "Variants should not compare equal")
	require.NotEqual(t, a.Hash(), d.Hash())
}

func TestParseAction(t *testing.T) {
	s := mustReplay(t, Classic, Move{4, 2})

	got, err := s.ParseAction("2 5")
	require.NoError(t, err)
	require.Equal(t, Move{Board: 2, Cell: 5}, got)

	for _, input := range []string{"", "2", "2 5 1", "a 1", "1 b", "9 0"} {
		_, err := s.ParseAction(input)
		require.Error(t, err, "input %q should be rejected", input)
	}

	require.Contains(t, s.Prompt(), "local board 2")
}

func TestString(t *testing.T) {
	s := mustReplay(t, Classic, Move{0, 0})
	require.Contains(t, s.String(), "X 1 2 │ 0 1 2 │ 0 1 2")
}

func TestRandomPlayouts(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for _, variant := range []Variant{Classic, SuddenDeath} {
		for i := 0; i < 100; i++ {
			var s game.State = New(variant)
			for !s.IsTerminal() {
				actions := s.LegalActions()
				require.NotEmpty(t, actions)
				if board, forced := s.(State).Forced(); forced {
					for _, a := range actions {
						require.Equal(t, board, a.(Move).Board)
					}
				}
				mover := s.Player()
				next, err := s.Play(actions[r.Intn(len(actions))])
				require.NoError(t, err)
				s = next
				if !s.IsTerminal() {
					require.Equal(t, mover.Opponent(), s.Player())
				}
			}
			_, err := s.Result()
			require.NoError(t, err)
		}
	}
}
