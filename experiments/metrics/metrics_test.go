package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start("mcts")
	c.AddEpisode()
	c.AddEpisode()
	c.AddRollout(3)
	c.AddRollout(6)
	c.AddNode()

	m := c.Complete()

	require.Equal(t, "mcts", m.Algorithm)
	require.Equal(t, 2, m.Episodes)
	require.Equal(t, 2, m.Rollouts)
	require.Equal(t, 4.5, m.MeanRolloutPlies())
	require.Equal(t, 1, m.Nodes)
	require.GreaterOrEqual(t, m.Duration, time.Duration(0))

	c.Start("minimax")
	require.Zero(t, c.Complete().Episodes, "Start should reset the collected metrics")
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start("mcts")
	c.AddEpisode()
	c.AddRollout(4)

	require.Equal(t, SearchMetric{}, c.Complete(), "Dummy collector should collect nothing")
	require.Zero(t, SearchMetric{}.MeanRolloutPlies())
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "strength")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "strength"), filepath.Dir(w.Dir()))

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
		{ID: 1, Algorithm: "mcts", Simulations: 100, Seed: 7},
		{ID: 2, Algorithm: "minimax", MaxDepth: 3},
	}))
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		ID: 1, Agent1: 1, Agent2: 2,
		GameMetric: GameMetric{StartingPlayer: 1, Result: "1-0", StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 7},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game: 1,
		MoveMetric: MoveMetric{Step: 1, Player: 1, Action: "cell 4", SearchMetric: SearchMetric{
			Algorithm: "mcts", Duration: time.Millisecond, Episodes: 100, Rollouts: 100, RolloutPlies: 550, Nodes: 101,
		}},
	}}))

	configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Len(t, configs, 3, "Configs should have a header and one row per agent")
	require.Equal(t, []string{"2", "minimax", "0", "0s", "3", "0"}, configs[2])

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Equal(t, []string{"1", "1", "2", "1", "1-0", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "7"}, games[1])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Equal(t, "mean_rollout_plies", moves[0][8])
	require.Equal(t, []string{"1", "1", "1", "cell 4", "mcts", "1ms", "100", "100", "5.50", "101"}, moves[1])
}
