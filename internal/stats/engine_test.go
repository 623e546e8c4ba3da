package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regen-eco/regen-server/internal/model"
	"github.com/regen-eco/regen-server/internal/utils"
)

func f(v float64) *float64 { return &v }

func TestComputeDashboardZeroActivity(t *testing.T) {
	d := ComputeDashboard(nil, nil)
	assert.Equal(t, Dashboard{}, d)

	d = ComputeDashboard([]model.WasteLog{}, []model.Reward{})
	assert.Zero(t, d.TotalWasteRecycled)
	assert.Zero(t, d.TotalCO2Saved)
	assert.Zero(t, d.Points)
	assert.Zero(t, d.TotalEntries)
}

func TestComputeDashboardFormula(t *testing.T) {
	logs := []model.WasteLog{
		{Weight: 5.5, CO2Saved: f(2.75)},
		{Weight: 3.0, CO2Saved: f(1.0)},
	}
	d := ComputeDashboard(logs, nil)
	assert.Equal(t, 8.5, d.TotalWasteRecycled)
	assert.Equal(t, 3.75, d.TotalCO2Saved)
	// round(3.75*10 + 8.5*5) = round(37.5 + 42.5) = 80
	assert.Equal(t, 80, d.Points)
	assert.Equal(t, 2, d.TotalEntries)
}

func TestComputeDashboardRewardBonusAndNilCO2(t *testing.T) {
	logs := []model.WasteLog{{Weight: 2.0}} // no co2 estimate
	rewards := []model.Reward{{Points: 15}, {Points: 5}}
	d := ComputeDashboard(logs, rewards)
	assert.Equal(t, 2.0, d.TotalWasteRecycled)
	assert.Zero(t, d.TotalCO2Saved)
	// round(0*10 + 2*5) + 20
	assert.Equal(t, 30, d.Points)
}

func TestComputeDashboardRoundsTwoDecimals(t *testing.T) {
	logs := []model.WasteLog{
		{Weight: 1.111, CO2Saved: f(0.555)},
		{Weight: 2.222, CO2Saved: f(0.111)},
	}
	d := ComputeDashboard(logs, nil)
	assert.InDelta(t, 3.33, d.TotalWasteRecycled, 1e-9)
	assert.InDelta(t, 0.67, d.TotalCO2Saved, 1e-9)
}

func leaderboardFixture() ([]model.User, map[string][]model.WasteLog, map[string][]model.Reward) {
	users := []model.User{
		{ID: "u1", Name: "Asha"},
		{ID: "u2", Name: "Brian"},
		{ID: "u3", Name: "Chi"},   // zero contribution
		{ID: "u4", Name: "Daria"}, // reward points only
	}
	logs := map[string][]model.WasteLog{
		"u1": {{UserID: "u1", Weight: 5.5, CO2Saved: f(2.75)}, {UserID: "u1", Weight: 3.0, CO2Saved: f(1.0)}},
		"u2": {{UserID: "u2", Weight: 10.0, CO2Saved: f(4.0)}},
	}
	rewards := map[string][]model.Reward{
		"u4": {{UserID: "u4", Points: 25}},
	}
	return users, logs, rewards
}

func TestBuildLeaderboardExcludesZeroContributors(t *testing.T) {
	users, logs, rewards := leaderboardFixture()
	board := BuildLeaderboard(users, logs, rewards)
	require.Len(t, board, 3)
	for _, e := range board {
		assert.NotEqual(t, "u3", e.UserID)
	}
}

func TestBuildLeaderboardOrderAndRanks(t *testing.T) {
	users, logs, rewards := leaderboardFixture()
	board := BuildLeaderboard(users, logs, rewards)
	require.Len(t, board, 3)

	// u2: round(4*10 + 10*5) = 90, u1: 80, u4: 25
	assert.Equal(t, "u2", board[0].UserID)
	assert.Equal(t, 90, board[0].Points)
	assert.Equal(t, "u1", board[1].UserID)
	assert.Equal(t, "u4", board[2].UserID)

	for i, e := range board {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, board[i-1].Points, e.Points)
		}
	}
}

func TestBuildLeaderboardDeterministicTies(t *testing.T) {
	users := []model.User{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	logs := map[string][]model.WasteLog{
		"a": {{Weight: 1, CO2Saved: f(1)}},
		"b": {{Weight: 1, CO2Saved: f(1)}},
		"c": {{Weight: 1, CO2Saved: f(1)}},
	}
	first := BuildLeaderboard(users, logs, nil)
	for i := 0; i < 10; i++ {
		again := BuildLeaderboard(users, logs, nil)
		assert.Equal(t, first, again)
	}
	// Stable sort keeps original enumeration order for equal points.
	assert.Equal(t, "a", first[0].UserID)
	assert.Equal(t, "b", first[1].UserID)
	assert.Equal(t, "c", first[2].UserID)
}

func TestPageLeaderboardKeepsGlobalRanks(t *testing.T) {
	users, logs, rewards := leaderboardFixture()
	board := BuildLeaderboard(users, logs, rewards)

	page := PageLeaderboard(board, utils.PageParams{Page: 2, PerPage: 2})
	require.Len(t, page, 1)
	assert.Equal(t, 3, page[0].Rank)
	assert.Equal(t, "u4", page[0].UserID)

	empty := PageLeaderboard(board, utils.PageParams{Page: 5, PerPage: 2})
	assert.Empty(t, empty)
}

func TestComputeGlobal(t *testing.T) {
	logs := []model.WasteLog{
		{Weight: 5.5, CO2Saved: f(2.75)},
		{Weight: 3.0},
	}
	rewards := []model.Reward{{Points: 10}, {Points: 7}}
	g := ComputeGlobal(logs, rewards, 4, 2)
	assert.Equal(t, 8.5, g.TotalWasteRecycled)
	assert.Equal(t, 2.75, g.TotalCO2Saved)
	assert.Equal(t, 4, g.TotalUsers)
	assert.Equal(t, 2, g.TotalEntries)
	assert.Equal(t, 17, g.TotalPointsAwarded)
	assert.Equal(t, 2, g.RecyclingCenters)
}

func TestTopRecyclers(t *testing.T) {
	users := []model.User{
		{ID: "u1", Name: "Asha", Email: "asha@example.com"},
		{ID: "u2", Name: "Brian", Email: "brian@example.com"},
		{ID: "u3", Name: "Chi", Email: "chi@example.com"},
	}
	logs := map[string][]model.WasteLog{
		"u1": {{Weight: 2.0}, {Weight: 1.5}},
		"u2": {{Weight: 10.0}},
	}
	top := TopRecyclers(users, logs, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "u2", top[0].UserID)
	assert.Equal(t, 10.0, top[0].TotalWeight)
	assert.Equal(t, "u1", top[1].UserID)
	assert.Equal(t, 3.5, top[1].TotalWeight)

	limited := TopRecyclers(users, logs, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "u2", limited[0].UserID)
}
