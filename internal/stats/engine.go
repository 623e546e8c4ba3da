// Package stats derives read-only aggregate statistics from waste logs and
// rewards. Every function is a pure computation over the slices it is
// given; repositories load the data and handlers serialize the results.
package stats

import (
	"math"
	"sort"

	"github.com/regen-eco/regen-server/internal/model"
	"github.com/regen-eco/regen-server/internal/utils"
)

// Dashboard is the per-user statistics block shown on the dashboard and
// used for leaderboard ranking.
//
// Points are split in two parts: activity points calculated from the logs
// (CO2 is weighted 10 points/kg against 5 points/kg of raw weight, so
// emissions impact counts double) and bonus points attached to badge
// rewards. Weight and CO2 totals are rounded to two decimals so reward
// displays stay stable across recomputation.
type Dashboard struct {
	TotalWasteRecycled float64 `json:"total_waste_recycled"`
	TotalCO2Saved      float64 `json:"total_co2_saved"`
	Points             int     `json:"points"`
	TotalEntries       int     `json:"total_entries"`
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeDashboard builds the dashboard block for one user. A user with no
// logs and no rewards is a valid zero-stats result, never an error.
func ComputeDashboard(logs []model.WasteLog, rewards []model.Reward) Dashboard {
	var waste, co2 float64
	for _, l := range logs {
		waste += l.Weight
		if l.CO2Saved != nil {
			co2 += *l.CO2Saved
		}
	}
	waste = Round2(waste)
	co2 = Round2(co2)

	calculated := int(math.Round(co2*10 + waste*5))
	for _, r := range rewards {
		calculated += r.Points
	}
	return Dashboard{
		TotalWasteRecycled: waste,
		TotalCO2Saved:      co2,
		Points:             calculated,
		TotalEntries:       len(logs),
	}
}

// LeaderboardEntry is one ranked row. Rank is the dense 1-based position in
// the full ordering, not the position within a page.
type LeaderboardEntry struct {
	Rank               int     `json:"rank"`
	UserID             string  `json:"user_id"`
	Name               string  `json:"name"`
	Points             int     `json:"points"`
	TotalCO2Saved      float64 `json:"total_co2_saved"`
	TotalWasteRecycled float64 `json:"total_waste_recycled"`
	TotalEntries       int     `json:"total_entries"`
}

// BuildLeaderboard computes dashboard stats for every user, drops users
// with zero contribution (points == 0 and co2 == 0), sorts by points
// descending and assigns dense ranks. The sort is stable over the incoming
// user order, so equal-point users keep a deterministic relative order
// between calls.
func BuildLeaderboard(users []model.User, logsByUser map[string][]model.WasteLog, rewardsByUser map[string][]model.Reward) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		d := ComputeDashboard(logsByUser[u.ID], rewardsByUser[u.ID])
		if d.Points <= 0 && d.TotalCO2Saved <= 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:             u.ID,
			Name:               u.Name,
			Points:             d.Points,
			TotalCO2Saved:      d.TotalCO2Saved,
			TotalWasteRecycled: d.TotalWasteRecycled,
			TotalEntries:       d.TotalEntries,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// PageLeaderboard slices a built leaderboard. Ranks on the returned page
// still reflect the global sorted position.
func PageLeaderboard(entries []LeaderboardEntry, p utils.PageParams) []LeaderboardEntry {
	lo, hi := p.Slice(len(entries))
	return entries[lo:hi]
}

// Global is the platform-wide statistics block.
type Global struct {
	TotalWasteRecycled float64 `json:"total_waste_recycled"`
	TotalCO2Saved      float64 `json:"total_co2_saved"`
	TotalUsers         int     `json:"total_users"`
	TotalEntries       int     `json:"total_entries"`
	TotalPointsAwarded int     `json:"total_points_awarded"`
	RecyclingCenters   int     `json:"recycling_centers"`
}

// ComputeGlobal aggregates across every log and reward on the platform.
func ComputeGlobal(logs []model.WasteLog, rewards []model.Reward, userCount, centerCount int) Global {
	var waste, co2 float64
	for _, l := range logs {
		waste += l.Weight
		if l.CO2Saved != nil {
			co2 += *l.CO2Saved
		}
	}
	points := 0
	for _, r := range rewards {
		points += r.Points
	}
	return Global{
		TotalWasteRecycled: Round2(waste),
		TotalCO2Saved:      Round2(co2),
		TotalUsers:         userCount,
		TotalEntries:       len(logs),
		TotalPointsAwarded: points,
		RecyclingCenters:   centerCount,
	}
}

// TopRecycler is one row of the by-weight top list shown on the dashboard.
type TopRecycler struct {
	UserID      string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	TotalWeight float64 `json:"total_weight"`
}

// TopRecyclers ranks users by total logged weight, heaviest first, and
// returns at most limit rows. Users with no logs are skipped.
func TopRecyclers(users []model.User, logsByUser map[string][]model.WasteLog, limit int) []TopRecycler {
	out := make([]TopRecycler, 0, len(users))
	for _, u := range users {
		var total float64
		for _, l := range logsByUser[u.ID] {
			total += l.Weight
		}
		if total <= 0 {
			continue
		}
		out = append(out, TopRecycler{
			UserID:      u.ID,
			Name:        u.Name,
			Email:       u.Email,
			TotalWeight: Round2(total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalWeight > out[j].TotalWeight
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
