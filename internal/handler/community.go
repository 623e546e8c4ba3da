package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/regen-eco/regen-server/internal/middleware"
	"github.com/regen-eco/regen-server/internal/model"
	"github.com/regen-eco/regen-server/internal/repository"
	"github.com/regen-eco/regen-server/internal/stats"
	"github.com/regen-eco/regen-server/internal/utils"
)

// CommunityHandler serves the leaderboard and community-group endpoints.
type CommunityHandler struct {
	Users       *repository.UserRepo
	Logs        *repository.WasteLogRepo
	Rewards     *repository.RewardRepo
	Communities *repository.CommunityRepo
}

func NewCommunityHandler(u *repository.UserRepo, l *repository.WasteLogRepo, r *repository.RewardRepo, cm *repository.CommunityRepo) *CommunityHandler {
	return &CommunityHandler{Users: u, Logs: l, Rewards: r, Communities: cm}
}

// loadScoringData fetches every user with their logs and rewards grouped
// by owner, the input shape the stats engine works on.
func (h *CommunityHandler) loadScoringData(ctx context.Context) ([]model.User, map[string][]model.WasteLog, map[string][]model.Reward, error) {
	users, err := h.Users.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	logs, err := h.Logs.List(ctx, repository.WasteLogFilter{})
	if err != nil {
		return nil, nil, nil, err
	}
	rewards, err := h.Rewards.ListByUser(ctx, "")
	if err != nil {
		return nil, nil, nil, err
	}
	logsByUser := make(map[string][]model.WasteLog, len(users))
	for _, l := range logs {
		logsByUser[l.UserID] = append(logsByUser[l.UserID], l)
	}
	rewardsByUser := make(map[string][]model.Reward, len(users))
	for _, r := range rewards {
		rewardsByUser[r.UserID] = append(rewardsByUser[r.UserID], r)
	}
	return users, logsByUser, rewardsByUser, nil
}

// Leaderboard returns the ranked contributor list. Pagination slices the
// globally sorted list; ranks keep their global position.
func (h *CommunityHandler) Leaderboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, logsByUser, rewardsByUser, err := h.loadScoringData(ctx)
	if err != nil {
		return fail(c, err, "leaderboard")
	}
	board := stats.BuildLeaderboard(users, logsByUser, rewardsByUser)
	p := utils.ParsePageParams(c.QueryParam("page"), c.QueryParam("per_page"))
	page := stats.PageLeaderboard(board, p)

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Leaderboard data fetched successfully",
		"leaderboard": page,
		"pagination": echo.Map{
			"page":        p.Page,
			"per_page":    p.PerPage,
			"total_items": len(board),
			"total_pages": p.TotalPages(len(board)),
		},
	})
}

// ----- community groups -----

type createCommunityReq struct {
	Name        string  `json:"name" validate:"required"`
	ImpactScore float64 `json:"impact_score"`
}

type communityPart struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ImpactScore float64   `json:"impact_score"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCommunityPart(cm model.Community) communityPart {
	return communityPart{ID: cm.ID, Name: cm.Name, ImpactScore: cm.ImpactScore, CreatedAt: cm.CreatedAt}
}

// CreateGroup adds a community group.
func (h *CommunityHandler) CreateGroup(c echo.Context) error {
	var req createCommunityReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	cm := model.Community{Name: req.Name, ImpactScore: req.ImpactScore}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Communities.Create(ctx, &cm); err != nil {
		return fail(c, err, "community")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Community created successfully",
		"data":    toCommunityPart(cm),
	})
}

// ListGroups returns all community groups, best impact score first.
func (h *CommunityHandler) ListGroups(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	groups, err := h.Communities.List(ctx)
	if err != nil {
		return fail(c, err, "communities")
	}
	parts := make([]communityPart, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, toCommunityPart(g))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Communities fetched successfully",
		"data":    parts,
	})
}

// JoinGroup adds the caller to a community.
func (h *CommunityHandler) JoinGroup(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	m, err := h.Communities.Join(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "community membership")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Joined community successfully",
		"data": echo.Map{
			"community_id": m.CommunityID,
			"user_id":      m.UserID,
			"joined_at":    m.JoinedAt,
		},
	})
}

// DeleteGroup removes a community and its memberships.
func (h *CommunityHandler) DeleteGroup(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Communities.Delete(ctx, c.Param("id")); err != nil {
		return fail(c, err, "community")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Community deleted successfully"})
}
