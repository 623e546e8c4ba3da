package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/regen-eco/regen-server/internal/middleware"
	"github.com/regen-eco/regen-server/internal/model"
	"github.com/regen-eco/regen-server/internal/repository"
	"github.com/regen-eco/regen-server/internal/stats"
)

// DashboardHandler serves the derived-statistics endpoints. All numbers
// come from the stats engine; nothing here mutates state.
type DashboardHandler struct {
	Users   *repository.UserRepo
	Logs    *repository.WasteLogRepo
	Rewards *repository.RewardRepo
	Centers *repository.CenterRepo
}

func NewDashboardHandler(u *repository.UserRepo, l *repository.WasteLogRepo, r *repository.RewardRepo, ctr *repository.CenterRepo) *DashboardHandler {
	return &DashboardHandler{Users: u, Logs: l, Rewards: r, Centers: ctr}
}

// Me returns the caller's dashboard stats. A user with no activity gets a
// valid zero-stats block.
func (h *DashboardHandler) Me(c echo.Context) error {
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		return fail(c, err, "user")
	}
	logs, err := h.Logs.List(ctx, repository.WasteLogFilter{UserID: userID})
	if err != nil {
		return fail(c, err, "dashboard")
	}
	rewards, err := h.Rewards.ListByUser(ctx, userID)
	if err != nil {
		return fail(c, err, "dashboard")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Dashboard data fetched successfully",
		"data":    stats.ComputeDashboard(logs, rewards),
	})
}

// Global returns platform-wide statistics.
func (h *DashboardHandler) Global(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	logs, err := h.Logs.List(ctx, repository.WasteLogFilter{})
	if err != nil {
		return fail(c, err, "dashboard")
	}
	rewards, err := h.Rewards.ListByUser(ctx, "")
	if err != nil {
		return fail(c, err, "dashboard")
	}
	userCount, err := h.Users.Count(ctx)
	if err != nil {
		return fail(c, err, "dashboard")
	}
	centerCount, err := h.Centers.Count(ctx)
	if err != nil {
		return fail(c, err, "dashboard")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Dashboard data fetched successfully",
		"data":    stats.ComputeGlobal(logs, rewards, userCount, centerCount),
	})
}

// TopRecyclers lists users ranked by total logged weight. Query param
// limit defaults to 5.
func (h *DashboardHandler) TopRecyclers(c echo.Context) error {
	limit := 5
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return fail(c, err, "dashboard")
	}
	logs, err := h.Logs.List(ctx, repository.WasteLogFilter{})
	if err != nil {
		return fail(c, err, "dashboard")
	}
	logsByUser := make(map[string][]model.WasteLog, len(users))
	for _, l := range logs {
		logsByUser[l.UserID] = append(logsByUser[l.UserID], l)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Top recyclers fetched successfully",
		"data":    stats.TopRecyclers(users, logsByUser, limit),
	})
}

// Recent returns the most recent waste logs across the platform.
func (h *DashboardHandler) Recent(c echo.Context) error {
	limit := 5
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	logs, err := h.Logs.Recent(ctx, limit)
	if err != nil {
		return fail(c, err, "dashboard")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Recent waste logs fetched successfully",
		"data":    toWasteLogParts(logs),
	})
}
