package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/regen-eco/regen-server/internal/middleware"
	"github.com/regen-eco/regen-server/internal/model"
	"github.com/regen-eco/regen-server/internal/queue"
	"github.com/regen-eco/regen-server/internal/repository"
	queue_publisher "github.com/regen-eco/regen-server/internal/service"
)

// RewardHandler bundles dependencies for badge-reward endpoints.
type RewardHandler struct {
	Rewards *repository.RewardRepo
}

func NewRewardHandler(r *repository.RewardRepo) *RewardHandler {
	return &RewardHandler{Rewards: r}
}

type grantRewardReq struct {
	UserID    string `json:"user_id"`
	BadgeName string `json:"badge_name" validate:"required"`
	Points    int    `json:"points" validate:"gte=0"`
}

type rewardPart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BadgeName string    `json:"badge_name"`
	Points    int       `json:"points"`
	AwardedAt time.Time `json:"awarded_at"`
}

func toRewardPart(r model.Reward) rewardPart {
	return rewardPart{ID: r.ID, UserID: r.UserID, BadgeName: r.BadgeName, Points: r.Points, AwardedAt: r.AwardedAt}
}

// Grant awards a badge. Without an explicit user_id the badge goes to the
// caller. A reward.granted event is published on success.
func (h *RewardHandler) Grant(c echo.Context) error {
	var req grantRewardReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	userID := req.UserID
	if userID == "" {
		userID = middleware.UserID(c)
	}
	rw := model.Reward{UserID: userID, BadgeName: req.BadgeName, Points: req.Points}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Rewards.Create(ctx, &rw); err != nil {
		return fail(c, err, "reward")
	}

	go func(rw model.Reward) {
		pctx, pcancel := context.WithTimeout(context.Background(), dbTimeout)
		defer pcancel()
		_ = queue_publisher.PublishRewardGranted(pctx, queue.RewardGrantedEvent{
			RewardID:  rw.ID,
			UserID:    rw.UserID,
			BadgeName: rw.BadgeName,
			Points:    rw.Points,
			AwardedAt: rw.AwardedAt.UTC().Format(time.RFC3339),
		})
	}(rw)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Reward granted successfully",
		"data":    toRewardPart(rw),
	})
}

// ListMine returns the caller's rewards.
func (h *RewardHandler) ListMine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rewards, err := h.Rewards.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		return fail(c, err, "rewards")
	}
	parts := make([]rewardPart, 0, len(rewards))
	for _, r := range rewards {
		parts = append(parts, toRewardPart(r))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Rewards fetched successfully",
		"data":    parts,
	})
}

// Delete removes a reward.
func (h *RewardHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Rewards.Delete(ctx, c.Param("id")); err != nil {
		return fail(c, err, "reward")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Reward deleted successfully"})
}
