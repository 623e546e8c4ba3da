package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/regen-eco/regen-server/internal/ai"
)

// AIHandler exposes the waste-guide chat endpoint.
type AIHandler struct {
	Assistant *ai.Assistant
}

func NewAIHandler(a *ai.Assistant) *AIHandler {
	return &AIHandler{Assistant: a}
}

type aiGuideReq struct {
	Message string `json:"message" validate:"required"`
}

// Guide answers a recycling question. The assistant degrades to canned
// keyword responses on upstream failure, so this endpoint never returns an
// upstream error to the client.
func (h *AIHandler) Guide(c echo.Context) error {
	var req aiGuideReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"response": h.Assistant.Reply(c.Request().Context(), req.Message),
	})
}
