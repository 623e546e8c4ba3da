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

// WasteHandler bundles dependencies for waste-log endpoints.
type WasteHandler struct {
	Logs *repository.WasteLogRepo
}

func NewWasteHandler(l *repository.WasteLogRepo) *WasteHandler {
	return &WasteHandler{Logs: l}
}

// ----- DTOs -----

type createWasteReq struct {
	WasteType          string     `json:"waste_type" validate:"required"`
	Weight             *float64   `json:"weight" validate:"required,gt=0"`
	CO2Saved           *float64   `json:"co2_saved"`
	DisposalMethod     *string    `json:"disposal_method"`
	CollectionLocation *string    `json:"collection_location"`
	CollectionStatus   *string    `json:"collection_status"`
	CollectionDate     *time.Time `json:"collection_date"`
	ImageURL           *string    `json:"image_url"`
}

type updateWasteReq struct {
	WasteType          *string    `json:"waste_type"`
	Weight             *float64   `json:"weight"`
	CO2Saved           *float64   `json:"co2_saved"`
	DisposalMethod     *string    `json:"disposal_method"`
	CollectionLocation *string    `json:"collection_location"`
	CollectionStatus   *string    `json:"collection_status"`
	CollectionDate     *time.Time `json:"collection_date"`
	ImageURL           *string    `json:"image_url"`
}

type updateStatusReq struct {
	CollectionStatus string `json:"collection_status" validate:"required"`
}

type wasteLogPart struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	WasteType          string     `json:"waste_type"`
	Weight             float64    `json:"weight"`
	CO2Saved           *float64   `json:"co2_saved"`
	DisposalMethod     *string    `json:"disposal_method"`
	CollectionLocation *string    `json:"collection_location"`
	CollectionStatus   *string    `json:"collection_status"`
	CollectionDate     *time.Time `json:"collection_date"`
	ImageURL           *string    `json:"image_url"`
	Date               time.Time  `json:"date"`
}

func toWasteLogPart(w model.WasteLog) wasteLogPart {
	return wasteLogPart{
		ID: w.ID, UserID: w.UserID, WasteType: w.WasteType, Weight: w.Weight,
		CO2Saved: w.CO2Saved, DisposalMethod: w.DisposalMethod,
		CollectionLocation: w.CollectionLocation, CollectionStatus: w.CollectionStatus,
		CollectionDate: w.CollectionDate, ImageURL: w.ImageURL, Date: w.CreatedAt,
	}
}

func toWasteLogParts(logs []model.WasteLog) []wasteLogPart {
	out := make([]wasteLogPart, 0, len(logs))
	for _, w := range logs {
		out = append(out, toWasteLogPart(w))
	}
	return out
}

// Create validates and persists a new waste log owned by the caller, then
// publishes a waste.logged event. Broker failures never affect the
// response.
func (h *WasteHandler) Create(c echo.Context) error {
	var req createWasteReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	w := model.WasteLog{
		UserID:             middleware.UserID(c),
		WasteType:          req.WasteType,
		CO2Saved:           req.CO2Saved,
		DisposalMethod:     req.DisposalMethod,
		CollectionLocation: req.CollectionLocation,
		CollectionStatus:   req.CollectionStatus,
		CollectionDate:     req.CollectionDate,
		ImageURL:           req.ImageURL,
	}
	if req.Weight != nil {
		w.Weight = *req.Weight
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Logs.Create(ctx, &w); err != nil {
		return fail(c, err, "waste log")
	}

	go func(w model.WasteLog) {
		pctx, pcancel := context.WithTimeout(context.Background(), dbTimeout)
		defer pcancel()
		_ = queue_publisher.PublishWasteLogged(pctx, queue.WasteLoggedEvent{
			LogID:     w.ID,
			UserID:    w.UserID,
			WasteType: w.WasteType,
			Weight:    w.Weight,
			CO2Saved:  w.CO2Saved,
			LoggedAt:  w.CreatedAt.UTC().Format(time.RFC3339),
		})
	}(w)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Waste log created successfully",
		"data":    toWasteLogPart(w),
	})
}

// ListMine returns the caller's waste logs, optionally filtered by
// waste_type and collection status (combined with AND).
func (h *WasteHandler) ListMine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	logs, err := h.Logs.List(ctx, repository.WasteLogFilter{
		UserID:    middleware.UserID(c),
		WasteType: c.QueryParam("waste_type"),
		Status:    c.QueryParam("status"),
	})
	if err != nil {
		return fail(c, err, "waste logs")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Waste logs fetched successfully",
		"data":    toWasteLogParts(logs),
	})
}

// ListAll returns every waste log on the platform.
func (h *WasteHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	logs, err := h.Logs.List(ctx, repository.WasteLogFilter{
		WasteType: c.QueryParam("waste_type"),
		Status:    c.QueryParam("status"),
	})
	if err != nil {
		return fail(c, err, "waste logs")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "All waste logs fetched successfully",
		"data":    toWasteLogParts(logs),
	})
}

// Update applies a partial update; only fields present in the payload
// change.
func (h *WasteHandler) Update(c echo.Context) error {
	var req updateWasteReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	w, err := h.Logs.Update(ctx, c.Param("id"), repository.WasteLogPatch{
		WasteType:          req.WasteType,
		Weight:             req.Weight,
		CO2Saved:           req.CO2Saved,
		DisposalMethod:     req.DisposalMethod,
		CollectionLocation: req.CollectionLocation,
		CollectionStatus:   req.CollectionStatus,
		CollectionDate:     req.CollectionDate,
		ImageURL:           req.ImageURL,
	})
	if err != nil {
		return fail(c, err, "waste log")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Waste log updated successfully",
		"data":    toWasteLogPart(w),
	})
}

// UpdateStatus moves a log through the collection lifecycle
// (pending/scheduled/collected).
func (h *WasteHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	w, err := h.Logs.Update(ctx, c.Param("id"), repository.WasteLogPatch{
		CollectionStatus: &req.CollectionStatus,
	})
	if err != nil {
		return fail(c, err, "waste log")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Waste log status updated successfully",
		"data": echo.Map{
			"id":                w.ID,
			"collection_status": w.CollectionStatus,
		},
	})
}

// Delete hard-deletes a waste log.
func (h *WasteHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Logs.Delete(ctx, c.Param("id")); err != nil {
		return fail(c, err, "waste log")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Waste log deleted successfully"})
}
