package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/regen-eco/regen-server/internal/model"
	"github.com/regen-eco/regen-server/internal/repository"
)

// CenterHandler bundles dependencies for recycling-center directory
// endpoints.
type CenterHandler struct {
	Centers *repository.CenterRepo
}

func NewCenterHandler(r *repository.CenterRepo) *CenterHandler {
	return &CenterHandler{Centers: r}
}

// ----- DTOs -----

type createCenterReq struct {
	Name           string   `json:"name" validate:"required"`
	Location       string   `json:"location" validate:"required"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	FacilityType   string   `json:"facility_type"`
	Contact        *string  `json:"contact"`
	OperatingHours string   `json:"operating_hours"`
	AcceptedTypes  []string `json:"accepted_types"`
	IsActive       *bool    `json:"is_active"`
}

type updateCenterReq struct {
	Name           *string  `json:"name"`
	Location       *string  `json:"location"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	FacilityType   *string  `json:"facility_type"`
	Contact        *string  `json:"contact"`
	OperatingHours *string  `json:"operating_hours"`
	AcceptedTypes  []string `json:"accepted_types"`
	IsActive       *bool    `json:"is_active"`
}

type centerPart struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	FacilityType   string   `json:"facility_type"`
	Contact        *string  `json:"contact"`
	OperatingHours string   `json:"operating_hours"`
	AcceptedTypes  []string `json:"accepted_types"`
	IsActive       bool     `json:"is_active"`
}

func toCenterPart(c model.RecyclingCenter) centerPart {
	types := c.AcceptedTypes
	if types == nil {
		types = []string{}
	}
	return centerPart{
		ID: c.ID, Name: c.Name, Location: c.Location,
		Latitude: c.Latitude, Longitude: c.Longitude,
		FacilityType: c.FacilityType, Contact: c.Contact,
		OperatingHours: c.OperatingHours, AcceptedTypes: types, IsActive: c.IsActive,
	}
}

// Create adds a directory entry. Facility type and operating hours fall
// back to the documented defaults when omitted.
func (h *CenterHandler) Create(c echo.Context) error {
	var req createCenterReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	center := model.RecyclingCenter{
		Name:           req.Name,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		FacilityType:   req.FacilityType,
		Contact:        req.Contact,
		OperatingHours: req.OperatingHours,
		AcceptedTypes:  req.AcceptedTypes,
		IsActive:       true,
	}
	if req.IsActive != nil {
		center.IsActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Centers.Create(ctx, &center); err != nil {
		return fail(c, err, "recycling center")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Recycling center created successfully",
		"data":    toCenterPart(center),
	})
}

// List returns directory entries. Query filters: type (facility type),
// accepts (a waste category), active (true/false). Filters combine with
// AND.
func (h *CenterHandler) List(c echo.Context) error {
	filter := repository.CenterFilter{
		FacilityType: c.QueryParam("type"),
		Accepts:      c.QueryParam("accepts"),
	}
	if v := c.QueryParam("active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Active = &b
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	centers, err := h.Centers.List(ctx, filter)
	if err != nil {
		return fail(c, err, "recycling centers")
	}
	parts := make([]centerPart, 0, len(centers))
	for _, ctr := range centers {
		parts = append(parts, toCenterPart(ctr))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Recycling centers fetched successfully",
		"data":    parts,
	})
}

// Get returns one directory entry.
func (h *CenterHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	center, err := h.Centers.GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err, "recycling center")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toCenterPart(center)})
}

// Update applies a partial update to a directory entry.
func (h *CenterHandler) Update(c echo.Context) error {
	var req updateCenterReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	center, err := h.Centers.Update(ctx, c.Param("id"), repository.CenterPatch{
		Name:           req.Name,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		FacilityType:   req.FacilityType,
		Contact:        req.Contact,
		OperatingHours: req.OperatingHours,
		AcceptedTypes:  req.AcceptedTypes,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return fail(c, err, "recycling center")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Recycling center updated successfully",
		"data":    toCenterPart(center),
	})
}

// Delete removes a directory entry.
func (h *CenterHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Centers.Delete(ctx, c.Param("id")); err != nil {
		return fail(c, err, "recycling center")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Recycling center deleted successfully"})
}
