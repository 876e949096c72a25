package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/service"
)

// RoomHandler exposes the room registry.  Listing is public; mutations
// are registered behind the ADMIN role gate.
type RoomHandler struct {
	Rooms *service.RoomService
}

func NewRoomHandler(rooms *service.RoomService) *RoomHandler {
	if rooms == nil {
		panic("nil service passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

type roomReq struct {
	Name        string `json:"name"`
	MaxCapacity uint32 `json:"max_capacity"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type roomStatusReq struct {
	IsActive *bool `json:"is_active"`
}

type roomResp struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	MaxCapacity uint32    `json:"max_capacity"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRoomResp(r *model.Room) roomResp {
	return roomResp{
		ID: r.ID, Name: r.Name, MaxCapacity: r.MaxCapacity,
		Description: r.Description, IsActive: r.IsActive, CreatedAt: r.CreatedAt,
	}
}

// Create handles POST /v1/rooms (admin).  New rooms default to active
// unless the body says otherwise.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	room, err := h.Rooms.Create(ctx, req.Name, req.MaxCapacity, req.Description, active)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, toRoomResp(room))
}

// List handles GET /v1/rooms: active rooms only, newest first.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/rooms/:id, returning the room regardless of its
// active flag.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	room, err := h.Rooms.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// Update handles PATCH /v1/rooms/:id (admin), replacing the mutable
// fields.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	room, err := h.Rooms.Update(ctx, id, service.RoomUpdate{
		Name:        req.Name,
		MaxCapacity: req.MaxCapacity,
		Description: req.Description,
		IsActive:    active,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// UpdateStatus handles PATCH /v1/rooms/:id/status (admin): a partial
// update touching only the is_active flag.
func (h *RoomHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomStatusReq
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	room, err := h.Rooms.UpdateStatus(ctx, id, *req.IsActive)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// Delete handles DELETE /v1/rooms/:id (admin).
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
