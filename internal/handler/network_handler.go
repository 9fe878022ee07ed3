package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"scireda/backend/internal/model"
	"scireda/backend/internal/service"
)

type NetworkHandler struct {
	service service.NetworkService
}

type networkRequest struct {
	Name string `json:"name"`
}

type networkResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewNetworkHandler(service service.NetworkService) *NetworkHandler {
	return &NetworkHandler{service: service}
}

func (h *NetworkHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/networks", h.List)
	g.POST("/networks", h.Create)
	g.GET("/networks/:id", h.Get)
	g.PUT("/networks/:id", h.Update)
	g.DELETE("/networks/:id", h.Delete)
}

// List returns the networks owned by the current user.
// @Summary List networks
// @Tags networks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} networkResponse
// @Router /networks [get]
func (h *NetworkHandler) List(c echo.Context) error {
	networks, err := h.service.List(c.Request().Context(), UserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]networkResponse, 0, len(networks))
	for _, network := range networks {
		response = append(response, toNetworkResponse(network))
	}
	return c.JSON(http.StatusOK, response)
}

// Create creates a network owned by the current user.
// @Summary Create a network
// @Tags networks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param network body networkRequest true "Network creation request"
// @Success 201 {object} networkResponse
// @Failure 400 {object} errorResponse
// @Router /networks [post]
func (h *NetworkHandler) Create(c echo.Context) error {
	var req networkRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "", "invalid request body")
	}
	network, err := h.service.Create(c.Request().Context(), UserID(c), req.Name)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toNetworkResponse(network))
}

// Get returns a network.
// @Summary Get a network
// @Tags networks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Network ID"
// @Success 200 {object} networkResponse
// @Failure 404 {object} errorResponse
// @Router /networks/{id} [get]
func (h *NetworkHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "id", "invalid network ID")
	}
	network, err := h.service.Get(c.Request().Context(), UserID(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toNetworkResponse(network))
}

// Update renames a network.
// @Summary Rename a network
// @Tags networks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Network ID"
// @Param network body networkRequest true "Network update request"
// @Success 200 {object} networkResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /networks/{id} [put]
func (h *NetworkHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "id", "invalid network ID")
	}
	var req networkRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "", "invalid request body")
	}
	network, err := h.service.Rename(c.Request().Context(), UserID(c), id, req.Name)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toNetworkResponse(network))
}

// Delete deletes a network with all of its folders and notes.
// @Summary Delete a network
// @Tags networks
// @Security BearerAuth
// @Param id path string true "Network ID"
// @Success 204 "No Content"
// @Failure 404 {object} errorResponse
// @Router /networks/{id} [delete]
func (h *NetworkHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "id", "invalid network ID")
	}
	if err := h.service.Delete(c.Request().Context(), UserID(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toNetworkResponse(network model.Network) networkResponse {
	return networkResponse{
		ID:        idToString(network.ID),
		Name:      network.Name,
		OwnerID:   network.OwnerID,
		CreatedAt: formatTime(network.CreatedAt),
		UpdatedAt: formatTime(network.UpdatedAt),
	}
}
