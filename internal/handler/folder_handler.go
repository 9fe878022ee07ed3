package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"scireda/backend/internal/model"
	"scireda/backend/internal/service"
)

type FolderHandler struct {
	service service.FolderService
}

type createFolderRequest struct {
	Name      string  `json:"name"`
	NetworkID string  `json:"networkId"`
	ParentID  *string `json:"parentId"`
}

// updateFolderRequest: a null parentId moves the folder to the top level,
// an absent one leaves it where it is.
type updateFolderRequest struct {
	Name      *string    `json:"name"`
	NetworkID *string    `json:"networkId"`
	ParentID  optionalID `json:"parentId" swaggertype:"string"`
}

type folderResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	NetworkID string  `json:"networkId"`
	ParentID  *string `json:"parentId"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type networkSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type folderWithContentResponse struct {
	folderResponse
	Network    networkSummaryResponse `json:"network"`
	Notes      []noteResponse         `json:"notes"`
	SubFolders []folderResponse       `json:"subFolders"`
}

func NewFolderHandler(service service.FolderService) *FolderHandler {
	return &FolderHandler{service: service}
}

func (h *FolderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/folders/top-level", h.ListTopLevel)
	g.GET("/folders/:id", h.Get)
	g.POST("/folders", h.Create)
	g.PUT("/folders/:id", h.Update)
	g.DELETE("/folders/:id", h.Delete)
}

// ListTopLevel returns the top-level folders of a network with one level of content.
// @Summary List top-level folders
// @Description Get the folders without a parent in a network, each with its direct notes and subfolders
// @Tags folders
// @Produce json
// @Security BearerAuth
// @Param networkId query string true "Network ID"
// @Success 200 {array} folderWithContentResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /folders/top-level [get]
func (h *FolderHandler) ListTopLevel(c echo.Context) error {
	networkID, err := parseIDQuery(c, "networkId")
	if err != nil {
		return badRequest(c, "networkId", "invalid network ID")
	}
	contents, err := h.service.ListTopLevel(c.Request().Context(), UserID(c), networkID)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]folderWithContentResponse, 0, len(contents))
	for _, content := range contents {
		response = append(response, toFolderWithContentResponse(content))
	}
	return c.JSON(http.StatusOK, response)
}

// Get returns a folder with its direct notes and subfolders.
// @Summary Get folder content
// @Tags folders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Success 200 {object} folderWithContentResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /folders/{id} [get]
func (h *FolderHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "id", "invalid folder ID")
	}
	content, err := h.service.GetContent(c.Request().Context(), UserID(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFolderWithContentResponse(content))
}

// Create creates a new folder.
// @Summary Create a folder
// @Description Create a folder in a network, optionally inside a parent folder of the same network
// @Tags folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param folder body createFolderRequest true "Folder creation request"
// @Success 201 {object} folderResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /folders [post]
func (h *FolderHandler) Create(c echo.Context) error {
	var req createFolderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "", "invalid request body")
	}
	networkID, err := parseID(req.NetworkID)
	if err != nil {
		return badRequest(c, "networkId", "invalid network ID")
	}
	parentID, err := parseIDPtr(req.ParentID)
	if err != nil {
		return badRequest(c, "parentId", "invalid parent ID")
	}
	folder, err := h.service.Create(c.Request().Context(), UserID(c), service.FolderInput{
		Name:      req.Name,
		NetworkID: networkID,
		ParentID:  parentID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toFolderResponse(folder))
}

// Update renames or moves a folder.
// @Summary Update a folder
// @Description Update the name, network or parent of a folder. A null parentId moves it to the top level.
// @Tags folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Param folder body updateFolderRequest true "Folder update request"
// @Success 200 {object} folderResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /folders/{id} [put]
func (h *FolderHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "id", "invalid folder ID")
	}
	var req updateFolderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "", "invalid request body")
	}

	patch := service.FolderPatch{Name: req.Name}
	if req.NetworkID != nil {
		if patch.NetworkID, err = parseIDPtr(req.NetworkID); err != nil {
			return badRequest(c, "networkId", "invalid network ID")
		}
	}
	if req.ParentID.Set {
		if req.ParentID.Value == nil {
			patch.ClearParent = true
		} else if patch.ParentID, err = parseIDPtr(req.ParentID.Value); err != nil {
			return badRequest(c, "parentId", "invalid parent ID")
		}
	}

	folder, err := h.service.Update(c.Request().Context(), UserID(c), id, patch)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFolderResponse(folder))
}

// Delete deletes a folder.
// @Summary Delete a folder
// @Description Delete a folder. Folders with subfolders are never deleted; folders with notes need force=true, which deletes the notes too.
// @Tags folders
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Param force query bool false "Also delete the folder's notes"
// @Success 204 "No Content"
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /folders/{id} [delete]
func (h *FolderHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "id", "invalid folder ID")
	}
	force, err := parseBoolQuery(c, "force")
	if err != nil {
		return badRequest(c, "force", "force must be true or false")
	}
	if err := h.service.Delete(c.Request().Context(), UserID(c), id, force); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toFolderResponse(folder model.Folder) folderResponse {
	return folderResponse{
		ID:        idToString(folder.ID),
		Name:      folder.Name,
		NetworkID: idToString(folder.NetworkID),
		ParentID:  idPtrToString(folder.ParentID),
		CreatedAt: formatTime(folder.CreatedAt),
		UpdatedAt: formatTime(folder.UpdatedAt),
	}
}

func toFolderWithContentResponse(content model.FolderContent) folderWithContentResponse {
	notes := make([]noteResponse, 0, len(content.Notes))
	for _, note := range content.Notes {
		notes = append(notes, toNoteResponse(note))
	}
	subFolders := make([]folderResponse, 0, len(content.SubFolders))
	for _, folder := range content.SubFolders {
		subFolders = append(subFolders, toFolderResponse(folder))
	}
	return folderWithContentResponse{
		folderResponse: toFolderResponse(content.Folder),
		Network: networkSummaryResponse{
			ID:   idToString(content.Network.ID),
			Name: content.Network.Name,
		},
		Notes:      notes,
		SubFolders: subFolders,
	}
}
