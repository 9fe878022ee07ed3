package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"scireda/backend/internal/model"
	"scireda/backend/internal/service"
)

type NoteHandler struct {
	service service.NoteService
}

type createNoteRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	NetworkID string  `json:"networkId"`
	ParentID  *string `json:"parentId"`
}

type updateNoteRequest struct {
	Title     *string    `json:"title"`
	Content   *string    `json:"content"`
	NetworkID *string    `json:"networkId"`
	ParentID  optionalID `json:"parentId" swaggertype:"string"`
}

type noteResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	NetworkID string  `json:"networkId"`
	ParentID  *string `json:"parentId"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func NewNoteHandler(service service.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func (h *NoteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/notes/top-level", h.ListTopLevel)
	g.GET("/notes", h.ListByFolder)
	g.GET("/notes/:id", h.Get)
	g.POST("/notes", h.Create)
	g.PUT("/notes/:id", h.Update)
	g.DELETE("/notes/:id", h.Delete)
}

// ListTopLevel returns the notes of a network that are not inside a folder.
// @Summary List top-level notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param networkId query string true "Network ID"
// @Success 200 {array} noteResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /notes/top-level [get]
func (h *NoteHandler) ListTopLevel(c echo.Context) error {
	networkID, err := parseIDQuery(c, "networkId")
	if err != nil {
		return badRequest(c, "networkId", "invalid network ID")
	}
	notes, err := h.service.ListTopLevel(c.Request().Context(), UserID(c), networkID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponses(notes))
}

// ListByFolder returns the direct notes of a folder.
// @Summary List notes in a folder
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param folderId query string true "Folder ID"
// @Success 200 {array} noteResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /notes [get]
func (h *NoteHandler) ListByFolder(c echo.Context) error {
	folderID, err := parseIDQuery(c, "folderId")
	if err != nil {
		return badRequest(c, "folderId", "invalid folder ID")
	}
	notes, err := h.service.ListByFolder(c.Request().Context(), UserID(c), folderID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponses(notes))
}

// Get returns a single note.
// @Summary Get a note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} noteResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "id", "invalid note ID")
	}
	note, err := h.service.Get(c.Request().Context(), UserID(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Create creates a note.
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param note body createNoteRequest true "Note creation request"
// @Success 201 {object} noteResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req createNoteRequest
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
	note, err := h.service.Create(c.Request().Context(), UserID(c), service.NoteInput{
		Title:     req.Title,
		Content:   req.Content,
		NetworkID: networkID,
		ParentID:  parentID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// Update edits or moves a note.
// @Summary Update a note
// @Description Update any of title, content, network or parent. A null parentId moves the note to the top level.
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param note body updateNoteRequest true "Note update request"
// @Success 200 {object} noteResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "id", "invalid note ID")
	}
	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "", "invalid request body")
	}

	patch := service.NotePatch{Title: req.Title, Content: req.Content}
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

	note, err := h.service.Update(c.Request().Context(), UserID(c), id, patch)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete deletes a note.
// @Summary Delete a note
// @Tags notes
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 204 "No Content"
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "id", "invalid note ID")
	}
	if err := h.service.Delete(c.Request().Context(), UserID(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toNoteResponse(note model.Note) noteResponse {
	return noteResponse{
		ID:        idToString(note.ID),
		Title:     note.Title,
		Content:   note.Content,
		NetworkID: idToString(note.NetworkID),
		ParentID:  idPtrToString(note.ParentID),
		CreatedAt: formatTime(note.CreatedAt),
		UpdatedAt: formatTime(note.UpdatedAt),
	}
}

func toNoteResponses(notes []model.Note) []noteResponse {
	response := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, toNoteResponse(note))
	}
	return response
}
