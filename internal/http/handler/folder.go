package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"cloudstore/internal/audit"
	"cloudstore/internal/auth"
	"cloudstore/internal/domain/folder"
)

type FolderHandler struct {
	folders     FolderService
	auditLogger AuditRecorder
}

func NewFolderHandler(folders FolderService, auditLogger AuditRecorder) *FolderHandler {
	return &FolderHandler{
		folders:     folders,
		auditLogger: auditLogger,
	}
}

type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId,omitempty"`
}

type RenameFolderRequest struct {
	Name string `json:"name"`
}

type MoveFolderRequest struct {
	ParentID *int64 `json:"parentId,omitempty"`
}

type FolderResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	OwnerID   int64  `json:"ownerId"`
	ParentID  *int64 `json:"parentId,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toFolderResponse(f *folder.Folder) FolderResponse {
	return FolderResponse{
		ID:        f.ID,
		Name:      f.Name,
		OwnerID:   f.OwnerID,
		ParentID:  f.ParentID,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
		UpdatedAt: f.UpdatedAt.Format(time.RFC3339),
	}
}

func toFolderResponses(folders []*folder.Folder) []FolderResponse {
	out := make([]FolderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, toFolderResponse(f))
	}
	return out
}

func (h *FolderHandler) Create(c echo.Context) error {
	ownerID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	var req CreateFolderRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	f, err := h.folders.Create(c.Request().Context(), strings.TrimSpace(req.Name), ownerID, req.ParentID)
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeFolder, nil, audit.ActionCreate, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeFolder, &f.ID, audit.ActionCreate, audit.StatusSuccess)
	return c.JSON(http.StatusCreated, toFolderResponse(f))
}

func (h *FolderHandler) GetFolder(c echo.Context) error {
	id, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	f, err := h.folders.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFolderResponse(f))
}

func (h *FolderHandler) ListByOwner(c echo.Context) error {
	ownerID, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	folders, err := h.folders.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFolderResponses(folders))
}

func (h *FolderHandler) ListChildren(c echo.Context) error {
	parentID, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	folders, err := h.folders.ListChildren(c.Request().Context(), parentID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFolderResponses(folders))
}

func (h *FolderHandler) ListRoots(c echo.Context) error {
	ownerID, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	folders, err := h.folders.ListRoots(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFolderResponses(folders))
}

func (h *FolderHandler) Search(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam(queryKeySearch))
	if term == "" {
		return respondError(c, http.StatusBadRequest, msgMissingSearchTerm)
	}

	folders, err := h.folders.Search(c.Request().Context(), term)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFolderResponses(folders))
}

func (h *FolderHandler) Rename(c echo.Context) error {
	id, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req RenameFolderRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	f, err := h.folders.Rename(c.Request().Context(), id, strings.TrimSpace(req.Name))
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeFolder, &id, audit.ActionUpdate, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeFolder, &id, audit.ActionUpdate, audit.StatusSuccess)
	return c.JSON(http.StatusOK, toFolderResponse(f))
}

func (h *FolderHandler) Move(c echo.Context) error {
	id, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req MoveFolderRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	f, err := h.folders.Move(c.Request().Context(), id, req.ParentID)
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeFolder, &id, audit.ActionUpdate, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeFolder, &id, audit.ActionUpdate, audit.StatusSuccess)
	return c.JSON(http.StatusOK, toFolderResponse(f))
}

func (h *FolderHandler) DeleteFolder(c echo.Context) error {
	id, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	if err := h.folders.Delete(c.Request().Context(), id); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeFolder, &id, audit.ActionDelete, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeFolder, &id, audit.ActionDelete, audit.StatusSuccess)
	return respondMessage(c, http.StatusOK, msgFolderDeleted)
}
