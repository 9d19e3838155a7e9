package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"cloudstore/internal/audit"
	"cloudstore/internal/domain/share"
)

type ShareHandler struct {
	shares      ShareService
	auditLogger AuditRecorder
}

func NewShareHandler(shares ShareService, auditLogger AuditRecorder) *ShareHandler {
	return &ShareHandler{
		shares:      shares,
		auditLogger: auditLogger,
	}
}

type CreateShareRequest struct {
	FileID     int64  `json:"fileId"`
	UserID     int64  `json:"userId"`
	Permission string `json:"permission"`
}

type UpdatePermissionRequest struct {
	Permission string `json:"permission"`
}

type ShareResponse struct {
	ID           int64  `json:"id"`
	FileID       int64  `json:"fileId"`
	SharedWithID int64  `json:"sharedWithId"`
	Permission   string `json:"permission"`
	CreatedAt    string `json:"createdAt"`
}

type AccessCheckResponse struct {
	HasAccess bool `json:"hasAccess"`
}

func toShareResponse(s *share.Share) ShareResponse {
	return ShareResponse{
		ID:           s.ID,
		FileID:       s.FileID,
		SharedWithID: s.SharedWithID,
		Permission:   s.Permission,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
}

func toShareResponses(shares []*share.Share) []ShareResponse {
	out := make([]ShareResponse, 0, len(shares))
	for _, s := range shares {
		out = append(out, toShareResponse(s))
	}
	return out
}

func (h *ShareHandler) Create(c echo.Context) error {
	var req CreateShareRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	s, err := h.shares.Share(c.Request().Context(), req.FileID, req.UserID, strings.TrimSpace(req.Permission))
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeShare, nil, audit.ActionShare, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeShare, &s.ID, audit.ActionShare, audit.StatusSuccess)
	return c.JSON(http.StatusCreated, toShareResponse(s))
}

func (h *ShareHandler) GetShare(c echo.Context) error {
	id, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	s, err := h.shares.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShareResponse(s))
}

func (h *ShareHandler) ListByFile(c echo.Context) error {
	fileID, err := pathID(c, paramFileID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	shares, err := h.shares.ListByFile(c.Request().Context(), fileID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShareResponses(shares))
}

func (h *ShareHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, paramUserID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	shares, err := h.shares.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShareResponses(shares))
}

func (h *ShareHandler) ListByPermission(c echo.Context) error {
	permission := strings.TrimSpace(c.Param(paramPermission))

	shares, err := h.shares.ListByPermission(c.Request().Context(), permission)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShareResponses(shares))
}

func (h *ShareHandler) CheckAccess(c echo.Context) error {
	if c.QueryParam(queryKeyFileID) == "" || c.QueryParam(queryKeyUserID) == "" {
		return respondError(c, http.StatusBadRequest, msgMissingShareQuery)
	}

	fileID, err := queryID(c, queryKeyFileID)
	if err != nil {
		return handleHTTPError(c, err)
	}
	userID, err := queryID(c, queryKeyUserID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	ok, err := h.shares.HasAccess(c.Request().Context(), fileID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AccessCheckResponse{HasAccess: ok})
}

func (h *ShareHandler) UpdatePermission(c echo.Context) error {
	id, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req UpdatePermissionRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	s, err := h.shares.UpdatePermission(c.Request().Context(), id, strings.TrimSpace(req.Permission))
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeShare, &id, audit.ActionUpdate, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeShare, &id, audit.ActionUpdate, audit.StatusSuccess)
	return c.JSON(http.StatusOK, toShareResponse(s))
}

func (h *ShareHandler) Revoke(c echo.Context) error {
	id, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	if err := h.shares.Revoke(c.Request().Context(), id); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeShare, &id, audit.ActionRevoke, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeShare, &id, audit.ActionRevoke, audit.StatusSuccess)
	return respondMessage(c, http.StatusOK, msgShareRevoked)
}
