package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"cloudstore/internal/audit"
	"cloudstore/internal/auth"
	"cloudstore/internal/domain/file"
	"cloudstore/internal/storage/s3"
	"cloudstore/pkg/apperrors"
	"cloudstore/pkg/validator"
)

const fallbackContentType = "application/octet-stream"

type FileHandler struct {
	files       FileService
	shares      AccessChecker
	storage     BlobStorage
	auditLogger AuditRecorder
}

func NewFileHandler(files FileService, shares AccessChecker, storage BlobStorage, auditLogger AuditRecorder) *FileHandler {
	return &FileHandler{
		files:       files,
		shares:      shares,
		storage:     storage,
		auditLogger: auditLogger,
	}
}

type RenameFileRequest struct {
	Filename string `json:"filename"`
}

type FileResponse struct {
	ID        int64  `json:"id"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType"`
	FolderID  *int64 `json:"folderId,omitempty"`
	OwnerID   int64  `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type DownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
	Filename    string `json:"filename"`
}

type ViewURLResponse struct {
	ViewURL  string `json:"viewUrl"`
	Filename string `json:"filename"`
}

func toFileResponse(f *file.File) FileResponse {
	return FileResponse{
		ID:        f.ID,
		Filename:  f.Filename,
		SizeBytes: f.SizeBytes,
		MimeType:  f.MimeType,
		FolderID:  f.FolderID,
		OwnerID:   f.OwnerID,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
		UpdatedAt: f.UpdatedAt.Format(time.RFC3339),
	}
}

func toFileResponses(files []*file.File) []FileResponse {
	out := make([]FileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, toFileResponse(f))
	}
	return out
}

// Upload stores the blob first and creates the metadata row second. A
// metadata failure after a successful upload leaves an orphaned blob;
// that is accepted and surfaced only in logs.
func (h *FileHandler) Upload(c echo.Context) error {
	ownerID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(formKeyFile)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgMissingFilePart)
	}

	filename := strings.TrimSpace(fh.Filename)
	if err := validator.FileName(filename); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.FileSize(fh.Size); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	var folderID *int64
	if raw := strings.TrimSpace(c.FormValue(formKeyFolderID)); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return respondError(c, http.StatusBadRequest, msgInvalidID)
		}
		folderID = &id
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = fallbackContentType
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	blobKey, err := h.storage.Upload(c.Request().Context(), src, filename, contentType)
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeFile, nil, audit.ActionCreate, err)
		return err
	}

	f, err := h.files.Create(c.Request().Context(), filename, fh.Size, contentType, blobKey, ownerID, folderID)
	if err != nil {
		c.Logger().Errorf("metadata create failed after upload, orphaned blob %s: %v", blobKey, err)
		h.auditLogger.LogError(c, audit.ResourceTypeFile, nil, audit.ActionCreate, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeFile, &f.ID, audit.ActionCreate, audit.StatusSuccess)
	return c.JSON(http.StatusCreated, toFileResponse(f))
}

func (h *FileHandler) GetFile(c echo.Context) error {
	id, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	f, err := h.files.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if err := h.authorize(c, f); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFileResponse(f))
}

func (h *FileHandler) ListByOwner(c echo.Context) error {
	ownerID, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	files, err := h.files.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFileResponses(files))
}

func (h *FileHandler) ListByFolder(c echo.Context) error {
	folderID, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	files, err := h.files.ListByFolder(c.Request().Context(), folderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFileResponses(files))
}

func (h *FileHandler) ListRoot(c echo.Context) error {
	ownerID, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	files, err := h.files.ListRoot(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFileResponses(files))
}

func (h *FileHandler) Rename(c echo.Context) error {
	id, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req RenameFileRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	f, err := h.files.Rename(c.Request().Context(), id, strings.TrimSpace(req.Filename))
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeFile, &id, audit.ActionUpdate, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeFile, &id, audit.ActionUpdate, audit.StatusSuccess)
	return c.JSON(http.StatusOK, toFileResponse(f))
}

// DeleteFile removes the metadata row first. Blob removal afterwards is
// best-effort: a storage failure is logged and the delete still succeeds.
func (h *FileHandler) DeleteFile(c echo.Context) error {
	id, err := pathID(c, paramID)
	if err != nil {
		return handleHTTPError(c, err)
	}

	f, err := h.files.Delete(c.Request().Context(), id)
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeFile, &id, audit.ActionDelete, err)
		return err
	}

	if err := h.storage.Delete(c.Request().Context(), f.BlobKey); err != nil {
		c.Logger().Errorf("blob delete failed for %s: %v", f.BlobKey, err)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeFile, &id, audit.ActionDelete, audit.StatusSuccess)
	return respondMessage(c, http.StatusOK, msgFileDeleted)
}

func (h *FileHandler) GetDownloadURL(c echo.Context) error {
	f, err := h.authorizedFile(c)
	if err != nil {
		return err
	}

	url, err := h.storage.PresignGet(c.Request().Context(), f.BlobKey, s3.DispositionAttachment, f.Filename)
	if err != nil {
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeFile, &f.ID, audit.ActionDownload, audit.StatusSuccess)
	return c.JSON(http.StatusOK, DownloadURLResponse{DownloadURL: url, Filename: f.Filename})
}

func (h *FileHandler) GetViewURL(c echo.Context) error {
	f, err := h.authorizedFile(c)
	if err != nil {
		return err
	}

	url, err := h.storage.PresignGet(c.Request().Context(), f.BlobKey, s3.DispositionInline, f.Filename)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ViewURLResponse{ViewURL: url, Filename: f.Filename})
}

func (h *FileHandler) authorizedFile(c echo.Context) (*file.File, error) {
	id, err := pathID(c, paramID)
	if err != nil {
		return nil, handleHTTPError(c, err)
	}

	f, err := h.files.Get(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}

	if err := h.authorize(c, f); err != nil {
		return nil, err
	}
	return f, nil
}

// authorize grants access to the file's owner and to users holding a share.
func (h *FileHandler) authorize(c echo.Context, f *file.File) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	if f.OwnerID == userID {
		return nil
	}

	ok, err := h.shares.HasAccess(c.Request().Context(), f.ID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Forbidden(msgAccessDenied)
	}
	return nil
}
