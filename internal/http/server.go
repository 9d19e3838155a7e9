package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"cloudstore/internal/auth"
	"cloudstore/internal/config"
	"cloudstore/internal/http/handler"
	"cloudstore/internal/http/middleware"
)

const (
	jsonKeyStatus = "status"
	statusOK      = "ok"
)

type ServerDependencies struct {
	Config         *config.Config
	UserService    handler.UserService
	FileService    handler.FileService
	FolderService  handler.FolderService
	ShareService   handler.ShareService
	Storage        handler.BlobStorage
	AuthMiddleware *auth.Middleware
	AuditLogger    handler.AuditRecorder
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware first, so all logs have request ID
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(strconv.FormatInt(deps.Config.App.MaxUploadSize, 10)))

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	strictRateLimiter := middleware.NewStrictRateLimiter()

	userHandler := handler.NewUserHandler(deps.UserService, deps.AuditLogger)
	fileHandler := handler.NewFileHandler(deps.FileService, deps.ShareService, deps.Storage, deps.AuditLogger)
	folderHandler := handler.NewFolderHandler(deps.FolderService, deps.AuditLogger)
	shareHandler := handler.NewShareHandler(deps.ShareService, deps.AuditLogger)

	e.GET("/health", healthCheck)

	api := e.Group("/api")

	// Registration and login are the only unauthenticated API routes
	api.POST("/users/register", userHandler.Register, strictRateLimiter.Middleware())
	api.POST("/users/login", userHandler.Login, strictRateLimiter.Middleware())

	authed := api.Group("")
	authed.Use(deps.AuthMiddleware.RequireAuth())

	authed.GET("/users/me", userHandler.Me)
	authed.GET("/users/lookup", userHandler.Lookup)

	authed.POST("/files/upload", fileHandler.Upload)
	authed.GET("/files/owner/:id", fileHandler.ListByOwner)
	authed.GET("/files/folder/:id", fileHandler.ListByFolder)
	authed.GET("/files/root/:id", fileHandler.ListRoot)
	authed.GET("/files/:id", fileHandler.GetFile)
	authed.GET("/files/:id/download", fileHandler.GetDownloadURL)
	authed.GET("/files/:id/view", fileHandler.GetViewURL)
	authed.PUT("/files/:id", fileHandler.Rename)
	authed.DELETE("/files/:id", fileHandler.DeleteFile)

	authed.POST("/folders", folderHandler.Create)
	authed.GET("/folders/owner/:id", folderHandler.ListByOwner)
	authed.GET("/folders/root/:id", folderHandler.ListRoots)
	authed.GET("/folders/search", folderHandler.Search)
	authed.GET("/folders/:id", folderHandler.GetFolder)
	authed.GET("/folders/:id/children", folderHandler.ListChildren)
	authed.PUT("/folders/:id/rename", folderHandler.Rename)
	authed.PUT("/folders/:id/move", folderHandler.Move)
	authed.DELETE("/folders/:id", folderHandler.DeleteFolder)

	authed.POST("/shares", shareHandler.Create)
	authed.GET("/shares/check", shareHandler.CheckAccess)
	authed.GET("/shares/file/:fileId", shareHandler.ListByFile)
	authed.GET("/shares/user/:userId", shareHandler.ListByUser)
	authed.GET("/shares/permission/:permission", shareHandler.ListByPermission)
	authed.GET("/shares/:id", shareHandler.GetShare)
	authed.PUT("/shares/:id/permission", shareHandler.UpdatePermission)
	authed.DELETE("/shares/:id", shareHandler.Revoke)

	return &Server{
		echo: e,
		deps: deps,
	}
}

// Start blocks until the underlying listener stops. A listener closed
// by Shutdown is a clean exit, not an error.
func (s *Server) Start(address string) error {
	if err := s.echo.Start(address); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
