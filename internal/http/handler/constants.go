package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	paramID         = "id"
	paramFileID     = "fileId"
	paramUserID     = "userId"
	paramPermission = "permission"

	queryKeySearch = "q"
	queryKeyFileID = "fileId"
	queryKeyUserID = "userId"
	queryKeyEmail  = "email"

	formKeyFile     = "file"
	formKeyFolderID = "folderId"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidID               = "invalid id"
	msgMissingFilePart         = "multipart form must contain a file part"
	msgMissingSearchTerm       = "search term is required"
	msgMissingShareQuery       = "fileId and userId query parameters are required"
	msgMissingEmailQuery       = "email query parameter is required"
	msgAccessDenied            = "access denied"
	msgFileDeleted             = "file deleted successfully"
	msgFolderDeleted           = "folder deleted successfully"
	msgShareRevoked            = "share revoked successfully"
)
