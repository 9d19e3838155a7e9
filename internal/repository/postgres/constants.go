package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	constraintFilesOwnerFilename = "files_owner_filename_key"

	errUserNotFound   = "user not found"
	errFolderNotFound = "folder not found"
	errFileNotFound   = "file not found"
	errShareNotFound  = "share not found"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"
	errFailedOpenMigrationConnFmt    = "failed to open migration connection: %w"
	errFailedSetMigrationDialectFmt  = "failed to set migration dialect: %w"
	errFailedApplyMigrationsFmt      = "failed to apply migrations: %w"

	errFailedCreateUserFmt      = "failed to create user: %w"
	errFailedGetUserFmt         = "failed to get user: %w"
	errFailedCheckUserEmailFmt  = "failed to check user email: %w"
	errFailedCreateFolderFmt    = "failed to create folder: %w"
	errFailedGetFolderFmt       = "failed to get folder: %w"
	errFailedListFoldersFmt     = "failed to list folders: %w"
	errFailedScanFolderFmt      = "failed to scan folder: %w"
	errFailedCheckFolderNameFmt = "failed to check folder name: %w"
	errFailedCountChildrenFmt   = "failed to count child folders: %w"
	errFailedRenameFolderFmt    = "failed to rename folder: %w"
	errFailedMoveFolderFmt      = "failed to move folder: %w"
	errFailedDeleteFolderFmt    = "failed to delete folder: %w"
	errFailedCreateFileFmt      = "failed to create file: %w"
	errFailedGetFileFmt         = "failed to get file: %w"
	errFailedListFilesFmt       = "failed to list files: %w"
	errFailedScanFileFmt        = "failed to scan file: %w"
	errFailedCheckFilenameFmt   = "failed to check filename: %w"
	errFailedRenameFileFmt      = "failed to rename file: %w"
	errFailedDeleteFileFmt      = "failed to delete file: %w"
	errFailedCreateShareFmt     = "failed to create share: %w"
	errFailedGetShareFmt        = "failed to get share: %w"
	errFailedListSharesFmt      = "failed to list shares: %w"
	errFailedScanShareFmt       = "failed to scan share: %w"
	errFailedCheckShareFmt      = "failed to check share existence: %w"
	errFailedUpdateShareFmt     = "failed to update share permission: %w"
	errFailedDeleteShareFmt     = "failed to delete share: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedOpenMigrationConn    = func(err error) error { return fmt.Errorf(errFailedOpenMigrationConnFmt, err) }
	errFailedSetMigrationDialect  = func(err error) error { return fmt.Errorf(errFailedSetMigrationDialectFmt, err) }
	errFailedApplyMigrations      = func(err error) error { return fmt.Errorf(errFailedApplyMigrationsFmt, err) }
	errFailedCreateUser           = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedGetUser              = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }
	errFailedCheckUserEmail       = func(err error) error { return fmt.Errorf(errFailedCheckUserEmailFmt, err) }
	errFailedCreateFolder         = func(err error) error { return fmt.Errorf(errFailedCreateFolderFmt, err) }
	errFailedGetFolder            = func(err error) error { return fmt.Errorf(errFailedGetFolderFmt, err) }
	errFailedListFolders          = func(err error) error { return fmt.Errorf(errFailedListFoldersFmt, err) }
	errFailedScanFolder           = func(err error) error { return fmt.Errorf(errFailedScanFolderFmt, err) }
	errFailedCheckFolderName      = func(err error) error { return fmt.Errorf(errFailedCheckFolderNameFmt, err) }
	errFailedCountChildren        = func(err error) error { return fmt.Errorf(errFailedCountChildrenFmt, err) }
	errFailedRenameFolder         = func(err error) error { return fmt.Errorf(errFailedRenameFolderFmt, err) }
	errFailedMoveFolder           = func(err error) error { return fmt.Errorf(errFailedMoveFolderFmt, err) }
	errFailedDeleteFolder         = func(err error) error { return fmt.Errorf(errFailedDeleteFolderFmt, err) }
	errFailedCreateFile           = func(err error) error { return fmt.Errorf(errFailedCreateFileFmt, err) }
	errFailedGetFile              = func(err error) error { return fmt.Errorf(errFailedGetFileFmt, err) }
	errFailedListFiles            = func(err error) error { return fmt.Errorf(errFailedListFilesFmt, err) }
	errFailedScanFile             = func(err error) error { return fmt.Errorf(errFailedScanFileFmt, err) }
	errFailedCheckFilename        = func(err error) error { return fmt.Errorf(errFailedCheckFilenameFmt, err) }
	errFailedRenameFile           = func(err error) error { return fmt.Errorf(errFailedRenameFileFmt, err) }
	errFailedDeleteFile           = func(err error) error { return fmt.Errorf(errFailedDeleteFileFmt, err) }
	errFailedCreateShare          = func(err error) error { return fmt.Errorf(errFailedCreateShareFmt, err) }
	errFailedGetShare             = func(err error) error { return fmt.Errorf(errFailedGetShareFmt, err) }
	errFailedListShares           = func(err error) error { return fmt.Errorf(errFailedListSharesFmt, err) }
	errFailedScanShare            = func(err error) error { return fmt.Errorf(errFailedScanShareFmt, err) }
	errFailedCheckShare           = func(err error) error { return fmt.Errorf(errFailedCheckShareFmt, err) }
	errFailedUpdateShare          = func(err error) error { return fmt.Errorf(errFailedUpdateShareFmt, err) }
	errFailedDeleteShare          = func(err error) error { return fmt.Errorf(errFailedDeleteShareFmt, err) }
)
