package service

import (
	"context"

	"github.com/XiaoChennnng/Deadliner-Client/internal/webdav"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_mock.go -package=mock

// Remote is the sync endpoint surface the facade depends on, implemented by
// [webdav.Client].
type Remote interface {
	TestConnection(ctx context.Context) webdav.TestResult
	UploadBackup(ctx context.Context, backup models.Backup) (webdav.UploadResult, error)
	UploadSnapshot(ctx context.Context, snapshot models.Snapshot) (webdav.UploadResult, error)
	DownloadBackup(ctx context.Context) (*models.Backup, error)
	DownloadSnapshot(ctx context.Context) (*models.Snapshot, error)
}

// RemoteFactory builds a Remote from the stored WebDAV credentials. Kept as
// a factory because credentials can change between sync operations.
type RemoteFactory func(cfg webdav.Config) (Remote, error)
