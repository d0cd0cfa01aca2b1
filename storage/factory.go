package storage

import (
	"path/filepath"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Factory picks the storage backend for a request at a single composition
// point: authenticated users get the remote store (with the device's local
// store underneath for fallback and migration), anonymous devices get a
// local store of their own.
type Factory struct {
	DB      *gorm.DB // nil when the remote backend is unconfigured
	DataDir string
	Log     *zap.Logger
}

// NewFactory builds the adapter factory.
func NewFactory(db *gorm.DB, dataDir string, log *zap.Logger) *Factory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Factory{DB: db, DataDir: dataDir, Log: log}
}

// Adapter returns the backend for a request identity. Either id may be
// empty; with both empty a throwaway local store under the shared dir is
// returned, which only ever serves defaults-and-drop semantics.
func (f *Factory) Adapter(userID, deviceID string) Adapter {
	if userID == "" {
		return f.local(userID, deviceID)
	}
	return f.Remote(userID, deviceID)
}

// Remote always returns the remote store (needed for migration even though
// Adapter would pick it anyway for authenticated users).
func (f *Factory) Remote(userID, deviceID string) *RemoteStore {
	return NewRemoteStore(f.DB, userID, f.local(userID, deviceID), f.Log)
}

func (f *Factory) local(userID, deviceID string) *LocalStore {
	return NewLocalStore(f.localDir(userID, deviceID), f.Log)
}

// localDir keys on-device blobs by device id when one is presented,
// falling back to the user id. Ids are slugified before touching the
// filesystem.
func (f *Factory) localDir(userID, deviceID string) string {
	switch {
	case deviceID != "":
		return filepath.Join(f.DataDir, "devices", slug.Make(deviceID))
	case userID != "":
		return filepath.Join(f.DataDir, "users", slug.Make(userID))
	default:
		return filepath.Join(f.DataDir, "anonymous")
	}
}
