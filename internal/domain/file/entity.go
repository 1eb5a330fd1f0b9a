package file

import (
	"time"

	"gorm.io/gorm"
)

// File is an uploaded document owned by exactly one user. StoragePath
// is a write-once pointer into the blob store. DeletedAt doubles as the
// two-phase delete marker: a soft-deleted row whose blob still exists
// is picked up by the reconcile job.
type File struct {
	ID          string         `gorm:"column:id;primaryKey" json:"id"`
	OwnerID     string         `gorm:"column:owner_id;index;not null" json:"owner_id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Size        int64          `gorm:"column:size" json:"size"`
	MimeType    string         `gorm:"column:mime_type" json:"mime_type"`
	StoragePath string         `gorm:"column:storage_path;not null" json:"-"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (File) TableName() string { return "files" }
