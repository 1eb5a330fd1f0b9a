package device

import "time"

// DeviceBinding pins a share link to the first device that redeemed
// it. One binding per share for its whole lifetime; only
// last_accessed_at ever changes after creation.
type DeviceBinding struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	FileAccessID   string    `gorm:"column:file_access_id;uniqueIndex;not null" json:"file_access_id"`
	Fingerprint    string    `gorm:"column:device_fingerprint;not null" json:"device_fingerprint"`
	FirstAccessAt  time.Time `gorm:"column:first_access_at" json:"first_access_at"`
	LastAccessedAt time.Time `gorm:"column:last_accessed_at" json:"last_accessed_at"`
}

func (DeviceBinding) TableName() string { return "device_bindings" }
