package database

import (
	"gorm.io/gorm"

	"secureshare/internal/domain/auth"
	"secureshare/internal/domain/device"
	"secureshare/internal/domain/file"
	"secureshare/internal/domain/security"
	"secureshare/internal/domain/share"
)

// Migrate creates or updates every table the application owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&file.File{},
		&share.ShareAccess{},
		&share.FileView{},
		&device.DeviceBinding{},
		&security.SecurityViolation{},
		&security.AccessAttempt{},
	)
}
