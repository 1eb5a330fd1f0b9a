package security

import "time"

// Violation types reported by the viewer page.
const (
	ViolationScreenshot     = "screenshot_attempt"
	ViolationDeviceMismatch = "device_mismatch"
	ViolationCopyAttempt    = "copy_attempt"
	ViolationContextMenu    = "context_menu"
	ViolationWindowBlur     = "window_blur"
)

// SecurityViolation is an append-only record of a client-reported
// protection event. Rows are never updated or deleted by the API.
type SecurityViolation struct {
	ID            string    `gorm:"column:id;primaryKey" json:"id"`
	FileAccessID  string    `gorm:"column:file_access_id;index;not null" json:"file_access_id"`
	ViolationType string    `gorm:"column:violation_type;not null" json:"violation_type"`
	Details       string    `gorm:"column:details" json:"details,omitempty"`
	Fingerprint   string    `gorm:"column:device_fingerprint" json:"device_fingerprint,omitempty"`
	UserAgent     string    `gorm:"column:user_agent" json:"user_agent,omitempty"`
	OccurredAt    time.Time `gorm:"column:occurred_at" json:"occurred_at"`
}

func (SecurityViolation) TableName() string { return "security_violations" }

// AccessAttempt records one redemption of a share link, successful or
// not. Append-only, written best-effort after the access decision.
type AccessAttempt struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	FileAccessID string    `gorm:"column:file_access_id;index;not null" json:"file_access_id"`
	Fingerprint  string    `gorm:"column:device_fingerprint" json:"device_fingerprint,omitempty"`
	IPAddress    string    `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent    string    `gorm:"column:user_agent" json:"user_agent,omitempty"`
	Country      string    `gorm:"column:country" json:"country,omitempty"`
	City         string    `gorm:"column:city" json:"city,omitempty"`
	Latitude     *float64  `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude    *float64  `gorm:"column:longitude" json:"longitude,omitempty"`
	AttemptedAt  time.Time `gorm:"column:attempted_at" json:"attempted_at"`
}

func (AccessAttempt) TableName() string { return "access_attempts" }
