package share

import "time"

type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
)

// Expiration options offered when issuing a share link. AllTime maps to
// a null expires_at.
const (
	ExpirationAllTime = "all-time"
)

var expirationDays = map[string]int{
	"1":  1,
	"7":  7,
	"30": 30,
	"90": 90,
}

// ShareAccess is one issued share link for a file. The token is the
// only credential a visitor presents. DownloadLimit = 0 means
// unlimited; RevokedAt set means permanently invalid.
type ShareAccess struct {
	ID            string     `gorm:"column:id;primaryKey" json:"id"`
	FileID        string     `gorm:"column:file_id;index;not null" json:"file_id"`
	Token         string     `gorm:"column:token;uniqueIndex;not null" json:"token"`
	Email         string     `gorm:"column:email" json:"email,omitempty"`
	Role          Role       `gorm:"column:role;not null" json:"role"`
	DownloadLimit int        `gorm:"column:download_limit;default:0" json:"download_limit"`
	DownloadsUsed int        `gorm:"column:downloads_used;default:0" json:"downloads_used"`
	ViewCount     int        `gorm:"column:view_count;default:0" json:"view_count"`
	ExpiresAt     *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	RevokedAt     *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (ShareAccess) TableName() string { return "file_access" }

// FileView is the idempotency record behind per-session view counting:
// the composite key guarantees at most one counted view per
// (share, session) pair.
type FileView struct {
	FileAccessID string    `gorm:"column:file_access_id;primaryKey" json:"file_access_id"`
	SessionID    string    `gorm:"column:session_id;primaryKey" json:"session_id"`
	ViewedAt     time.Time `gorm:"column:viewed_at" json:"viewed_at"`
}

func (FileView) TableName() string { return "file_views" }
