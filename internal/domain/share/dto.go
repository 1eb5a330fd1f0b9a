package share

type CreateShareRequest struct {
	FileID        string `json:"file_id" binding:"required"`
	Email         string `json:"email"`
	Role          string `json:"role" binding:"required"`
	Expiration    string `json:"expiration" binding:"required"`
	DownloadLimit int    `json:"download_limit"`
}

type CreateShareResponse struct {
	Share    *ShareAccess `json:"share"`
	ShareURL string       `json:"share_url"`
}
