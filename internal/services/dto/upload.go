package dto

type UploadResponse struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	FileType     string `json:"file_type"`
	OriginalName string `json:"original_name"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `json:"mime_type"`
}
