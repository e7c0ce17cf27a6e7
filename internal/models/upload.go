package models

type FileUpload struct {
	BaseModel
	UserID       string `gorm:"not null;index" json:"user_id"`
	Path         string `gorm:"not null" json:"-"`
	URL          string `gorm:"-" json:"url"`
	FileType     string `gorm:"type:varchar(30);index" json:"file_type"` // "resume", "startup_image", "profile_picture"
	OriginalName string `json:"original_name"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `json:"mime_type"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}
