package models

type Position struct {
	BaseModel
	StartupID    string `gorm:"not null;index" json:"startup_id"`
	Title        string `gorm:"not null" json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	IsActive     bool   `gorm:"default:true;index" json:"is_active"`

	Startup *Startup `gorm:"foreignKey:StartupID" json:"startup,omitempty"`
}

type Application struct {
	BaseModel
	StartupID   string            `gorm:"not null;index" json:"startup_id"`
	PositionID  string            `gorm:"not null;index" json:"position_id"`
	ApplicantID string            `gorm:"not null;index" json:"applicant_id"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CoverLetter string            `json:"cover_letter"`
	ResumePath  string            `json:"resume_path"`

	Startup   *Startup  `gorm:"foreignKey:StartupID" json:"startup,omitempty"`
	Position  *Position `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	Applicant *User     `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}
