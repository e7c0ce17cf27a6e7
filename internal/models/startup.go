package models

type Startup struct {
	BaseModel
	OwnerID     string        `gorm:"not null;index" json:"owner_id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description"`
	Type        StartupType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Status      StartupStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	Category    string        `gorm:"index" json:"category"`
	Field       string        `json:"field"`
	Phase       string        `json:"phase"`
	TeamSize    string        `json:"team_size"`
	EarnThrough string        `json:"earn_through"`
	AskingPrice int64         `json:"asking_price"`
	Views       int64         `gorm:"default:0" json:"views"`

	// Relations
	Owner     *User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Tags      []StartupTag `gorm:"foreignKey:StartupID" json:"tags,omitempty"`
	Positions []Position   `gorm:"foreignKey:StartupID" json:"positions,omitempty"`
}

type StartupTag struct {
	BaseModel
	StartupID string `gorm:"not null;index" json:"startup_id"`
	Tag       string `gorm:"not null" json:"tag"`
}

// Favorite is a saved startup; one row per (user, startup).
type Favorite struct {
	BaseModel
	UserID    string `gorm:"not null;index:idx_fav_user_startup,unique" json:"user_id"`
	StartupID string `gorm:"not null;index:idx_fav_user_startup,unique" json:"startup_id"`

	Startup *Startup `gorm:"foreignKey:StartupID" json:"startup,omitempty"`
}

// Interest is an investor's expressed interest in a startup, with an optional
// opening message.
type Interest struct {
	BaseModel
	UserID    string `gorm:"not null;index:idx_int_user_startup,unique" json:"user_id"`
	StartupID string `gorm:"not null;index:idx_int_user_startup,unique" json:"startup_id"`
	Message   string `json:"message"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Startup *Startup `gorm:"foreignKey:StartupID" json:"startup,omitempty"`
}
