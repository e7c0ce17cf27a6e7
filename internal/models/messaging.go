package models

type Conversation struct {
	BaseModel
	Title    string `json:"title"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
	Messages     []Message                 `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

type ConversationParticipant struct {
	BaseModel
	ConversationID string `gorm:"not null;index:idx_conv_user,unique" json:"conversation_id"`
	UserID         string `gorm:"not null;index:idx_conv_user,unique" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Message struct {
	BaseModel
	ConversationID string `gorm:"not null;index" json:"conversation_id"`
	SenderID       string `gorm:"not null;index" json:"sender_id"`
	Content        string `gorm:"not null" json:"content"`
	MessageType    string `gorm:"type:varchar(20);default:'text'" json:"message_type"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
