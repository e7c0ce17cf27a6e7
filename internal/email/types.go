package email

// Attachment is an email attachment.
type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Email is a single outgoing message.
type Email struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}

// TemplateData is the data passed into message templates.
type TemplateData map[string]interface{}
