package email

// Provider is the outgoing mail collaborator. The auth core treats it as
// fire-and-forget with a boolean-ish contract: an error means the message was
// not dispatched and the caller may retry.
type Provider interface {
	// Send sends a plain email message.
	Send(email *Email) error

	// SendTemplate renders a named template and sends it.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// SendVerificationCode sends the email verification code to a user.
	SendVerificationCode(to, username, code string) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}

// TemplateRenderer renders message bodies.
type TemplateRenderer interface {
	// Render renders a template with the given data.
	Render(templateName string, data TemplateData) (string, error)

	// AddTemplate registers a template.
	AddTemplate(name string, template string) error
}
