package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager is an in-memory TemplateRenderer.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager creates a manager preloaded with the built-in templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Built-ins are compile-time constants; a parse failure is a bug
		if err := tm.AddTemplate(name, body); err != nil {
			panic(fmt.Sprintf("bad builtin email template %q: %v", name, err))
		}
	}
	return tm
}

// Render renders a registered template.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate registers or replaces a template.
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

var builtinTemplates = map[string]string{
	"verification_code": `
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Confirm your email</h2>
  <p>Hi {{.Username}},</p>
  <p>Your verification code is:</p>
  <p style="font-size: 28px; letter-spacing: 4px;"><strong>{{.Code}}</strong></p>
  <p>The code expires in {{.TTLMinutes}} minutes. If you did not sign up, ignore this message.</p>
</body>
</html>`,

	"application_status": `
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Application update</h2>
  <p>Hi {{.Username}},</p>
  <p>Your application for <strong>{{.PositionTitle}}</strong> at <strong>{{.StartupTitle}}</strong> was {{.Status}}.</p>
</body>
</html>`,
}
