package email

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Template is an admin override of a built-in template. An override with
// empty HTML keeps the built-in body but may still change the subject.
type Template struct {
	ID          uint
	Code        string
	Name        string
	Subject     string
	HTMLContent string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTemplate builds an override for a known code, falling back to the
// built-in name and subject when blank.
func NewTemplate(code, name, subject, html string, active bool) (*Template, error) {
	def, ok := Lookup(code)
	if !ok {
		return nil, fmt.Errorf("unknown template code: %s", code)
	}
	if strings.TrimSpace(name) == "" {
		name = def.Name
	}
	if strings.TrimSpace(subject) == "" {
		subject = def.Subject
	}
	return &Template{
		Code:        code,
		Name:        name,
		Subject:     subject,
		HTMLContent: html,
		IsActive:    active,
	}, nil
}

// Overrides reports whether the stored body should replace the built-in one.
func (t *Template) Overrides() bool {
	return t != nil && t.IsActive && strings.TrimSpace(t.HTMLContent) != ""
}

// View is a template as shown in the admin panel: the definition merged with
// any stored override.
type View struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Subject     string   `json:"subject"`
	HTMLContent string   `json:"htmlContent"`
	IsActive    bool     `json:"isActive"`
	Variables   []string `json:"variables"`
	Description string   `json:"description"`
	IsSaved     bool     `json:"isSaved"`
	IsDefault   bool     `json:"isDefault,omitempty"`
}

// Merge combines a definition with its optional override.
func Merge(def Definition, saved *Template) View {
	v := View{
		Code:        def.Code,
		Name:        def.Name,
		Subject:     def.Subject,
		IsActive:    true,
		Variables:   def.Variables,
		Description: def.Description,
	}
	if saved == nil {
		return v
	}
	v.IsSaved = true
	if saved.Name != "" {
		v.Name = saved.Name
	}
	if saved.Subject != "" {
		v.Subject = saved.Subject
	}
	v.HTMLContent = saved.HTMLContent
	v.IsActive = saved.IsActive
	return v
}

type TemplateRepository interface {
	List(ctx context.Context) ([]*Template, error)
	// GetByCode returns nil without error when no override exists.
	GetByCode(ctx context.Context, code string) (*Template, error)
	Upsert(ctx context.Context, t *Template) error
}
