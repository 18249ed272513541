package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"
	"time"

	domain "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Rendered is a ready-to-send message body.
type Rendered struct {
	Subject string
	HTML    string
}

// Renderer turns a template code plus variables into a subject and HTML
// body. Stored overrides win over the embedded defaults.
type Renderer struct {
	appName   string
	overrides domain.TemplateRepository
	builtins  map[string]*template.Template
	logger    logger.Interface
	now       func() time.Time
}

var funcs = template.FuncMap{
	"categoryLabel": categoryLabel,
	"storageWidth":  storageWidth,
}

func NewRenderer(appName string, overrides domain.TemplateRepository, log logger.Interface) (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email layout: %w", err)
	}

	builtins := make(map[string]*template.Template)
	for _, def := range domain.Catalog() {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone email layout: %w", err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+def.Code+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", def.Code, err)
		}
		builtins[def.Code] = t
	}

	if appName == "" {
		appName = "Cerberus Dev"
	}
	return &Renderer{
		appName:   appName,
		overrides: overrides,
		builtins:  builtins,
		logger:    log,
		now:       time.Now,
	}, nil
}

// data fills every declared variable so templates never print "<no value>".
func (r *Renderer) data(def domain.Definition, vars map[string]any) map[string]any {
	out := make(map[string]any, len(vars)+len(def.Variables)+2)
	for _, v := range def.Variables {
		out[strings.Trim(v, "{}")] = ""
	}
	for k, v := range vars {
		if v != nil {
			out[k] = v
		}
	}
	out["appName"] = r.appName
	out["year"] = r.now().Year()
	return out
}

// Render resolves code. An active stored override with a body replaces the
// built-in HTML; its subject is used whenever one is stored.
func (r *Renderer) Render(ctx context.Context, code string, vars map[string]any) (*Rendered, error) {
	def, ok := domain.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("unknown email template: %s", code)
	}
	data := r.data(def, vars)

	var saved *domain.Template
	if r.overrides != nil {
		var err error
		saved, err = r.overrides.GetByCode(ctx, code)
		if err != nil {
			r.logger.Warnw("failed to load email template override, using default",
				"code", code,
				"error", err,
			)
			saved = nil
		}
	}

	subject := def.Subject
	if saved != nil && saved.IsActive && strings.TrimSpace(saved.Subject) != "" {
		subject = saved.Subject
	}
	out := &Rendered{Subject: Substitute(subject, data, false)}

	if saved.Overrides() {
		out.HTML = Substitute(saved.HTMLContent, data, true)
		return out, nil
	}

	var buf bytes.Buffer
	if err := r.builtins[code].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return nil, fmt.Errorf("failed to render email template %s: %w", code, err)
	}
	out.HTML = buf.String()
	return out, nil
}

// Default returns the built-in body of code rendered with its variable names
// as values, for the admin editor.
func (r *Renderer) Default(code string) (string, error) {
	def, ok := domain.Lookup(code)
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", code)
	}
	data := r.data(def, nil)
	for _, v := range def.Variables {
		data[strings.Trim(v, "{}")] = v
	}
	var buf bytes.Buffer
	if err := r.builtins[code].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Substitute replaces {{name}} placeholders with values from data. Unknown
// placeholders are left as they are.
func Substitute(s string, data map[string]any, escape bool) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		v, ok := data[key]
		if !ok {
			return m
		}
		str := fmt.Sprint(v)
		if escape {
			return html.EscapeString(str)
		}
		return str
	})
}

func categoryLabel(v any) string {
	switch fmt.Sprint(v) {
	case "improvement":
		return "Mejora"
	case "storage_request":
		return "Solicitud de Espacio"
	default:
		return "Soporte"
	}
}

func storageWidth(v any) string {
	var pct float64
	switch n := v.(type) {
	case float64:
		pct = n
	case float32:
		pct = float64(n)
	case int:
		pct = float64(n)
	case int64:
		pct = float64(n)
	default:
		_, _ = fmt.Sscan(fmt.Sprint(v), &pct)
	}
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return fmt.Sprintf("%.2f", pct)
}
