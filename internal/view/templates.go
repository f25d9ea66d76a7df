package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// NavItem is a sidebar link.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// BranchOption is one entry of the branch filter.
type BranchOption struct {
	ID       int64
	Name     string
	Selected bool
}

// Banner is the broadcast message shown above every page.
type Banner struct {
	Message string
	Level   string
	Link    string
}

// Layout carries the chrome shared by all dashboard pages.
type Layout struct {
	UserName         string
	Role             string
	Nav              []NavItem
	Banner           *Banner
	ShowBranchFilter bool
	Branches         []BranchOption
	AllBranches      bool
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Layout      Layout
	Data        any
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount with thousands separators and the currency code.
func FormatMoney(amount float64, currency string) string {
	formatted := printer.Sprintf("%.2f", amount)
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return formatted
	}
	return currency + " " + formatted
}

// FormatNumber renders an integer count with thousands separators.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// PageURL returns a relative link to page of a listing filtered by q.
func PageURL(q url.Values, page int) string {
	next := url.Values{}
	for k, v := range q {
		next[k] = v
	}
	next.Set("page", strconv.Itoa(page))
	return "?" + next.Encode()
}

// dict builds the argument map for partials that need more than one value.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006 15:04")
		},
		"formatDay": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"money":  FormatMoney,
		"number": FormatNumber,
		"add":    func(a, b int) int { return a + b },
		"sub":    func(a, b int) int { return a - b },
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"deref": func(id *int64) int64 {
			if id == nil {
				return 0
			}
			return *id
		},
		"pageURL": PageURL,
		"dict":    dict,
		"withQuery": func(path string, q url.Values) string {
			if len(q) == 0 {
				return path
			}
			return path + "?" + q.Encode()
		},
		"fieldError": func(errs shared.FieldErrors, field string) string {
			if errs == nil {
				return ""
			}
			return errs[field]
		},
	}
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(funcMap()).ParseFS(web.Templates,
		"templates/layouts/*.html",
		"templates/partials/*.html",
		"templates/pages/*.html",
		"templates/pages/*/*.html",
	)
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

// RenderString executes a template into a string, used for PDF export.
func (e *Engine) RenderString(name string, data TemplateData) (string, error) {
	if e == nil {
		return "", fmt.Errorf("template engine not initialised")
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
