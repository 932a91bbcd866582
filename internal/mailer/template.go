package mailer

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"github.com/agentstation/rollcall/pkg/errors"
)

// TemplateData is available to message templates.
type TemplateData struct {
	Subject    string
	Recipients int
	Statuses   []string
	Cycles     []string
	Date       string
	RunID      string
}

// Template renders a message body to HTML. Files ending in .md are
// Markdown, anything else is an HTML template.
type Template struct {
	path     string
	markdown bool
	html     *template.Template
	text     *texttemplate.Template
}

// LoadTemplate reads and parses the template at path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseTemplate(path, string(data))
}

// ParseTemplate parses src, using name to pick the format.
func ParseTemplate(name, src string) (*Template, error) {
	t := &Template{path: name}
	ext := strings.ToLower(filepath.Ext(name))

	var err error
	if ext == ".md" || ext == ".markdown" {
		t.markdown = true
		t.text, err = texttemplate.New(filepath.Base(name)).Option("missingkey=error").Parse(src)
	} else {
		t.html, err = template.New(filepath.Base(name)).Option("missingkey=error").Parse(src)
	}
	if err != nil {
		return nil, errors.WrapParse("template", name, err)
	}
	return t, nil
}

// Render executes the template. Markdown is expanded before conversion so
// placeholders survive the Markdown renderer untouched.
func (t *Template) Render(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if !t.markdown {
		if err := t.html.Execute(&buf, data); err != nil {
			return "", errors.WrapParse("template", t.path, err)
		}
		return buf.String(), nil
	}

	if err := t.text.Execute(&buf, data); err != nil {
		return "", errors.WrapParse("template", t.path, err)
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	return string(markdown.ToHTML(buf.Bytes(), p, nil)), nil
}
