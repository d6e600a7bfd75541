package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

// subjects per template name
var subjects = map[string]string{
	"verify_email": "Verify Your Smart Hotel Account",
	"welcome":      "Welcome to Smart Hotel!",
}

// Render renders the named template with data and returns subject, plain-text
// body, and HTML body. Templates live as <name>.txt.tmpl and <name>.html.tmpl
// in this package.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	tt, err := texttpl.ParseFS(FS, name+".txt.tmpl")
	if err != nil {
		return "", "", "", err
	}
	var tbuf bytes.Buffer
	if err := tt.Execute(&tbuf, data); err != nil {
		return "", "", "", err
	}

	ht, err := htmpl.ParseFS(FS, name+".html.tmpl")
	if err != nil {
		return "", "", "", err
	}
	var hbuf bytes.Buffer
	if err := ht.Execute(&hbuf, data); err != nil {
		return "", "", "", err
	}

	return subject, tbuf.String(), hbuf.String(), nil
}
