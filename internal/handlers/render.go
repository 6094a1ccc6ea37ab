package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"

	"campervan_catalog/internal/catalog"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	indexTemplate = "index"
	listTemplate  = "list"
)

var templateFuncs = template.FuncMap{
	"price":  formatPrice,
	"amount": formatAmount,
}

func parseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl"))
}

// renderList renders the product list fragment the page swaps on updates.
func (h *Handler) renderList(v catalog.View) (string, error) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, listTemplate, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatPrice renders a whole-crown amount the Czech way: "10 000 Kč".
func formatPrice(v float64) string {
	return groupThousands(int64(v+0.5)) + " Kč"
}

// formatAmount renders a price bound for an input field; unset is "".
func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(int64(*v+0.5), 10)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	var out []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, " "...)
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
