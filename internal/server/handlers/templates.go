package handlers

import (
	"html/template"
	"strings"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/internal/page"
	"github.com/mamadbah2/harvest-tracker/web"
)

// TemplateFuncs are the formatting helpers available to every page.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":  page.Money,
		"moneyd": page.MoneyDecimal,
		"pct":    page.Percent,
		"pctd":   page.PercentDecimal,
		"number": page.Number,
		"dash":   page.OrDash,
		"day":    func(t models.Timestamp) string { return t.DayString() },
		"category": func(c models.ExpenseCategory) string {
			return models.LabelFor(models.ExpenseCategories, string(c))
		},
		"join":     strings.Join,
		"negative": func(v float64) bool { return v < 0 },
	}
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(TemplateFuncs()).ParseFS(web.TemplatesFS, "templates/*.html")
}
