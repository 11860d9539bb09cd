package view

import (
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"inventario-ativos/internal/models"
	"inventario-ativos/internal/store"
	"inventario-ativos/internal/ui"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"moeda":       Moeda,
		"data":        Data,
		"dataISO":     DataISO,
		"dataHora":    DataHora,
		"percentual":  Percentual,
		"tipo":        TipoOuPadrao,
		"statusClass": StatusClass,
		"toastIcon":   ToastIcon,
		"toastMillis": func(t ui.Toast) int64 { return t.Duration.Milliseconds() },
	}
}

// Moeda formata em reais: R$ 1.500,00.
func Moeda(v float64) string {
	return printer.Sprintf("R$ %.2f", v)
}

func Data(d models.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(dateLayout)
}

// DataISO é o formato de <input type="date">.
func DataISO(d models.Date) string {
	return d.String()
}

func DataHora(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateTimeLayout)
}

func Percentual(p float64) string {
	return printer.Sprintf("%.1f%%", p)
}

func TipoOuPadrao(tipo string) string {
	if tipo == "" {
		return store.TipoNaoInformado
	}
	return tipo
}

// StatusClass: "Em Manutenção" → "status-em-manutencao".
func StatusClass(status string) string {
	r := strings.NewReplacer(" ", "-", "ç", "c", "ã", "a", "Ç", "c", "Ã", "a")
	return "status-" + strings.ToLower(r.Replace(status))
}

func ToastIcon(kind ui.ToastKind) string {
	switch kind {
	case ui.ToastSuccess:
		return "✔"
	case ui.ToastError:
		return "✖"
	case ui.ToastWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}
