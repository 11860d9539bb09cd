// Package view transforma instantâneos imutáveis (ativos, filtro, estatísticas,
// toasts, diálogo) em HTML. Não acessa rede nem altera o que recebe.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin/render"

	"inventario-ativos/internal/models"
	"inventario-ativos/internal/store"
	"inventario-ativos/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS serve os arquivos de /static.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Páginas completas; cada uma define "content" sobre o layout.
const (
	PageDashboard = "dashboard"
	PageAtivos    = "ativos"
	PageForm      = "ativo_form"
	PageDetalhe   = "ativo_detalhe"
	PageAuditoria = "auditoria"
	PageErro      = "erro"
)

// Fragmentos definidos em partials.html.
const (
	FragmentGrid  = "grade"
	FragmentToast = "toast"
	FragmentModal = "modal"
)

var pageNames = []string{PageDashboard, PageAtivos, PageForm, PageDetalhe, PageAuditoria, PageErro}

//
// INSTANTÂNEOS
//

type Layout struct {
	Title  string
	Active string
	// caminho atual; os formulários do diálogo voltam para ele
	Path   string
	Toasts []ui.Toast
	Modal  *ModalView
}

type ModalView struct {
	ui.Dialog
	Next string
}

type Grid struct {
	Ativos   []models.Ativo
	Filtered bool
}

type ListPage struct {
	Layout
	Filter   models.Filter
	Tipos    []string
	Statuses []string
	Pending  bool
	Grid     Grid
}

type FormPage struct {
	Layout
	Editing  bool
	Ativo    models.Ativo
	Error    string
	Tipos    []string
	Statuses []string
}

type DetailPage struct {
	Layout
	Ativo models.Ativo
}

type DashboardPage struct {
	Layout
	Stats        store.Stats
	Distribution []store.TypeShare
	Activities   []store.Activity
	UpdatedAt    time.Time
}

type AuditPage struct {
	Layout
	Enabled bool
	Entries []models.AuditLog
}

type ErrorPage struct {
	Layout
	Message string
}

// NewDashboard monta o painel a partir da lista completa.
func NewDashboard(layout Layout, ativos []models.Ativo, now time.Time) DashboardPage {
	return DashboardPage{
		Layout:       layout,
		Stats:        store.CalculateStats(ativos),
		Distribution: store.TypeDistribution(ativos),
		Activities:   store.RecentActivities(ativos, store.DefaultRecentActivities),
		UpdatedAt:    now,
	}
}

// NewGrid marca a grade como filtrada quando algum critério está ativo.
func NewGrid(ativos []models.Ativo, f models.Filter) Grid {
	return Grid{Ativos: ativos, Filtered: !f.IsEmpty()}
}

//
// RENDERER
//

type Renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	base, err := template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	r := &Renderer{base: base, pages: map[string]*template.Template{}}
	for _, name := range pageNames {
		page, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

// Instance implementa render.HTMLRender: páginas saem com o layout,
// fragmentos saem sozinhos.
func (r *Renderer) Instance(name string, data any) render.Render {
	if page, ok := r.pages[name]; ok {
		return render.HTML{Template: page, Name: "layout", Data: data}
	}
	return render.HTML{Template: r.base, Name: name, Data: data}
}

func (r *Renderer) Page(name string, data any) (string, error) {
	page, ok := r.pages[name]
	if !ok {
		return "", fmt.Errorf("unknown page %q", name)
	}
	return execute(page, "layout", data)
}

func (r *Renderer) Grid(g Grid) (string, error) {
	return execute(r.base, FragmentGrid, g)
}

func (r *Renderer) Toast(t ui.Toast) (string, error) {
	return execute(r.base, FragmentToast, t)
}

func (r *Renderer) Modal(m ModalView) (string, error) {
	return execute(r.base, FragmentModal, m)
}

func execute(t *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
