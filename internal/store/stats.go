package store

import (
	"sort"

	"inventario-ativos/internal/models"
)

const (
	TipoNaoInformado = "Não informado"

	DefaultRecentActivities = 5
)

// Stats: números do painel.
type Stats struct {
	Total            int
	Ativos           int
	Inativos         int
	EmManutencao     int
	ValorTotal       float64
	TotalManutencoes int
}

func CalculateStats(ativos []models.Ativo) Stats {
	st := Stats{Total: len(ativos)}
	for _, a := range ativos {
		st.ValorTotal += a.ValorAquisicao
		st.TotalManutencoes += len(a.Manutencoes)
		switch a.Status {
		case models.StatusAtivo:
			st.Ativos++
		case models.StatusInativo:
			st.Inativos++
		case models.StatusEmManutencao:
			st.EmManutencao++
		}
	}
	return st
}

type TypeShare struct {
	Tipo       string
	Count      int
	Percentage float64
}

// TypeDistribution agrupa por tipo, do mais frequente ao menos; empate por nome.
func TypeDistribution(ativos []models.Ativo) []TypeShare {
	if len(ativos) == 0 {
		return []TypeShare{}
	}

	counts := map[string]int{}
	for _, a := range ativos {
		tipo := a.Tipo
		if tipo == "" {
			tipo = TipoNaoInformado
		}
		counts[tipo]++
	}

	out := make([]TypeShare, 0, len(counts))
	total := float64(len(ativos))
	for tipo, n := range counts {
		out = append(out, TypeShare{
			Tipo:       tipo,
			Count:      n,
			Percentage: float64(n) / total * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tipo < out[j].Tipo
	})
	return out
}

// Activity: uma manutenção vista no painel de atividades recentes.
type Activity struct {
	ManutencaoID  int64
	TagPatrimonio string
	Titulo        string
	Descricao     string
	Data          models.Date
}

// RecentActivities devolve as n manutenções mais recentes, da mais nova para a mais antiga.
// n <= 0 usa DefaultRecentActivities.
func RecentActivities(ativos []models.Ativo, n int) []Activity {
	if n <= 0 {
		n = DefaultRecentActivities
	}

	var out []Activity
	for _, a := range ativos {
		for _, m := range a.Manutencoes {
			out = append(out, Activity{
				ManutencaoID:  m.ID,
				TagPatrimonio: a.TagPatrimonio,
				Titulo:        a.Nome,
				Descricao:     m.Descricao,
				Data:          m.DataManutencao,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Data.After(out[j].Data.Time)
	})
	if len(out) > n {
		out = out[:n]
	}
	if out == nil {
		out = []Activity{}
	}
	return out
}
