package models

const (
	StatusAtivo        = "Ativo"
	StatusInativo      = "Inativo"
	StatusEmManutencao = "Em Manutenção"
)

// Statuses lista os status aceitos no cadastro, na ordem exibida nos formulários.
var Statuses = []string{StatusAtivo, StatusInativo, StatusEmManutencao}

// Tipos sugeridos nos formulários; o campo continua livre.
var Tipos = []string{"Notebook", "Desktop", "Monitor", "Impressora", "Tablet", "Smartphone", "Servidor", "Outro"}

// Ativo: item do inventário, endereçado pela tag de patrimônio.
type Ativo struct {
	ID             int64        `json:"id"`
	TagPatrimonio  string       `json:"tag_patrimonio"`
	Nome           string       `json:"nome"`
	Tipo           string       `json:"tipo"`
	Status         string       `json:"status"`
	ValorAquisicao float64      `json:"valor_aquisicao"`
	Manutencoes    []Manutencao `json:"manutencoes"`
}

type Manutencao struct {
	ID             int64  `json:"id"`
	AtivoID        int64  `json:"ativo_id"`
	Descricao      string `json:"descricao"`
	DataManutencao Date   `json:"data_manutencao"`
}

// AtivoInput: payload de cadastro (POST /ativo).
type AtivoInput struct {
	TagPatrimonio  string  `json:"tag_patrimonio" validate:"notblank"`
	Nome           string  `json:"nome" validate:"notblank"`
	Tipo           string  `json:"tipo" validate:"notblank"`
	Status         string  `json:"status" validate:"ativostatus"`
	ValorAquisicao float64 `json:"valor_aquisicao" validate:"gte=0"`
}

// AtivoUpdate: payload de edição (PUT /ativo). A tag vai na query, nunca no corpo.
type AtivoUpdate struct {
	Nome           string  `json:"nome" validate:"notblank"`
	Tipo           string  `json:"tipo" validate:"notblank"`
	Status         string  `json:"status" validate:"ativostatus"`
	ValorAquisicao float64 `json:"valor_aquisicao" validate:"gte=0"`
}

// Update devolve os campos editáveis do ativo.
func (a Ativo) Update() AtivoUpdate {
	return AtivoUpdate{
		Nome:           a.Nome,
		Tipo:           a.Tipo,
		Status:         a.Status,
		ValorAquisicao: a.ValorAquisicao,
	}
}

type ManutencaoInput struct {
	AtivoID   int64  `json:"ativo_id" validate:"gt=0"`
	Descricao string `json:"descricao" validate:"notblank"`
	Data      *Date  `json:"data_manutencao,omitempty"`
}

type ManutencaoUpdate struct {
	Descricao string `json:"descricao" validate:"notblank"`
}
