package models

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation failed")

// ValidationError: falha de validação no cliente, detectada antes de qualquer requisição.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// mensagens exibidas no toast, por campo JSON
var fieldMessages = map[string]string{
	"tag_patrimonio":  "A tag de patrimônio é obrigatória.",
	"nome":            "O nome do ativo é obrigatório.",
	"tipo":            "O tipo do ativo é obrigatório.",
	"status":          "Status inválido: use Ativo, Inativo ou Em Manutenção.",
	"valor_aquisicao": "O valor de aquisição não pode ser negativo.",
	"ativo_id":        "Ativo inválido para a manutenção.",
	"descricao":       "A descrição não pode estar vazia.",
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("ativostatus", func(fl validator.FieldLevel) bool {
			return IsValidStatus(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Validate checa um payload de entrada; devolve *ValidationError do primeiro campo inválido.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	field := fieldErrs[0].Field()
	msg, ok := fieldMessages[field]
	if !ok {
		msg = "Campo inválido: " + field
	}
	return &ValidationError{Field: field, Message: msg}
}
