package adoption

import (
	"errors"
	"strconv"
	"strings"
)

// RawCatInput son los atributos de un gato relevantes para la predicción,
// tal como llegan del request (sin validar).
type RawCatInput struct {
	AgeDays         string
	Gender          string
	Sterilized      string
	PrimaryBreed    string
	PrimaryColor    string
	IntakeType      string
	IntakeCondition string
}

// ParseAgeDays exige un entero base 10 no negativo que entre en la columna INTEGER (int32).
func ParseAgeDays(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: FieldAgeDays, Reason: "required"}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ValidationError{Field: FieldAgeDays, Reason: "out of range"}
		}
		return 0, &ValidationError{Field: FieldAgeDays, Reason: "must be an integer"}
	}
	if n < 0 {
		return 0, &ValidationError{Field: FieldAgeDays, Reason: "must be non-negative"}
	}
	return int(n), nil
}

// Categories devuelve el valor de cada campo categórico.
// Raza y color llegan ya como primarios: no se re-simplifican (SimplifyBreed no es idempotente).
func (in RawCatInput) Categories() map[string]string {
	return map[string]string{
		FieldGender:          strings.TrimSpace(in.Gender),
		FieldSterilized:      strings.TrimSpace(in.Sterilized),
		FieldPrimaryBreed:    strings.TrimSpace(in.PrimaryBreed),
		FieldPrimaryColor:    strings.TrimSpace(in.PrimaryColor),
		FieldIntakeType:      strings.TrimSpace(in.IntakeType),
		FieldIntakeCondition: strings.TrimSpace(in.IntakeCondition),
	}
}

// Encoder alinea un RawCatInput contra el Schema.
type Encoder struct {
	schema *Schema
}

func NewEncoder(schema *Schema) *Encoder {
	return &Encoder{schema: schema}
}

// Encode expande los categóricos a <field>_<value> y reindexa contra el schema:
// columnas ausentes quedan en 0, columnas desconocidas se descartan.
// El largo y el orden del resultado son siempre los del schema.
func (e *Encoder) Encode(in RawCatInput) ([]float64, error) {
	age, err := ParseAgeDays(in.AgeDays)
	if err != nil {
		return nil, err
	}

	vec := make([]float64, e.schema.Len())
	if i := e.schema.Index(FieldAgeDays); i >= 0 {
		vec[i] = float64(age)
	}

	cats := in.Categories()
	for _, field := range CategoricalFields {
		if i := e.schema.Index(OneHotColumn(field, cats[field])); i >= 0 {
			vec[i] = 1
		}
	}

	return vec, nil
}
