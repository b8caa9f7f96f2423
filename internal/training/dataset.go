// Package training arma el dataset de intake/outcome, entrena el bosque y persiste los artefactos.
package training

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"cat-adoption/internal/domain/adoption"
)

// Columnas del CSV de Austin Animal Center (aac_intakes_outcomes.csv).
const (
	colAnimalType      = "animal_type"
	colOutcomeType     = "outcome_type"
	colAgeDays         = "age_upon_outcome_(days)"
	colBreed           = "breed"
	colColor           = "color"
	colSex             = "sex_upon_outcome"
	colIntakeType      = "intake_type"
	colIntakeCondition = "intake_condition"
)

var requiredColumns = []string{
	colAnimalType, colOutcomeType, colAgeDays, colBreed,
	colColor, colSex, colIntakeType, colIntakeCondition,
}

var adoptedOutcomes = map[string]bool{
	"Adoption":        true,
	"Return to Owner": true,
}

// Example es una fila ya derivada: features como las recibiría el encoder + label.
type Example struct {
	Input adoption.RawCatInput
	Label int
}

// Stats cuenta lo que pasó con cada fila leída.
type Stats struct {
	Rows      int
	NotCat    int
	Dropped   int
	Kept      int
	Positives int
}

// ReadExamples lee el CSV y aplica filtro de especie, label y derivaciones.
// Filas incompletas o mal formadas se descartan (Stats.Dropped); solo un header
// inválido o un error de I/O es fatal.
func ReadExamples(r io.Reader) ([]Example, Stats, error) {
	var st Stats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, st, fmt.Errorf("read header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := pos[c]; !ok {
			return nil, st, fmt.Errorf("missing column %q", c)
		}
	}

	out := make([]Example, 0)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				st.Rows++
				st.Dropped++
				continue
			}
			return nil, st, fmt.Errorf("read csv: %w", err)
		}
		st.Rows++

		get := func(col string) string {
			i := pos[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		if get(colAnimalType) != "Cat" {
			st.NotCat++
			continue
		}

		ex, ok := deriveExample(
			get(colOutcomeType),
			get(colAgeDays),
			get(colBreed),
			get(colColor),
			get(colSex),
			get(colIntakeType),
			get(colIntakeCondition),
		)
		if !ok {
			st.Dropped++
			continue
		}

		st.Kept++
		st.Positives += ex.Label
		out = append(out, ex)
	}

	return out, st, nil
}

func deriveExample(outcome, age, breed, color, sex, intakeType, intakeCondition string) (Example, bool) {
	if age == "" || breed == "" || color == "" || sex == "" {
		return Example{}, false
	}
	if intakeType == "" || intakeCondition == "" {
		return Example{}, false
	}

	days, ok := parseAgeDays(age)
	if !ok {
		return Example{}, false
	}

	label := 0
	if adoptedOutcomes[outcome] {
		label = 1
	}

	return Example{
		Input: adoption.RawCatInput{
			AgeDays:         strconv.Itoa(days),
			Gender:          adoption.ExtractGender(sex),
			Sterilized:      adoption.ExtractSterilization(sex),
			PrimaryBreed:    adoption.SimplifyBreed(breed),
			PrimaryColor:    adoption.SimplifyColor(color),
			IntakeType:      intakeType,
			IntakeCondition: intakeCondition,
		},
		Label: label,
	}, true
}

// la columna de edad viene como float ("730.0") en algunas versiones del dataset
func parseAgeDays(s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
