package adoption

import "strings"

// Nombres de columnas compartidos entre el trainer y el encoder.
// Son la clave de join del FeatureSchema: cambiar uno invalida los artefactos entrenados.
const (
	FieldAgeDays         = "age_days"
	FieldGender          = "gender"
	FieldSterilized      = "sterilized"
	FieldPrimaryBreed    = "primary_breed"
	FieldPrimaryColor    = "primary_color"
	FieldIntakeType      = "intake_type"
	FieldIntakeCondition = "intake_condition"
)

// CategoricalFields en el orden en que se expanden (one-hot) al entrenar.
var CategoricalFields = []string{
	FieldGender,
	FieldSterilized,
	FieldPrimaryBreed,
	FieldPrimaryColor,
	FieldIntakeType,
	FieldIntakeCondition,
}

const (
	GenderMale    = "Male"
	GenderFemale  = "Female"
	GenderUnknown = "Unknown"

	SterilizedYes     = "Yes"
	SterilizedNo      = "No"
	SterilizedUnknown = "Unknown"
)

// OneHotColumn arma el nombre <field>_<value>.
func OneHotColumn(field, value string) string {
	return field + "_" + value
}

// ExtractGender deriva el género desde un descriptor tipo "Spayed Female".
// "Male" se evalúa primero (igual que el dataset original); "Female" no contiene "Male" con mayúscula.
func ExtractGender(sex string) string {
	switch {
	case strings.Contains(sex, "Male"):
		return GenderMale
	case strings.Contains(sex, "Female"):
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// ExtractSterilization deriva Yes/No/Unknown desde el mismo descriptor.
func ExtractSterilization(sex string) string {
	switch {
	case strings.Contains(sex, "Spayed"), strings.Contains(sex, "Neutered"):
		return SterilizedYes
	case strings.Contains(sex, "Intact"):
		return SterilizedNo
	default:
		return SterilizedUnknown
	}
}

// SimplifyBreed: "Labrador/Poodle" -> "Labrador", "Domestic Shorthair Mix" -> "Domestic Shorthair".
func SimplifyBreed(breed string) string {
	if i := strings.Index(breed, "/"); i >= 0 {
		return breed[:i]
	}
	if strings.Contains(breed, "Mix") {
		return strings.ReplaceAll(breed, " Mix", "")
	}
	return breed
}

// SimplifyColor se queda con el color anterior al primer "/".
func SimplifyColor(color string) string {
	if i := strings.Index(color, "/"); i >= 0 {
		return color[:i]
	}
	return color
}
