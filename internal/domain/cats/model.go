package cats

import (
	"io"
	"time"

	"cat-adoption/internal/domain/adoption"
)

// Status del gato en el refugio. Texto libre; estos son los valores usados por el front.
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
)

// Cat es un registro de intake del refugio.
// AdoptionChance se calcula una vez al crear y no se actualiza.
type Cat struct {
	ID int64

	Name    string
	AgeDays int

	Gender          string // Male, Female, Unknown
	Sterilized      string // Yes, No, Unknown
	PrimaryBreed    string
	PrimaryColor    string
	IntakeType      string
	IntakeCondition string

	Status         Status
	AdoptionChance float64 // 0 - 100, 2 decimales

	// Images son los nombres de archivo guardados en el image store.
	Images []string

	CreatedAt time.Time
}

// Upload es un archivo recibido en el form (campo "pictures").
type Upload struct {
	Filename string
	Content  io.Reader
}

// AddInput es el RawCatInput completo: features + nombre, status e imágenes.
type AddInput struct {
	Name     string
	Status   string
	Features adoption.RawCatInput
	Images   []Upload
}
