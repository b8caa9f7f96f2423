package adoption

import "fmt"

// ValidationError indica un campo de entrada faltante o mal formado.
// El handler HTTP lo traduce a 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SchemaLoadError: artefacto de schema o de clasificador ausente/corrupto.
// Es fatal al arrancar; el servicio no debe empezar a servir.
type SchemaLoadError struct {
	Path string
	Err  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("load artifact %s: %v", e.Path, e.Err)
}

func (e *SchemaLoadError) Unwrap() error { return e.Err }
