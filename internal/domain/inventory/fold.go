package inventory

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold minúsculas Unicode usadas para comparar nombres y SKU sin distinguir mayúsculas.
// La búsqueda aplica la misma función a la consulta y a la columna.
// cases.Caser guarda estado: se crea uno por llamada.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
