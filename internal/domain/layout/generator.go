// Package layout materializa la jerarquía física de una bodega
// (zona → pasillo → lado → rack → nivel → posición) en una lista plana de posiciones.
// No hace I/O.
package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/jhoicas/warehouse-vision/internal/domain"
)

// Naming esquema de nombres de pasillos.
type Naming string

const (
	NamingAlpha   Naming = "alpha"   // A..Z, AA, AB...
	NamingNumeric Naming = "numeric" // P01, P02...
)

// Lados de un pasillo, en orden de generación.
const (
	SideLeft  = "L"
	SideRight = "R"
)

// Separación entre elementos en el plano (unidades de la vista 3D).
const (
	aisleSpacingX = 150
	rightSideX    = 80
	rackSpacingY  = 50
	levelSpacingZ = 30
	positionStepZ = 10
)

const maxPrealloc = 1 << 20

// Request forma de la bodega a generar.
type Request struct {
	ZoneName          string
	Aisles            int
	RacksPerAisle     int
	LevelsPerRack     int
	PositionsPerLevel int
	AisleNaming       Naming
}

// Slot una posición generada, sin identidad persistente.
type Slot struct {
	Zona     string
	Pasillo  string
	Rack     string
	Nivel    int
	Posicion int
	X        int
	Y        int
	Z        int
}

// Validate verifica la forma. No impone tope superior; eso lo decide quien persiste.
func (r Request) Validate() error {
	if strings.TrimSpace(r.ZoneName) == "" {
		return domain.NewValidationError("zone_name", "es requerido")
	}
	checks := []struct {
		field string
		value int
	}{
		{"aisles", r.Aisles},
		{"racks_per_aisle", r.RacksPerAisle},
		{"levels_per_rack", r.LevelsPerRack},
		{"positions_per_level", r.PositionsPerLevel},
	}
	for _, c := range checks {
		if c.value < 1 {
			return domain.NewValidationError(c.field, "debe ser mayor o igual a 1")
		}
	}
	return nil
}

// Count número de posiciones que produce la forma: aisles × 2 × racks × levels × positions.
// Satura en math.MaxInt64 para formas absurdas.
func (r Request) Count() int64 {
	n := int64(2)
	for _, f := range []int{r.Aisles, r.RacksPerAisle, r.LevelsPerRack, r.PositionsPerLevel} {
		if f <= 0 {
			return 0
		}
		if n > math.MaxInt64/int64(f) {
			return math.MaxInt64
		}
		n *= int64(f)
	}
	return n
}

// RacksPerSide racks por lado del pasillo, tal como los reporta el resumen (racks × 2).
func (r Request) RacksPerSide() int { return r.RacksPerAisle * 2 }

// TotalRacks racks de toda la zona.
func (r Request) TotalRacks() int { return r.Aisles * r.RacksPerAisle * 2 }

// Generate produce las posiciones en orden pasillo → lado (L, R) → rack → nivel → posición.
func Generate(r Request) ([]Slot, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	zone := strings.TrimSpace(r.ZoneName)
	hint := r.Count()
	if hint > maxPrealloc {
		hint = maxPrealloc
	}
	slots := make([]Slot, 0, hint)
	seen := make(map[string]struct{}, hint)

	for a := 1; a <= r.Aisles; a++ {
		aisle := AisleName(a, r.AisleNaming)
		for _, side := range []string{SideLeft, SideRight} {
			for rk := 1; rk <= r.RacksPerAisle; rk++ {
				rack := RackName(side, rk)
				for lvl := 1; lvl <= r.LevelsPerRack; lvl++ {
					for pos := 1; pos <= r.PositionsPerLevel; pos++ {
						key := fmt.Sprintf("%s|%s|%d|%d", aisle, rack, lvl, pos)
						if _, dup := seen[key]; dup {
							return nil, domain.NewValidationError("layout", "posición duplicada "+key)
						}
						seen[key] = struct{}{}

						x := (a - 1) * aisleSpacingX
						if side == SideRight {
							x += rightSideX
						}
						slots = append(slots, Slot{
							Zona:     zone,
							Pasillo:  aisle,
							Rack:     rack,
							Nivel:    lvl,
							Posicion: pos,
							X:        x,
							Y:        (rk - 1) * rackSpacingY,
							Z:        (lvl-1)*levelSpacingZ + pos*positionStepZ,
						})
					}
				}
			}
		}
	}
	return slots, nil
}

// AisleName nombre del pasillo n (1-based). Cualquier esquema distinto de alpha es numérico.
func AisleName(n int, naming Naming) string {
	if naming == NamingAlpha {
		return alphaName(n)
	}
	return fmt.Sprintf("P%02d", n)
}

// alphaName numeración biyectiva base 26: 1→A, 26→Z, 27→AA, 52→AZ, 53→BA, 703→AAA.
func alphaName(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// RackName nombre del rack: lado + número con dos dígitos.
func RackName(side string, n int) string {
	return fmt.Sprintf("%s%02d", side, n)
}
