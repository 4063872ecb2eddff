// Package catalog contiene los datos de referencia estáticos del inventario cíclico:
// tiendas por región, sectores de CD, centros de distribución, tipos de activo,
// proveedores y la tabla de familias de activos. Son datos inmutables de solo lectura.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// SupplierTotal denominador fijo del progreso de proveedores.
const SupplierTotal = 3

// Region agrupa tiendas; el orden de Stores es el orden de presentación.
type Region struct {
	Name   string   `json:"name"`
	Stores []string `json:"stores"`
}

// DistributionCenter centro de distribución con su sigla y la ciudad completa.
type DistributionCenter struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Family familia de activos para los resúmenes del informe.
type Family string

// FamilyOther agrupa tipos de activo no reconocidos.
const FamilyOther Family = "Outros"

// FamilyGroup miembros exactos de una familia.
type FamilyGroup struct {
	Family Family   `json:"family"`
	Assets []string `json:"assets"`
}

// Catalog datos de referencia consultados por el núcleo en cada llamada.
type Catalog struct {
	Regions         []Region             `json:"regions"`
	Sectors         []string             `json:"sectors"`
	DCs             []DistributionCenter `json:"distribution_centers"`
	DefaultDC       string               `json:"default_dc"`
	TransitAliases  []string             `json:"transit_aliases"`
	AssetTypes      []string             `json:"asset_types"`
	Suppliers       []string             `json:"suppliers"`
	Families        []FamilyGroup        `json:"families"`
	familyByAsset   map[string]Family
	storeSet        map[string]struct{}
	sectorSet       map[string]struct{}
	supplierSet     map[string]struct{}
	transitAliasSet map[string]struct{}
}

// New construye un catálogo e indexa sus búsquedas.
func New(regions []Region, sectors []string, dcs []DistributionCenter, defaultDC string,
	transitAliases, assetTypes, suppliers []string, families []FamilyGroup) *Catalog {
	c := &Catalog{
		Regions:        regions,
		Sectors:        sectors,
		DCs:            dcs,
		DefaultDC:      defaultDC,
		TransitAliases: transitAliases,
		AssetTypes:     assetTypes,
		Suppliers:      suppliers,
		Families:       families,
	}
	c.familyByAsset = make(map[string]Family)
	for _, g := range families {
		for _, a := range g.Assets {
			c.familyByAsset[a] = g.Family
		}
	}
	c.storeSet = make(map[string]struct{})
	for _, r := range regions {
		for _, s := range r.Stores {
			c.storeSet[s] = struct{}{}
		}
	}
	c.sectorSet = toSet(sectors)
	c.supplierSet = toSet(suppliers)
	c.transitAliasSet = toSet(transitAliases)
	return c
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// StoreTotal total de tiendas en todas las regiones.
func (c *Catalog) StoreTotal() int { return len(c.storeSet) }

// SectorTotal total de sectores de CD.
func (c *Catalog) SectorTotal() int { return len(c.sectorSet) }

// Origins orígenes conocidos de la categoría en orden de catálogo.
func (c *Catalog) Origins(category string) []string {
	switch category {
	case entity.CategoryStore:
		var out []string
		for _, r := range c.Regions {
			out = append(out, r.Stores...)
		}
		return out
	case entity.CategorySector:
		return append([]string(nil), c.Sectors...)
	case entity.CategorySupplier:
		return append([]string(nil), c.Suppliers...)
	}
	return nil
}

// Known indica si origin es un origen conocido para la categoría.
func (c *Catalog) Known(category, origin string) bool {
	var ok bool
	switch category {
	case entity.CategoryStore:
		_, ok = c.storeSet[origin]
	case entity.CategorySector:
		_, ok = c.sectorSet[origin]
	case entity.CategorySupplier:
		_, ok = c.supplierSet[origin]
	}
	return ok
}

// TransitEligible indica si el origen de tienda es un alias de CD que admite datos de tránsito.
func (c *Catalog) TransitEligible(origin string) bool {
	_, ok := c.transitAliasSet[origin]
	return ok
}

// Classify devuelve la familia del tipo de activo; ok=false cuando cae en FamilyOther.
func (c *Catalog) Classify(assetType string) (Family, bool) {
	if f, ok := c.familyByAsset[assetType]; ok {
		return f, true
	}
	return FamilyOther, false
}

// DCBySector resuelve el CD de un sector o proveedor por sigla contenida en el nombre:
// "ES" → CD ES, "RJ" → CD RJ, cualquier otro → CD por defecto.
func (c *Catalog) DCBySector(origin string) DistributionCenter {
	for _, code := range []string{"ES", "RJ"} {
		if strings.Contains(origin, code) {
			if dc, ok := c.dcByCode(code); ok {
				return dc
			}
		}
	}
	dc, _ := c.dcByCode(c.DefaultDC)
	return dc
}

// DCByCity resuelve el CD por el nombre completo de la ciudad contenido en origin,
// sin distinguir mayúsculas ni acentos.
func (c *Catalog) DCByCity(origin string) (DistributionCenter, bool) {
	folded := Fold(origin)
	for _, dc := range c.DCs {
		if strings.Contains(folded, Fold(dc.City)) {
			return dc, true
		}
	}
	return DistributionCenter{}, false
}

func (c *Catalog) dcByCode(code string) (DistributionCenter, bool) {
	for _, dc := range c.DCs {
		if dc.Code == code {
			return dc, true
		}
	}
	return DistributionCenter{}, false
}

// Fold normaliza un texto a minúsculas sin marcas diacríticas ("São Paulo" → "sao paulo").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
