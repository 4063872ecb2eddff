package catalog

import (
	"fmt"
	"sync"
)

// Siglas de los centros de distribución.
const (
	DCSaoPaulo      = "SP"
	DCRioDeJaneiro  = "RJ"
	DCEspiritoSanto = "ES"
)

// Familias conocidas.
const (
	FamilyHB       Family = "Caixas HB"
	FamilyPallets  Family = "Paletes"
	FamilyHandling Family = "Equipamentos de Movimentação"
	FamilyPlastic  Family = "Embalagens Plásticas"
)

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default devuelve el catálogo de producción (50 tiendas, 3 CDs, 3 proveedores).
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(
			[]Region{
				{Name: "Capital SP", Stores: storeRange(1, 15)},
				{Name: "Grande SP", Stores: storeRange(16, 25)},
				{Name: "Interior SP", Stores: storeRange(26, 35)},
				{Name: "Rio de Janeiro", Stores: storeRange(36, 44)},
				{Name: "Espírito Santo", Stores: storeRange(45, 50)},
			},
			[]string{
				"CD SP - Recebimento",
				"CD SP - Expedição",
				"CD SP - Armazenagem",
				"CD SP - Manutenção",
				"CD RJ - Recebimento",
				"CD RJ - Expedição",
				"CD ES - Armazenagem",
				"CD ES - Expedição",
			},
			[]DistributionCenter{
				{Code: DCSaoPaulo, Name: "CD São Paulo", City: "São Paulo"},
				{Code: DCRioDeJaneiro, Name: "CD Rio de Janeiro", City: "Rio de Janeiro"},
				{Code: DCEspiritoSanto, Name: "CD Espírito Santo", City: "Espírito Santo"},
			},
			DCSaoPaulo,
			[]string{"CD São Paulo", "CD Rio de Janeiro"},
			[]string{
				"HB 623", "HB 618", "HB 520", "HB 418",
				"Palete PBR", "Palete Descartável", "Palete Chep",
				"Dolly", "Gaiola", "Carrinho Plataforma",
				"Caixa Plástica Vazada", "Caixa Plástica Fechada", "Bandeja",
			},
			[]string{"Plastimax", "Paletrans", "Logibox"},
			[]FamilyGroup{
				{Family: FamilyHB, Assets: []string{"HB 623", "HB 618", "HB 520", "HB 418"}},
				{Family: FamilyPallets, Assets: []string{"Palete PBR", "Palete Descartável", "Palete Chep"}},
				{Family: FamilyHandling, Assets: []string{"Dolly", "Gaiola", "Carrinho Plataforma"}},
				{Family: FamilyPlastic, Assets: []string{"Caixa Plástica Vazada", "Caixa Plástica Fechada", "Bandeja"}},
			},
		)
	})
	return defaultCatalog
}

func storeRange(from, to int) []string {
	stores := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		stores = append(stores, fmt.Sprintf("Loja %d", i))
	}
	return stores
}
