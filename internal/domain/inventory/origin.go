package inventory

import (
	"fmt"
	"strings"
)

// OriginAliases nombres históricos del campo "origen" en filas crudas, en orden de prioridad.
var OriginAliases = []string{"origin", "loja", "setor_cd", "setorCd", "fornecedor", "cd_origem", "cdOrigem"}

// ResolveOrigin devuelve el primer valor no vacío entre los alias conocidos del origen.
func ResolveOrigin(row map[string]any) string {
	for _, key := range OriginAliases {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		default:
			s = fmt.Sprint(t)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
