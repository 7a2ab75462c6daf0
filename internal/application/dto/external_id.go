package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ExternalID identificador emitido por el servicio de identidad (usuarios, empresas).
// Según el proveedor llega como texto ("7") o como número (7); se guarda siempre como texto.
type ExternalID string

// UnmarshalJSON acepta string, número entero o null.
func (id *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ExternalID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identificador: se espera texto o número: %w", err)
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("identificador %s: debe ser un entero", n)
	}
	*id = ExternalID(n.String())
	return nil
}

// String devuelve el identificador como texto.
func (id ExternalID) String() string { return string(id) }
