package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDoc_Registered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	for _, p := range []string{
		"/branches", "/branches/{id}", "/branches/{id}/users", "/branches/{id}/users/{user_id}",
		"/branches/{id}/warehouses", "/warehouses", "/warehouses/{id}", "/warehouses/{id}/branches",
		"/warehouses/{id}/branches/{branch_id}",
	} {
		assert.Contains(t, doc.Paths, p)
	}
	assert.Contains(t, doc.Paths["/branches/{id}"], "patch")
}
