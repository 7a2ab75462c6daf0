package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalID_AceptaTextoYNumero(t *testing.T) {
	cases := map[string]ExternalID{
		`{"user_id": "u-42"}`:           "u-42",
		`{"user_id": " 15 "}`:           "15",
		`{"user_id": 5}`:                "5",
		`{"user_id": 9007199254740993}`: "9007199254740993",
		`{"user_id": null}`:             "",
		`{}`:                            "",
	}
	for body, want := range cases {
		var in AssignUserRequest
		require.NoError(t, json.Unmarshal([]byte(body), &in), body)
		assert.Equal(t, want, in.UserID, body)
	}
}

func TestExternalID_RechazaOtrosTipos(t *testing.T) {
	for _, body := range []string{`{"user_id": 1.5}`, `{"user_id": true}`, `{"user_id": {}}`, `{"user_id": [1]}`} {
		var in AssignUserRequest
		assert.Error(t, json.Unmarshal([]byte(body), &in), body)
	}
}

func TestExternalID_ValidaComoTexto(t *testing.T) {
	assert.NoError(t, Validate(AssignUserRequest{UserID: "5"}))
	assert.Error(t, Validate(AssignUserRequest{UserID: ""}))
}
