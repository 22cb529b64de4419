package handler

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRef_Unmarshal(t *testing.T) {
	id := uuid.MustParse("6f1a2b3c-4d5e-4f60-8a7b-9c0d1e2f3a4b")

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"bare string", `"` + id.String() + `"`, false},
		{"mongo style object", `{"_id":"` + id.String() + `"}`, false},
		{"id object", `{"id":"` + id.String() + `"}`, false},
		{"not a uuid", `"uthappizza"`, true},
		{"number", `42`, true},
		{"empty object", `{}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref favoriteRef
			err := json.Unmarshal([]byte(tt.input), &ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, ref.ID)
		})
	}
}
