package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalStringThreeStates(t *testing.T) {
	type payload struct {
		Description OptionalString `json:"description"`
	}

	tests := []struct {
		name      string
		body      string
		wantWrite bool
		wantValue string
	}{
		{name: "absent leaves unchanged", body: `{}`, wantWrite: false},
		{name: "null overwrites with empty", body: `{"description":null}`, wantWrite: true, wantValue: ""},
		{name: "value overwrites", body: `{"description":"new text"}`, wantWrite: true, wantValue: "new text"},
		{name: "empty string overwrites", body: `{"description":""}`, wantWrite: true, wantValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			value, write := p.Description.Get()
			assert.Equal(t, tt.wantWrite, write)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestOptionalStringRejectsNonString(t *testing.T) {
	var o OptionalString
	assert.Error(t, json.Unmarshal([]byte(`42`), &o))
}
