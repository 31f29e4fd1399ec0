package surreal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid simple", "bait_state", false},
		{"Valid with numbers", "ledger2", false},
		{"Valid with mixed case", "BaitState", false},
		{"Invalid space", "bait state", true},
		{"Invalid semicolon", "bait;state", true},
		{"Invalid dash", "bait-state", true},
		{"Invalid empty", "", true},
		{"Invalid SQL injection", "bait_state; REMOVE TABLE bait_state", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateIdentifier(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("validateIdentifier() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type queryResult struct {
	Status string
	Result interface{}
}

func TestUnwrapResult(t *testing.T) {
	rows := []interface{}{map[string]interface{}{"id": "bait_state:main"}}

	t.Run("struct pointer", func(t *testing.T) {
		assert.Equal(t, rows, unwrapResult(&queryResult{Status: "OK", Result: rows}))
	})

	t.Run("slice takes last statement", func(t *testing.T) {
		res := []queryResult{{Result: "first"}, {Result: rows}}
		assert.Equal(t, rows, unwrapResult(&res))
	})

	t.Run("nil pointer", func(t *testing.T) {
		var res *queryResult
		assert.Nil(t, unwrapResult(res))
	})

	t.Run("passthrough", func(t *testing.T) {
		assert.Equal(t, "raw", unwrapResult("raw"))
	})
}

// SelectRecord and UpsertRecord need a live SurrealDB; only identifier
// validation is reachable without one.
func TestRecordHelpers_RejectBadTable(t *testing.T) {
	c := &Client{}

	_, err := c.SelectRecord("bad table", "main")
	assert.Error(t, err)

	err = c.UpsertRecord("bad;table", "main", map[string]interface{}{})
	assert.Error(t, err)
}
