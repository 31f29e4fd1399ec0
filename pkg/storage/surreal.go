package storage

import (
	"encoding/json"
	"fmt"

	"baitbot/pkg/ledger"
)

const (
	surrealTable    = "bait_state"
	surrealRecordID = "main"
)

// RecordClient is the part of surreal.Client the store needs.
type RecordClient interface {
	SelectRecord(table, id string) ([]interface{}, error)
	UpsertRecord(table, id string, content interface{}) error
}

// SurrealStore keeps the whole document as the single record bait_state:main.
type SurrealStore struct {
	client RecordClient
}

func NewSurrealStore(client RecordClient) *SurrealStore {
	return &SurrealStore{client: client}
}

func (s *SurrealStore) Load() (*ledger.Document, error) {
	rows, err := s.client.SelectRecord(surrealTable, surrealRecordID)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", surrealTable, err)
	}
	if len(rows) == 0 {
		return ledger.NewDocument(), nil
	}

	row := rows[0]
	if m, ok := row.(map[string]interface{}); ok {
		delete(m, "id")
	}

	// Round-trip through JSON to turn the driver's generic maps into a Document.
	data, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("re-encode %s row: %w", surrealTable, err)
	}
	doc := ledger.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode %s row: %w", surrealTable, err)
	}
	return normalize(doc), nil
}

func (s *SurrealStore) Save(doc *ledger.Document) error {
	doc = normalize(doc)
	content := map[string]interface{}{
		"scores":           doc.Scores,
		"baits":            doc.Baits,
		"debait_cooldowns": doc.DebaitCooldowns,
	}
	if err := s.client.UpsertRecord(surrealTable, surrealRecordID, content); err != nil {
		return fmt.Errorf("upsert %s: %w", surrealTable, err)
	}
	return nil
}
