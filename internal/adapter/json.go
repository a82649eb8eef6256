package adapter

import (
	"encoding/json"
	"io"
)

// JSON defines the codec used for change events and API payloads, mockable in tests
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Decode reads a single JSON value from r
	Decode(r io.Reader, v any) error
}

// RealJSON implements JSON using encoding/json
type RealJSON struct{}

// NewJSON creates a new real JSON implementation
func NewJSON() JSON {
	return &RealJSON{}
}

func (j *RealJSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (j *RealJSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (j *RealJSON) Decode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
