package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed defaults/content.json
var defaultContentJSON []byte

var defaultContent = mustDecodeDefaultContent()

func mustDecodeDefaultContent() *ContentDocument {
	var doc ContentDocument
	if err := json.Unmarshal(defaultContentJSON, &doc); err != nil {
		panic(fmt.Sprintf("embedded default content: %v", err))
	}
	return &doc
}

// DefaultContent returns a fresh copy of the baseline document used when
// the backing store holds no content
func DefaultContent() *ContentDocument {
	return defaultContent.Clone()
}
