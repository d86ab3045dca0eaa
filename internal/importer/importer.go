package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/inventory"
)

// RowError explains why one line of an import was not stored.
type RowError struct {
	Line   int    `json:"line"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

type Result struct {
	Charset string
	Profile string
	Created []*inventory.Item
	Failed  []RowError
}

// categoryAliases maps Japanese category labels onto the seeded English names.
var categoryAliases = map[string]string{
	"ドリンク":  "drinks",
	"飲み物":   "drinks",
	"飲料":    "drinks",
	"アルコール": "alcohol",
	"酒類":    "alcohol",
	"フード":   "food",
	"食品":    "food",
	"食材":    "ingredients",
	"材料":    "ingredients",
	"包材":    "packaging",
	"資材":    "packaging",
	"その他":   "other",
}

type categoryIndex map[string]uuid.UUID

func newCategoryIndex(categories []*inventory.Category) categoryIndex {
	idx := make(categoryIndex, len(categories))
	for _, c := range categories {
		idx[strings.ToLower(c.Name)] = c.ID
	}

	return idx
}

func (idx categoryIndex) lookup(name string) (uuid.UUID, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := idx[key]; ok {
		return id, true
	}

	if alias, ok := categoryAliases[key]; ok {
		id, ok := idx[alias]
		return id, ok
	}

	return uuid.Nil, false
}
