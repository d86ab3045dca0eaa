package importcsv

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/importer"
)

type createdItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity int64     `json:"quantity"`
	Unit     string    `json:"unit"`
}

type importResponse struct {
	Charset  string              `json:"charset"`
	Profile  string              `json:"profile"`
	Imported int                 `json:"imported"`
	Created  []createdItem       `json:"created"`
	Failed   []importer.RowError `json:"failed"`
}

func toResponse(r *importer.Result) importResponse {
	resp := importResponse{
		Charset:  r.Charset,
		Profile:  r.Profile,
		Imported: len(r.Created),
		Created:  make([]createdItem, len(r.Created)),
		Failed:   r.Failed,
	}

	if resp.Failed == nil {
		resp.Failed = []importer.RowError{}
	}

	for i, item := range r.Created {
		resp.Created[i] = createdItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		}
	}

	return resp
}
