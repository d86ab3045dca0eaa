package settings

import (
	"time"

	"github.com/MrJamesThe3rd/till/internal/settings"
)

type settingResponse struct {
	Key       settings.Key `json:"key"`
	Value     string       `json:"value"`
	Default   bool         `json:"default"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
}

func toResponse(st settings.Setting) settingResponse {
	return settingResponse{
		Key:       st.Key,
		Value:     st.Value,
		Default:   st.UpdatedAt == nil,
		UpdatedAt: st.UpdatedAt,
	}
}
