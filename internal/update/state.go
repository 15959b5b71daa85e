package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/mindflow/internal/model"
)

// uiState is what survives a restart besides the database: the last view
// and the priority filter.
type uiState struct {
	View     View           `json:"view"`
	Priority model.Priority `json:"priority,omitempty"`
}

func (m *Model) persistUIState() error {
	if strings.TrimSpace(m.stateFilePath) == "" {
		return nil
	}
	dir := filepath.Dir(m.stateFilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(uiState{View: m.CurrentView, Priority: m.Filter.Priority}, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.stateFilePath + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.stateFilePath)
}

func loadUIState(path string) (uiState, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return uiState{}, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return uiState{}, nil
		}
		return uiState{}, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return uiState{}, nil
	}
	var state uiState
	if err := json.Unmarshal(raw, &state); err != nil {
		return uiState{}, err
	}
	if !isKnownView(state.View) {
		state.View = ""
	}
	if state.Priority != "" && !state.Priority.IsValid() {
		state.Priority = ""
	}
	return state, nil
}
