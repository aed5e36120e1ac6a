package models

// BackupVersion is the format marker written into every backup document.
const BackupVersion = "1.0"

// Backup is the full-dataset document uploaded to the remote as backup.json
// and produced by the facade's export. Settings hold the plaintext settings
// tree only; secrets are never exported.
type Backup struct {
	Tasks      []Task         `json:"tasks"`
	Categories []Category     `json:"categories"`
	Settings   map[string]any `json:"settings,omitempty"`
	ExportedAt int64          `json:"exportedAt"`
	Version    string         `json:"version"`
}

// AISettings is the assembled AI configuration view. Enabled and Provider
// are mirrored from the plaintext features section; the remaining fields
// live exclusively in the encrypted settings partition.
type AISettings struct {
	Enabled     bool    `json:"enabled"`
	Provider    string  `json:"provider"`
	APIKey      string  `json:"apiKey"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

// AISettingsUpdate is a typed partial update for AISettings; nil fields are
// left untouched.
type AISettingsUpdate struct {
	Enabled     *bool    `json:"enabled,omitempty"`
	Provider    *string  `json:"provider,omitempty"`
	APIKey      *string  `json:"apiKey,omitempty"`
	Model       *string  `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"maxTokens,omitempty"`
}
