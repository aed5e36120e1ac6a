package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/XiaoChennnng/Deadliner-Client/internal/crypto"
	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

const (
	plainFileName  = "app_settings.json"
	secureFileName = "secure_settings.dat"

	// secureStoreLabel domain-separates the settings key from any future
	// consumer of the same master secret.
	secureStoreLabel = "deadliner/secure-settings/v1"
)

// StorePaths reports where the two partitions live on disk. Debug use only.
type StorePaths struct {
	Settings string `json:"settings"`
	Secure   string `json:"secure"`
}

// Manager owns the two settings partitions: a plaintext document for UI,
// preference and feature state, and an encrypted document for secrets.
// Secrets never touch the plaintext file; if the encrypted partition cannot
// be opened, every secure accessor fails rather than falling back.
//
// All methods are safe for concurrent use. Mutations are persisted to disk
// before returning.
type Manager struct {
	mu sync.Mutex

	plain  Document
	secure Document

	plainPath  string
	securePath string

	keychain crypto.KeyChain
	storeKey []byte

	logger *logger.Logger
}

// NewManager opens (creating on first run) both settings partitions under
// dataDir and runs schema migrations on the plaintext document.
//
// A keystore that exists but cannot be loaded, or a secure file that cannot
// be unsealed, is fatal: the error wraps [ErrSecureStoreUnavailable] and the
// manager is not constructed.
func NewManager(dataDir string, keychain crypto.KeyChain, log *logger.Logger) (*Manager, error) {
	m := &Manager{
		plain:      Document{},
		secure:     Document{},
		plainPath:  filepath.Join(dataDir, plainFileName),
		securePath: filepath.Join(dataDir, secureFileName),
		keychain:   keychain,
		logger:     log,
	}

	master, err := keychain.LoadOrCreateMasterSecret()
	if err != nil {
		log.Err(err).Str("func", "NewManager").Msg("failed to load master secret")
		return nil, fmt.Errorf("%w: %w", ErrSecureStoreUnavailable, err)
	}
	m.storeKey, err = keychain.DeriveStoreKey(master, secureStoreLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSecureStoreUnavailable, err)
	}

	if err := m.loadPlain(); err != nil {
		return nil, err
	}
	if err := m.loadSecure(); err != nil {
		return nil, err
	}

	if err := m.migrateSchema(); err != nil {
		return nil, err
	}

	log.Debug().Str("func", "NewManager").Str("dir", dataDir).Msg("settings store opened")

	return m, nil
}

func (m *Manager) loadPlain() error {
	raw, err := os.ReadFile(m.plainPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := json.Unmarshal(raw, &m.plain); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", m.plainPath, err)
	}
	return nil
}

func (m *Manager) loadSecure() error {
	raw, err := os.ReadFile(m.securePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: failed to read secure file: %w", ErrSecureStoreUnavailable, err)
	}

	if err := m.keychain.Open(string(raw), m.storeKey, &m.secure); err != nil {
		m.logger.Err(err).Str("func", "Manager.loadSecure").Msg("failed to unseal secure settings")
		return fmt.Errorf("%w: %w", ErrSecureStoreUnavailable, err)
	}
	return nil
}

func (m *Manager) savePlain() error {
	raw, err := json.MarshalIndent(m.plain, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := os.WriteFile(m.plainPath, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func (m *Manager) saveSecure() error {
	sealed, err := m.keychain.Seal(m.secure, m.storeKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSecureStoreUnavailable, err)
	}
	if err := os.WriteFile(m.securePath, []byte(sealed), 0o600); err != nil {
		return fmt.Errorf("%w: failed to write secure file: %w", ErrSecureStoreUnavailable, err)
	}
	return nil
}

// migrateSchema brings the plaintext document up to the current schema
// version. Migration 1 seeds the six default sections, layering any stored
// keys over the defaults one key deep so user values win per key.
func (m *Manager) migrateSchema() error {
	from := asInt(m.getLocked("app.settingsSchema", 0))
	if from >= schemaVersion {
		return nil
	}

	if from < 1 {
		defaults := defaultSections()
		for _, name := range sectionNames {
			stored := m.plain.Section(name)
			m.plain[name] = mergeSection(defaults[name], stored)
		}
	}

	m.plain.Set("app.settingsSchema", schemaVersion)

	m.logger.Info().
		Str("func", "Manager.migrateSchema").
		Int("from", from).
		Int("to", schemaVersion).
		Msg("settings schema migrated")

	return m.savePlain()
}

func (m *Manager) getLocked(key string, def any) any {
	if v, ok := m.plain.Get(key); ok {
		return v
	}
	return def
}

// Get returns the plaintext value at a dotted key, or def when absent.
func (m *Manager) Get(key string, def any) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(key, def)
}

// Set writes a plaintext value at a dotted key and persists.
func (m *Manager) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plain.Set(key, value)
	return m.savePlain()
}

// Has reports whether a plaintext dotted key exists.
func (m *Manager) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plain.Has(key)
}

// Delete removes a plaintext dotted key and persists.
func (m *Manager) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plain.Delete(key)
	return m.savePlain()
}

// GetSecure returns the encrypted-partition value at a dotted key, or def
// when absent.
func (m *Manager) GetSecure(key string, def any) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.secure.Get(key); ok {
		return v
	}
	return def
}

// SetSecure writes an encrypted-partition value and persists the sealed
// file.
func (m *Manager) SetSecure(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secure.Set(key, value)
	return m.saveSecure()
}

// HasSecure reports whether an encrypted-partition dotted key exists.
func (m *Manager) HasSecure(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.secure.Has(key)
}

// DeleteSecure removes an encrypted-partition dotted key and persists.
func (m *Manager) DeleteSecure(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secure.Delete(key)
	return m.saveSecure()
}

// GetAll returns a deep copy of the whole plaintext document.
func (m *Manager) GetAll() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneMap(m.plain)
}

func (m *Manager) getSection(name string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneMap(m.plain.Section(name))
}

func (m *Manager) mergeIntoSection(name string, update map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plain[name] = mergeSection(m.plain.Section(name), update)
	return m.savePlain()
}

// GetUISettings returns the ui section.
func (m *Manager) GetUISettings() map[string]any { return m.getSection("ui") }

// SetUISettings merges a partial update into the ui section, one key deep.
func (m *Manager) SetUISettings(update map[string]any) error {
	return m.mergeIntoSection("ui", update)
}

// GetNotificationSettings returns the notifications section.
func (m *Manager) GetNotificationSettings() map[string]any { return m.getSection("notifications") }

// SetNotificationSettings merges a partial update into the notifications
// section.
func (m *Manager) SetNotificationSettings(update map[string]any) error {
	return m.mergeIntoSection("notifications", update)
}

// GetFeatureSettings returns the features section.
func (m *Manager) GetFeatureSettings() map[string]any { return m.getSection("features") }

// SetFeatureSettings merges a partial update into the features section.
func (m *Manager) SetFeatureSettings(update map[string]any) error {
	return m.mergeIntoSection("features", update)
}

// GetUserPreferences returns the preferences section.
func (m *Manager) GetUserPreferences() map[string]any { return m.getSection("preferences") }

// SetUserPreferences merges a partial update into the preferences section.
func (m *Manager) SetUserPreferences(update map[string]any) error {
	return m.mergeIntoSection("preferences", update)
}

// GetAppInfo returns the app section.
func (m *Manager) GetAppInfo() map[string]any { return m.getSection("app") }

// GetSyncSettings returns the sync section with the WebDAV password pulled
// live from the encrypted partition when the provider is webdav. The stored
// document is never touched.
func (m *Manager) GetSyncSettings() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	section := cloneMap(m.plain.Section("sync"))
	if section == nil {
		return nil
	}

	if provider, _ := section["provider"].(string); provider == "webdav" {
		webdav, ok := section["webdav"].(map[string]any)
		if !ok {
			webdav = map[string]any{}
			section["webdav"] = webdav
		}
		password := ""
		if v, ok := m.secure.Get("sync.webdav.password"); ok {
			password, _ = v.(string)
		}
		webdav["password"] = password
	}

	return section
}

// SetSyncSettings merges a partial update into the sync section. A password
// inside update["webdav"] is stripped out and written to the encrypted
// partition instead; it must never reach the plaintext file.
func (m *Manager) SetSyncSettings(update map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	update = cloneMap(update)
	if webdav, ok := update["webdav"].(map[string]any); ok {
		if password, ok := webdav["password"].(string); ok && password != "" {
			m.secure.Set("sync.webdav.password", password)
			if err := m.saveSecure(); err != nil {
				return err
			}
		}
		delete(webdav, "password")
	}

	m.plain["sync"] = mergeSection(m.plain.Section("sync"), update)
	return m.savePlain()
}

// GetAISettings assembles the AI configuration: the enabled flag and
// provider mirror the plaintext features section, everything else lives in
// the encrypted partition only.
func (m *Manager) GetAISettings() models.AISettings {
	m.mu.Lock()
	defer m.mu.Unlock()

	features := m.plain.Section("features")

	settings := models.AISettings{
		Provider:    "openai",
		Model:       "gpt-3.5-turbo",
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	if v, ok := features["aiEnabled"].(bool); ok {
		settings.Enabled = v
	}
	if v, ok := features["aiProvider"].(string); ok {
		settings.Provider = v
	}
	if v, ok := m.secure.Get("ai.apiKey"); ok {
		settings.APIKey, _ = v.(string)
	}
	if v, ok := m.secure.Get("ai.model"); ok {
		if s, ok := v.(string); ok {
			settings.Model = s
		}
	}
	if v, ok := m.secure.Get("ai.temperature"); ok {
		settings.Temperature = asFloat(v)
	}
	if v, ok := m.secure.Get("ai.maxTokens"); ok {
		settings.MaxTokens = asInt(v)
	}

	return settings
}

// SetAISettings applies a partial AI update: enabled and provider mirror
// into the features section, the secret fields go to the encrypted
// partition.
func (m *Manager) SetAISettings(update models.AISettingsUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	plainDirty := false
	if update.Enabled != nil {
		m.plain.Set("features.aiEnabled", *update.Enabled)
		plainDirty = true
	}
	if update.Provider != nil {
		m.plain.Set("features.aiProvider", *update.Provider)
		plainDirty = true
	}
	if plainDirty {
		if err := m.savePlain(); err != nil {
			return err
		}
	}

	secureDirty := false
	if update.APIKey != nil {
		m.secure.Set("ai.apiKey", *update.APIKey)
		secureDirty = true
	}
	if update.Model != nil {
		m.secure.Set("ai.model", *update.Model)
		secureDirty = true
	}
	if update.Temperature != nil {
		m.secure.Set("ai.temperature", *update.Temperature)
		secureDirty = true
	}
	if update.MaxTokens != nil {
		m.secure.Set("ai.maxTokens", *update.MaxTokens)
		secureDirty = true
	}
	if secureDirty {
		return m.saveSecure()
	}

	return nil
}

// UpdateAppLaunch bumps the launch counter and records the launch time.
// Called once per process start.
func (m *Manager) UpdateAppLaunch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := asInt(m.getLocked("app.launchCount", 0))
	m.plain.Set("app.launchCount", count+1)
	m.plain.Set("app.lastLaunchTime", time.Now().UnixMilli())
	m.plain.Set("app.firstRun", false)

	return m.savePlain()
}

// ExportSettings returns a deep copy of the plaintext document plus export
// metadata. Secrets are never included.
func (m *Manager) ExportSettings() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	export := cloneMap(m.plain)
	export["exportedAt"] = time.Now().UnixMilli()
	export["version"] = m.getLocked("app.version", "")

	return export
}

// ImportSettings replaces top-level plaintext keys with the imported
// values verbatim. Known metadata keys are stripped first. The encrypted
// partition is untouched.
func (m *Manager) ImportSettings(doc map[string]any) error {
	if doc == nil {
		return ErrInvalidImport
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, value := range doc {
		if key == "exportedAt" || key == "version" {
			continue
		}
		m.plain[key] = cloneValue(value)
	}

	return m.savePlain()
}

// Reset clears both partitions and re-seeds the defaults. Encrypted
// contents are lost.
func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plain = Document{}
	m.secure = Document{}
	if err := m.saveSecure(); err != nil {
		return err
	}

	m.logger.Warn().Str("func", "Manager.Reset").Msg("settings reset to defaults")

	return m.migrateSchema()
}

// StorePaths reports the partition file locations.
func (m *Manager) StorePaths() StorePaths {
	return StorePaths{
		Settings: m.plainPath,
		Secure:   m.securePath,
	}
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// asInt tolerates the two numeric shapes present in the document: native
// ints written in-process and float64 produced by JSON decoding.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
