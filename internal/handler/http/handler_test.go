package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/XiaoChennnng/Deadliner-Client/internal/config"
	"github.com/XiaoChennnng/Deadliner-Client/internal/crypto"
	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/internal/service"
	"github.com/XiaoChennnng/Deadliner-Client/internal/settings"
	"github.com/XiaoChennnng/Deadliner-Client/internal/store"
	"github.com/XiaoChennnng/Deadliner-Client/internal/webdav"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	log := logger.NewLogger("test")

	storages, err := store.NewStorages(config.Storage{DSN: ":memory:"}, log)
	if err != nil {
		t.Fatalf("failed to build storages: %v", err)
	}
	keychain := crypto.NewKeyChain(filepath.Join(dir, "keystore.json"))
	settingsMgr, err := settings.NewManager(dir, keychain, log)
	if err != nil {
		t.Fatalf("failed to build settings manager: %v", err)
	}

	factory := func(cfg webdav.Config) (service.Remote, error) {
		return webdav.New(cfg, log)
	}
	svc := service.NewStorageService(storages, settingsMgr, factory, time.Hour, ":memory:", log)
	t.Cleanup(func() { svc.Close() })

	server := httptest.NewServer(NewHandler(svc, log).Init())
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func validTask(id string) map[string]any {
	return map[string]any{
		"id":       id,
		"title":    "write report",
		"type":     "task",
		"priority": "high",
		"category": "work",
	}
}

func TestTasksEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/tasks/", validTask("t-1"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created models.Task
	decode(t, resp, &created)
	if created.ID != "t-1" {
		t.Errorf("unexpected created task: %+v", created)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/tasks/", validTask("t-1"))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate id, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/tasks/", map[string]any{"id": "t-2"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid input, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/tasks/", nil)
	var tasks []models.Task
	decode(t, resp, &tasks)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/tasks/missing/", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing task, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPatch, server.URL+"/api/tasks/t-1/", map[string]any{"completed": true})
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 for update, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPatch, server.URL+"/api/tasks/missing/", map[string]any{"completed": true})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for update of missing task, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/tasks/t-1/archive", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 for archive, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/stats", nil)
	var stats models.TaskStats
	decode(t, resp, &stats)
	if stats.ArchivedTasks != 1 || stats.CompletedTasks != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/tasks/t-1/", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 for delete, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/tasks/", nil)
	tasks = nil
	decode(t, resp, &tasks)
	if len(tasks) != 0 {
		t.Errorf("expected deleted task hidden, got %+v", tasks)
	}
}

func TestBatchUpdateEndpoint(t *testing.T) {
	server := newTestServer(t)

	for _, id := range []string{"t-1", "t-2"} {
		if resp := doJSON(t, http.MethodPost, server.URL+"/api/tasks/", validTask(id)); resp.StatusCode != http.StatusCreated {
			t.Fatalf("failed to seed %s: %d", id, resp.StatusCode)
		}
	}

	resp := doJSON(t, http.MethodPatch, server.URL+"/api/tasks/batch", map[string]any{
		"ids":    []string{"t-1", "t-2"},
		"update": map[string]any{"isArchived": true},
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/stats", nil)
	var stats models.TaskStats
	decode(t, resp, &stats)
	if stats.ArchivedTasks != 2 {
		t.Errorf("expected 2 archived tasks, got %+v", stats)
	}
}

func TestCategoriesAndCheckinsEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/categories/", map[string]any{"id": "work", "name": "Work"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	habit := validTask("h-1")
	habit["type"] = "habit"
	if resp := doJSON(t, http.MethodPost, server.URL+"/api/tasks/", habit); resp.StatusCode != http.StatusCreated {
		t.Fatalf("failed to seed habit: %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/tasks/h-1/checkins", map[string]any{
		"id":          "ci-1",
		"checkinDate": time.Now().Format(time.RFC3339),
		"completed":   true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/tasks/h-1/checkins", nil)
	var checkins []models.HabitCheckin
	decode(t, resp, &checkins)
	if len(checkins) != 1 || checkins[0].TaskID != "h-1" {
		t.Errorf("unexpected checkins: %+v", checkins)
	}

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/categories/work", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodDelete, server.URL+"/api/categories/work", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 on double delete, got %d", resp.StatusCode)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/settings/ui", nil)
	var ui map[string]any
	decode(t, resp, &ui)
	if ui["theme"] != "auto" {
		t.Errorf("unexpected default theme: %v", ui["theme"])
	}

	resp = doJSON(t, http.MethodPut, server.URL+"/api/settings/ui", map[string]any{"theme": "dark"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/settings/ui", nil)
	decode(t, resp, &ui)
	if ui["theme"] != "dark" {
		t.Errorf("expected updated theme, got %v", ui["theme"])
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/settings/nonsense", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown section, got %d", resp.StatusCode)
	}

	// The stored API key never travels back over the wire.
	resp = doJSON(t, http.MethodPut, server.URL+"/api/settings/ai", map[string]any{"apiKey": "sk-secret"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/api/settings/ai", nil)
	var ai models.AISettings
	decode(t, resp, &ai)
	if ai.APIKey != "" {
		t.Error("expected apiKey redacted in responses")
	}
}

func TestDataEndpoints_RoundTrip(t *testing.T) {
	server := newTestServer(t)

	if resp := doJSON(t, http.MethodPost, server.URL+"/api/tasks/", validTask("t-1")); resp.StatusCode != http.StatusCreated {
		t.Fatalf("failed to seed task: %d", resp.StatusCode)
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/data/export", nil)
	var backup models.Backup
	decode(t, resp, &backup)
	if len(backup.Tasks) != 1 || backup.Version != models.BackupVersion {
		t.Fatalf("unexpected export: %+v", backup)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/data/import", backup)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var report service.ImportReport
	decode(t, resp, &report)
	if report.TasksImported != 1 {
		t.Errorf("unexpected import report: %+v", report)
	}
}

func TestSyncTestEndpoint_Misconfigured(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/sync/test", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var result webdav.TestResult
	decode(t, resp, &result)
	if result.Success {
		t.Error("expected failure without credentials")
	}
}
