package webdav

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

// Remote layout is fixed: two JSON documents under one parent folder whose
// names are shared with the companion mobile client and not configurable.
const (
	syncFolder   = "/Deadliner"
	backupPath   = syncFolder + "/backup.json"
	snapshotPath = syncFolder + "/snapshot-v1.json"

	defaultTimeout = 30 * time.Second
)

// Config carries the WebDAV endpoint credentials. All three fields are
// required.
type Config struct {
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Config) validate() error {
	var missing string
	switch {
	case strings.TrimSpace(c.URL) == "":
		missing = "url"
	case strings.TrimSpace(c.Username) == "":
		missing = "username"
	case strings.TrimSpace(c.Password) == "":
		missing = "password"
	default:
		return nil
	}
	return &Error{
		Kind:    KindConfigIncomplete,
		Op:      "configure",
		Message: fmt.Sprintf("missing %s", missing),
	}
}

// TestResult reduces a connection probe to a displayable outcome.
type TestResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// UploadResult reports where an upload landed, or why it did not.
type UploadResult struct {
	Success    bool   `json:"success"`
	RemotePath string `json:"remotePath,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Client is a stateless wrapper around one remote WebDAV endpoint. It
// reads and writes exactly two documents: the native backup and the mobile
// snapshot.
type Client struct {
	http   *resty.Client
	logger *logger.Logger
}

// New validates cfg and builds a client. No connection is attempted until
// the first operation.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	if err := cfg.validate(); err != nil {
		log.Err(err).Str("func", "webdav.New").Msg("rejected incomplete webdav config")
		return nil, err
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetBasicAuth(cfg.Username, cfg.Password).
		SetTimeout(defaultTimeout)

	return &Client{http: cli, logger: log}, nil
}

// TestConnection probes the endpoint by listing the root collection.
func (c *Client) TestConnection(ctx context.Context) TestResult {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Depth", "1").
		Execute("PROPFIND", "/")
	if err != nil {
		connErr := c.wrapTransport("test-connection", err)
		return TestResult{Success: false, Error: connErr.Error()}
	}
	if mapped := mapStatus("test-connection", resp); mapped != nil {
		return TestResult{Success: false, Error: mapped.Error()}
	}
	return TestResult{Success: true}
}

// UploadBackup writes the full backup document to its fixed remote path,
// overwriting any previous version.
func (c *Client) UploadBackup(ctx context.Context, backup models.Backup) (UploadResult, error) {
	return c.uploadJSON(ctx, "upload-backup", backupPath, backup)
}

// UploadSnapshot writes the mobile-format snapshot document to its fixed
// remote path.
func (c *Client) UploadSnapshot(ctx context.Context, snapshot models.Snapshot) (UploadResult, error) {
	return c.uploadJSON(ctx, "upload-snapshot", snapshotPath, snapshot)
}

// DownloadBackup fetches and parses the remote backup document. A missing
// file surfaces as KindNotFound.
func (c *Client) DownloadBackup(ctx context.Context) (*models.Backup, error) {
	var backup models.Backup
	if err := c.downloadJSON(ctx, "download-backup", backupPath, &backup); err != nil {
		return nil, err
	}
	return &backup, nil
}

// DownloadSnapshot fetches and parses the remote mobile snapshot document.
func (c *Client) DownloadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := c.downloadJSON(ctx, "download-snapshot", snapshotPath, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *Client) uploadJSON(ctx context.Context, op, path string, payload any) (UploadResult, error) {
	if err := c.ensureFolder(ctx); err != nil {
		return UploadResult{Success: false, Error: err.Error()}, err
	}

	// Pretty-printed so the remote file stays hand-inspectable.
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		wrapped := &Error{Kind: KindMalformedResponse, Op: op, Message: "failed to serialize payload", Err: err}
		return UploadResult{Success: false, Error: wrapped.Error()}, wrapped
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put(path)
	if err != nil {
		wrapped := c.wrapTransport(op, err)
		return UploadResult{Success: false, Error: wrapped.Error()}, wrapped
	}
	if mapped := mapStatus(op, resp); mapped != nil {
		c.logger.Err(mapped).Str("func", "Client.uploadJSON").Str("path", path).Msg("remote rejected upload")
		return UploadResult{Success: false, Error: mapped.Error()}, mapped
	}

	c.logger.Debug().Str("func", "Client.uploadJSON").Str("path", path).Msg("uploaded document")

	return UploadResult{Success: true, RemotePath: path}, nil
}

func (c *Client) downloadJSON(ctx context.Context, op, path string, target any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return c.wrapTransport(op, err)
	}
	if mapped := mapStatus(op, resp); mapped != nil {
		return mapped
	}

	if err := json.Unmarshal(resp.Body(), target); err != nil {
		c.logger.Err(err).Str("func", "Client.downloadJSON").Str("path", path).Msg("remote document is not valid JSON")
		return &Error{Kind: KindMalformedResponse, Op: op, Message: "remote document is not valid JSON", Err: err}
	}

	return nil
}

// ensureFolder makes sure the fixed parent folder exists: stat first, then
// create on failure, tolerating a concurrent create having won the race.
func (c *Client) ensureFolder(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Depth", "0").
		Execute("PROPFIND", syncFolder)
	if err != nil {
		return c.wrapTransport("ensure-folder", err)
	}
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}
	if mapped := mapStatus("ensure-folder", resp); mapped != nil && KindOf(mapped) == KindUnauthorized {
		return mapped
	}

	resp, err = c.http.R().
		SetContext(ctx).
		Execute("MKCOL", syncFolder)
	if err != nil {
		return c.wrapTransport("ensure-folder", err)
	}
	// 405 means the collection already exists.
	if resp.StatusCode() == http.StatusMethodNotAllowed {
		return nil
	}
	return mapStatus("ensure-folder", resp)
}

func (c *Client) wrapTransport(op string, err error) *Error {
	connErr := &Error{Kind: KindConnectionFailed, Op: op, Err: err}
	c.logger.Err(err).Str("func", "Client."+op).Msg("webdav transport failure")
	return connErr
}

func mapStatus(op string, resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &Error{Kind: KindUnauthorized, Op: op, Message: body}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Op: op, Message: body}
	default:
		return &Error{Kind: KindRemote, Op: op, Message: fmt.Sprintf("http %d: %s", code, body)}
	}
}
