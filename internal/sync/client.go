package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Pyro18/codepaw/internal/pet"
	"github.com/Pyro18/codepaw/internal/storage"
)

const (
	// Version is the highest envelope schema this client understands.
	Version = 1

	gistFilename    = "codepaw-pet-data.json"
	gistDescription = "CodePaw Pet Data Sync"
	defaultBaseURL  = "https://api.github.com"
)

// Envelope wraps a full pet record for remote storage. The document is
// written and read wholesale; there are no partial updates.
type Envelope struct {
	PetData     *pet.PetRecord `json:"petData"`
	SyncVersion int            `json:"syncVersion"`
	LastSync    int64          `json:"lastSync"` // unix milliseconds
	DeviceID    string         `json:"deviceId"`
}

// ConfigureResult reports whether a pre-existing remote document was found.
// The caller decides whether to download it or overwrite it; the client
// never picks a side.
type ConfigureResult struct {
	Found  bool
	GistID string
}

// Status describes the remote sync state. LastSync is zero when the remote
// envelope could not be read.
type Status struct {
	Configured bool
	LastSync   time.Time
	DeviceID   string
}

// Client moves a whole pet record to and from a private GitHub Gist.
// Credential and document id live in local settings, never in the record.
type Client struct {
	http     *http.Client
	baseURL  string
	settings *storage.SettingsRepo
	now      func() time.Time
}

func NewClient(settings *storage.SettingsRepo) *Client {
	return &Client{
		http:     &http.Client{Timeout: 15 * time.Second},
		baseURL:  defaultBaseURL,
		settings: settings,
		now:      time.Now,
	}
}

// Configure stores the credential and tries to discover an existing document
// matching the fixed description and filename. Discovery failures degrade to
// "not found"; the first upload will create the document instead.
func (c *Client) Configure(ctx context.Context, token string) (*ConfigureResult, error) {
	if len(token) < 10 {
		return nil, fmt.Errorf("invalid token: too short to be a personal access token")
	}
	if err := c.settings.Set(ctx, storage.SettingSyncToken, token); err != nil {
		return nil, err
	}

	gistID, err := c.findExistingGist(ctx, token)
	if err != nil || gistID == "" {
		return &ConfigureResult{}, nil
	}
	if err := c.settings.Set(ctx, storage.SettingSyncGistID, gistID); err != nil {
		return nil, err
	}
	return &ConfigureResult{Found: true, GistID: gistID}, nil
}

// Upload writes the full record to the remote document, creating it on first
// use and remembering its id.
func (c *Client) Upload(ctx context.Context, record *pet.PetRecord) error {
	token, err := c.settings.Get(ctx, storage.SettingSyncToken)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNotConfigured
	}
	gistID, err := c.settings.Get(ctx, storage.SettingSyncGistID)
	if err != nil {
		return err
	}
	deviceID, err := c.DeviceID(ctx)
	if err != nil {
		return err
	}

	env := Envelope{
		PetData:     record,
		SyncVersion: Version,
		LastSync:    c.now().UnixMilli(),
		DeviceID:    deviceID,
	}
	content, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	payload := gistPayload{
		Description: gistDescription,
		Public:      false,
		Files:       map[string]gistFile{gistFilename: {Content: string(content)}},
	}

	method, path := http.MethodPost, "/gists"
	if gistID != "" {
		method, path = http.MethodPatch, "/gists/"+gistID
	}
	var created gistDocument
	if err := c.do(ctx, method, path, token, payload, &created); err != nil {
		return err
	}

	if gistID == "" && created.ID != "" {
		if err := c.settings.Set(ctx, storage.SettingSyncGistID, created.ID); err != nil {
			return err
		}
	}
	return nil
}

// Download fetches the remote envelope and returns the embedded record.
// Envelopes written by newer clients are refused, never interpreted.
func (c *Client) Download(ctx context.Context) (*pet.PetRecord, error) {
	env, err := c.fetchEnvelope(ctx)
	if err != nil {
		return nil, err
	}
	if env.SyncVersion > Version {
		return nil, ErrVersionSkew
	}
	if env.PetData == nil {
		return nil, ErrMalformedDocument
	}
	return env.PetData, nil
}

// SyncStatus reports whether sync is configured and, when the remote
// envelope is readable, its last-sync time and source device. Transport
// failures degrade to a configured-but-unknown status, never an error.
func (c *Client) SyncStatus(ctx context.Context) (*Status, error) {
	token, err := c.settings.Get(ctx, storage.SettingSyncToken)
	if err != nil {
		return nil, err
	}
	gistID, err := c.settings.Get(ctx, storage.SettingSyncGistID)
	if err != nil {
		return nil, err
	}
	if token == "" || gistID == "" {
		return &Status{}, nil
	}

	deviceID, err := c.DeviceID(ctx)
	if err != nil {
		return nil, err
	}
	env, err := c.fetchEnvelope(ctx)
	if err != nil {
		return &Status{Configured: true, DeviceID: deviceID}, nil
	}
	return &Status{
		Configured: true,
		LastSync:   time.UnixMilli(env.LastSync),
		DeviceID:   env.DeviceID,
	}, nil
}

// Reset forgets the credential and document id together.
func (c *Client) Reset(ctx context.Context) error {
	return c.settings.DeleteMany(ctx, storage.SettingSyncToken, storage.SettingSyncGistID)
}

// DeviceID returns the stable identifier for this installation, generating
// and persisting one on first use.
func (c *Client) DeviceID(ctx context.Context) (string, error) {
	id, err := c.settings.Get(ctx, storage.SettingSyncDevice)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	id = "device_" + uuid.NewString()
	if err := c.settings.Set(ctx, storage.SettingSyncDevice, id); err != nil {
		return "", err
	}
	return id, nil
}

type gistFile struct {
	Content string `json:"content"`
}

type gistPayload struct {
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	Files       map[string]gistFile `json:"files"`
}

type gistDocument struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Files       map[string]gistFile `json:"files"`
}

func (c *Client) fetchEnvelope(ctx context.Context) (*Envelope, error) {
	token, err := c.settings.Get(ctx, storage.SettingSyncToken)
	if err != nil {
		return nil, err
	}
	gistID, err := c.settings.Get(ctx, storage.SettingSyncGistID)
	if err != nil {
		return nil, err
	}
	if token == "" || gistID == "" {
		return nil, ErrNotConfigured
	}

	var doc gistDocument
	if err := c.do(ctx, http.MethodGet, "/gists/"+gistID, token, nil, &doc); err != nil {
		return nil, err
	}
	content := doc.Files[gistFilename].Content
	if content == "" {
		return nil, ErrMalformedDocument
	}

	var env Envelope
	if err := json.Unmarshal([]byte(content), &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

func (c *Client) findExistingGist(ctx context.Context, token string) (string, error) {
	var gists []gistDocument
	if err := c.do(ctx, http.MethodGet, "/gists", token, nil, &gists); err != nil {
		return "", err
	}
	for _, g := range gists {
		if g.Description != gistDescription {
			continue
		}
		if _, ok := g.Files[gistFilename]; ok {
			return g.ID, nil
		}
	}
	return "", nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "CodePaw-CLI")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return TransportError{Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
