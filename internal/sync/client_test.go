package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Pyro18/codepaw/internal/pet"
	"github.com/Pyro18/codepaw/internal/storage"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(storage.NewSettingsRepo(db))
	c.baseURL = srv.URL
	c.http = srv.Client()
	return c, srv
}

func envelopeBody(t *testing.T, version int) string {
	t.Helper()
	rec := pet.NewRecord("Pypy", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	rec.Level = 8
	rec.Stats.LanguagesUsed.Add("go")
	rec.Stats.LanguagesUsed.Add("ts")
	rec.Achievements.Add("polyglot")

	env := Envelope{
		PetData:     rec,
		SyncVersion: version,
		LastSync:    time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC).UnixMilli(),
		DeviceID:    "device_test",
	}
	raw, err := json.Marshal(env)
	require.NoError(t, err)

	doc := gistDocument{
		ID:          "abc123",
		Description: gistDescription,
		Files:       map[string]gistFile{gistFilename: {Content: string(raw)}},
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(body)
}

func TestUploadWithoutTokenMakesNoNetworkCall(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	err := c.Upload(context.Background(), pet.NewRecord("Pypy", time.Now()))
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Zero(t, calls)
}

func TestUploadCreatesGistAndStoresID(t *testing.T) {
	ctx := context.Background()
	var gotMethod, gotPath, gotAuth string
	var gotPayload gistPayload

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc123"}`))
	}))

	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncToken, "ghp_testtoken"))
	require.NoError(t, c.Upload(ctx, pet.NewRecord("Pypy", time.Now())))

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/gists", gotPath)
	require.Equal(t, "token ghp_testtoken", gotAuth)
	require.Equal(t, gistDescription, gotPayload.Description)
	require.False(t, gotPayload.Public)
	require.Contains(t, gotPayload.Files, gistFilename)

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(gotPayload.Files[gistFilename].Content), &env))
	require.Equal(t, Version, env.SyncVersion)
	require.NotEmpty(t, env.DeviceID)
	require.NotNil(t, env.PetData)

	id, err := c.settings.Get(ctx, storage.SettingSyncGistID)
	require.NoError(t, err)
	require.Equal(t, "abc123", id)
}

func TestUploadUpdatesExistingGist(t *testing.T) {
	ctx := context.Background()
	var gotMethod, gotPath string

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = w.Write([]byte(`{"id":"abc123"}`))
	}))

	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncToken, "ghp_testtoken"))
	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncGistID, "abc123"))
	require.NoError(t, c.Upload(ctx, pet.NewRecord("Pypy", time.Now())))

	require.Equal(t, http.MethodPatch, gotMethod)
	require.Equal(t, "/gists/abc123", gotPath)
}

func TestUploadSurfacesTransportStatus(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncToken, "ghp_testtoken"))
	err := c.Upload(ctx, pet.NewRecord("Pypy", time.Now()))

	var transport TransportError
	require.ErrorAs(t, err, &transport)
	require.Equal(t, http.StatusForbidden, transport.Status)
}

func TestDownloadReturnsRecord(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/gists/abc123", r.URL.Path)
		_, _ = w.Write([]byte(envelopeBody(t, Version)))
	}))

	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncToken, "ghp_testtoken"))
	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncGistID, "abc123"))

	rec, err := c.Download(ctx)
	require.NoError(t, err)
	require.Equal(t, 8, rec.Level)
	require.True(t, rec.Stats.LanguagesUsed.Has("go"))
	require.True(t, rec.Stats.LanguagesUsed.Has("ts"))
	require.True(t, rec.Achievements.Has("polyglot"))
}

func TestDownloadRefusesNewerVersion(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(envelopeBody(t, Version+1)))
	}))

	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncToken, "ghp_testtoken"))
	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncGistID, "abc123"))

	rec, err := c.Download(ctx)
	require.ErrorIs(t, err, ErrVersionSkew)
	require.Nil(t, rec)
}

func TestDownloadWithoutConfig(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec, err := c.Download(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Nil(t, rec)
}

func TestDownloadMissingDataFile(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"abc123","files":{}}`))
	}))

	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncToken, "ghp_testtoken"))
	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncGistID, "abc123"))

	rec, err := c.Download(ctx)
	require.ErrorIs(t, err, ErrMalformedDocument)
	require.Nil(t, rec)
}

func TestConfigureFindsExistingGist(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/gists", r.URL.Path)
		list := `[
			{"id":"other","description":"something else","files":{"notes.txt":{}}},
			{"id":"abc123","description":"` + gistDescription + `","files":{"` + gistFilename + `":{}}}
		]`
		_, _ = w.Write([]byte(list))
	}))

	res, err := c.Configure(ctx, "ghp_testtoken")
	require.NoError(t, err)
	require.True(t, res.Found)
	require.Equal(t, "abc123", res.GistID)

	id, err := c.settings.Get(ctx, storage.SettingSyncGistID)
	require.NoError(t, err)
	require.Equal(t, "abc123", id)
}

func TestConfigureDiscoveryFailureDegradesToNotFound(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	res, err := c.Configure(ctx, "ghp_testtoken")
	require.NoError(t, err)
	require.False(t, res.Found)

	// The credential is stored even when discovery fails.
	token, err := c.settings.Get(ctx, storage.SettingSyncToken)
	require.NoError(t, err)
	require.Equal(t, "ghp_testtoken", token)
}

func TestConfigureRejectsShortToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := c.Configure(context.Background(), "short")
	require.Error(t, err)
}

func TestSyncStatusUnconfigured(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	st, err := c.SyncStatus(context.Background())
	require.NoError(t, err)
	require.False(t, st.Configured)
}

func TestSyncStatusReadsRemoteEnvelope(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(envelopeBody(t, Version)))
	}))

	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncToken, "ghp_testtoken"))
	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncGistID, "abc123"))

	st, err := c.SyncStatus(ctx)
	require.NoError(t, err)
	require.True(t, st.Configured)
	require.Equal(t, "device_test", st.DeviceID)
	require.False(t, st.LastSync.IsZero())
}

func TestSyncStatusDegradesOnTransportFailure(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncToken, "ghp_testtoken"))
	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncGistID, "abc123"))

	st, err := c.SyncStatus(ctx)
	require.NoError(t, err)
	require.True(t, st.Configured)
	require.True(t, st.LastSync.IsZero())
	require.NotEmpty(t, st.DeviceID)
}

func TestResetForgetsCredentialAndDocument(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncToken, "ghp_testtoken"))
	require.NoError(t, c.settings.Set(ctx, storage.SettingSyncGistID, "abc123"))
	require.NoError(t, c.Reset(ctx))

	token, err := c.settings.Get(ctx, storage.SettingSyncToken)
	require.NoError(t, err)
	require.Empty(t, token)
	id, err := c.settings.Get(ctx, storage.SettingSyncGistID)
	require.NoError(t, err)
	require.Empty(t, id)
}

func TestDeviceIDIsStable(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	first, err := c.DeviceID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := c.DeviceID(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
