package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *testDB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &testDB{ctx: ctx, state: NewStateRepo(db), settings: NewSettingsRepo(db)}
}

type testDB struct {
	ctx      context.Context
	state    *StateRepo
	settings *SettingsRepo
}

func TestStateLoadBeforeSaveReturnsNil(t *testing.T) {
	d := openTestDB(t)

	data, err := d.state.Load(d.ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Fatalf("expected no state, got %q", data)
	}
}

func TestStateSaveIsUpsert(t *testing.T) {
	d := openTestDB(t)

	if err := d.state.Save(d.ctx, []byte(`{"level":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := d.state.Save(d.ctx, []byte(`{"level":2}`)); err != nil {
		t.Fatalf("resave: %v", err)
	}

	data, err := d.state.Load(d.ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"level":2}` {
		t.Fatalf("got %q", data)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	d := openTestDB(t)

	v, err := d.settings.Get(d.ctx, SettingPetName)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "" {
		t.Fatalf("unset key should be empty, got %q", v)
	}

	if err := d.settings.Set(d.ctx, SettingPetName, "Pypy"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := d.settings.Set(d.ctx, SettingPetName, "Mochi"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, err = d.settings.Get(d.ctx, SettingPetName)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "Mochi" {
		t.Fatalf("got %q", v)
	}
}

func TestSettingsDeleteMany(t *testing.T) {
	d := openTestDB(t)

	if err := d.settings.Set(d.ctx, SettingSyncToken, "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := d.settings.Set(d.ctx, SettingSyncGistID, "gid"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := d.settings.Set(d.ctx, SettingSyncDevice, "dev"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := d.settings.DeleteMany(d.ctx, SettingSyncToken, SettingSyncGistID); err != nil {
		t.Fatalf("delete many: %v", err)
	}

	for _, key := range []string{SettingSyncToken, SettingSyncGistID} {
		v, err := d.settings.Get(d.ctx, key)
		if err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
		if v != "" {
			t.Fatalf("%s survived delete: %q", key, v)
		}
	}

	v, err := d.settings.Get(d.ctx, SettingSyncDevice)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "dev" {
		t.Fatalf("unrelated key lost: %q", v)
	}
}
