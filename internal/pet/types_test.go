package pet

import (
	"context"
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Pyro18/codepaw/internal/storage"
)

func TestStringSetMarshalsSorted(t *testing.T) {
	s := NewStringSet("go", "rust", "c")
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `["c","go","rust"]` {
		t.Fatalf("got %s", out)
	}
}

func TestStringSetUnmarshalDeduplicates(t *testing.T) {
	var s StringSet
	if err := json.Unmarshal([]byte(`["go","go","ts"]`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Len() != 2 || !s.Has("go") || !s.Has("ts") {
		t.Fatalf("got %v", s.Values())
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	rec := NewRecord("Pypy", now)
	rec.Level = 12
	rec.XP = 37
	rec.TotalXPEarned = 4100
	rec.Achievements.Add("polyglot")
	rec.Achievements.Add("save_master")
	rec.Stats.LanguagesUsed.Add("go")
	rec.Stats.LanguagesUsed.Add("python")
	rec.Stats.RepositoriesUsed.Add("codepaw")
	rec.Stats.CommitsCount = 7
	rec.EvolutionHistory = append(rec.EvolutionHistory, Evolution{Stage: StageTeen, Level: 10, Date: now})

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back PetRecord
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(rec.Achievements, back.Achievements) {
		t.Fatalf("achievements differ: %v vs %v", rec.Achievements.Values(), back.Achievements.Values())
	}
	if !reflect.DeepEqual(rec.Stats.LanguagesUsed, back.Stats.LanguagesUsed) {
		t.Fatalf("languages differ")
	}
	if !reflect.DeepEqual(rec.Stats.RepositoriesUsed, back.Stats.RepositoriesUsed) {
		t.Fatalf("repositories differ")
	}
	if back.Level != rec.Level || back.XP != rec.XP || back.TotalXPEarned != rec.TotalXPEarned {
		t.Fatalf("counters differ: %+v", back)
	}
	if len(back.EvolutionHistory) != 1 || back.EvolutionHistory[0].Stage != StageTeen {
		t.Fatalf("history differs: %+v", back.EvolutionHistory)
	}
}

func TestManagerReloadsPersistedRecord(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	mgr, err := NewManager(ctx, db, Options{Name: "Pypy"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if _, err := mgr.RecordActivity(ctx, Save(15, "go", 200, "engine.go")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := mgr.RecordActivity(ctx, Commit(25, "feat: wire sync", "codepaw")); err != nil {
		t.Fatalf("record: %v", err)
	}
	want := mgr.Snapshot()
	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	db, err = storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	defer db.Close()
	mgr2, err := NewManager(ctx, db, Options{Name: "Pypy"})
	if err != nil {
		t.Fatalf("reload manager: %v", err)
	}
	got := mgr2.Snapshot()

	if got.TotalXPEarned != want.TotalXPEarned || got.Level != want.Level || got.XP != want.XP {
		t.Fatalf("reload lost progress: got %+v want %+v", got, want)
	}
	if !reflect.DeepEqual(got.Stats.LanguagesUsed, want.Stats.LanguagesUsed) {
		t.Fatalf("reload lost language set")
	}
	if got.Stats.CommitsCount != want.Stats.CommitsCount {
		t.Fatalf("reload lost commit count")
	}
}

func TestNormalizeBackfillsDefaults(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	rec := &PetRecord{Name: "Old", Level: 0, MaxXP: 0, Happiness: 300, Energy: -5}
	rec.Normalize(now)

	if rec.Level != 1 || rec.MaxXP != InitialMaxXP {
		t.Fatalf("level=%d maxXp=%d", rec.Level, rec.MaxXP)
	}
	if rec.Happiness != 100 || rec.Energy != 0 {
		t.Fatalf("happiness=%d energy=%d, want clamped", rec.Happiness, rec.Energy)
	}
	if rec.Achievements == nil || rec.Stats.LanguagesUsed == nil || rec.Stats.RepositoriesUsed == nil {
		t.Fatalf("sets not initialized")
	}
	if rec.Stats.CurrentStreak != 1 || rec.Stats.LongestStreak != 1 {
		t.Fatalf("streaks=%d/%d, want 1/1", rec.Stats.CurrentStreak, rec.Stats.LongestStreak)
	}
	if rec.Stage != StageBaby {
		t.Fatalf("stage=%v", rec.Stage)
	}
}
