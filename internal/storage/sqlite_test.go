package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore(LocalPlayer, 99, "snake", 0); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if high, _ := store.HighScore(LocalPlayer); high != 99 {
		t.Errorf("HighScore after reopen = %d, expected 99", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore(LocalPlayer, s, "flappy", 0); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("alice", 500, "cat", 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(LocalPlayer, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted: %v", scores)
	}
	if scores[0].Mode != "flappy" || scores[0].Player != LocalPlayer {
		t.Errorf("unexpected row %+v", scores[0])
	}

	alice, err := store.TopScores("alice", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(alice) != 1 || alice[0].Loop != 1 {
		t.Errorf("alice scores = %+v", alice)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := store.SaveScore("test", (i+1)*100, "snake", 0); err != nil {
			t.Fatal(err)
		}
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	if high, err := store.HighScore("nobody"); err != nil || high != 0 {
		t.Errorf("HighScore(empty) = %d, %v", high, err)
	}
	st, err := store.Stats("nobody")
	if err != nil || st.Games != 0 || !st.LastPlayed.IsZero() {
		t.Errorf("Stats(empty) = %+v, %v", st, err)
	}

	for _, s := range []int{10, 30, 20} {
		store.SaveScore("p", s, "snake", 0)
	}
	st, err = store.Stats("p")
	if err != nil {
		t.Fatal(err)
	}
	if st.Games != 3 || st.HighScore != 30 || st.TotalScore != 60 || st.AvgScore != 20 {
		t.Errorf("Stats = %+v", st)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("a", 1, "snake", 0)
	store.SaveScore("b", 2, "snake", 0)

	if err := store.ClearScores("a"); err != nil {
		t.Fatal(err)
	}
	if high, _ := store.HighScore("a"); high != 0 {
		t.Errorf("scores for a not cleared")
	}
	if high, _ := store.HighScore("b"); high != 2 {
		t.Errorf("scores for b affected by clearing a")
	}
}

func TestKVNamespaces(t *testing.T) {
	store := openTestStore(t)
	alice, bob := store.KV("alice"), store.KV("bob")

	if _, ok, err := alice.Get("guid"); ok || err != nil {
		t.Fatalf("empty Get = ok %v err %v", ok, err)
	}
	if err := alice.Set("guid", "a-1"); err != nil {
		t.Fatal(err)
	}
	if err := bob.Set("guid", "b-1"); err != nil {
		t.Fatal(err)
	}
	if err := alice.Set("guid", "a-2"); err != nil {
		t.Fatal(err)
	}

	if v, ok, _ := alice.Get("guid"); !ok || v != "a-2" {
		t.Errorf("alice guid = %q %v", v, ok)
	}
	if v, _, _ := bob.Get("guid"); v != "b-1" {
		t.Errorf("bob guid = %q", v)
	}

	if err := alice.Delete("guid"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := alice.Get("guid"); ok {
		t.Error("deleted key still present")
	}
}

func TestBoardEntries(t *testing.T) {
	store := openTestStore(t)
	entries := []BoardEntry{
		{Username: "amy", Score: 30, UserGUID: "g1-1"},
		{Username: "bob", Score: 50, UserGUID: "g2-1"},
		{Username: "amy", Score: 30, UserGUID: "g1-2"},
	}
	for _, e := range entries {
		if ok, err := store.AddBoardEntry(e); err != nil || !ok {
			t.Fatalf("AddBoardEntry(%+v) = %v, %v", e, ok, err)
		}
	}

	if ok, err := store.AddBoardEntry(entries[0]); err != nil || ok {
		t.Errorf("repeated key inserted: %v, %v", ok, err)
	}

	all, err := store.BoardEntries(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("entries = %d, expected 3", len(all))
	}
	if all[0].Username != "bob" || all[1].UserGUID != "g1-1" || all[2].UserGUID != "g1-2" {
		t.Errorf("order = %+v", all)
	}

	top, _ := store.BoardEntries(1)
	if len(top) != 1 || top[0].Score != 50 {
		t.Errorf("limited entries = %+v", top)
	}
}
