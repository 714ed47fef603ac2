package tracker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields empty set", func(t *testing.T) {
		tr := New(filepath.Join(t.TempDir(), "converted.json"))
		set := tr.Load()
		if len(set) != 0 {
			t.Errorf("expected empty set, got %d entries", len(set))
		}
	})

	t.Run("corrupt file yields empty set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "converted.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		set := New(path).Load()
		if len(set) != 0 {
			t.Errorf("expected empty set for corrupt file, got %d entries", len(set))
		}
	})

	t.Run("valid file restores membership", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "converted.json")
		if err := os.WriteFile(path, []byte(`["a.jpg","b.png"]`), 0644); err != nil {
			t.Fatal(err)
		}

		set := New(path).Load()
		if !set.Has("a.jpg") || !set.Has("b.png") {
			t.Errorf("expected a.jpg and b.png tracked, got %v", set.Names())
		}
		if set.Has("c.gif") {
			t.Error("c.gif should not be tracked")
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "converted.json")
	tr := New(path)

	set := NewSet("a.jpg")
	set.Add("b.png")
	set.Add("b.png") // adding twice keeps set semantics
	if err := tr.Save(set); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// File on disk is a JSON array of strings.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		t.Fatalf("tracker file is not a JSON string array: %v", err)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "a.jpg" || names[1] != "b.png" {
		t.Errorf("unexpected tracker contents: %v", names)
	}

	reloaded := tr.Load()
	if len(reloaded) != 2 || !reloaded.Has("a.jpg") || !reloaded.Has("b.png") {
		t.Errorf("round trip lost entries: %v", reloaded.Names())
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "converted.json")
	tr := New(path)

	if err := tr.Save(NewSet("a.jpg", "b.png", "c.gif")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Save(NewSet("a.jpg")); err != nil {
		t.Fatal(err)
	}

	set := tr.Load()
	if len(set) != 1 || !set.Has("a.jpg") {
		t.Errorf("expected only a.jpg after overwrite, got %v", set.Names())
	}
}
