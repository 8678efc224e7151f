package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	if err := Save([]string{"bcaa", "whey protein"}, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "[\n  \"bcaa\",\n  \"whey protein\"\n]\n"
	if string(data) != want {
		t.Errorf("file contents = %q, want %q", data, want)
	}
}

func TestSaveEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brands.json")
	if err := Save(nil, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[\n]\n" {
		t.Errorf("file contents = %q, want empty bracketed list", data)
	}
}

func TestRoundTrip(t *testing.T) {
	words := []string{"creatine monohydrate", "omega-3", "whey isolate", "whey protein"}
	path := filepath.Join(t.TempDir(), "products.json")
	if err := Save(words, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tr, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, w := range words {
		if !tr.Contains(w) {
			t.Errorf("entry %q lost in round trip", w)
		}
	}
	if got := tr.Words(); !reflect.DeepEqual(got, words) {
		t.Errorf("Words() = %v, want %v", got, words)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrNoCache) {
		t.Errorf("Load on missing file = %v, want ErrNoCache", err)
	}
}

func TestLoadZeroValidTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	os.WriteFile(path, []byte("[\n]\n"), 0644)

	if _, err := Load(path); !errors.Is(err, ErrNoCache) {
		t.Errorf("Load on empty list = %v, want ErrNoCache", err)
	}
}

func TestLoadSkipsMalformedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "torn.json")
	os.WriteFile(path, []byte("[\n  \"whey protein\",\n  \"creatine\n]\n"), 0644)

	tr, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !tr.Contains("whey protein") {
		t.Error("valid token before the malformed one was dropped")
	}
}

func TestLoadNormalizesTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cased.json")
	os.WriteFile(path, []byte("[\n  \"Whey Protein\",\n  \"!!!\"\n]\n"), 0644)

	tr, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !tr.Contains("whey protein") {
		t.Error("token not normalized on load")
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (junk token dropped)", tr.Len())
	}
}
