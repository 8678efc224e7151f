// Package store persists a category's word list as a flat bracketed list of
// double-quoted strings, one per line:
//
//	[
//	  "creatine monohydrate",
//	  "whey protein"
//	]
//
// The format is read back byte-for-byte compatible with what Save writes. It
// is deliberately not a general JSON parser: normalization restricts entries
// to [a-z0-9 .-], so no quote escaping can occur inside a token.
package store

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/suppserve/suppserve/pkg/trie"
)

// ErrNoCache means the file is missing, unreadable, or held no usable
// entries. Callers fall back to seed data and re-persist; it is never fatal.
var ErrNoCache = errors.New("no usable autocomplete cache")

// Save writes words to path in the bracketed-list format. The word list is
// expected to be a snapshot taken from a live index.
func Save(words []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	w.WriteString("[\n")
	for i, word := range words {
		w.WriteString("  \"")
		w.WriteString(word)
		w.WriteString("\"")
		if i < len(words)-1 {
			w.WriteString(",")
		}
		w.WriteString("\n")
	}
	w.WriteString("]\n")
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// Load reads path and builds a fresh Trie from every quoted token found.
// Tokens are normalized on insert, so a hand-edited file with stray casing
// still loads cleanly. A malformed token (unterminated quote) ends parsing
// without aborting what was already read. Returns ErrNoCache when nothing
// usable came out of the file.
func Load(path string) (*trie.Trie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("autocomplete cache %s not readable: %v", path, err)
		return nil, ErrNoCache
	}

	t := trie.New()
	content := string(data)
	pos := 0
	for {
		start := strings.IndexByte(content[pos:], '"')
		if start < 0 {
			break
		}
		start += pos + 1
		end := strings.IndexByte(content[start:], '"')
		if end < 0 {
			log.Warnf("unterminated token in %s, skipping remainder", path)
			break
		}
		t.Insert(content[start : start+end])
		pos = start + end + 1
	}

	if t.Len() == 0 {
		log.Debugf("autocomplete cache %s held no valid entries", path)
		return nil, ErrNoCache
	}
	return t, nil
}
