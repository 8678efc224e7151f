// Package trie implements the prefix tree backing autocomplete lookups.
//
// The tree stores normalized entries only: lowercase ASCII letters, digits,
// space, hyphen and period. Everything else is stripped on the way in, so a
// lookup for "Whey Protein!" and one for "whey protein" walk the exact same
// path. Each category (products, brands, ...) owns one Trie; all concurrency
// control lives a level up in pkg/index, the Trie itself is not safe for
// concurrent mutation.
package trie

import (
	"sort"
	"strings"
)

// node maps a single normalized character to its child. A node owns its
// children exclusively, so the whole tree is released once the root is
// unreachable.
type node struct {
	children map[byte]*node
	isEnd    bool
}

func newNode() *node {
	return &node{children: make(map[byte]*node)}
}

// Trie is a set of normalized strings queryable by prefix.
type Trie struct {
	root *node
	size int
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{root: newNode()}
}

// Normalize lowercases s and strips every character outside [a-z0-9 .-],
// then trims leading and trailing spaces. Trimming keeps " WHEY " and
// "whey" on the same path; interior spaces are part of the entry
// ("whey protein").
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		switch {
		case c >= 'a' && c <= 'z',
			c >= '0' && c <= '9',
			c == ' ', c == '-', c == '.':
			b.WriteByte(c)
		}
	}
	return strings.Trim(b.String(), " ")
}

// Insert adds word to the set. Input that normalizes to the empty string is
// ignored. Inserting an existing entry is a no-op.
func (t *Trie) Insert(word string) {
	w := Normalize(word)
	if w == "" {
		return
	}
	cur := t.root
	for i := 0; i < len(w); i++ {
		next := cur.children[w[i]]
		if next == nil {
			next = newNode()
			cur.children[w[i]] = next
		}
		cur = next
	}
	if !cur.isEnd {
		cur.isEnd = true
		t.size++
	}
}

// Contains reports whether word (after normalization) was inserted as a
// complete entry, not merely as a prefix of one.
func (t *Trie) Contains(word string) bool {
	w := Normalize(word)
	if w == "" {
		return false
	}
	cur := t.root
	for i := 0; i < len(w); i++ {
		cur = cur.children[w[i]]
		if cur == nil {
			return false
		}
	}
	return cur.isEnd
}

// SearchPrefix returns up to limit entries starting with prefix. An empty
// normalized prefix yields no results; there is no browse-everything mode.
// Siblings are visited in lexical byte order, so output is deterministic for
// a given tree.
func (t *Trie) SearchPrefix(prefix string, limit int) []string {
	p := Normalize(prefix)
	if p == "" || limit <= 0 {
		return nil
	}
	cur := t.root
	for i := 0; i < len(p); i++ {
		cur = cur.children[p[i]]
		if cur == nil {
			return nil
		}
	}
	var results []string
	collect(cur, []byte(p), &results, limit)
	return results
}

// Words enumerates every entry in the tree. Used by the persistence layer;
// queries always go through SearchPrefix.
func (t *Trie) Words() []string {
	if t.size == 0 {
		return nil
	}
	results := make([]string, 0, t.size)
	collect(t.root, nil, &results, t.size)
	return results
}

// Clear detaches all children from the root and resets it. The root node
// itself survives, so a cleared Trie is immediately usable again.
func (t *Trie) Clear() {
	t.root.children = make(map[byte]*node)
	t.root.isEnd = false
	t.size = 0
}

// Len returns the number of entries.
func (t *Trie) Len() int {
	return t.size
}

// collect walks the subtree depth first, appending every terminal path to
// out until limit entries have been gathered.
func collect(n *node, path []byte, out *[]string, limit int) {
	if len(*out) >= limit {
		return
	}
	if n.isEnd {
		*out = append(*out, string(path))
	}
	if len(n.children) == 0 {
		return
	}
	keys := make([]byte, 0, len(n.children))
	for c := range n.children {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, c := range keys {
		if len(*out) >= limit {
			return
		}
		collect(n.children[c], append(path, c), out, limit)
	}
}
