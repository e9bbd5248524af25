// Package trie implements a prefix tree over the lowercase letters a-z. Every
// node has a fixed fan-out of 26 child slots and carries an end-of-word flag
// and a pass-through count, which between them serve every traversal the
// wordtrie algorithms need.
package trie

import (
	"errors"
	"fmt"
)

// AlphabetSize is the fan-out of every node: one slot per letter a-z.
const AlphabetSize = 26

// ErrInvalidCharacter is returned for input containing anything other than
// the letters a-z.
var ErrInvalidCharacter = errors.New("invalid character")

// InvalidCharacterError describes where in a word an invalid character was
// found.
type InvalidCharacterError struct {
	Word   string
	Offset int
	Char   byte
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%v %q at offset %d of %q", ErrInvalidCharacter, e.Char, e.Offset, e.Word)
}

func (e *InvalidCharacterError) Unwrap() error {
	return ErrInvalidCharacter
}

// Node is a single prefix in the Trie.
type Node struct {
	Children [AlphabetSize]*Node
	// WordEnd is true iff some inserted word terminates exactly at this node.
	WordEnd bool
	// PassCount is the number of insertions whose path includes this node.
	PassCount int
}

// Child returns the child for letter c, or nil if there is none (or c is not
// a letter a-z).
func (n *Node) Child(c byte) *Node {
	if !isLetter(c) {
		return nil
	}
	return n.Children[c-'a']
}

type Trie struct {
	Root  *Node
	nodes int
}

// NewTrie makes a new empty Trie. The root represents the empty prefix and is
// never itself counted as a node, a word or a substring.
func NewTrie() *Trie {
	return &Trie{Root: &Node{}}
}

// Validate checks that word only contains the letters a-z. The empty word is
// valid.
func Validate(word string) error {
	for i := 0; i < len(word); i++ {
		if !isLetter(word[i]) {
			return &InvalidCharacterError{Word: word, Offset: i, Char: word[i]}
		}
	}
	return nil
}

// Insert adds word to the Trie
//
// Missing nodes along the path are created, every node on the path has its
// PassCount incremented, and the final node is marked as a word end. Insert
// returns the number of nodes it created, which is zero when the path was
// already present. Inserting the empty word does nothing. A word that fails
// Validate is rejected before any node is touched.
func (t *Trie) Insert(word string) (created int, err error) {
	if err := Validate(word); err != nil {
		return 0, err
	}
	if len(word) == 0 {
		return 0, nil
	}

	curr := t.Root
	for i := 0; i < len(word); i++ {
		idx := word[i] - 'a'
		if curr.Children[idx] == nil {
			// Node that should hold this prefix doesn't already exist, so let's create it
			curr.Children[idx] = &Node{}
			created++
		}
		curr = curr.Children[idx]
		curr.PassCount++
	}
	curr.WordEnd = true

	t.nodes += created
	return created, nil
}

// Walk follows path from the root and returns the node reached after each of
// its characters, so the result has len(path) entries. If the path doesn't
// exist (or contains a character outside a-z) Walk returns nil and false.
func (t *Trie) Walk(path string) (visited []*Node, ok bool) {
	visited = make([]*Node, 0, len(path))
	curr := t.Root
	for i := 0; i < len(path); i++ {
		curr = curr.Child(path[i])
		if curr == nil {
			// Path doesn't exist: shortcut return value
			return nil, false
		}
		visited = append(visited, curr)
	}
	return visited, true
}

// WordEnds walks s from the root and returns, in ascending order, the length
// of every prefix of s that is a complete word. The walk stops as soon as s
// leaves the Trie, so the cost is bounded by the longest inserted word rather
// than by len(s).
func (t *Trie) WordEnds(s string) []int {
	var ends []int
	curr := t.Root
	for i := 0; i < len(s); i++ {
		curr = curr.Child(s[i])
		if curr == nil {
			break
		}
		if curr.WordEnd {
			ends = append(ends, i+1)
		}
	}
	return ends
}

// Len returns the number of nodes in the Trie, not counting the root.
func (t *Trie) Len() int {
	return t.nodes
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}
