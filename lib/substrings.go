package wordtrie

import (
	"github.com/alphagov/wordtrie/trie"
)

// CountDistinctSubstrings returns the number of distinct non-empty substrings
// of s.
//
// Every substring of s is a prefix of exactly one of its suffixes, so
// inserting all suffixes into a trie creates exactly one node per distinct
// substring.
func CountDistinctSubstrings(s string) (int, error) {
	count, _, err := countDistinctSubstrings(s)
	return count, err
}

func countDistinctSubstrings(s string) (count int, nodes int, err error) {
	if err := trie.Validate(s); err != nil {
		return 0, 0, err
	}

	t := trie.NewTrie()
	for i := 0; i < len(s); i++ {
		created, err := t.Insert(s[i:])
		if err != nil {
			return 0, 0, err
		}
		count += created
	}
	return count, t.Len(), nil
}
