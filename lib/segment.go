package wordtrie

import (
	"github.com/alphagov/wordtrie/trie"
)

// CanSegment reports whether key can be split into a sequence of one or more
// words from dictionary, each usable any number of times, with nothing left
// over. The empty key is always segmentable.
func CanSegment(key string, dictionary []string) (bool, error) {
	_, ok, _, err := segment(key, dictionary)
	return ok, err
}

// Segment is CanSegment, but also returns the words of the split. Where there
// is more than one split, the one chosen is the one found by trying the
// shortest leading word first at every position.
func Segment(key string, dictionary []string) ([]string, bool, error) {
	words, ok, _, err := segment(key, dictionary)
	return words, ok, err
}

func segment(key string, dictionary []string) (words []string, ok bool, nodes int, err error) {
	if err := trie.Validate(key); err != nil {
		return nil, false, 0, err
	}
	t, err := buildTrie(dictionary)
	if err != nil {
		return nil, false, 0, err
	}

	// segmentable[i] records whether key[i:] can be segmented. Filling it from
	// the end means every suffix is resolved once.
	n := len(key)
	segmentable := make([]bool, n+1)
	segmentable[n] = true
	for start := n - 1; start >= 0; start-- {
		for _, l := range t.WordEnds(key[start:]) {
			if segmentable[start+l] {
				segmentable[start] = true
				break
			}
		}
	}

	if !segmentable[0] {
		return nil, false, t.Len(), nil
	}

	words = []string{}
	for start := 0; start < n; {
		for _, l := range t.WordEnds(key[start:]) {
			if segmentable[start+l] {
				words = append(words, key[start:start+l])
				start += l
				break
			}
		}
	}
	return words, true, t.Len(), nil
}
