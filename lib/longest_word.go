package wordtrie

import (
	"github.com/alphagov/wordtrie/trie"
)

type frame struct {
	node *trie.Node
	path string
}

// LongestValidWord returns the longest word from words all of whose prefixes
// (itself included) are also in words. Ties go to the lexicographically
// smallest word. It returns "" if no word qualifies.
func LongestValidWord(words []string) (string, error) {
	word, _, err := longestValidWord(words)
	return word, err
}

func longestValidWord(words []string) (best string, nodes int, err error) {
	t, err := buildTrie(words)
	if err != nil {
		return "", 0, err
	}

	// Depth first, only through word ends, visiting children a to z. That is
	// lexicographic order, so the first path found at any length wins and best
	// is only replaced by something strictly longer.
	stack := pushWordEndChildren(nil, frame{node: t.Root})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(f.path) > len(best) {
			best = f.path
		}
		stack = pushWordEndChildren(stack, f)
	}
	return best, t.Len(), nil
}

// pushWordEndChildren pushes the word-end children of f in reverse letter
// order so that they are popped a to z.
func pushWordEndChildren(stack []frame, f frame) []frame {
	for i := trie.AlphabetSize - 1; i >= 0; i-- {
		child := f.node.Children[i]
		if child == nil || !child.WordEnd {
			continue
		}
		stack = append(stack, frame{node: child, path: f.path + string(rune('a'+i))})
	}
	return stack
}

func buildTrie(words []string) (*trie.Trie, error) {
	t := trie.NewTrie()
	for _, w := range words {
		if _, err := t.Insert(w); err != nil {
			return nil, err
		}
	}
	return t, nil
}
