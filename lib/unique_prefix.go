package wordtrie

// ShortestUniquePrefixes returns, for each word in input order, the shortest
// prefix of it that is not a prefix of any other word in the list.
//
// A word that is itself a prefix of another word, or that appears more than
// once, has no unique prefix; its entry is the whole word.
func ShortestUniquePrefixes(words []string) ([]string, error) {
	prefixes, _, err := shortestUniquePrefixes(words)
	return prefixes, err
}

func shortestUniquePrefixes(words []string) (prefixes []string, nodes int, err error) {
	t, err := buildTrie(words)
	if err != nil {
		return nil, 0, err
	}

	prefixes = make([]string, len(words))
	for i, w := range words {
		prefixes[i] = w

		// Every word was inserted, so its path is always present.
		visited, _ := t.Walk(w)
		for depth, n := range visited {
			if n.PassCount == 1 {
				prefixes[i] = w[:depth+1]
				break
			}
		}
	}
	return prefixes, t.Len(), nil
}
