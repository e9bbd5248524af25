package wordtrie

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// loadWordsFromFile loads a dictionary from a word file: one word per line,
// surrounding whitespace ignored. Blank lines and lines starting with # are
// skipped, as are words containing anything other than a-z.
func loadWordsFromFile(filePath string, logger zerolog.Logger) ([]string, error) {
	file, err := os.Open(filePath) //nolint:gosec // filePath is from WORDTRIE_WORDS_FILE env var, controlled by user
	if err != nil {
		return nil, fmt.Errorf("failed to open words file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close words file")
		}
	}()

	words := []string{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		before := len(words)
		words = addWord(words, &line, logger)
		if len(words) == before {
			logger.Warn().Int("line", lineNum).Msg("skipped word in words file")
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading words file: %w", err)
	}

	return words, nil
}
