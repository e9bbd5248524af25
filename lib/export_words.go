package wordtrie

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ExportWords reads the named dictionary from PostgreSQL and writes it to w
// as a word file, one word per line.
func ExportWords(w io.Writer, dictionary string, logger zerolog.Logger) error {
	databaseURL := os.Getenv("WORDTRIE_DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("WORDTRIE_DATABASE_URL environment variable is required")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	return exportWords(context.Background(), w, pool, dictionary, logger)
}

func exportWords(ctx context.Context, w io.Writer, pool PgxIface, dictionary string, logger zerolog.Logger) error {
	logger.Info().Str("dictionary", dictionary).Msg("querying dictionary words")

	words, err := loadWords(ctx, pool, dictionary, logger)
	if err != nil {
		return fmt.Errorf("failed to query words: %w", err)
	}

	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return fmt.Errorf("failed to write word: %w", err)
		}
	}

	logger.Info().Int("word_count", len(words)).Str("dictionary", dictionary).Msg("exported dictionary")
	return nil
}
