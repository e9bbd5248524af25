package wordtrie

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgxlisten"
	"github.com/rs/zerolog"

	"github.com/alphagov/wordtrie/trie"
)

//go:embed sql/words.sql
var loadWordsQuery string

// DictionaryChangesChannel is the PostgreSQL NOTIFY channel on which
// dictionary edits are announced.
const DictionaryChangesChannel = "dictionary_changes"

type PgxIface interface {
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
}

// addWord appends word to words, unless it fails validation, in which case
// it is logged and skipped.
func addWord(words []string, word *string, logger zerolog.Logger) []string {
	if word == nil {
		logger.Warn().Msg("ignoring nil word")
		return words
	}
	if err := trie.Validate(*word); err != nil {
		logger.Warn().Err(err).Str("word", *word).Msg("ignoring invalid word")
		return words
	}
	if *word == "" {
		logger.Warn().Msg("ignoring empty word")
		return words
	}
	return append(words, *word)
}

func loadWords(ctx context.Context, pool PgxIface, dictionary string, logger zerolog.Logger) ([]string, error) {
	rows, err := pool.Query(ctx, loadWordsQuery, dictionary)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var word *string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = addWord(words, word, logger)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Server) listenForDictionaryUpdates(ctx context.Context) error {
	listener := &pgxlisten.Listener{
		Connect: func(ctx context.Context) (*pgx.Conn, error) {
			c, err := s.pool.Acquire(ctx)
			if err != nil {
				return nil, err
			}
			return c.Conn(), nil
		},
	}

	listener.Handle(
		DictionaryChangesChannel,
		pgxlisten.HandlerFunc(
			func(ctx context.Context, notification *pgconn.Notification, conn *pgx.Conn) error {
				s.QueueReload()
				return nil
			},
		),
	)

	return listener.Listen(ctx)
}
