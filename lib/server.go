package wordtrie

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/alphagov/wordtrie/trie"
)

const (
	OperationDistinctSubstrings = "distinct-substrings"
	OperationLongestWord        = "longest-word"
	OperationUniquePrefixes     = "unique-prefixes"
	OperationSegment            = "segment"
)

const (
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

// Server answers trie queries and holds a dictionary of words, loaded from
// PostgreSQL or from a word file, which requests may use in place of a word
// list of their own. Every query still builds a trie of its own; the
// dictionary is the only state shared between requests.
type Server struct {
	dictionary            []string
	lock                  sync.RWMutex
	opts                  Options
	ReloadChan            chan bool
	pool                  *pgxpool.Pool
	source                string
	load                  func(ctx context.Context) ([]string, error)
	lastAttemptReloadTime atomic.Int64
	ctx                   context.Context
	cancel                context.CancelFunc
	Logger                zerolog.Logger
}

type Options struct {
	DatabaseURL    string
	Dictionary     string
	WordsFile      string
	ReloadInterval time.Duration
	Logger         zerolog.Logger
}

// NewServer creates a Server and loads its dictionary. WordsFile takes
// precedence over DatabaseURL; with neither the dictionary stays empty.
func NewServer(o Options) (s *Server, err error) {
	s = &Server{
		opts:   o,
		Logger: o.Logger,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	switch {
	case o.WordsFile != "":
		o.Logger.Info().Str("file", o.WordsFile).Msg("loading dictionary from file")
		s.source = SourceFile
		s.load = func(context.Context) ([]string, error) {
			return loadWordsFromFile(o.WordsFile, s.Logger)
		}
	case o.DatabaseURL != "":
		s.pool, err = pgxpool.New(s.ctx, o.DatabaseURL)
		if err != nil {
			s.cancel()
			return nil, fmt.Errorf("failed to create postgres connection pool: %w", err)
		}
		o.Logger.Info().Msg("postgres connection pool created")
		s.source = SourcePostgres
		s.load = func(ctx context.Context) ([]string, error) {
			return loadWords(ctx, s.pool, o.Dictionary, s.Logger)
		}
	default:
		o.Logger.Warn().Msg("no dictionary source configured; requests must supply their own words")
		return s, nil
	}

	s.ReloadChan = make(chan bool, 1)
	s.reloadDictionary()

	if s.pool != nil {
		go func() {
			if err := s.listenForDictionaryUpdates(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.Logger.Error().Err(err).Msg("failed to listen for dictionary updates")
			}
		}()
	}

	go s.waitForReload()

	return s, nil
}

// Close stops the reload and notification goroutines and releases the
// database pool, if there is one. Reloads queued after Close are ignored.
func (s *Server) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

// Dictionary returns the currently loaded dictionary.
func (s *Server) Dictionary() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.dictionary
}

// QueueReload asks for the dictionary to be reloaded. It never blocks: if a
// reload is already queued there is no need to queue another.
func (s *Server) QueueReload() bool {
	select {
	case s.ReloadChan <- true:
		return true
	default:
		return false
	}
}

// PeriodicDictionaryUpdates queues a reload whenever the last attempt is
// older than the configured reload interval. Only a PostgreSQL dictionary is
// reloaded periodically.
func (s *Server) PeriodicDictionaryUpdates() {
	if s.ReloadChan == nil || s.source != SourcePostgres || s.opts.ReloadInterval <= 0 {
		return
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if time.Since(s.lastAttemptReload()) > s.opts.ReloadInterval {
				s.QueueReload()
			}
		}
	}
}

func (s *Server) lastAttemptReload() time.Time {
	return time.Unix(0, s.lastAttemptReloadTime.Load())
}

func (s *Server) waitForReload() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.ReloadChan:
			// Both cases may be ready at once after Close
			if s.ctx.Err() != nil {
				return
			}
			s.reloadDictionary()
		}
	}
}

func (s *Server) reloadDictionary() {
	var success bool
	defer func() {
		if r := recover(); r != nil {
			success = false
			s.Logger.Err(fmt.Errorf("%v", r)).Msgf("recovered from panic in reloadDictionary")
			s.Logger.Info().Msg("reload failed and existing dictionary has not been modified")
		}
		dictionaryReloadCountMetric.WithLabelValues(strconv.FormatBool(success)).Inc()
	}()

	s.lastAttemptReloadTime.Store(time.Now().UnixNano())

	s.Logger.Info().Str("source", s.source).Msg("reloading dictionary")
	words, err := s.load(s.ctx)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("error reloading dictionary")
		return
	}

	success = true
	dictionaryWordsMetric.WithLabelValues(s.source).Set(float64(len(words)))
	s.Logger.Info().Int("word_count", len(words)).Msg("reloaded dictionary")

	s.lock.Lock()
	s.dictionary = words
	s.lock.Unlock()
}

// CountDistinctSubstrings is CountDistinctSubstrings, instrumented.
func (s *Server) CountDistinctSubstrings(text string) (count int, err error) {
	err = s.observe(OperationDistinctSubstrings, func() (nodes int, err error) {
		count, nodes, err = countDistinctSubstrings(text)
		return nodes, err
	})
	return count, err
}

// LongestValidWord is LongestValidWord, instrumented.
func (s *Server) LongestValidWord(words []string) (word string, err error) {
	err = s.observe(OperationLongestWord, func() (nodes int, err error) {
		word, nodes, err = longestValidWord(words)
		return nodes, err
	})
	return word, err
}

// ShortestUniquePrefixes is ShortestUniquePrefixes, instrumented.
func (s *Server) ShortestUniquePrefixes(words []string) (prefixes []string, err error) {
	err = s.observe(OperationUniquePrefixes, func() (nodes int, err error) {
		prefixes, nodes, err = shortestUniquePrefixes(words)
		return nodes, err
	})
	return prefixes, err
}

// Segment is Segment, instrumented.
func (s *Server) Segment(key string, dictionary []string) (words []string, ok bool, err error) {
	err = s.observe(OperationSegment, func() (nodes int, err error) {
		words, ok, nodes, err = segment(key, dictionary)
		return nodes, err
	})
	return words, ok, err
}

func (s *Server) observe(operation string, run func() (nodes int, err error)) error {
	timer := prometheus.NewTimer(operationDurationMetric.WithLabelValues(operation))
	defer timer.ObserveDuration()

	nodes, err := run()
	operationCountMetric.With(prometheus.Labels{
		"operation": operation,
		"success":   strconv.FormatBool(err == nil),
	}).Inc()

	if err != nil {
		if errors.Is(err, trie.ErrInvalidCharacter) {
			invalidInputCountMetric.WithLabelValues(operation).Inc()
		}
		s.Logger.Debug().Err(err).Str("operation", operation).Msg("operation failed")
		return err
	}

	nodesCreatedCountMetric.WithLabelValues(operation).Add(float64(nodes))
	s.Logger.Debug().Str("operation", operation).Int("nodes", nodes).Msg("operation complete")
	return nil
}
