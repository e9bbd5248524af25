package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	wordtrie "github.com/alphagov/wordtrie/lib"
	applog "github.com/alphagov/wordtrie/logger"
)

const ErrUsage = 64

func usage() {
	helpstring := `
wordtrie %s
Usage: %s [-version] [-export-words] [COMMAND ARGS...]

Flags:
  -version          Print version and exit
  -export-words     Dump the dictionary from the database to stdout, one word per line, and exit

Commands (answer once and exit; with no command the HTTP API is served):
  %s

The following environment variables and defaults are available:

WORDTRIE_APIADDR=:8080           Address on which to serve API requests
WORDTRIE_ERROR_LOG=STDERR        File to log to (in JSON format)
WORDTRIE_DEBUG=                  Enable debug output if non-empty
WORDTRIE_WORDS_FILE=             Load the dictionary from a word file instead of PostgreSQL if non-empty
WORDTRIE_DATABASE_URL=           PostgreSQL URL of the dictionary store
WORDTRIE_DICTIONARY=default      Name of the dictionary to load from PostgreSQL

Timeouts: (values must be parseable by https://pkg.go.dev/time#ParseDuration)

WORDTRIE_READ_TIMEOUT=60s        See https://cs.opensource.google/go/go/+/master:src/net/http/server.go?q=symbol:ReadTimeout
WORDTRIE_WRITE_TIMEOUT=60s       See https://cs.opensource.google/go/go/+/master:src/net/http/server.go?q=symbol:WriteTimeout
WORDTRIE_RELOAD_INTERVAL=1m      Interval for periodic dictionary reloads
`
	fmt.Fprintf(os.Stderr, helpstring, wordtrie.VersionInfo(), os.Args[0], strings.Join(wordtrie.Commands, "\n  "))
	os.Exit(ErrUsage)
}

func getenv(key string, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func getenvDuration(key string, defaultVal string) time.Duration {
	s := getenv(key, defaultVal)
	return mustParseDuration(s)
}

func mustParseDuration(s string) (d time.Duration) {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatal(err)
	}
	return
}

func listenAndServeOrFatal(addr string, handler http.Handler, rTimeout time.Duration, wTimeout time.Duration, logger zerolog.Logger) {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  rTimeout,
		WriteTimeout: wTimeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func main() {
	returnVersion := flag.Bool("version", false, "Print version and exit")
	exportWords := flag.Bool("export-words", false, "Export the dictionary from the database to stdout and exit")
	flag.Usage = usage
	flag.Parse()

	if *returnVersion {
		fmt.Fprintf(os.Stderr, "wordtrie %s\n", wordtrie.VersionInfo())
		os.Exit(0)
	}

	applog.SetDebug(os.Getenv("WORDTRIE_DEBUG") != "")
	dictionary := getenv("WORDTRIE_DICTIONARY", "default")

	if args := flag.Args(); len(args) > 0 {
		if err := wordtrie.RunCommand(os.Stdout, args); err != nil {
			fmt.Fprintf(os.Stderr, "wordtrie: %v\n", err)
			if errors.Is(err, wordtrie.ErrUsage) {
				usage()
			}
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *exportWords {
		// Logs go to stderr so that stdout carries only the words
		logger, err := applog.New("STDERR")
		if err != nil {
			log.Fatal(err)
		}
		if err := wordtrie.ExportWords(os.Stdout, dictionary, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to export dictionary")
		}
		os.Exit(0)
	}

	fmt.Fprintf(os.Stderr, "wordtrie %s\n", wordtrie.VersionInfo())

	// Initialize Sentry
	if err := sentry.Init(sentry.ClientOptions{}); err != nil {
		panic(err)
	}

	defer sentry.Flush(2 * time.Second)

	sentryWriter, err := applog.NewSentryWriter()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = sentryWriter.Close()
	}()

	logger, err := applog.New(getenv("WORDTRIE_ERROR_LOG", "STDERR"), sentryWriter)
	if err != nil {
		log.Fatal(err)
	}

	var (
		apiAddr        = getenv("WORDTRIE_APIADDR", ":8080")
		readTimeout    = getenvDuration("WORDTRIE_READ_TIMEOUT", "60s")
		writeTimeout   = getenvDuration("WORDTRIE_WRITE_TIMEOUT", "60s")
		reloadInterval = getenvDuration("WORDTRIE_RELOAD_INTERVAL", "1m")
	)

	logger.Info().Msgf("read timeout: %v", readTimeout)
	logger.Info().Msgf("write timeout: %v", writeTimeout)
	logger.Info().Msgf("GOMAXPROCS value of %d", runtime.GOMAXPROCS(0))

	wordtrie.RegisterMetrics(prometheus.DefaultRegisterer)

	srv, err := wordtrie.NewServer(wordtrie.Options{
		DatabaseURL:    os.Getenv("WORDTRIE_DATABASE_URL"),
		Dictionary:     dictionary,
		WordsFile:      os.Getenv("WORDTRIE_WORDS_FILE"),
		ReloadInterval: reloadInterval,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create server")
	}
	defer srv.Close()
	go srv.PeriodicDictionaryUpdates()

	api, err := wordtrie.NewAPIHandler(srv)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create API handler")
	}

	logger.Info().Msgf("listening for API requests on %v", apiAddr)
	listenAndServeOrFatal(apiAddr, api, readTimeout, writeTimeout, logger)
}
