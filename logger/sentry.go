package logger

import (
	"fmt"
	"io"
	"log"
	"time"

	sentry "github.com/getsentry/sentry-go"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/rs/zerolog"
)

type RecoveredError struct {
	ErrorMessage string
}

func (re RecoveredError) Error() string {
	return re.ErrorMessage
}

// NewRecoveredError wraps a value returned by recover() as an error.
func NewRecoveredError(r interface{}) RecoveredError {
	return RecoveredError{ErrorMessage: fmt.Sprintf("%v", r)}
}

// NewSentryWriter returns a writer that forwards error and fatal log lines
// to Sentry, for passing to New as an extra writer.
//
// We don't need to set SENTRY_ENVIRONMENT, SENTRY_DSN or SENTRY_RELEASE
// in ClientOptions as they are automatically picked up as env vars.
// https://docs.sentry.io/platforms/go/config/
func NewSentryWriter() (io.WriteCloser, error) {
	return sentryzerolog.New(sentryzerolog.Config{
		ClientOptions: sentry.ClientOptions{},
		Options: sentryzerolog.Options{
			Levels:          []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel},
			FlushTimeout:    3 * time.Second,
			WithBreadcrumbs: true,
		},
	})
}

// NotifySentry reports err to Sentry via the global hub.
func NotifySentry(err error) {
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		log.Printf("wordtrie: Sentry not initialised, dropping error: %v\n", err)
		return
	}
	hub.CaptureException(err)
	hub.Flush(time.Second * 5)
}
