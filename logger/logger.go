// Package logger builds the zerolog.Logger used throughout wordtrie.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New creates a new Logger. The output variable sets the destination to
// which log data will be written. This can be either an io.Writer, or a
// string. With the latter, this is either one of "STDOUT" or "STDERR", or the
// path to the file to log to. Any extra writers (such as a Sentry writer)
// receive every line as well.
func New(output interface{}, extra ...io.Writer) (logger zerolog.Logger, err error) {
	w, err := openWriter(output)
	if err != nil {
		return zerolog.Nop(), err
	}
	if len(extra) > 0 {
		w = zerolog.MultiLevelWriter(append([]io.Writer{w}, extra...)...)
	}
	return zerolog.New(w).With().Timestamp().Logger(), nil
}

func openWriter(output interface{}) (w io.Writer, err error) {
	switch out := output.(type) {
	case io.Writer:
		w = out
	case string:
		switch out {
		case "STDERR":
			w = os.Stderr
		case "STDOUT":
			w = os.Stdout
		default:
			w, err = os.OpenFile(out, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("invalid output type %T(%v)", output, output)
	}
	return
}

// SetDebug switches the global log level between debug and info.
func SetDebug(enabled bool) {
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
