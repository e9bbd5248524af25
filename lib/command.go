package wordtrie

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUsage is returned by RunCommand for an unknown command or a wrong
// number of arguments.
var ErrUsage = errors.New("usage")

// Commands lists the one-shot commands understood by RunCommand.
var Commands = []string{
	"substrings TEXT",
	"longest-word WORD...",
	"unique-prefixes WORD...",
	"segment KEY WORD...",
}

// RunCommand runs a single operation named by args[0] on the remaining
// arguments and writes the answer to w.
func RunCommand(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "substrings":
		if len(rest) != 1 {
			return fmt.Errorf("%w: substrings takes exactly one argument", ErrUsage)
		}
		count, err := CountDistinctSubstrings(rest[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, count)
		return err
	case "longest-word":
		word, err := LongestValidWord(rest)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, word)
		return err
	case "unique-prefixes":
		prefixes, err := ShortestUniquePrefixes(rest)
		if err != nil {
			return err
		}
		for i, p := range prefixes {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", rest[i], p); err != nil {
				return err
			}
		}
		return nil
	case "segment":
		if len(rest) == 0 {
			return fmt.Errorf("%w: segment needs a key", ErrUsage)
		}
		words, ok, err := Segment(rest[0], rest[1:])
		if err != nil {
			return err
		}
		if !ok {
			_, err = fmt.Fprintln(w, "false")
			return err
		}
		_, err = fmt.Fprintf(w, "true\t%s\n", strings.Join(words, " "))
		return err
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}
