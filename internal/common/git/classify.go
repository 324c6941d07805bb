package git

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// RejectionMarker starts every stderr line in which git reports a refused ref
const RejectionMarker = " ! ["

// Stream identifies which output stream a line came from
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// LineKind is the classification of one output line
type LineKind int

const (
	Informational LineKind = iota
	Rejection
)

// OutputLine is one classified line of push output
type OutputLine struct {
	Stream Stream
	Text   string
	Kind   LineKind
}

// ClassifyLine returns Rejection for stderr lines starting with RejectionMarker
func ClassifyLine(stream Stream, line string) LineKind {
	if stream == Stderr && strings.HasPrefix(line, RejectionMarker) {
		return Rejection
	}
	return Informational
}

// ScanLines yields every line of r classified for stream. Lines have no
// length limit. The sequence ends at EOF or on the first read error and
// cannot be restarted.
func ScanLines(stream Stream, r io.Reader) iter.Seq[OutputLine] {
	return func(yield func(OutputLine) bool) {
		reader := bufio.NewReaderSize(r, 64*1024)

		for {
			text, err := reader.ReadString('\n')
			if len(text) > 0 {
				text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
				line := OutputLine{Stream: stream, Text: text, Kind: ClassifyLine(stream, text)}
				if !yield(line) {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}
}

// authFailureMarkers are stderr fragments git and Heroku use for refused credentials
var authFailureMarkers = []string{
	"Authentication failed",
	"Invalid credentials provided",
	"could not read Username",
	"Permission denied (publickey)",
	"HTTP Basic: Access denied",
}

// isAuthFailure reports whether a stderr line signals refused credentials
func isAuthFailure(line string) bool {
	for _, marker := range authFailureMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
