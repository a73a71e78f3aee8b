package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the codepage German fansub SRT files are usually saved in
const DefaultEncoding = "cp1252"

var timingPattern = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})[,.](\d{1,3})\s*-->\s*(\d+):(\d{2}):(\d{2})[,.](\d{1,3})`)

// Reader loads caption files using a fixed text encoding
type Reader struct {
	enc encoding.Encoding
}

// NewReader creates a reader for the named encoding ("cp1252", "latin1",
// "utf-8", ...). An empty name selects DefaultEncoding.
func NewReader(encodingName string) (*Reader, error) {
	if strings.TrimSpace(encodingName) == "" {
		return &Reader{enc: charmap.Windows1252}, nil
	}

	enc, err := htmlindex.Get(encodingName)
	if err != nil {
		return nil, fmt.Errorf("unsupported subtitle encoding %q: %w", encodingName, err)
	}
	return &Reader{enc: enc}, nil
}

// Load reads the caption file at path and returns one cleaned line per entry
func (r *Reader) Load(path string) ([]string, error) {
	entries, err := r.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Lines(entries), nil
}

// ReadFile parses every entry of the caption file at path
func (r *Reader) ReadFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer file.Close()

	entries, err := Parse(r.enc.NewDecoder().Reader(file))
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return entries, nil
}

// Lines flattens entries into single-line strings: embedded line breaks
// become spaces and surrounding whitespace is trimmed.
func Lines(entries []Entry) []string {
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = strings.TrimSpace(strings.ReplaceAll(entry.Text, "\n", " "))
	}
	return lines
}

// Parse reads SRT entries from already decoded text
func Parse(in io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	current := Entry{}
	state := "index" // possible values: "index", "time", "text"
	var textLines []string
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		line := strings.TrimSpace(raw)

		switch state {
		case "index":
			if line == "" {
				continue
			}
			index, err := strconv.Atoi(line)
			if err != nil {
				return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("expected sequence number, got %q", line)}
			}
			current.Index = index
			state = "time"

		case "time":
			start, end, err := parseTiming(line)
			if err != nil {
				return nil, &FormatError{Line: lineNo, Reason: err.Error()}
			}
			current.Start = start
			current.End = end
			state = "text"
			textLines = textLines[:0]

		case "text":
			if line == "" {
				current.Text = strings.Join(textLines, "\n")
				entries = append(entries, current)
				current = Entry{}
				state = "index"
				continue
			}
			textLines = append(textLines, raw)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subtitle content: %w", err)
	}

	switch state {
	case "text":
		current.Text = strings.Join(textLines, "\n")
		entries = append(entries, current)
	case "time":
		return nil, &FormatError{Line: lineNo, Reason: "unexpected end of file after sequence number"}
	}

	return entries, nil
}

// parseTiming parses "00:02:16,612 --> 00:02:19,376"
func parseTiming(line string) (time.Duration, time.Duration, error) {
	matches := timingPattern.FindStringSubmatch(line)
	if len(matches) != 9 {
		return 0, 0, fmt.Errorf("invalid time range %q", line)
	}

	start := toDuration(matches[1], matches[2], matches[3], matches[4])
	end := toDuration(matches[5], matches[6], matches[7], matches[8])
	return start, end, nil
}

func toDuration(hours, minutes, seconds, fraction string) time.Duration {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	// "5" means 500ms, "05" means 50ms
	for len(fraction) < 3 {
		fraction += "0"
	}
	ms, _ := strconv.Atoi(fraction)

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond
}
