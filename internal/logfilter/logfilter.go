package logfilter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEmptyCallsign is returned when filtering is requested without a callsign.
var ErrEmptyCallsign = errors.New("callsign is empty")

// Options describe a file-to-file filter run.
type Options struct {
	Callsign   string
	InputPath  string
	OutputPath string
	Encoding   string // WHATWG label; empty means UTF-8
}

// Result is the outcome of a filter run.
type Result struct {
	Lines     []string // retained lines, verbatim including line endings
	Scanned   int      // lines read from the input
	Discarded int      // lines without the callsign
	Collapsed int      // announcement lines superseded by a later one
}

// AnnouncementMarker returns the substring that identifies a CQ line for callsign.
func AnnouncementMarker(callsign string) string {
	return "CQ " + callsign
}

// Filter streams r as UTF-8, keeping lines that contain callsign. Invalid
// bytes decode to U+FFFD. Consecutive CQ lines collapse to the last one of
// the run. Kept lines are written to w in input order and returned.
func Filter(callsign string, r io.Reader, w io.Writer) ([]string, error) {
	res, err := run(context.Background(), callsign, transform.NewReader(r, unicode.UTF8.NewDecoder()), w)
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}

// FilterFile runs Filter from opts.InputPath into opts.OutputPath. The output
// is written to a temporary file next to it and renamed into place once the
// input is fully read, so an output path naming the input itself replaces it
// with the kept lines instead of truncating it first. A missing input is an
// error.
func FilterFile(ctx context.Context, opts Options) (Result, error) {
	if strings.TrimSpace(opts.Callsign) == "" {
		return Result{}, ErrEmptyCallsign
	}
	dec, err := Decoder(opts.Encoding)
	if err != nil {
		return Result{}, err
	}

	in, err := os.Open(opts.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.CreateTemp(filepath.Dir(opts.OutputPath), "."+filepath.Base(opts.OutputPath)+".*")
	if err != nil {
		return Result{}, fmt.Errorf("create output: %w", err)
	}
	tmp := out.Name()
	defer func() {
		_ = out.Close()
		_ = os.Remove(tmp)
	}()

	res, err := run(ctx, opts.Callsign, transform.NewReader(in, dec.NewDecoder()), out)
	if err != nil {
		return Result{}, err
	}
	if err := out.Chmod(0o644); err != nil {
		return Result{}, fmt.Errorf("chmod output: %w", err)
	}
	if err := out.Close(); err != nil {
		return Result{}, fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp, opts.OutputPath); err != nil {
		return Result{}, fmt.Errorf("replace output: %w", err)
	}
	return res, nil
}

// Decoder resolves an encoding label. Every returned decoder substitutes
// U+FFFD for byte sequences it cannot decode.
func Decoder(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("input encoding %q: %w", label, err)
	}
	return enc, nil
}

func run(ctx context.Context, callsign string, r io.Reader, w io.Writer) (Result, error) {
	if callsign == "" {
		return Result{}, ErrEmptyCallsign
	}
	marker := AnnouncementMarker(callsign)

	reader := bufio.NewReaderSize(r, 64*1024)
	writer := bufio.NewWriter(w)

	var (
		res        Result
		pending    string
		hasPending bool
	)
	emit := func(line string) error {
		if _, err := writer.WriteString(line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		res.Lines = append(res.Lines, line)
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return Result{}, fmt.Errorf("read input: %w", readErr)
		}
		if line != "" {
			res.Scanned++
			switch {
			case !strings.Contains(line, callsign):
				res.Discarded++
			case strings.Contains(line, marker):
				if hasPending {
					res.Collapsed++
				}
				pending, hasPending = line, true
			default:
				if hasPending {
					if err := emit(pending); err != nil {
						return Result{}, err
					}
					pending, hasPending = "", false
				}
				if err := emit(line); err != nil {
					return Result{}, err
				}
			}
		}
		if readErr != nil {
			break
		}
	}

	if hasPending {
		if err := emit(pending); err != nil {
			return Result{}, err
		}
	}
	if err := writer.Flush(); err != nil {
		return Result{}, fmt.Errorf("write output: %w", err)
	}
	return res, nil
}
