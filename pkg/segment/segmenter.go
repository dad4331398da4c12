package segment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Defaults for chunked reading and progress reporting.
const (
	// DefaultChunkSize balances responsiveness and per-chunk overhead.
	DefaultChunkSize = 256 * 1024

	// DefaultProgressInterval is the minimum number of bytes between two
	// progress reports.
	DefaultProgressInterval = 1024 * 1024
)

// Error categories surfaced by Parse. Use errors.Is to branch on them.
var (
	// ErrDecode indicates the byte stream could not be interpreted as text.
	ErrDecode = errors.New("decoding input")

	// ErrRead indicates the underlying byte source failed mid-read.
	ErrRead = errors.New("reading input")
)

// Encoding selects how input bytes are decoded to text.
type Encoding string

// Supported input encodings. A byte order mark in the input always wins for
// the UTF-16 variants.
const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF16LE Encoding = "utf-16le"
	EncodingUTF16BE Encoding = "utf-16be"
)

// Segmenter performs single-pass streaming segmentation of a byte source into
// logical log entries. A Segmenter is stateless between Parse calls; two
// concurrent parses of different sources need no synchronization as long as
// they use separate Segmenter values or the same value with no mutation.
type Segmenter struct {
	chunkSize        int
	progressInterval int64
	progressFn       func(Progress)
	encoding         Encoding
	strictUTF8       bool
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithChunkSize sets the number of bytes read per chunk (default 256 KiB).
func WithChunkSize(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithProgressInterval sets the minimum number of bytes processed between two
// progress reports (default 1 MiB). The final chunk always reports.
func WithProgressInterval(n int64) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.progressInterval = n
		}
	}
}

// WithProgress registers a callback invoked after a chunk when at least the
// progress interval has elapsed since the last report, and always on the
// final chunk. The callback runs on the parsing goroutine, in order.
func WithProgress(fn func(Progress)) Option {
	return func(s *Segmenter) {
		s.progressFn = fn
	}
}

// WithEncoding sets the input encoding (default EncodingUTF8).
func WithEncoding(enc Encoding) Option {
	return func(s *Segmenter) {
		s.encoding = enc
	}
}

// WithStrictUTF8 makes malformed UTF-8 abort the parse with ErrDecode instead
// of being replaced with U+FFFD. Only meaningful with EncodingUTF8.
func WithStrictUTF8() Option {
	return func(s *Segmenter) {
		s.strictUTF8 = true
	}
}

// New creates a Segmenter with the given options applied over defaults.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		chunkSize:        DefaultChunkSize,
		progressInterval: DefaultProgressInterval,
		encoding:         EncodingUTF8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTransformer builds the stateful incremental decoder for one parse.
func newTransformer(enc Encoding, strict bool) (transform.Transformer, error) {
	var base encoding.Encoding
	switch enc {
	case "", EncodingUTF8:
		base = unicode.UTF8
	case EncodingUTF16LE:
		base = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingUTF16BE:
		base = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}

	t := transform.Transformer(base.NewDecoder())
	if strict && (enc == "" || enc == EncodingUTF8) {
		t = transform.Chain(encoding.UTF8Validator, t)
	}
	return t, nil
}

// Parse consumes src in a single forward pass and returns the segmented
// entries with aggregate statistics. A nil src or a zero-size source is valid
// empty input and yields an empty result, not an error. On failure no partial
// result is returned.
func (s *Segmenter) Parse(ctx context.Context, src Source) (*Result, error) {
	started := time.Now()

	result := &Result{Entries: []LogEntry{}}
	if src == nil || src.Size() == 0 {
		result.Stats.DurationMs = time.Since(started).Milliseconds()
		return result, nil
	}

	dec, err := newTransformer(s.encoding, s.strictUTF8)
	if err != nil {
		return nil, err
	}

	var (
		total      = src.Size()
		processed  int64
		lastReport int64

		pending []byte // undecoded trailing bytes carried across chunks
		partial string // trailing incomplete line carried across chunks

		lineNum   int
		openStart int
		open      []string // physical lines of the entry being accumulated
	)

	finalize := func() {
		if open == nil {
			return
		}
		first := open[0]
		result.Entries = append(result.Entries, LogEntry{
			LineStart: openStart,
			LineEnd:   openStart + len(open) - 1,
			Text:      strings.Join(open, "\n"),
			Severity:  extractSeverity(first),
			Timestamp: extractTimestamp(first),
		})
		open = nil
	}

	feed := func(line string) {
		lineNum++
		if open == nil {
			openStart = lineNum
			open = []string{line}
			return
		}
		// Continuation wins over the entry-start signal when both hold.
		if IsEntryStart(line) && !IsContinuation(line) {
			finalize()
			openStart = lineNum
			open = []string{line}
			return
		}
		open = append(open, line)
	}

	chunk := make([]byte, s.chunkSize)
	// Sized so even tiny test chunk sizes leave room for a full decoded rune.
	dstSize := 2 * s.chunkSize
	if dstSize < 64 {
		dstSize = 64
	}
	dst := make([]byte, dstSize)

	for eof := false; !eof; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, rerr := src.Read(chunk)
		if n > 0 {
			processed += int64(n)
			pending = append(pending, chunk[:n]...)
		}
		switch {
		case rerr == io.EOF:
			eof = true
		case rerr != nil:
			return nil, fmt.Errorf("%w: %v", ErrRead, rerr)
		}
		if n == 0 && !eof {
			continue
		}

		text, rest, derr := decodeChunk(dec, dst, pending, eof)
		if derr != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, derr)
		}
		pending = rest

		partial = splitLines(partial+text, feed)

		if eof {
			// A non-empty trailing fragment is one final complete line.
			if partial != "" {
				feed(partial)
				partial = ""
			}
			finalize()
		}

		if s.progressFn != nil && (eof || processed-lastReport >= s.progressInterval) {
			lastReport = processed
			s.progressFn(Progress{
				BytesProcessed: processed,
				TotalBytes:     total,
				Fraction:       fraction(processed, total),
				Lines:          lineNum,
				Entries:        len(result.Entries),
			})
		}
	}

	result.Stats = ParsingStats{
		BytesProcessed: processed,
		TotalBytes:     total,
		Lines:          lineNum,
		Entries:        len(result.Entries),
		DurationMs:     time.Since(started).Milliseconds(),
	}
	return result, nil
}

// decodeChunk runs the incremental decoder over src, returning the decoded
// text and any undecoded trailing bytes to carry into the next chunk. With
// atEOF set the decoder flushes; leftover bytes then mean malformed input.
func decodeChunk(dec transform.Transformer, dst, src []byte, atEOF bool) (string, []byte, error) {
	var out strings.Builder
	for {
		nDst, nSrc, err := dec.Transform(dst, src, atEOF)
		out.Write(dst[:nDst])
		src = src[nSrc:]

		switch {
		case err == nil:
			return out.String(), nil, nil
		case errors.Is(err, transform.ErrShortDst):
			// Output buffer filled; keep transforming the rest.
		case errors.Is(err, transform.ErrShortSrc):
			if atEOF {
				return "", nil, err
			}
			rest := make([]byte, len(src))
			copy(rest, src)
			return out.String(), rest, nil
		default:
			return "", nil, err
		}
	}
}

// splitLines feeds every complete line in text to fn, accepting both \n and
// \r\n terminators, and returns the trailing fragment after the last
// terminator.
func splitLines(text string, fn func(string)) string {
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return text
		}
		fn(strings.TrimSuffix(text[:i], "\r"))
		text = text[i+1:]
	}
}

// fraction clamps processed/total into [0,1].
func fraction(processed, total int64) float64 {
	if total <= 0 {
		return 1
	}
	f := float64(processed) / float64(total)
	if f > 1 {
		return 1
	}
	return f
}
