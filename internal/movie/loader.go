package movie

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/movies/internal/logging"
)

// ContextCheckInterval is how often (in rows) to check for context cancellation.
var ContextCheckInterval = 100

// LoadOption configures a load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	policy Policy
	onSkip func(SkipNotice)
	source string
}

// WithPolicy selects the validation policy. The default is Bracketed.
func WithPolicy(p Policy) LoadOption {
	return func(o *loadOptions) { o.policy = p }
}

// WithSkipHandler registers a callback invoked for every rejected row, in
// source order, as soon as the row is read.
func WithSkipHandler(fn func(SkipNotice)) LoadOption {
	return func(o *loadOptions) { o.onSkip = fn }
}

// WithSource names the input in errors and logs.
func WithSource(name string) LoadOption {
	return func(o *loadOptions) { o.source = name }
}

// LoadFile opens path and loads it. Failing to open the file is fatal.
func LoadFile(ctx context.Context, path string, opts ...LoadOption) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, &SourceError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	return Load(ctx, f, append([]LoadOption{WithSource(path)}, opts...)...)
}

// Load reads a movie CSV from r. The first row is a header and is skipped.
//
// Rows failing validation are reported in Result.Skipped and never stop the
// load. A read failure, or cancellation of ctx, returns an error and no records.
func Load(ctx context.Context, r io.Reader, opts ...LoadOption) (Result, error) {
	o := loadOptions{policy: Bracketed}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.policy.Validate(); err != nil {
		return Result{}, err
	}

	logger := logging.WithFields(ctx, "source", o.source, "policy", o.policy.Name)

	counter := NewCountingReader(NormalizeReader(r))
	cr := csv.NewReader(counter)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = !o.policy.StrictQuotes

	readErr := func(err error) error {
		return &SourceError{Path: o.source, Op: "read", Err: err}
	}

	// Header. A syntax error inside it still consumes it.
	if _, err := cr.Read(); err != nil {
		var pe *csv.ParseError
		switch {
		case errors.Is(err, io.EOF):
			return Result{Bytes: counter.BytesRead}, nil
		case errors.As(err, &pe):
			logger.Debug("malformed header row", "error", err)
		default:
			return Result{}, readErr(err)
		}
	}

	var (
		records []Record
		skipped []SkipNotice
		rows    int
	)

	report := func(n SkipNotice) {
		skipped = append(skipped, n)
		logger.Debug("row skipped", "line", n.Line, "reason", string(n.Reason), "value", n.Value)
		if o.onSkip != nil {
			o.onSkip(n)
		}
	}

	for {
		if rows%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("load cancelled after %d rows: %w", rows, err)
			}
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) && isRowError(pe.Err) {
				rows++
				report(SkipNotice{Line: pe.StartLine, Reason: ReasonMalformedRow, Value: pe.Err.Error()})
				continue
			}
			return Result{}, readErr(err)
		}
		rows++

		line, _ := cr.FieldPos(0)
		rec, notice := o.policy.ValidateRow(fields, line)
		if notice != nil {
			report(*notice)
			continue
		}
		records = append(records, rec)
	}

	res := Result{
		Records: Collection{records: records},
		Skipped: skipped,
		Rows:    rows,
		Bytes:   counter.BytesRead,
	}
	logger.Info("movie file loaded", "rows", rows, "records", len(records), "skipped", len(skipped))
	return res, nil
}

// isRowError reports whether a CSV syntax error is confined to one row.
func isRowError(err error) bool {
	return errors.Is(err, csv.ErrBareQuote) ||
		errors.Is(err, csv.ErrQuote) ||
		errors.Is(err, csv.ErrFieldCount)
}
