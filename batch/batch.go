// Package batch reads line based input and processes the lines on a bounded
// pool of workers.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// maxLine is the longest accepted input line.
const maxLine = 1 << 20

// Record is one input line.
type Record struct {
	ID        string    `json:"id"`
	Line      int       `json:"line"`
	Input     string    `json:"input"`
	CreatedAt time.Time `json:"created_at"`
}

// Result is the outcome of processing a record.
type Result[T any] struct {
	Record Record `json:"record"`
	Value  T      `json:"value"`
	Err    error  `json:"-"`
}

// Failed reports whether processing the record failed.
func (r Result[T]) Failed() bool { return r.Err != nil }

// Batch is one run over a set of documents. Its records are numbered by
// input line and share the run id, so a record id is "<run>-<line>".
type Batch struct {
	ID      string
	Started time.Time
}

// New starts a batch at now. The run id is the UTC start time down to the
// nanosecond, usable as part of a file name.
func New(now time.Time) Batch {
	now = now.UTC()
	return Batch{
		ID:      strings.Replace(now.Format("20060102T150405.000000000"), ".", "_", 1),
		Started: now,
	}
}

// Record creates the record for input found at line.
func (b Batch) Record(line int, input string) Record {
	return Record{
		ID:        fmt.Sprintf("%s-%d", b.ID, line),
		Line:      line,
		Input:     input,
		CreatedAt: b.Started,
	}
}

// Args creates one record per argument, numbered from 1.
func (b Batch) Args(args []string) []Record {
	out := make([]Record, len(args))
	for i, arg := range args {
		out[i] = b.Record(i+1, arg)
	}
	return out
}

// Read returns one record per non blank line of r. Line numbers start at 1
// and count blank lines too.
func (b Batch) Read(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var out []Record
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, b.Record(line, text))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input line %d: %w", line+1, err)
	}
	return out, nil
}

// Run calls fn for every record using at most workers goroutines. Results
// keep the order of records. An error returned by fn is stored in the
// result of its record and doesn't stop the run; Run itself only fails when
// ctx is cancelled.
func Run[T any](ctx context.Context, records []Record, workers int, fn func(context.Context, Record) (T, error)) ([]Result[T], error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result[T], len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := fn(gctx, rec)
			results[i] = Result[T]{Record: rec, Value: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed counts the failed results.
func Failed[T any](results []Result[T]) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}
