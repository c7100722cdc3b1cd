package search

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// Source is one input collaborator: a display name (empty for stdin) paired
// with the byte stream to split into lines. Opening files, detecting binary
// content and reading stdin are the CLI layer's job; the batch scanner only
// ever sees a reader it can pull lines from.
type Source struct {
	Name   string
	Reader io.Reader
}

// ScanResult is the outcome of one full run of the Batch Scanner: the
// populated Top-K Collector plus the uncapped count of lines that matched,
// used for the CLI's --no-count footer.
type ScanResult struct {
	Collector     *TopKCollector
	TotalAccepted int64
	TotalLines    int64
}

// Run streams lines from sources through query under args, batching them by
// args.BatchSize and dispatching each batch sequentially or in parallel
// per args.Parallel. It returns the first error encountered by any
// worker (including recovered panics); in that case the partial scan is
// discarded and no ScanResult is returned.
func Run(ctx context.Context, args SearchArgs, query Node, sources []Source) (*ScanResult, error) {
	args = args.Normalize()
	collector := NewTopKCollector(args.TopK)
	var mu sync.Mutex
	var totalAccepted int64
	var totalLines int64

	batch := make([]LineRecord, 0, args.BatchSize)
	var seq int64

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		debugf("scanner: dispatching batch of %d lines (parallel=%v)", len(batch), args.Parallel)
		var err error
		if args.Parallel {
			err = evaluateBatchParallel(ctx, args, query, batch, collector, &mu, &totalAccepted)
		} else {
			err = evaluateBatchSequential(ctx, args, query, batch, collector, &mu, &totalAccepted)
		}
		batch = batch[:0]
		return err
	}

	for _, src := range sources {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		scanner := bufio.NewScanner(src.Reader)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		lineno := 0
		for scanner.Scan() {
			lineno++
			seq++
			totalLines++
			batch = append(batch, LineRecord{
				Filename: src.Name,
				Lineno:   lineno,
				Text:     scanner.Text(),
				Seq:      seq,
			})
			if len(batch) >= args.BatchSize {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	debugf("scanner: scanned %d lines, accepted %d, retained %d", totalLines, totalAccepted, collector.Len())
	return &ScanResult{Collector: collector, TotalAccepted: totalAccepted, TotalLines: totalLines}, nil
}

func safeEvaluate(query Node, text string, args SearchArgs) (res MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic evaluating line: %v", r)
		}
	}()
	res = Evaluate(query, text, args)
	return res, nil
}

// evaluateBatchSequential is the parallel=false dispatch mode: evaluate,
// offer to the collector, one line at a time.
func evaluateBatchSequential(ctx context.Context, args SearchArgs, query Node, batch []LineRecord, collector *TopKCollector, mu *sync.Mutex, totalAccepted *int64) error {
	for _, rec := range batch {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		res, err := safeEvaluate(query, rec.Text, args)
		if err != nil {
			return err
		}
		if res.Matched {
			atomic.AddInt64(totalAccepted, 1)
			mu.Lock()
			collector.Offer(ScoredLine{Result: res, Record: rec})
			mu.Unlock()
		}
	}
	return nil
}

// evaluateBatchParallel is the parallel=true dispatch mode: a worker pool
// sized to hardware concurrency pulls line indices off a shared channel.
// Each worker accumulates its own local top-K collector instead of touching
// the shared collector per line, and the local result sets are merged
// into the shared collector once, at the batch boundary, under a single
// lock acquisition. Within-batch order is not preserved; the function only
// returns once every line in the batch has been evaluated, which is what
// gives batch i's results priority over batch i+1's in the caller's
// sequential loop over batches.
func evaluateBatchParallel(ctx context.Context, args SearchArgs, query Node, batch []LineRecord, collector *TopKCollector, mu *sync.Mutex, totalAccepted *int64) error {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(batch) {
		workers = len(batch)
	}
	if workers < 1 {
		workers = 1
	}

	idxCh := make(chan int)
	localResults := make([][]ScoredLine, workers)
	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			local := NewTopKCollector(args.TopK)
			for idx := range idxCh {
				if ctx.Err() != nil {
					continue
				}
				rec := batch[idx]
				res, err := safeEvaluate(query, rec.Text, args)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				if res.Matched {
					atomic.AddInt64(totalAccepted, 1)
					local.Offer(ScoredLine{Result: res, Record: rec})
				}
			}
			localResults[w] = local.Results()
		}(w)
	}

	for i := range batch {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	merged := localResults[0]
	for _, r := range localResults[1:] {
		merged = mergeScoredLines(merged, r)
	}
	mu.Lock()
	for _, sl := range merged {
		collector.Offer(sl)
	}
	mu.Unlock()
	releaseScoredLineBuffer(merged)
	return nil
}
