package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// BatchItem is the outcome for one paper in a batch run.
type BatchItem struct {
	Path   string
	Result *Result
	Err    error
}

// GenerateBatch processes every PDF in dir concurrently, bounded by the
// configured worker count. Per-paper failures are recorded in the
// returned items; only an unreadable directory fails the call.
func (s *Service) GenerateBatch(ctx context.Context, dir string, opts Options) ([]BatchItem, error) {
	paths, err := listPDFs(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", dir)
	}

	workers := s.cfg.Get().Defaults.MaxWorkers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	s.logger.Info("starting batch generation", "dir", dir, "papers", len(paths), "workers", workers)

	items := make([]BatchItem, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				items[i] = s.processOne(ctx, paths[i], opts)
			}
		}()
	}

	queued := len(paths)
queue:
	for i := range paths {
		if ctx.Err() != nil {
			queued = i
			break
		}
		select {
		case <-ctx.Done():
			queued = i
			break queue
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	// Papers never handed to a worker are marked cancelled.
	for j := queued; j < len(paths); j++ {
		items[j] = BatchItem{Path: paths[j], Err: ctx.Err()}
	}

	var failed int
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	s.logger.Info("batch generation complete", "papers", len(paths), "failed", failed)
	return items, nil
}

func (s *Service) processOne(ctx context.Context, path string, opts Options) BatchItem {
	p, err := s.PreparePaper(ctx, path, opts)
	if err != nil {
		s.logger.Error("failed to prepare paper", "path", path, "error", err)
		return BatchItem{Path: path, Err: err}
	}
	res, err := s.Generate(ctx, p, opts)
	if err != nil {
		s.logger.Error("failed to generate deck", "path", path, "error", err)
		return BatchItem{Path: path, Err: err}
	}
	return BatchItem{Path: path, Result: res}
}

func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
