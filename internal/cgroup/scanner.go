package cgroup

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rileyhilliard/cgtop/internal/errors"
	"github.com/rileyhilliard/cgtop/internal/logger"
)

// scanWorkers bounds the parallel counter-file reads per cycle.
const scanWorkers = 8

// Scanner enumerates group directories under a hierarchy root and reads
// each group's counter files.
type Scanner struct {
	root string
	log  logger.Logger
}

// NewScanner creates a scanner for the given hierarchy root directory.
func NewScanner(root string, log logger.Logger) *Scanner {
	if log == nil {
		log = logger.Noop()
	}
	return &Scanner{root: root, log: log}
}

// Root returns the hierarchy root directory being scanned.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the hierarchy and returns the stats for every reachable
// group, keyed by normalized group path. Unreadable subtrees are skipped
// with a diagnostic; only a root that cannot be scanned at all is an
// error (code ROOT), which signals the caller to fall back to synthetic
// data.
func (s *Scanner) Scan(ctx context.Context) (map[Path]ResourceStats, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRoot,
			"cgroup root is not readable: "+s.root,
			"Check the path exists and you have permission to read it")
	}

	paths, dirs, err := s.collectPaths()
	if err != nil {
		return nil, err
	}

	// Read counter files through a bounded worker pool, joined at one
	// barrier before the result is assembled. Each worker writes its own
	// slot, so the output is identical regardless of scheduling.
	results := make([]ResourceStats, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanWorkers)
	for i := range paths {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = ReadGroupStats(dirs[i], s.log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := make(map[Path]ResourceStats, len(paths))
	for i, p := range paths {
		stats[p] = results[i]
	}
	return stats, nil
}

// collectPaths walks the directory tree under the root, returning group
// paths and their filesystem directories in matching, sorted order.
func (s *Scanner) collectPaths() ([]Path, []string, error) {
	type entry struct {
		path Path
		dir  string
	}
	var entries []entry

	err := filepath.WalkDir(s.root, func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry: skip it, keep the cycle going.
			s.log.Debug("cgroup walk: %s: %v", full, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		p, ok := RelativePath(s.root, full)
		if !ok {
			return nil
		}
		entries = append(entries, entry{path: p, dir: full})
		return nil
	})
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrRoot,
			"cgroup hierarchy walk failed under "+s.root, "")
	}

	// WalkDir visits lexically, but sort anyway so callers can rely on
	// deterministic order no matter how paths were gathered.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].path < entries[j].path
	})

	paths := make([]Path, len(entries))
	dirs := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.path
		dirs[i] = e.dir
	}
	return paths, dirs, nil
}
