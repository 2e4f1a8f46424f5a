// Package materialize writes grouped titles to disk: one new directory per
// run, one text file per group inside it.
package materialize

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/JonMunkholm/movies/internal/logging"
)

// Default permissions: rwxr-x--- for the directory, rw-r----- for files.
const (
	DefaultDirPerm   os.FileMode = 0o750
	DefaultFilePerm  os.FileMode = 0o640
	DefaultSuffixMax             = 99999
)

// Options controls where and how output is written.
type Options struct {
	Root      string      // parent of the new directory; "" means the working directory
	OwnerID   string      // leading part of the directory name
	DirPerm   os.FileMode // zero means DefaultDirPerm
	FilePerm  os.FileMode // zero means DefaultFilePerm
	SuffixMax int         // suffix is drawn from [0, SuffixMax]

	// Rand returns a value in [0, n). Nil uses math/rand/v2.
	Rand func(n int) int
}

// Output describes what a run created.
type Output struct {
	Dir   string   // path of the created directory
	Files []string // paths of the written files, in key order
}

// Error is a filesystem failure during materialization.
type Error struct {
	Op   string // "mkdir", "chmod", "write"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("materialize: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrExists is wrapped when the randomly named directory already exists.
var ErrExists = errors.New("output directory already exists")

// DirName returns "<owner>.movies.<suffix>".
func DirName(ownerID string, suffix int) string {
	return ownerID + ".movies." + strconv.Itoa(suffix)
}

// Materialize creates a fresh directory named DirName(opts.OwnerID, n) under
// opts.Root and writes "<key>.txt" for each group, one line per string.
// Groups are written in sorted key order. The first failure stops the run;
// nothing already written is removed, and a name collision is not retried.
func Materialize(ctx context.Context, groups map[string][]string, opts Options) (Output, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return Output{}, err
	}

	dir := filepath.Join(opts.Root, DirName(opts.OwnerID, opts.Rand(opts.SuffixMax+1)))
	if err := os.Mkdir(dir, opts.DirPerm); err != nil {
		if errors.Is(err, os.ErrExist) {
			err = fmt.Errorf("%w: %w", ErrExists, err)
		}
		return Output{}, &Error{Op: "mkdir", Path: dir, Err: err}
	}
	// Mkdir is subject to the umask.
	if err := os.Chmod(dir, opts.DirPerm); err != nil {
		return Output{Dir: dir}, &Error{Op: "chmod", Path: dir, Err: err}
	}

	out := Output{Dir: dir, Files: make([]string, 0, len(groups))}
	logger := logging.WithFields(ctx, "dir", dir)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		path := filepath.Join(dir, key+".txt")
		if err := writeLines(path, groups[key], opts.FilePerm); err != nil {
			return out, err
		}
		out.Files = append(out.Files, path)
		logger.Debug("group written", "file", path, "lines", len(groups[key]))
	}

	logger.Info("output materialized", "files", len(out.Files))
	return out, nil
}

func (o Options) withDefaults() (Options, error) {
	if o.OwnerID == "" || strings.ContainsAny(o.OwnerID, `/\`) {
		return o, fmt.Errorf("materialize: invalid owner id %q", o.OwnerID)
	}
	if o.SuffixMax < 0 {
		return o, fmt.Errorf("materialize: negative suffix max %d", o.SuffixMax)
	}
	if o.Root == "" {
		o.Root = "."
	}
	if o.DirPerm == 0 {
		o.DirPerm = DefaultDirPerm
	}
	if o.FilePerm == 0 {
		o.FilePerm = DefaultFilePerm
	}
	if o.Rand == nil {
		o.Rand = rand.IntN
	}
	return o, nil
}

func writeLines(path string, lines []string, perm os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return &Error{Op: "write", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &Error{Op: "write", Path: path, Err: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return &Error{Op: "write", Path: path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &Error{Op: "write", Path: path, Err: err}
	}

	if err := f.Chmod(perm); err != nil {
		return &Error{Op: "chmod", Path: path, Err: err}
	}
	return nil
}
