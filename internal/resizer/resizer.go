package resizer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"downsize/pkg/imgutil"
)

// tempPattern keeps orphaned temp files out of later runs: ".tmp" is not a
// supported extension.
const tempPattern = "downsize-*.tmp"

// rename is swapped in tests to fail the commit step.
var rename = os.Rename

// Run resizes every oversized image directly inside dir, one file at a time,
// in directory listing order. A missing or unreadable dir is the only fatal
// condition; per-file failures are reported in the returned results.
//
// If updates is non-nil it receives the candidate count once and then one
// update per finished file. The caller owns the channel and closes it.
func Run(ctx context.Context, dir string, opts Options, updates chan<- ProgressUpdate) (Summary, []Result, error) {
	summary := Summary{}

	if err := opts.Validate(); err != nil {
		return summary, nil, err
	}

	log := opts.Logger.With().Str("component", "resizer").Logger()

	if err := CheckDir(dir); err != nil {
		return summary, nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return summary, nil, fmt.Errorf("%w: %w", ErrDirectoryNotFound, err)
	}

	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !imgutil.SupportedExt(entry.Name()) {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, entry.Name()))
	}

	log.Debug().
		Str("dir", dir).
		Int("entries", len(entries)).
		Int("candidates", len(candidates)).
		Int("max-width", opts.MaxWidth).
		Int("max-height", opts.MaxHeight).
		Int("quality", opts.Quality).
		Bool("dry-run", opts.DryRun).
		Msg("directory listed")

	if updates != nil {
		updates <- ProgressUpdate{TotalDelta: len(candidates)}
	}

	results := make([]Result, 0, len(candidates))
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			log.Info().Int("done", len(results)).Int("remaining", len(candidates)-len(results)).Msg("interrupted")
			return summary, results, err
		}

		res := processFile(path, opts, log)
		summary.add(res)
		results = append(results, res)

		if updates != nil {
			r := res
			updates <- ProgressUpdate{Result: &r}
		}
	}

	log.Debug().
		Int("resized", summary.Resized).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int64("bytes-saved", summary.BytesSaved).
		Msg("run completed")

	return summary, results, nil
}

// CheckDir reports ErrDirectoryNotFound unless dir exists and is a directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return fmt.Errorf("%w: %w", ErrDirectoryNotFound, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}
	return nil
}

// ProcessFile applies the resize procedure to a single file. It never
// returns an error: failures are captured in the result.
func ProcessFile(path string, opts Options) Result {
	return processFile(path, opts, opts.Logger)
}

func processFile(path string, opts Options, log zerolog.Logger) Result {
	res := Result{Name: filepath.Base(path), Path: path, DryRun: opts.DryRun}
	log = log.With().Str("file", res.Name).Logger()

	if err := resizeFile(path, opts, &res, log); err != nil {
		res.Status = StatusFailed
		res.Err = err
		log.Debug().Str("errmsg", err.Error()).Msg("processing failed")
		return res
	}

	log.Debug().
		Str("status", res.Status.String()).
		Str("format", res.Format.String()).
		Int("width", res.Width).
		Int("height", res.Height).
		Int("new-width", res.NewWidth).
		Int("new-height", res.NewHeight).
		Strs("dropped-metadata", res.DroppedMetadata).
		Msg("file processed")
	return res
}

func resizeFile(path string, opts Options, res *Result, log zerolog.Logger) error {
	// Symlinks fail too: the rename would replace the link, not its target.
	linfo, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !linfo.Mode().IsRegular() {
		return fmt.Errorf("%w (%s)", ErrNotRegularFile, describeType(linfo.Mode()))
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	srcInfo, err := file.Stat()
	if err != nil {
		return err
	}
	res.BytesBefore = srcInfo.Size()

	kind, err := imgutil.SniffReader(file)
	if err != nil {
		return err
	}
	if kind == imgutil.KindUnknown {
		return ErrUnsupportedFormat
	}
	res.Format = kind

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	cfg, err := decodeConfig(file, kind)
	if err != nil {
		return err
	}
	res.Width, res.Height = cfg.Width, cfg.Height

	newWidth, newHeight, needed := Fit(cfg.Width, cfg.Height, opts.MaxWidth, opts.MaxHeight)
	res.NewWidth, res.NewHeight = newWidth, newHeight
	if !needed {
		res.Status = StatusSkipped
		return nil
	}

	dropped, err := droppedMetadata(file, kind)
	if err != nil {
		log.Debug().Str("errmsg", err.Error()).Msg("metadata scan failed")
	}
	res.DroppedMetadata = dropped

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	src, err := decode(file, kind)
	if err != nil {
		return err
	}

	if opts.DryRun {
		res.Status = StatusResized
		return nil
	}

	dst := imaging.Resize(src, newWidth, newHeight, imaging.Lanczos)

	written, err := replaceFile(path, srcInfo.Mode(), func(w io.Writer) error {
		return encode(w, dst, kind, opts.Quality)
	})
	if err != nil {
		return err
	}
	res.BytesAfter = written
	res.Status = StatusResized
	return nil
}

func describeType(mode fs.FileMode) string {
	switch {
	case mode.IsDir():
		return "directory"
	case mode&fs.ModeSymlink != 0:
		return "symlink"
	default:
		return "special file"
	}
}

// replaceFile writes through a sibling temp file and renames it over path.
// The rename is the commit point; until then path is untouched.
func replaceFile(path string, mode fs.FileMode, write func(io.Writer) error) (int64, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmpFile.Name())

	if err := tmpFile.Chmod(mode.Perm()); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}

	bw := bufio.NewWriter(tmpFile)
	if err := write(bw); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	outInfo, err := tmpFile.Stat()
	if err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Close(); err != nil {
		return 0, err
	}

	if err := rename(tmpFile.Name(), path); err != nil {
		return 0, err
	}
	return outInfo.Size(), nil
}
