// Package osz loads whole beatmap sets from .osz archives and from
// unpacked song directories. An .osz file is a plain ZIP archive whose
// top-level .osu members are the set's difficulties.
package osz

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"osukit/beatmap"
)

// ErrNoBeatmaps reports an archive or directory with no decodable .osu file.
var ErrNoBeatmaps = errors.New("no beatmaps found")

// FileDiagnostic ties a decode diagnostic to the archive member or file it
// came from. Members that fail to decode at all appear with a Line of zero.
type FileDiagnostic struct {
	File string
	beatmap.Diagnostic
}

func (f FileDiagnostic) String() string {
	return f.File + ": " + f.Diagnostic.String()
}

// ReadFile loads a beatmap set from an .osz archive on disk.
func ReadFile(path string) (*beatmap.BeatmapSet, []FileDiagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	return Read(f, st.Size())
}

// Read loads a beatmap set from .osz archive bytes. Members that are not
// top-level .osu files are ignored; members that fail to decode are skipped
// and reported. Read fails only when the archive itself is unreadable or
// holds no decodable beatmap.
func Read(r io.ReaderAt, size int64) (*beatmap.BeatmapSet, []FileDiagnostic, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, nil, fmt.Errorf("opening osz: %w", err)
	}

	set := beatmap.NewSet()
	var diags []FileDiagnostic
	for _, file := range zr.File {
		if !strings.HasSuffix(strings.ToLower(file.Name), ".osu") {
			continue
		}
		// Difficulties live at the archive root; anything nested is
		// storyboard or skin clutter.
		if file.FileInfo().IsDir() || strings.ContainsAny(file.Name, `/\`) {
			continue
		}
		b, ds, err := decodeMember(file)
		if err != nil {
			diags = append(diags, FileDiagnostic{
				File:       file.Name,
				Diagnostic: beatmap.Diagnostic{Message: err.Error()},
			})
			continue
		}
		for _, d := range ds {
			diags = append(diags, FileDiagnostic{File: file.Name, Diagnostic: d})
		}
		set.Add(b)
	}
	if len(set.Maps) == 0 {
		return nil, diags, fmt.Errorf("%w in archive", ErrNoBeatmaps)
	}
	return set, diags, nil
}

func decodeMember(file *zip.File) (*beatmap.Beatmap, []beatmap.Diagnostic, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()
	return beatmap.Decode(rc)
}

// ReadDir loads a beatmap set from an unpacked song directory, decoding the
// .osu files it finds there in parallel. Subdirectories are not searched.
func ReadDir(ctx context.Context, dir string) (*beatmap.BeatmapSet, []FileDiagnostic, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".osu") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return ReadFiles(ctx, paths...)
}

// ReadFiles decodes the given .osu files concurrently and assembles them
// into one set. Files are added in input order, so the set's shared metadata
// comes from the first file that carries it. Files that fail to decode are
// skipped and reported.
func ReadFiles(ctx context.Context, paths ...string) (*beatmap.BeatmapSet, []FileDiagnostic, error) {
	if len(paths) == 0 {
		return nil, nil, ErrNoBeatmaps
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	maps := make([]*beatmap.Beatmap, len(paths))
	var mu sync.Mutex
	var diags []FileDiagnostic

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, ds, err := beatmap.DecodeFile(path)

			mu.Lock()
			defer mu.Unlock()
			name := filepath.Base(path)
			if err != nil {
				diags = append(diags, FileDiagnostic{
					File:       name,
					Diagnostic: beatmap.Diagnostic{Message: err.Error()},
				})
				return nil
			}
			for _, d := range ds {
				diags = append(diags, FileDiagnostic{File: name, Diagnostic: d})
			}
			maps[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	set := beatmap.NewSet()
	for _, b := range maps {
		if b != nil {
			set.Add(b)
		}
	}
	if len(set.Maps) == 0 {
		return nil, diags, ErrNoBeatmaps
	}
	return set, diags, nil
}
