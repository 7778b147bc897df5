package osz

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func osuText(title, artist, version string) string {
	return "osu file format v14\n" +
		"[Metadata]\n" +
		"Title:" + title + "\n" +
		"Artist:" + artist + "\n" +
		"Version:" + version + "\n"
}

func buildArchive(t *testing.T, members map[string]string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestReadArchive(t *testing.T) {
	r := buildArchive(t, map[string]string{
		"song (mapper) [Easy].osu": osuText("Song", "Artist", "Easy"),
		"song (mapper) [Hard].osu": osuText("Song", "Artist", "Hard"),
		"audio.mp3":                "not a beatmap",
		"sb/background.osu":        "nested, ignored",
	})

	set, diags, err := Read(r, r.Size())
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Errorf("diagnostics: %v", diags)
	}
	if set.Title != "Song" || set.Artist != "Artist" {
		t.Errorf("set metadata = %q / %q", set.Title, set.Artist)
	}
	if len(set.Maps) != 2 {
		t.Fatalf("maps = %d, want 2", len(set.Maps))
	}
	for _, v := range []string{"Easy", "Hard"} {
		if set.Maps[v] == nil {
			t.Errorf("missing difficulty %q", v)
		}
	}
}

func TestReadSkipsUndecodableMember(t *testing.T) {
	r := buildArchive(t, map[string]string{
		"good.osu":   osuText("Song", "Artist", "Easy"),
		"broken.osu": "not a beatmap at all\n",
	})

	set, diags, err := Read(r, r.Size())
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Maps) != 1 {
		t.Errorf("maps = %d, want 1", len(set.Maps))
	}
	if len(diags) != 1 || diags[0].File != "broken.osu" {
		t.Errorf("diagnostics = %v, want one for broken.osu", diags)
	}
}

func TestReadEmptyArchive(t *testing.T) {
	r := buildArchive(t, map[string]string{"audio.mp3": "x"})
	_, _, err := Read(r, r.Size())
	if !errors.Is(err, ErrNoBeatmaps) {
		t.Errorf("err = %v, want ErrNoBeatmaps", err)
	}
}

func TestReadNotAZip(t *testing.T) {
	r := bytes.NewReader([]byte("plain text"))
	if _, _, err := Read(r, r.Size()); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a [Easy].osu", osuText("Song", "", "Easy"))
	write("a [Hard].osu", osuText("Song", "Artist", "Hard"))
	write("notes.txt", "ignored")

	set, diags, err := ReadDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Errorf("diagnostics: %v", diags)
	}
	if len(set.Maps) != 2 {
		t.Errorf("maps = %d, want 2", len(set.Maps))
	}
	if set.Artist != "Artist" {
		t.Errorf("Artist = %q, want filled from the difficulty that has it", set.Artist)
	}
}

func TestReadFilesNoInput(t *testing.T) {
	if _, _, err := ReadFiles(context.Background()); !errors.Is(err, ErrNoBeatmaps) {
		t.Errorf("err = %v, want ErrNoBeatmaps", err)
	}
}
