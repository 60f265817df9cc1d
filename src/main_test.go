package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidbox/src/config"
	"vidbox/src/library"
	"vidbox/src/library/sqlitedb"
)

const testCatalog = `Funny Dogs | funny_dogs_video_id |  #dog , #animal
Amazing Cats | amazing_cats_video_id |  #cat , #animal
Video about nothing | nothing_video_id |
`

func writeFile(t *testing.T, dir, name, content string) string {
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "videos.txt", testCatalog)
	database := filepath.Join(dir, "videos.db")

	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"import", database, "--catalog", catalog, "--conf", filepath.Join(dir, "absent.yaml")})
	// An explicitly named configuration file must exist.
	if err := cmd.Execute(); err == nil {
		t.Fatalf("Expected an error for a missing configuration file")
	}

	cmd = rootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"import", database, "--catalog", catalog, "--log", "error"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Imported 3 videos into") {
		t.Fatalf("Unexpected output: %q", out.String())
	}

	db, err := sqlitedb.Open(database)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	loaded, err := library.Load(context.Background(), db)
	if err != nil {
		t.Fatal(err)
	}
	video, ok := loaded.Video("amazing_cats_video_id")
	if !ok || video.Title != "Amazing Cats" || !video.HasTag("#animal") {
		t.Fatalf("Unexpected video: %#v", video)
	}
}

func TestImportIntoItself(t *testing.T) {
	dir := t.TempDir()
	database := filepath.Join(dir, "videos.db")

	cmd := rootCommand()
	cmd.SetArgs([]string{"import", database, "--catalog", database, "--log", "error"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("Importing a database into itself should fail")
	}
}

func TestOpenLibrary(t *testing.T) {
	dir := t.TempDir()
	yamlCatalog := writeFile(t, dir, "videos.yml", `
videos:
  - id: v1
    title: Amy
    tags: [funny]
`)
	textCatalog := writeFile(t, dir, "videos.txt", testCatalog)

	cases := []struct {
		path, format string
		expected     int
	}{
		{yamlCatalog, "", 1},
		{textCatalog, "", 3},
		{textCatalog, config.FormatText, 3},
		{filepath.Join(dir, "new.sqlite"), "", 0},
	}
	for _, c := range cases {
		conf := config.Default()
		conf.Catalog.Path = c.path
		conf.Catalog.Format = c.format

		lib, closeLib, err := openLibrary(conf)
		if err != nil {
			t.Fatal(err)
		}
		catalog, err := library.Load(context.Background(), lib)
		closeLib()
		if err != nil {
			t.Fatal(err)
		}
		if catalog.Len() != c.expected {
			t.Fatalf("Unexpected number of videos in %s: %d", c.path, catalog.Len())
		}
	}

	conf := config.Default()
	conf.Catalog.Format = "csv"
	if _, _, err := openLibrary(conf); err == nil {
		t.Fatalf("An unknown format should be rejected")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	cmd := rootCommand()
	cmd.SetArgs([]string{"--log", "loud", "--version"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("Expected an error for an invalid log level")
	}
}
