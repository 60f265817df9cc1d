// Package textdb reads a catalog from a plain text file.
//
// Each non-empty line describes one video as three fields separated by a
// pipe: the title, the id and a comma separated list of tags.
//
//   Funny Dogs | funny_dogs_video_id |  #dog , #animal
package textdb

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"vidbox/src/library"
)

// A DB is a library that is backed by a text file.
type DB struct {
	filename string
}

var _ library.Library = &DB{}

// NewDB creates a library reading from the specified file. The file is read
// on every call to Videos.
func NewDB(filename string) *DB {
	return &DB{filename: filename}
}

// Videos implements the library.Library interface.
func (db *DB) Videos(ctx context.Context) ([]library.Video, error) {
	fd, err := os.Open(db.filename)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	defer fd.Close()
	return Decode(fd)
}

func (db *DB) String() string {
	return fmt.Sprintf("textdb.DB{%s}", db.filename)
}

// Decode parses all videos from the specified reader.
func Decode(r io.Reader) ([]library.Video, error) {
	var videos []library.Video
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		video, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("error loading catalog at line %d: %w", lineno, err)
		}
		videos = append(videos, video)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	return videos, nil
}

func parseLine(line string) (library.Video, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 2 || len(fields) > 3 {
		return library.Video{}, fmt.Errorf("expected 2 or 3 fields, got %d", len(fields))
	}
	video := library.Video{
		Title: strings.TrimSpace(fields[0]),
		ID:    strings.TrimSpace(fields[1]),
	}
	if video.ID == "" {
		return library.Video{}, fmt.Errorf("empty video id")
	}
	if len(fields) == 3 {
		for _, tag := range strings.Split(fields[2], ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				video.Tags = append(video.Tags, tag)
			}
		}
	}
	return video, nil
}
