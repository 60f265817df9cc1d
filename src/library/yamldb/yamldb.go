// Package yamldb reads a catalog from a YAML document of the form:
//
//   videos:
//     - id: funny_dogs_video_id
//       title: Funny Dogs
//       tags: ["#dog", "#animal"]
package yamldb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"vidbox/src/library"
)

type document struct {
	Videos []library.Video `yaml:"videos"`
}

// A DB is a library that is backed by a YAML file.
type DB struct {
	filename string
}

var _ library.Library = &DB{}

// NewDB creates a library reading from the specified file.
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
	return fmt.Sprintf("yamldb.DB{%s}", db.filename)
}

// Decode parses all videos from the specified reader. Unknown fields are
// rejected. An empty document yields an empty catalog.
func Decode(r io.Reader) ([]library.Video, error) {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	var doc document
	if err := d.Decode(&doc); errors.Is(err, io.EOF) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	return doc.Videos, nil
}
