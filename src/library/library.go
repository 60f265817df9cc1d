package library

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrDuplicateID is returned by Load when two videos share an id.
var ErrDuplicateID = errors.New("duplicate video id")

// A Library is a source that is able to enumerate the videos of a catalog.
type Library interface {
	// Returns all videos known to the source.
	Videos(ctx context.Context) ([]Video, error)
}

// A Catalog is an immutable snapshot of the videos of a Library. It is loaded
// once and never mutated afterwards.
type Catalog struct {
	videos []Video
	index  map[string]*Video
}

// Load reads all videos from the specified library and indexes them by id.
//
// Every video must have a unique, non-empty id. Titles are expected to be
// unique too, a duplicate is logged but accepted.
func Load(ctx context.Context, lib Library) (*Catalog, error) {
	videos, err := lib.Videos(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load videos: %w", err)
	}
	return NewCatalog(videos)
}

// NewCatalog builds a catalog from a list of videos.
func NewCatalog(videos []Video) (*Catalog, error) {
	catalog := &Catalog{
		videos: make([]Video, len(videos)),
		index:  make(map[string]*Video, len(videos)),
	}
	titles := map[string]string{}
	for i, video := range videos {
		if video.ID == "" {
			return nil, fmt.Errorf("video %q at index %d has no id", video.Title, i)
		}
		if _, ok := catalog.index[video.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, video.ID)
		}
		if other, ok := titles[video.Title]; ok {
			log.WithField("video", video.ID).Warnf("Title %q is also used by %q", video.Title, other)
		}
		titles[video.Title] = video.ID

		video.Tags = append([]string(nil), video.Tags...)
		catalog.videos[i] = video
		catalog.index[video.ID] = &catalog.videos[i]
	}
	return catalog, nil
}

// All returns all videos in the order they were loaded.
func (catalog *Catalog) All() []Video {
	videos := make([]Video, len(catalog.videos))
	copy(videos, catalog.videos)
	return videos
}

// Video looks up a video by its id.
func (catalog *Catalog) Video(id string) (Video, bool) {
	if video, ok := catalog.index[id]; ok {
		return *video, true
	}
	return Video{}, false
}

// Len returns the number of videos in the catalog.
func (catalog *Catalog) Len() int {
	return len(catalog.videos)
}

func (catalog *Catalog) String() string {
	return fmt.Sprintf("Catalog{len=%d}", len(catalog.videos))
}
