package player

import (
	"fmt"

	"vidbox/src/library"
)

// A Playlist is a named, mutable ordered collection of videos.
//
// It does not validate anything by itself: existence, flags and duplicates
// are checked by the owner before it mutates the playlist.
type Playlist struct {
	// Name is the name as supplied at creation.
	Name string

	videos []library.Video
}

// NewPlaylist creates an empty playlist.
func NewPlaylist(name string) *Playlist {
	return &Playlist{Name: name}
}

// Append adds a video to the end of the playlist.
func (pl *Playlist) Append(video library.Video) {
	pl.videos = append(pl.videos, video)
}

// Has reports whether a video with the specified id is in the playlist.
func (pl *Playlist) Has(id string) bool {
	for _, video := range pl.videos {
		if video.ID == id {
			return true
		}
	}
	return false
}

// ReplaceAll overwrites the contents of the playlist.
func (pl *Playlist) ReplaceAll(videos []library.Video) {
	pl.videos = append([]library.Video(nil), videos...)
}

// Videos returns all videos in insertion order.
func (pl *Playlist) Videos() []library.Video {
	videos := make([]library.Video, len(pl.videos))
	copy(videos, pl.videos)
	return videos
}

// Len returns the number of videos in the playlist.
func (pl *Playlist) Len() int {
	return len(pl.videos)
}

func (pl *Playlist) String() string {
	return fmt.Sprintf("Playlist{%q, len=%d}", pl.Name, len(pl.videos))
}
