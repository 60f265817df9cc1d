package jukebox

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"vidbox/src/library"
	"vidbox/src/player"
)

// CreatePlaylist creates an empty playlist. Names are unique regardless of
// case, the name is kept as supplied for display.
func (jb *Jukebox) CreatePlaylist(name string) error {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	key := normalizeName(name)
	if _, ok := jb.playlists[key]; ok {
		return &Error{Op: OpCreatePlaylist, Playlist: name, Err: ErrPlaylistExists}
	}
	jb.playlists[key] = player.NewPlaylist(name)
	log.WithField("playlist", name).Debugf("Created")
	return nil
}

// AddToPlaylist appends a video to a playlist. Flagged videos and videos that
// are already in the playlist are refused.
func (jb *Jukebox) AddToPlaylist(name, id string) (library.Video, error) {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	pl, ok := jb.playlists[normalizeName(name)]
	if !ok {
		return library.Video{}, &Error{Op: OpAddToPlaylist, Playlist: name, VideoID: id, Err: ErrPlaylistNotFound}
	}
	video, ok := jb.catalog.Video(id)
	if !ok {
		return library.Video{}, &Error{Op: OpAddToPlaylist, Playlist: name, VideoID: id, Err: ErrVideoNotFound}
	}
	if flag, ok := jb.flags[id]; ok {
		return library.Video{}, &Error{Op: OpAddToPlaylist, Playlist: name, VideoID: id, Reason: flag.Reason, Err: ErrVideoFlagged}
	}
	if pl.Has(id) {
		return library.Video{}, &Error{Op: OpAddToPlaylist, Playlist: name, VideoID: id, Err: ErrAlreadyAdded}
	}
	pl.Append(video)
	log.WithField("playlist", pl.Name).WithField("video", id).Debugf("Added")
	return video, nil
}

// RemoveFromPlaylist removes a video from a playlist. Flagged videos may be
// removed.
func (jb *Jukebox) RemoveFromPlaylist(name, id string) (library.Video, error) {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	pl, ok := jb.playlists[normalizeName(name)]
	if !ok {
		return library.Video{}, &Error{Op: OpRemoveFromPlaylist, Playlist: name, VideoID: id, Err: ErrPlaylistNotFound}
	}
	video, ok := jb.catalog.Video(id)
	if !ok {
		return library.Video{}, &Error{Op: OpRemoveFromPlaylist, Playlist: name, VideoID: id, Err: ErrVideoNotFound}
	}
	if !pl.Has(id) {
		return library.Video{}, &Error{Op: OpRemoveFromPlaylist, Playlist: name, VideoID: id, Err: ErrNotInPlaylist}
	}

	videos := pl.Videos()
	kept := videos[:0]
	for _, v := range videos {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	pl.ReplaceAll(kept)
	log.WithField("playlist", pl.Name).WithField("video", id).Debugf("Removed")
	return video, nil
}

// ClearPlaylist removes all videos from a playlist.
func (jb *Jukebox) ClearPlaylist(name string) error {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	pl, ok := jb.playlists[normalizeName(name)]
	if !ok {
		return &Error{Op: OpClearPlaylist, Playlist: name, Err: ErrPlaylistNotFound}
	}
	pl.ReplaceAll(nil)
	log.WithField("playlist", pl.Name).Debugf("Cleared")
	return nil
}

// DeletePlaylist removes a playlist entirely.
func (jb *Jukebox) DeletePlaylist(name string) error {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	key := normalizeName(name)
	if _, ok := jb.playlists[key]; !ok {
		return &Error{Op: OpDeletePlaylist, Playlist: name, Err: ErrPlaylistNotFound}
	}
	delete(jb.playlists, key)
	log.WithField("playlist", name).Debugf("Deleted")
	return nil
}

// ShowAllPlaylists returns the display names of all playlists, sorted
// alphabetically ignoring case. The result is empty if there are none.
func (jb *Jukebox) ShowAllPlaylists() []string {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	keys := make([]string, 0, len(jb.playlists))
	for key := range jb.playlists {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = jb.playlists[key].Name
	}
	return names
}

// ShowPlaylist lists the videos of a playlist in insertion order.
func (jb *Jukebox) ShowPlaylist(name string) ([]Listing, error) {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	pl, ok := jb.playlists[normalizeName(name)]
	if !ok {
		return nil, &Error{Op: OpShowPlaylist, Playlist: name, Err: ErrPlaylistNotFound}
	}
	return jb.listings(pl.Videos()), nil
}
