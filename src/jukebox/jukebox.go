package jukebox

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"vidbox/src/filter"
	"vidbox/src/library"
	"vidbox/src/player"
)

// DefaultFlagReason is used when a video is flagged without a reason.
const DefaultFlagReason = "Not supplied"

// A Flag marks a video as unplayable. A video without a Flag is playable.
type Flag struct {
	Reason string
}

// A Listing is a video along with its flag, if any.
type Listing struct {
	library.Video
	Flag *Flag
}

// Flagged reports whether the listed video is flagged.
func (l Listing) Flagged() bool {
	return l.Flag != nil
}

// PlayResult describes a video that started playing.
type PlayResult struct {
	Video library.Video
	// Stopped is the video that was in the slot before, if any. It is also
	// set when playing fails.
	Stopped *library.Video
}

// PauseResult describes the outcome of a pause.
type PauseResult struct {
	Video         library.Video
	AlreadyPaused bool
}

// FlagResult describes a video that was flagged.
type FlagResult struct {
	Video  library.Video
	Reason string
	// Stopped is set if the flagged video was playing.
	Stopped *library.Video
}

// Jukebox manages playback, flags and playlists on top of a catalog.
//
// All methods are safe for concurrent use, each operation runs with exclusive
// access to the state.
type Jukebox struct {
	lock sync.Mutex

	catalog   *library.Catalog
	flags     map[string]Flag
	slot      player.Slot
	playlists map[string]*player.Playlist
	rand      *rand.Rand
}

// NewJukebox creates a Jukebox for the specified catalog. If rnd is nil, a
// time seeded source is used to pick random videos.
func NewJukebox(catalog *library.Catalog, rnd *rand.Rand) *Jukebox {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Jukebox{
		catalog:   catalog,
		flags:     map[string]Flag{},
		playlists: map[string]*player.Playlist{},
		rand:      rnd,
	}
}

// NumberOfVideos returns the size of the catalog.
func (jb *Jukebox) NumberOfVideos() int {
	return jb.catalog.Len()
}

// ShowAllVideos lists all videos sorted by title.
func (jb *Jukebox) ShowAllVideos() []Listing {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	videos := jb.catalog.All()
	sort.Slice(videos, func(a, b int) bool {
		if videos[a].Title != videos[b].Title {
			return videos[a].Title < videos[b].Title
		}
		return videos[a].ID < videos[b].ID
	})
	return jb.listings(videos)
}

// Play starts playing the video with the specified id. A video that is
// already in the slot is stopped first, even if the new video turns out to be
// unknown or flagged. The stopped video is reported in the result in both
// cases.
func (jb *Jukebox) Play(id string) (PlayResult, error) {
	jb.lock.Lock()
	defer jb.lock.Unlock()
	return jb.play(OpPlay, id)
}

func (jb *Jukebox) play(op Op, id string) (PlayResult, error) {
	var result PlayResult
	if stopped, err := jb.slot.Stop(); err == nil {
		log.WithField("video", stopped.ID).Debugf("Stopped")
		result.Stopped = &stopped
	}
	video, ok := jb.catalog.Video(id)
	if !ok {
		return result, &Error{Op: op, VideoID: id, Err: ErrVideoNotFound}
	}
	if flag, ok := jb.flags[id]; ok {
		return result, &Error{Op: op, VideoID: id, Reason: flag.Reason, Err: ErrVideoFlagged}
	}
	jb.slot.Play(video)
	log.WithField("video", id).Debugf("Playing")
	result.Video = video
	return result, nil
}

// Stop stops the current video.
func (jb *Jukebox) Stop() (library.Video, error) {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	video, err := jb.slot.Stop()
	if err != nil {
		return library.Video{}, &Error{Op: OpStop, Err: err}
	}
	log.WithField("video", video.ID).Debugf("Stopped")
	return video, nil
}

// PlayRandom plays a video picked uniformly among all unflagged videos.
func (jb *Jukebox) PlayRandom() (PlayResult, error) {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	video, ok := filter.Random(jb.rand, jb.unflagged(), jb.catalog.All())
	if !ok {
		return PlayResult{}, &Error{Op: OpPlayRandom, Err: ErrNoVideosAvailable}
	}
	return jb.play(OpPlayRandom, video.ID)
}

// Pause pauses the current video.
func (jb *Jukebox) Pause() (PauseResult, error) {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	video, already, err := jb.slot.Pause()
	if err != nil {
		return PauseResult{}, &Error{Op: OpPause, Err: err}
	}
	if !already {
		log.WithField("video", video.ID).Debugf("Paused")
	}
	return PauseResult{Video: video, AlreadyPaused: already}, nil
}

// Continue resumes the current video if it is paused.
func (jb *Jukebox) Continue() (library.Video, error) {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	video, err := jb.slot.Resume()
	if err != nil {
		return library.Video{}, &Error{Op: OpContinue, Err: err}
	}
	log.WithField("video", video.ID).Debugf("Continued")
	return video, nil
}

// ShowPlaying returns the state of the playback slot.
func (jb *Jukebox) ShowPlaying() player.Status {
	jb.lock.Lock()
	defer jb.lock.Unlock()
	return jb.slot.Status()
}

// FlagVideo marks a video as unplayable. If the reason is empty,
// DefaultFlagReason is used. A flagged video that is playing is stopped.
func (jb *Jukebox) FlagVideo(id, reason string) (FlagResult, error) {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	video, ok := jb.catalog.Video(id)
	if !ok {
		return FlagResult{}, &Error{Op: OpFlagVideo, VideoID: id, Err: ErrVideoNotFound}
	}
	if _, ok := jb.flags[id]; ok {
		return FlagResult{}, &Error{Op: OpFlagVideo, VideoID: id, Err: ErrAlreadyFlagged}
	}
	if reason == "" {
		reason = DefaultFlagReason
	}
	jb.flags[id] = Flag{Reason: reason}

	result := FlagResult{Video: video, Reason: reason}
	if jb.slot.Holds(id) {
		stopped, _ := jb.slot.Stop()
		result.Stopped = &stopped
	}
	log.WithField("video", id).Debugf("Flagged: %s", reason)
	return result, nil
}

// AllowVideo removes the flag from a video. Playlists that contain the video
// are left as they are.
func (jb *Jukebox) AllowVideo(id string) (library.Video, error) {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	video, ok := jb.catalog.Video(id)
	if !ok {
		return library.Video{}, &Error{Op: OpAllowVideo, VideoID: id, Err: ErrVideoNotFound}
	}
	if _, ok := jb.flags[id]; !ok {
		return library.Video{}, &Error{Op: OpAllowVideo, VideoID: id, Err: ErrNotFlagged}
	}
	delete(jb.flags, id)
	log.WithField("video", id).Debugf("Flag removed")
	return video, nil
}

func (jb *Jukebox) unflagged() filter.Filter {
	return filter.Func(func(video library.Video) (filter.SearchResult, bool) {
		_, flagged := jb.flags[video.ID]
		return filter.SearchResult{Video: video}, !flagged
	})
}

func (jb *Jukebox) listings(videos []library.Video) []Listing {
	listings := make([]Listing, len(videos))
	for i, video := range videos {
		listings[i].Video = video
		if flag, ok := jb.flags[video.ID]; ok {
			listings[i].Flag = &flag
		}
	}
	return listings
}

func normalizeName(name string) string {
	return strings.ToUpper(name)
}
