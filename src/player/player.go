package player

import (
	"errors"
	"fmt"

	"vidbox/src/library"
)

var (
	// ErrNothingPlaying is returned by operations that need a video in the
	// slot when the slot is empty.
	ErrNothingPlaying = errors.New("no video is currently playing")

	// ErrNotPaused is returned when resuming a video that is not paused.
	ErrNotPaused = errors.New("video is not paused")
)

// PlayState enumerates the states of a Slot.
type PlayState int

const (
	PlayStateInvalid PlayState = iota
	PlayStatePlaying
	PlayStateStopped
	PlayStatePaused
)

// Name returns the name of the state.
func (state PlayState) Name() string {
	switch state {
	case PlayStatePlaying:
		return "playing"
	case PlayStateStopped:
		return "stopped"
	case PlayStatePaused:
		return "paused"
	default:
		return "invalid"
	}
}

func (state PlayState) String() string {
	return state.Name()
}

// Status is a snapshot of a Slot.
type Status struct {
	PlayState PlayState
	// Video is nil while stopped.
	Video *library.Video
}

// A Slot holds at most one video that is either playing or paused.
//
// The zero value is a stopped slot. A Slot is not safe for concurrent use.
type Slot struct {
	video  *library.Video
	paused bool
}

// Status returns the current state of the slot.
func (slot *Slot) Status() Status {
	if slot.video == nil {
		return Status{PlayState: PlayStateStopped}
	}
	video := *slot.video
	if slot.paused {
		return Status{PlayState: PlayStatePaused, Video: &video}
	}
	return Status{PlayState: PlayStatePlaying, Video: &video}
}

// Holds reports whether the specified video occupies the slot.
func (slot *Slot) Holds(id string) bool {
	return slot.video != nil && slot.video.ID == id
}

// Play puts the video in the slot. A video that was already in the slot is
// stopped and returned.
func (slot *Slot) Play(video library.Video) *library.Video {
	previous, err := slot.Stop()
	slot.video, slot.paused = &video, false
	if err != nil {
		return nil
	}
	return &previous
}

// Stop empties the slot and returns the video that was in it.
func (slot *Slot) Stop() (library.Video, error) {
	if slot.video == nil {
		return library.Video{}, ErrNothingPlaying
	}
	video := *slot.video
	slot.video, slot.paused = nil, false
	return video, nil
}

// Pause pauses the video in the slot. Pausing a paused video is not an error,
// the returned flag indicates that nothing changed.
func (slot *Slot) Pause() (video library.Video, alreadyPaused bool, err error) {
	if slot.video == nil {
		return library.Video{}, false, ErrNothingPlaying
	}
	alreadyPaused = slot.paused
	slot.paused = true
	return *slot.video, alreadyPaused, nil
}

// Resume continues a paused video.
func (slot *Slot) Resume() (library.Video, error) {
	if slot.video == nil {
		return library.Video{}, ErrNothingPlaying
	}
	if !slot.paused {
		return library.Video{}, ErrNotPaused
	}
	slot.paused = false
	return *slot.video, nil
}

func (slot *Slot) String() string {
	status := slot.Status()
	if status.Video == nil {
		return fmt.Sprintf("Slot{%v}", status.PlayState)
	}
	return fmt.Sprintf("Slot{%v, %s}", status.PlayState, status.Video.ID)
}
