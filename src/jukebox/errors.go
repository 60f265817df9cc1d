package jukebox

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"vidbox/src/player"
)

var (
	ErrVideoNotFound     = errors.New("video does not exist")
	ErrVideoFlagged      = errors.New("video is currently flagged")
	ErrAlreadyFlagged    = errors.New("video is already flagged")
	ErrNotFlagged        = errors.New("video is not flagged")
	ErrPlaylistNotFound  = errors.New("playlist does not exist")
	ErrPlaylistExists    = errors.New("a playlist with the same name already exists")
	ErrAlreadyAdded      = errors.New("video already added")
	ErrNotInPlaylist     = errors.New("video is not in playlist")
	ErrNoVideosAvailable = errors.New("no videos available")

	ErrNothingPlaying = player.ErrNothingPlaying
	ErrNotPaused      = player.ErrNotPaused
)

// Op names the operation that failed, as it would be phrased to a user.
type Op string

const (
	OpPlay               Op = "play video"
	OpPlayRandom         Op = "play random video"
	OpStop               Op = "stop video"
	OpPause              Op = "pause video"
	OpContinue           Op = "continue video"
	OpCreatePlaylist     Op = "create playlist"
	OpAddToPlaylist      Op = "add video to"
	OpRemoveFromPlaylist Op = "remove video from"
	OpClearPlaylist      Op = "clear playlist"
	OpDeletePlaylist     Op = "delete playlist"
	OpShowPlaylist       Op = "show playlist"
	OpFlagVideo          Op = "flag video"
	OpAllowVideo         Op = "remove flag from video"
)

// namesPlaylist reports whether the playlist name is part of the message.
func (op Op) namesPlaylist() bool {
	switch op {
	case OpAddToPlaylist, OpRemoveFromPlaylist, OpClearPlaylist, OpDeletePlaylist, OpShowPlaylist:
		return true
	}
	return false
}

// An Error describes why an operation on the Jukebox was refused. Err is
// always one of the sentinel errors of this package.
type Error struct {
	Op Op
	// Playlist is the playlist name as supplied by the caller.
	Playlist string
	VideoID  string
	// Reason is set for ErrVideoFlagged.
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := upperFirst(e.Err.Error())
	if errors.Is(e.Err, ErrVideoFlagged) {
		msg = fmt.Sprintf("%s (reason: %s)", msg, e.Reason)
	}
	if e.Op == OpPlayRandom {
		return msg
	}
	if e.Op.namesPlaylist() {
		return fmt.Sprintf("Cannot %s %s: %s", e.Op, e.Playlist, msg)
	}
	return fmt.Sprintf("Cannot %s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
