package jukebox

import (
	"errors"
	"math/rand"
	"testing"

	"vidbox/src/library"
	"vidbox/src/player"
)

func newTestJukebox(t *testing.T, videos ...library.Video) *Jukebox {
	if len(videos) == 0 {
		videos = []library.Video{
			{ID: "v1", Title: "Amy", Tags: []string{"funny"}},
			{ID: "v2", Title: "Zoe", Tags: []string{"funny", "sad"}},
			{ID: "v3", Title: "Amazing Cats", Tags: []string{"#cat", "#animal"}},
		}
	}
	catalog, err := library.NewCatalog(videos)
	if err != nil {
		t.Fatal(err)
	}
	return NewJukebox(catalog, rand.New(rand.NewSource(1)))
}

func expectError(t *testing.T, err, target error) *Error {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("Unexpected error: %v, expected %v", err, target)
	}
	var jbErr *Error
	if !errors.As(err, &jbErr) {
		t.Fatalf("Error is not a *jukebox.Error: %T", err)
	}
	return jbErr
}

func TestNumberOfVideos(t *testing.T) {
	jb := newTestJukebox(t)
	if n := jb.NumberOfVideos(); n != 3 {
		t.Fatalf("Unexpected number of videos: %v", n)
	}
}

func TestShowAllVideos(t *testing.T) {
	jb := newTestJukebox(t)
	if _, err := jb.FlagVideo("v1", "spam"); err != nil {
		t.Fatal(err)
	}

	listings := jb.ShowAllVideos()
	if len(listings) != 3 {
		t.Fatalf("Unexpected length: %v", len(listings))
	}
	expected := []string{"v3", "v1", "v2"}
	for i, id := range expected {
		if listings[i].ID != id {
			t.Fatalf("Unexpected video at index %d: %v", i, listings[i].ID)
		}
	}
	if !listings[1].Flagged() || listings[1].Flag.Reason != "spam" {
		t.Fatalf("Flag missing from listing: %#v", listings[1])
	}
	if listings[0].Flagged() || listings[2].Flagged() {
		t.Fatalf("Unexpected flags")
	}
}

func TestUnknownVideoMutatesNothing(t *testing.T) {
	jb := newTestJukebox(t)
	if err := jb.CreatePlaylist("Fun"); err != nil {
		t.Fatal(err)
	}
	if _, err := jb.Play("v2"); err != nil {
		t.Fatal(err)
	}

	_, err := jb.AddToPlaylist("Fun", "nope")
	expectError(t, err, ErrVideoNotFound)
	_, err = jb.RemoveFromPlaylist("Fun", "nope")
	expectError(t, err, ErrVideoNotFound)
	_, err = jb.FlagVideo("nope", "")
	expectError(t, err, ErrVideoNotFound)
	_, err = jb.AllowVideo("nope")
	expectError(t, err, ErrVideoNotFound)

	status := jb.ShowPlaying()
	if status.PlayState != player.PlayStatePlaying || status.Video.ID != "v2" {
		t.Fatalf("Playback was disturbed: %#v", status)
	}
	if listing, _ := jb.ShowPlaylist("Fun"); len(listing) != 0 {
		t.Fatalf("Playlist was modified: %v", listing)
	}
	for _, l := range jb.ShowAllVideos() {
		if l.Flagged() {
			t.Fatalf("Video %s was flagged", l.ID)
		}
	}
}

func TestPlayUnknownStopsCurrent(t *testing.T) {
	jb := newTestJukebox(t)
	jb.Play("v2")
	jb.Pause()

	res, err := jb.Play("nope")
	expectError(t, err, ErrVideoNotFound)
	if res.Stopped == nil || res.Stopped.ID != "v2" {
		t.Fatalf("The current video should have been stopped: %#v", res)
	}
	if status := jb.ShowPlaying(); status.PlayState != player.PlayStateStopped {
		t.Fatalf("Unexpected status: %#v", status)
	}

	// Nothing is reported when the slot was already empty.
	res, err = jb.Play("nope")
	expectError(t, err, ErrVideoNotFound)
	if res.Stopped != nil {
		t.Fatalf("Nothing should have been stopped: %#v", res)
	}
}

func TestPlayOverPlay(t *testing.T) {
	jb := newTestJukebox(t)
	res, err := jb.Play("v1")
	if err != nil {
		t.Fatal(err)
	} else if res.Stopped != nil {
		t.Fatalf("Nothing should have been stopped: %v", res.Stopped)
	}

	res, err = jb.Play("v2")
	if err != nil {
		t.Fatal(err)
	}
	if res.Video.ID != "v2" || res.Stopped == nil || res.Stopped.ID != "v1" {
		t.Fatalf("Unexpected result: %#v", res)
	}

	// Playing the same video again restarts it.
	res, err = jb.Play("v2")
	if err != nil {
		t.Fatal(err)
	} else if res.Stopped == nil || res.Stopped.ID != "v2" {
		t.Fatalf("Unexpected result: %#v", res)
	}
}

func TestPlayFlaggedStopsCurrent(t *testing.T) {
	jb := newTestJukebox(t)
	jb.Play("v1")
	jb.FlagVideo("v2", "spam")

	res, err := jb.Play("v2")
	jbErr := expectError(t, err, ErrVideoFlagged)
	if jbErr.Reason != "spam" {
		t.Fatalf("Unexpected reason: %q", jbErr.Reason)
	}
	if res.Stopped == nil || res.Stopped.ID != "v1" {
		t.Fatalf("The current video should have been stopped: %#v", res)
	}
	if status := jb.ShowPlaying(); status.PlayState != player.PlayStateStopped || status.Video != nil {
		t.Fatalf("Unexpected status: %#v", status)
	}
}

func TestStop(t *testing.T) {
	jb := newTestJukebox(t)
	_, err := jb.Stop()
	expectError(t, err, ErrNothingPlaying)

	jb.Play("v1")
	jb.Pause()
	video, err := jb.Stop()
	if err != nil {
		t.Fatal(err)
	} else if video.ID != "v1" {
		t.Fatalf("Unexpected video: %v", video)
	}
	if status := jb.ShowPlaying(); status.PlayState != player.PlayStateStopped {
		t.Fatalf("Unexpected state: %v", status.PlayState)
	}
	_, err = jb.Stop()
	expectError(t, err, ErrNothingPlaying)
}

func TestPauseContinue(t *testing.T) {
	jb := newTestJukebox(t)
	_, err := jb.Pause()
	expectError(t, err, ErrNothingPlaying)
	_, err = jb.Continue()
	expectError(t, err, ErrNothingPlaying)

	jb.Play("v1")
	_, err = jb.Continue()
	expectError(t, err, ErrNotPaused)

	res, err := jb.Pause()
	if err != nil {
		t.Fatal(err)
	} else if res.AlreadyPaused || res.Video.ID != "v1" {
		t.Fatalf("Unexpected result: %#v", res)
	}
	res, err = jb.Pause()
	if err != nil {
		t.Fatal(err)
	} else if !res.AlreadyPaused {
		t.Fatalf("Video should already be paused")
	}
	if status := jb.ShowPlaying(); status.PlayState != player.PlayStatePaused {
		t.Fatalf("Unexpected state: %v", status.PlayState)
	}

	video, err := jb.Continue()
	if err != nil {
		t.Fatal(err)
	} else if video.ID != "v1" {
		t.Fatalf("Unexpected video: %v", video)
	}
	status := jb.ShowPlaying()
	if status.PlayState != player.PlayStatePlaying || status.Video.ID != "v1" {
		t.Fatalf("Unexpected status: %#v", status)
	}
}

func TestPlayRandom(t *testing.T) {
	jb := newTestJukebox(t)
	jb.FlagVideo("v1", "")
	jb.FlagVideo("v3", "")
	for i := 0; i < 10; i++ {
		res, err := jb.PlayRandom()
		if err != nil {
			t.Fatal(err)
		} else if res.Video.ID != "v2" {
			t.Fatalf("Only the unflagged video should be played, got %v", res.Video.ID)
		} else if i > 0 && (res.Stopped == nil || res.Stopped.ID != "v2") {
			t.Fatalf("The previous video should have been stopped: %#v", res)
		}
	}

	jb.FlagVideo("v2", "")
	_, err := jb.PlayRandom()
	expectError(t, err, ErrNoVideosAvailable)
}

func TestPlayRandomEmptyCatalog(t *testing.T) {
	catalog, err := library.NewCatalog(nil)
	if err != nil {
		t.Fatal(err)
	}
	jb := NewJukebox(catalog, nil)
	_, err = jb.PlayRandom()
	if err := expectError(t, err, ErrNoVideosAvailable); err.Error() != "No videos available" {
		t.Fatalf("Unexpected message: %q", err.Error())
	}
}

func TestFlagVideo(t *testing.T) {
	jb := newTestJukebox(t)

	res, err := jb.FlagVideo("v1", "")
	if err != nil {
		t.Fatal(err)
	} else if res.Reason != DefaultFlagReason || res.Stopped != nil {
		t.Fatalf("Unexpected result: %#v", res)
	}
	_, err = jb.FlagVideo("v1", "again")
	expectError(t, err, ErrAlreadyFlagged)

	if _, err := jb.AllowVideo("v1"); err != nil {
		t.Fatal(err)
	}
	_, err = jb.AllowVideo("v1")
	expectError(t, err, ErrNotFlagged)
}

func TestFlagStopsPlayback(t *testing.T) {
	jb := newTestJukebox(t)
	jb.Play("v1")
	jb.Pause()

	res, err := jb.FlagVideo("v1", "spam")
	if err != nil {
		t.Fatal(err)
	}
	if res.Stopped == nil || res.Stopped.ID != "v1" {
		t.Fatalf("Flagging the playing video should stop it: %#v", res)
	}
	if status := jb.ShowPlaying(); status.PlayState != player.PlayStateStopped {
		t.Fatalf("Unexpected state: %v", status.PlayState)
	}
}

func TestFlagOtherKeepsPlayback(t *testing.T) {
	jb := newTestJukebox(t)
	jb.Play("v1")
	jb.Pause()

	res, err := jb.FlagVideo("v2", "spam")
	if err != nil {
		t.Fatal(err)
	} else if res.Stopped != nil {
		t.Fatalf("Nothing should have been stopped: %#v", res)
	}
	status := jb.ShowPlaying()
	if status.PlayState != player.PlayStatePaused || status.Video.ID != "v1" {
		t.Fatalf("Playback was disturbed: %#v", status)
	}
}

func TestFlagScenario(t *testing.T) {
	jb := newTestJukebox(t)
	jb.FlagVideo("v1", "spam")

	for _, l := range jb.ShowAllVideos() {
		if l.ID == "v1" && (l.Flag == nil || l.Flag.Reason != "spam") {
			t.Fatalf("Listing lacks the flag: %#v", l)
		}
	}
	_, err := jb.Play("v1")
	expectError(t, err, ErrVideoFlagged)
	if msg := err.Error(); msg != "Cannot play video: Video is currently flagged (reason: spam)" {
		t.Fatalf("Unexpected message: %q", msg)
	}

	jb.AllowVideo("v1")
	if _, err := jb.Play("v1"); err != nil {
		t.Fatal(err)
	}
}

func TestErrorMessages(t *testing.T) {
	jb := newTestJukebox(t)
	jb.CreatePlaylist("Fun")
	jb.FlagVideo("v3", "")

	cases := []struct {
		err      error
		expected string
	}{
		{second(jb.Play("x")), "Cannot play video: Video does not exist"},
		{second(jb.Stop()), "Cannot stop video: No video is currently playing"},
		{second(jb.Pause()), "Cannot pause video: No video is currently playing"},
		{second(jb.Continue()), "Cannot continue video: No video is currently playing"},
		{jb.CreatePlaylist("FUN"), "Cannot create playlist: A playlist with the same name already exists"},
		{second(jb.AddToPlaylist("x", "v1")), "Cannot add video to x: Playlist does not exist"},
		{second(jb.AddToPlaylist("fun", "x")), "Cannot add video to fun: Video does not exist"},
		{second(jb.AddToPlaylist("fun", "v3")), "Cannot add video to fun: Video is currently flagged (reason: Not supplied)"},
		{second(jb.RemoveFromPlaylist("fun", "v1")), "Cannot remove video from fun: Video is not in playlist"},
		{jb.ClearPlaylist("x"), "Cannot clear playlist x: Playlist does not exist"},
		{jb.DeletePlaylist("x"), "Cannot delete playlist x: Playlist does not exist"},
		{second(jb.ShowPlaylist("x")), "Cannot show playlist x: Playlist does not exist"},
		{second(jb.FlagVideo("v3", "")), "Cannot flag video: Video is already flagged"},
		{second(jb.AllowVideo("v1")), "Cannot remove flag from video: Video is not flagged"},
	}
	for _, c := range cases {
		if c.err == nil {
			t.Fatalf("Expected an error: %q", c.expected)
		}
		if c.err.Error() != c.expected {
			t.Fatalf("Unexpected message: %q != %q", c.err.Error(), c.expected)
		}
	}
}

func second[T any](_ T, err error) error {
	return err
}
