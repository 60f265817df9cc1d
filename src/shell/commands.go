package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidbox/src/filter"
	"vidbox/src/jukebox"
)

const unknownCommandMessage = "Please enter a valid command, type HELP for a list of available commands."

var errUnknownCommand = errors.New("unknown command")

// A usageError is returned when a command is given too few or too many
// arguments.
type usageError struct {
	command  string
	expected string
}

func (e usageError) Error() string {
	return fmt.Sprintf("Please enter %s command followed by %s.", strings.ToUpper(e.command), e.expected)
}

// expectArgs accepts between min and max arguments, a negative max means no
// upper bound.
func expectArgs(min, max int, expected string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < min || (max >= 0 && len(args) > max) {
			return usageError{command: cmd.Name(), expected: expected}
		}
		return nil
	}
}

// commandTree builds the commands that can be entered at the prompt. A fresh
// tree is built for every line since cobra keeps parsing state in its
// commands.
func (sh *Shell) commandTree() *cobra.Command {
	root := &cobra.Command{
		Use:                "vidbox",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errUnknownCommand
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(sh.out.w)
	root.SetErr(sh.out.w)
	root.SetHelpCommand(&cobra.Command{
		Use:   "help",
		Short: "Display this list of commands",
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			sh.help(root)
		},
	})

	for _, cmd := range sh.commands() {
		cmd.DisableFlagParsing = true
		root.AddCommand(cmd)
	}
	return root
}

func (sh *Shell) commands() []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "number_of_videos",
			Short: "Show how many videos are in the library",
			Args:  cobra.ArbitraryArgs,
			Run: func(cmd *cobra.Command, args []string) {
				sh.out.printf("%d videos in the library", sh.jukebox.NumberOfVideos())
			},
		},
		{
			Use:   "show_all_videos",
			Short: "List all videos in the library",
			Args:  cobra.ArbitraryArgs,
			Run: func(cmd *cobra.Command, args []string) {
				sh.out.heading("Here's a list of all available videos:")
				sh.out.listings(sh.jukebox.ShowAllVideos())
			},
		},
		{
			Use:   "play <video_id>",
			Short: "Play the specified video",
			Args:  expectArgs(1, 1, "video_id"),
			Run: func(cmd *cobra.Command, args []string) {
				sh.play(args[0])
			},
		},
		{
			Use:   "play_random",
			Short: "Play a random video from the library",
			Args:  cobra.ArbitraryArgs,
			Run: func(cmd *cobra.Command, args []string) {
				sh.out.played(sh.jukebox.PlayRandom())
			},
		},
		{
			Use:   "stop",
			Short: "Stop the current video",
			Args:  cobra.ArbitraryArgs,
			Run: func(cmd *cobra.Command, args []string) {
				video, err := sh.jukebox.Stop()
				if err != nil {
					sh.out.error(err)
					return
				}
				sh.out.printf("Stopping video: %s", video.Title)
			},
		},
		{
			Use:   "pause",
			Short: "Pause the current video",
			Args:  cobra.ArbitraryArgs,
			Run: func(cmd *cobra.Command, args []string) {
				res, err := sh.jukebox.Pause()
				if err != nil {
					sh.out.error(err)
				} else if res.AlreadyPaused {
					sh.out.printf("Video already paused: %s", res.Video.Title)
				} else {
					sh.out.printf("Pausing video: %s", res.Video.Title)
				}
			},
		},
		{
			Use:   "continue",
			Short: "Resume the current paused video",
			Args:  cobra.ArbitraryArgs,
			Run: func(cmd *cobra.Command, args []string) {
				video, err := sh.jukebox.Continue()
				if err != nil {
					sh.out.error(err)
					return
				}
				sh.out.printf("Continuing video: %s", video.Title)
			},
		},
		{
			Use:   "show_playing",
			Short: "Show the video that is currently playing or paused",
			Args:  cobra.ArbitraryArgs,
			Run: func(cmd *cobra.Command, args []string) {
				sh.out.status(sh.jukebox.ShowPlaying())
			},
		},
		{
			Use:   "create_playlist <playlist_name>",
			Short: "Create a new empty playlist",
			Args:  expectArgs(1, 1, "playlist_name"),
			Run: func(cmd *cobra.Command, args []string) {
				if err := sh.jukebox.CreatePlaylist(args[0]); err != nil {
					sh.out.error(err)
					return
				}
				sh.out.printf("Successfully created new playlist: %s", args[0])
			},
		},
		{
			Use:   "add_to_playlist <playlist_name> <video_id>",
			Short: "Add a video to a playlist",
			Args:  expectArgs(2, 2, "playlist_name and video_id"),
			Run: func(cmd *cobra.Command, args []string) {
				video, err := sh.jukebox.AddToPlaylist(args[0], args[1])
				if err != nil {
					sh.out.error(err)
					return
				}
				sh.out.printf("Added video to %s: %s", args[0], video.Title)
			},
		},
		{
			Use:   "remove_from_playlist <playlist_name> <video_id>",
			Short: "Remove a video from a playlist",
			Args:  expectArgs(2, 2, "playlist_name and video_id"),
			Run: func(cmd *cobra.Command, args []string) {
				video, err := sh.jukebox.RemoveFromPlaylist(args[0], args[1])
				if err != nil {
					sh.out.error(err)
					return
				}
				sh.out.printf("Removed video from %s: %s", args[0], video.Title)
			},
		},
		{
			Use:   "clear_playlist <playlist_name>",
			Short: "Remove all videos from a playlist",
			Args:  expectArgs(1, 1, "playlist_name"),
			Run: func(cmd *cobra.Command, args []string) {
				if err := sh.jukebox.ClearPlaylist(args[0]); err != nil {
					sh.out.error(err)
					return
				}
				sh.out.printf("Successfully removed all videos from %s", args[0])
			},
		},
		{
			Use:   "delete_playlist <playlist_name>",
			Short: "Delete a playlist",
			Args:  expectArgs(1, 1, "playlist_name"),
			Run: func(cmd *cobra.Command, args []string) {
				if err := sh.jukebox.DeletePlaylist(args[0]); err != nil {
					sh.out.error(err)
					return
				}
				sh.out.printf("Deleted playlist: %s", args[0])
			},
		},
		{
			Use:   "show_playlist <playlist_name>",
			Short: "List the videos in a playlist",
			Args:  expectArgs(1, 1, "playlist_name"),
			Run: func(cmd *cobra.Command, args []string) {
				listings, err := sh.jukebox.ShowPlaylist(args[0])
				if err != nil {
					sh.out.error(err)
					return
				}
				sh.out.heading("Showing playlist: %s", args[0])
				if len(listings) == 0 {
					sh.out.println("No videos here yet")
					return
				}
				sh.out.listings(listings)
			},
		},
		{
			Use:   "show_all_playlists",
			Short: "List all playlists",
			Args:  cobra.ArbitraryArgs,
			Run: func(cmd *cobra.Command, args []string) {
				names := sh.jukebox.ShowAllPlaylists()
				if len(names) == 0 {
					sh.out.println("No playlists exist yet")
					return
				}
				sh.out.heading("Showing all playlists:")
				for _, name := range names {
					sh.out.println(name)
				}
			},
		},
		{
			Use:   "search_videos <search_term>",
			Short: "Find videos whose title contains the search term",
			Args:  expectArgs(1, 1, "search_term"),
			Run: func(cmd *cobra.Command, args []string) {
				sh.pick(args[0], sh.jukebox.SearchVideos(args[0]))
			},
		},
		{
			Use:   "search_videos_with_tag <video_tag>",
			Short: "Find videos carrying the tag",
			Args:  expectArgs(1, 1, "video_tag"),
			Run: func(cmd *cobra.Command, args []string) {
				sh.pick(args[0], sh.jukebox.SearchVideosWithTag(args[0]))
			},
		},
		{
			Use:   "flag_video <video_id> [flag_reason]",
			Short: "Mark a video as unplayable",
			Args:  expectArgs(1, -1, "video_id"),
			Run: func(cmd *cobra.Command, args []string) {
				res, err := sh.jukebox.FlagVideo(args[0], strings.Join(args[1:], " "))
				if err != nil {
					sh.out.error(err)
					return
				}
				sh.out.stopped(res.Stopped)
				sh.out.printf("Successfully flagged video: %s (reason: %s)", res.Video.Title, res.Reason)
			},
		},
		{
			Use:   "allow_video <video_id>",
			Short: "Remove the flag from a video",
			Args:  expectArgs(1, 1, "video_id"),
			Run: func(cmd *cobra.Command, args []string) {
				video, err := sh.jukebox.AllowVideo(args[0])
				if err != nil {
					sh.out.error(err)
					return
				}
				sh.out.printf("Successfully removed flag from video: %s", video.Title)
			},
		},
		{
			Use:   "exit",
			Short: "Quit",
			Args:  cobra.ArbitraryArgs,
			Run: func(cmd *cobra.Command, args []string) {
				sh.exit()
			},
		},
	}
}

func (sh *Shell) play(id string) {
	sh.out.played(sh.jukebox.Play(id))
}

// pick shows search results and asks which one should be played.
func (sh *Shell) pick(term string, results []filter.SearchResult) {
	if len(results) == 0 {
		sh.out.printf("No search results for %s", term)
		return
	}
	sh.out.heading("Here are the results for %s:", term)
	sh.out.results(results)
	sh.out.println("Would you like to play any of the above? If yes, specify the number of the video.")
	sh.out.println("If your answer is not a valid number, we will assume it's a no.")

	answer, err := sh.readLine()
	if err != nil {
		return
	}
	if res, ok := jukebox.PickResult(results, answer); ok {
		sh.play(res.ID)
	}
}

func (sh *Shell) help(root *cobra.Command) {
	sh.out.heading("Available commands:")
	for _, cmd := range root.Commands() {
		if cmd.Hidden {
			continue
		}
		usage := strings.ToUpper(cmd.Name()) + strings.TrimPrefix(cmd.Use, cmd.Name())
		sh.out.printf("    %s - %s", usage, cmd.Short)
	}
}
