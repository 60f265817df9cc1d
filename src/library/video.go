package library

import (
	"fmt"
	"strings"
)

// Video holds the metadata of a single entry in the catalog. The content
// itself is never touched.
type Video struct {
	ID    string   `json:"id" yaml:"id"`
	Title string   `json:"title" yaml:"title"`
	Tags  []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// HasTag reports whether the video carries the specified tag. Tags are
// compared case-insensitively.
func (video Video) HasTag(tag string) bool {
	for _, t := range video.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Attr gets an attribute of a video by its name. Accepted names are:
//   "id"
//   "title"
//   "tags"
func (video *Video) Attr(attr string) interface{} {
	switch attr {
	case "id":
		return video.ID
	case "title":
		return video.Title
	case "tags":
		return strings.Join(video.Tags, " ")
	}
	return nil
}

func (video Video) String() string {
	return fmt.Sprintf("%s (%s) [%s]", video.Title, video.ID, strings.Join(video.Tags, " "))
}
