package filter

import (
	"vidbox/src/library"
)

// A Filter decides whether a video is part of a selection.
type Filter interface {
	// Filter returns the video with the parts that matched, or false if the
	// video is rejected.
	Filter(video library.Video) (SearchResult, bool)
}

// Func turns a plain function into a Filter.
type Func func(library.Video) (SearchResult, bool)

// Filter calls the function.
func (ff Func) Filter(video library.Video) (SearchResult, bool) {
	return ff(video)
}

// A SearchMatch is a byte range of an attribute value, used to highlight the
// part of a title or tag list that matched.
type SearchMatch struct {
	Start int
	End   int
}

// A SearchResult is a video that passed a Filter, along with the matched
// ranges per attribute.
type SearchResult struct {
	library.Video
	Matches map[string][]SearchMatch
}

// AddMatch records a matched range of an attribute as returned by
// Video.Attr. Ranges may overlap.
func (sr *SearchResult) AddMatch(attr string, start, end int) {
	sr.AddMatches(attr, SearchMatch{Start: start, End: end})
}

// AddMatches records several matched ranges of an attribute.
func (sr *SearchResult) AddMatches(attr string, matches ...SearchMatch) {
	if sr.Matches == nil {
		sr.Matches = map[string][]SearchMatch{}
	}
	sr.Matches[attr] = append(sr.Matches[attr], matches...)
}

// ByTitle implements the sort.Interface to sort a list of search results by
// title in ascending order. Equal titles are ordered by id.
type ByTitle []SearchResult

func (l ByTitle) Len() int      { return len(l) }
func (l ByTitle) Swap(a, b int) { l[a], l[b] = l[b], l[a] }
func (l ByTitle) Less(a, b int) bool {
	if l[a].Title != l[b].Title {
		return l[a].Title < l[b].Title
	}
	return l[a].ID < l[b].ID
}

// And combines filters into one that only passes videos that pass all of
// them. The matches of all filters are merged.
func And(filters ...Filter) Filter {
	return Func(func(video library.Video) (SearchResult, bool) {
		result := SearchResult{Video: video}
		for _, ft := range filters {
			res, ok := ft.Filter(video)
			if !ok {
				return SearchResult{}, false
			}
			for attr, matches := range res.Matches {
				result.AddMatches(attr, matches...)
			}
		}
		return result, true
	})
}

// Videos filters a list of videos by applying the specified filter to all
// videos. The order of the input is preserved.
func Videos(filter Filter, videos []library.Video) []SearchResult {
	results := make([]SearchResult, 0, len(videos))
	for _, video := range videos {
		if res, ok := filter.Filter(video); ok {
			res.Video = video
			results = append(results, res)
		}
	}
	return results
}
