package jukebox

import (
	"sort"
	"strconv"

	"vidbox/src/filter"
)

// SearchVideos finds all unflagged videos whose title contains the term,
// ignoring case. The results are sorted by title.
func (jb *Jukebox) SearchVideos(term string) []filter.SearchResult {
	return jb.search(filter.TitleContains(term))
}

// SearchVideosWithTag finds all unflagged videos carrying the tag, ignoring
// case. The results are sorted by title.
func (jb *Jukebox) SearchVideosWithTag(tag string) []filter.SearchResult {
	return jb.search(filter.HasTag(tag))
}

func (jb *Jukebox) search(ft filter.Filter) []filter.SearchResult {
	jb.lock.Lock()
	defer jb.lock.Unlock()

	results := filter.Videos(filter.And(jb.unflagged(), ft), jb.catalog.All())
	sort.Sort(filter.ByTitle(results))
	return results
}

// PickResult interprets an answer to the question which search result should
// be played. Only the exact numbers 1 to len(results) select a result,
// anything else means no selection.
func PickResult(results []filter.SearchResult, answer string) (filter.SearchResult, bool) {
	n, err := strconv.Atoi(answer)
	if err != nil || strconv.Itoa(n) != answer {
		return filter.SearchResult{}, false
	}
	if n < 1 || n > len(results) {
		return filter.SearchResult{}, false
	}
	return results[n-1], true
}
