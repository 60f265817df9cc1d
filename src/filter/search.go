package filter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"vidbox/src/library"
)

// TitleContains creates a filter that passes videos whose title contains the
// term. The comparison is case-insensitive.
func TitleContains(term string) Filter {
	return Func(func(video library.Video) (SearchResult, bool) {
		start, end := indexFold(video.Title, term)
		if start < 0 {
			return SearchResult{}, false
		}
		result := SearchResult{Video: video}
		result.AddMatch("title", start, end)
		return result, true
	})
}

// indexFold returns the byte range of the first occurrence of term in s,
// comparing runes by their lower case form. The range refers to s itself,
// which lowering the whole string would not guarantee.
func indexFold(s, term string) (start, end int) {
	for start = 0; start <= len(s); {
		if n := prefixFold(s[start:], term); n >= 0 {
			return start, start + n
		}
		if start == len(s) {
			break
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		start += size
	}
	return -1, -1
}

// prefixFold returns the length of the prefix of s that matches term, or -1.
func prefixFold(s, term string) int {
	n := 0
	for _, tr := range term {
		if n >= len(s) {
			return -1
		}
		sr, size := utf8.DecodeRuneInString(s[n:])
		if unicode.ToLower(sr) != unicode.ToLower(tr) {
			return -1
		}
		n += size
	}
	return n
}

// HasTag creates a filter that passes videos carrying the tag. The tag must
// match one of the video's tags exactly, ignoring case.
func HasTag(tag string) Filter {
	return Func(func(video library.Video) (SearchResult, bool) {
		if !video.HasTag(tag) {
			return SearchResult{}, false
		}
		result := SearchResult{Video: video}
		offset := 0
		for _, t := range video.Tags {
			if strings.EqualFold(t, tag) {
				result.AddMatch("tags", offset, offset+len(t))
			}
			offset += len(t) + 1
		}
		return result, true
	})
}
