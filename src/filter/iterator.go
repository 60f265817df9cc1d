package filter

import (
	"math/rand"

	"vidbox/src/library"
)

// Random picks a random video that passes the filter. The bool is false if no
// video passes.
func Random(rnd *rand.Rand, filter Filter, videos []library.Video) (library.Video, bool) {
	results := Videos(filter, videos)
	if len(results) == 0 {
		return library.Video{}, false
	}
	return results[rnd.Intn(len(results))].Video, true
}
