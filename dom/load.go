package dom

import (
	"github.com/gogpu/svgmesh/cache"
)

// docCache memoizes parsed documents by content hash so byte-identical
// sources share one immutable tree.
var docCache = cache.NewSharded[uint64, loadResult](cache.DefaultCapacity, cache.Uint64Hasher)

type loadResult struct {
	doc *Document
	err error
}

// tokenFor derives the document token from the source bytes.
func tokenFor(data []byte) uint64 {
	return cache.BytesHasher(data)
}

// Load parses an SVG document, memoizing the result by content hash.
// Loading the same bytes twice returns the same *Document. Parse errors
// are memoized too, so repeated loads of a bad document stay cheap.
func Load(data []byte) (*Document, error) {
	token := tokenFor(data)
	res := docCache.GetOrCreate(token, func() loadResult {
		doc, err := Parse(data)
		return loadResult{doc: doc, err: err}
	})
	return res.doc, res.err
}

// PurgeCache drops all memoized documents.
func PurgeCache() {
	docCache.Clear()
}
