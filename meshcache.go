package svgmesh

import (
	"math"

	"github.com/gogpu/svgmesh/cache"
)

// meshKey identifies one tessellation result. Float fields are stored as
// IEEE 754 bit patterns so keys compare and hash deterministically; the
// color remap is deliberately absent so recoloring never retriangulates.
type meshKey struct {
	token    uint64 // document content hash
	tolBits  uint64
	scaleTol bool
	fitKind  fitKind
	fitW     uint64
	fitH     uint64
	fitF     uint64
	fitM     uint64
	wBits    uint64 // final render size
	hBits    uint64
}

func makeMeshKey(doc uint64, tolerance float64, scaleTol bool, fit FitMode, renderW, renderH float64) meshKey {
	return meshKey{
		token:    doc,
		tolBits:  math.Float64bits(tolerance),
		scaleTol: scaleTol,
		fitKind:  fit.kind,
		fitW:     math.Float64bits(fit.w),
		fitH:     math.Float64bits(fit.h),
		fitF:     math.Float64bits(fit.factor),
		fitM:     math.Float64bits(fit.margin),
		wBits:    math.Float64bits(renderW),
		hBits:    math.Float64bits(renderH),
	}
}

// hashMeshKey folds the key fields FNV-1a style into a shard hash.
func hashMeshKey(k meshKey) uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			h ^= v & 0xff
			h *= prime
			v >>= 8
		}
	}
	mix(k.token)
	mix(k.tolBits)
	if k.scaleTol {
		mix(1)
	} else {
		mix(0)
	}
	mix(uint64(k.fitKind))
	mix(k.fitW)
	mix(k.fitH)
	mix(k.fitF)
	mix(k.fitM)
	mix(k.wBits)
	mix(k.hBits)
	return h
}

// MeshCache memoizes tessellated meshes by document content and
// configuration. It is a bounded sharded LRU, safe for concurrent use.
// Cached meshes are stored with the destination origin at (0, 0);
// retrieval clones, translates and recolors, so callers never observe
// shared mutable state.
type MeshCache struct {
	c *cache.Sharded[meshKey, *Mesh]
}

// NewMeshCache creates a cache holding up to capacity meshes per shard
// (the package default when capacity is not positive).
func NewMeshCache(capacity int) *MeshCache {
	if capacity <= 0 {
		capacity = cache.DefaultCapacity
	}
	return &MeshCache{c: cache.NewSharded[meshKey, *Mesh](capacity, hashMeshKey)}
}

// get returns the cached mesh for key, tessellating with build on miss.
func (mc *MeshCache) get(key meshKey, build func() Mesh) *Mesh {
	return mc.c.GetOrCreate(key, func() *Mesh {
		m := build()
		return &m
	})
}

// Len returns the number of cached meshes.
func (mc *MeshCache) Len() int {
	return mc.c.Len()
}

// Clear drops every cached mesh.
func (mc *MeshCache) Clear() {
	mc.c.Clear()
}

// Stats returns hit/miss/eviction counters.
func (mc *MeshCache) Stats() cache.Stats {
	return mc.c.Stats()
}

// defaultMeshCache backs [Icon.RenderCached].
var defaultMeshCache = NewMeshCache(0)
