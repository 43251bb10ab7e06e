package model

import (
	"path/filepath"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// RecentImage is an entry of the recently opened walls list.
type RecentImage struct {
	Path string
	Name string
	Size int64
}

// RecentImages is a bounded most-recently-used list of wall image files.
type RecentImages struct {
	cache *lru.Cache[string, RecentImage]
}

// NewRecentImages returns a list holding at most limit entries (minimum 1).
func NewRecentImages(limit int) *RecentImages {
	c, err := lru.New[string, RecentImage](max(limit, 1))
	if err != nil {
		// Only a non-positive size errors, which max rules out.
		panic(err)
	}
	return &RecentImages{cache: c}
}

// Touch records path as the most recently used image.
func (r *RecentImages) Touch(path string, size int64) {
	r.cache.Add(path, RecentImage{Path: path, Name: filepath.Base(path), Size: size})
}

// Remove drops a path, e.g. when the file no longer opens.
func (r *RecentImages) Remove(path string) { r.cache.Remove(path) }

// List returns entries, most recent first.
func (r *RecentImages) List() []RecentImage {
	keys := r.cache.Keys()
	out := make([]RecentImage, 0, len(keys))
	for _, k := range slices.Backward(keys) {
		if v, ok := r.cache.Peek(k); ok {
			out = append(out, v)
		}
	}
	return out
}

// Paths returns the entry paths, most recent first.
func (r *RecentImages) Paths() []string {
	list := r.List()
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Path
	}
	return out
}

// Seed loads paths ordered most recent first, e.g. from the saved config.
func (r *RecentImages) Seed(paths []string) {
	for _, p := range slices.Backward(paths) {
		r.Touch(p, 0)
	}
}
