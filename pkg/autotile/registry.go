package autotile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rywk/dualgrid/pkg/terrain"
)

var (
	ErrDuplicatePair = errors.New("autotile: transition already registered")
	ErrSelfPair      = errors.New("autotile: transition between a terrain and itself")
)

// Tileset references a transition sprite sheet.
type Tileset struct {
	Name string
	Path string
}

// Pair is the key a tileset was authored under. Primary is the material
// the artwork draws on top.
type Pair struct {
	Primary, Secondary terrain.Type
}

func (p Pair) Reverse() Pair {
	return Pair{Primary: p.Secondary, Secondary: p.Primary}
}

func (p Pair) String() string {
	return string(p.Primary) + "_" + string(p.Secondary)
}

// Registry maps terrain pairs to transition tilesets.
type Registry struct {
	sets map[Pair]Tileset
}

func NewRegistry() *Registry {
	return &Registry{sets: make(map[Pair]Tileset)}
}

// Register adds a tileset authored with primary drawn over secondary.
// A pair may be registered once in either orientation.
func (r *Registry) Register(primary, secondary terrain.Type, ts Tileset) error {
	if primary == secondary {
		return fmt.Errorf("%w: %s", ErrSelfPair, primary)
	}
	key := Pair{Primary: primary, Secondary: secondary}
	if _, ok := r.sets[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePair, key)
	}
	if _, ok := r.sets[key.Reverse()]; ok {
		return fmt.Errorf("%w: %s (as %s)", ErrDuplicatePair, key, key.Reverse())
	}
	r.sets[key] = ts
	return nil
}

// Lookup finds the tileset for a pair in either orientation. reversed is
// set when only the (secondary, primary) key exists, meaning the sheet's
// bits run the other way and the pattern must be inverted before use.
func (r *Registry) Lookup(primary, secondary terrain.Type) (ts Tileset, reversed bool, ok bool) {
	if ts, ok = r.sets[Pair{Primary: primary, Secondary: secondary}]; ok {
		return ts, false, true
	}
	if ts, ok = r.sets[Pair{Primary: secondary, Secondary: primary}]; ok {
		return ts, true, true
	}
	return Tileset{}, false, false
}

func (r *Registry) Len() int {
	return len(r.sets)
}

// Pairs returns every registered key in a stable order.
func (r *Registry) Pairs() []Pair {
	out := make([]Pair, 0, len(r.sets))
	for p := range r.sets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Tilesets returns every distinct tileset, ordered like Pairs.
func (r *Registry) Tilesets() []Tileset {
	pairs := r.Pairs()
	seen := make(map[Tileset]bool, len(pairs))
	out := make([]Tileset, 0, len(pairs))
	for _, p := range pairs {
		ts := r.sets[p]
		if seen[ts] {
			continue
		}
		seen[ts] = true
		out = append(out, ts)
	}
	return out
}
