// Package maps generates terrain worlds.
package maps

import (
	"fmt"
	"math"

	"github.com/rywk/dualgrid/pkg/ground"
	"github.com/rywk/dualgrid/pkg/terrain"
)

type Params struct {
	Seed          uint64
	Width, Height int
	// Scale is the feature size in tiles. Zero picks 12.
	Scale float64
}

// Elevation bands, after the island falloff is applied.
const (
	seaLevel   = 0.30
	beachLevel = 0.36
	hillLevel  = 0.70
	peakLevel  = 0.80
)

// Island generates a world whose border is always sea. Sizes above
// ground.MaxSize are an error.
func Island(p Params) (*ground.Grid, error) {
	if p.Width < 0 || p.Height < 0 || p.Width > ground.MaxSize || p.Height > ground.MaxSize {
		return nil, fmt.Errorf("maps: island size %dx%d outside 0..%d", p.Width, p.Height, ground.MaxSize)
	}
	if p.Scale <= 0 {
		p.Scale = 12
	}
	g := ground.NewGrid(p.Width, p.Height, terrain.Sea)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			t := classify(p, x, y)
			if t == terrain.Sea {
				continue
			}
			if err := g.Set(x, y, t); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func classify(p Params, x, y int) terrain.Type {
	dx := (float64(x)+0.5)/float64(p.Width)*2 - 1
	dy := (float64(y)+0.5)/float64(p.Height)*2 - 1
	d := math.Max(math.Abs(dx), math.Abs(dy))

	elev := 0.6*octaves(p.Seed, float64(x)/p.Scale, float64(y)/p.Scale) + 0.4 - 1.2*d*d
	wet := octaves(p.Seed^0x9E3779B97F4A7C15, float64(x)/p.Scale+100, float64(y)/p.Scale+100)

	switch {
	case elev < seaLevel:
		return terrain.Sea
	case elev < beachLevel:
		if wet > 0.8 {
			return terrain.HotSpringWater
		}
		return terrain.Beach
	case elev >= peakLevel:
		return terrain.Alpine
	case elev >= hillLevel:
		if wet < 0.35 {
			return terrain.Quarry
		}
		return terrain.Tundra
	case wet > 0.62:
		return terrain.Forest
	case wet < 0.3:
		return terrain.Dirt
	}
	return terrain.Grass
}

// octaves sums two layers of value noise into [0, 1].
func octaves(seed uint64, x, y float64) float64 {
	return (2*valueNoise(seed, x, y) + valueNoise(seed+1, x*2, y*2)) / 3
}

// valueNoise interpolates hashed lattice values with a smoothstep.
func valueNoise(seed uint64, x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := smooth(x-x0), smooth(y-y0)
	ix, iy := int(x0), int(y0)

	a := lattice(seed, ix, iy)
	b := lattice(seed, ix+1, iy)
	c := lattice(seed, ix, iy+1)
	d := lattice(seed, ix+1, iy+1)
	top := a + (b-a)*fx
	bottom := c + (d-c)*fx
	return top + (bottom-top)*fy
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lattice(seed uint64, x, y int) float64 {
	return float64(hash2D(seed, x, y)>>11) / (1 << 53)
}

// hash2D is a splitmix64 finalizer over the seed and coordinates.
func hash2D(seed uint64, x, y int) uint64 {
	h := seed ^ uint64(int64(x))*0x9E3779B97F4A7C15 ^ uint64(int64(y))*0xC2B2AE3D27D4EB4F
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31
	return h
}
