// Suburb generation using simplex noise plus hand-shaped overlays.
// A noise base decides concrete/asphalt/grass/drainage, then roads,
// cul-de-sacs, franchise ruins, and drainage ditches are stamped on top.
package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/nvandermeer/suburbfall/internal/entropy"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Width    int   // Grid width in tiles
	Height   int   // Grid height in tiles
	TileSize int   // Pixels per tile
	Seed     int64 // Random seed (0 = random)
}

// DefaultGenConfig returns the standard suburb footprint.
func DefaultGenConfig() GenConfig {
	return GenConfig{Width: 60, Height: 40, TileSize: 32}
}

// SmallTestConfig returns a tiny map for fast tests.
func SmallTestConfig() GenConfig {
	return GenConfig{Width: 12, Height: 10, TileSize: 32, Seed: 42}
}

// Generate creates a complete suburb map.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	if cfg.TileSize == 0 {
		cfg.TileSize = 32
	}

	noise := opensimplex.NewNormalized(seed)
	rng := entropy.NewSeeded(seed)

	m := NewMap(cfg.Width, cfg.Height, cfg.TileSize)

	// Noise base layer.
	for x := 0; x < cfg.Width; x++ {
		for y := 0; y < cfg.Height; y++ {
			m.SetType(x, y, baseTile(octaveNoise(noise, float64(x), float64(y), 3, 0.1, 0.5)))
		}
	}

	stampRoads(m, rng)
	stampCulDeSacs(m, rng)
	stampRuins(m, rng)
	stampDrainage(m, rng)

	return m
}

func baseTile(n float64) TileType {
	switch {
	case n > 0.85:
		return TileConcrete
	case n > 0.7:
		return TileAsphalt
	case n < 0.15:
		return TileDrainage
	default:
		return TileGrass
	}
}

// octaveNoise samples multi-octave noise for a less uniform base layer.
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	freq := frequency
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}

// stampRoads lays main roads with sidewalks every 8–12 columns and cross
// streets every 6–10 rows.
func stampRoads(m *Map, rng entropy.Source) {
	for x := 0; x < m.Width; x += rng.Between(8, 12) {
		for y := 0; y < m.Height; y++ {
			m.SetType(x, y, TileAsphalt)
			m.SetType(x-1, y, TileConcrete)
			m.SetType(x+1, y, TileConcrete)
		}
	}
	for y := 0; y < m.Height; y += rng.Between(6, 10) {
		for x := 0; x < m.Width; x++ {
			m.SetType(x, y, TileAsphalt)
			m.SetType(x, y-1, TileConcrete)
			m.SetType(x, y+1, TileConcrete)
		}
	}
}

func stampCulDeSacs(m *Map, rng entropy.Source) {
	count := m.Width * m.Height / 400
	const radius = 3
	for i := 0; i < count; i++ {
		cx := rng.Between(5, m.Width-5)
		cy := rng.Between(5, m.Height-5)
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				d2 := dx*dx + dy*dy
				if d2 > radius*radius {
					continue
				}
				if d2 <= (radius-1)*(radius-1) {
					m.SetType(cx+dx, cy+dy, TileAsphalt)
				} else {
					m.SetType(cx+dx, cy+dy, TileConcrete)
				}
			}
		}
	}
}

// stampRuins scatters 2x2 collapsed franchise blocks.
func stampRuins(m *Map, rng entropy.Source) {
	count := m.Width * m.Height / 200
	for i := 0; i < count; i++ {
		x := rng.Between(1, m.Width-3)
		y := rng.Between(1, m.Height-3)
		for dx := 0; dx < 2; dx++ {
			for dy := 0; dy < 2; dy++ {
				m.SetType(x+dx, y+dy, TileRuins)
			}
		}
	}
}

// stampDrainage adds ditches near roads.
func stampDrainage(m *Map, rng entropy.Source) {
	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			if m.tiles[x][y].Type != TileAsphalt {
				continue
			}
			if rng.Float() < 0.1 {
				m.SetType(x+rng.Between(-2, 2), y+rng.Between(-2, 2), TileDrainage)
			}
		}
	}
}
