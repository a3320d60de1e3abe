// Package world provides the suburban tile map and world-space geometry.
package world

import "math"

// Position is a point in world pixel space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist2 returns the squared Euclidean distance to other.
func (p Position) Dist2(other Position) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return dx*dx + dy*dy
}

// Dist returns the Euclidean distance to other.
func (p Position) Dist(other Position) float64 {
	return math.Sqrt(p.Dist2(other))
}

// TileType categorizes a map tile.
type TileType uint8

const (
	TileConcrete TileType = iota // Sidewalks and slabs
	TileAsphalt                  // Roads
	TileGrass                    // Lawns and overgrowth
	TileRuins                    // Collapsed fast-food franchises
	TileDrainage                 // Flooded ditches and culverts
)

// TileName returns a human-readable tile type name.
func TileName(t TileType) string {
	switch t {
	case TileConcrete:
		return "concrete"
	case TileAsphalt:
		return "asphalt"
	case TileGrass:
		return "grass"
	case TileRuins:
		return "ruins"
	case TileDrainage:
		return "drainage"
	default:
		return "unknown"
	}
}

// Tile is a single cell of the suburb grid.
type Tile struct {
	X, Y      int
	Type      TileType
	Walkable  bool
	Buildable bool
}

// Map is the generated suburb grid.
type Map struct {
	Width    int
	Height   int
	TileSize int
	tiles    [][]Tile
}

// NewMap allocates an empty grid. Tiles start as grass.
func NewMap(width, height, tileSize int) *Map {
	tiles := make([][]Tile, width)
	for x := range tiles {
		tiles[x] = make([]Tile, height)
		for y := range tiles[x] {
			tiles[x][y] = Tile{X: x, Y: y, Type: TileGrass, Walkable: true, Buildable: true}
		}
	}
	return &Map{Width: width, Height: height, TileSize: tileSize, tiles: tiles}
}

// Tile returns the tile at grid coordinates, or nil when out of bounds.
func (m *Map) Tile(x, y int) *Tile {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return nil
	}
	return &m.tiles[x][y]
}

// TileAt returns the tile containing the given world pixel position.
func (m *Map) TileAt(pos Position) *Tile {
	return m.Tile(int(pos.X)/m.TileSize, int(pos.Y)/m.TileSize)
}

// SetType changes a tile's type and re-derives its traversal flags.
func (m *Map) SetType(x, y int, t TileType) {
	tile := m.Tile(x, y)
	if tile == nil {
		return
	}
	tile.Type = t
	tile.Walkable = walkable(t)
	tile.Buildable = buildable(t)
}

// PixelWidth returns the world width in pixels.
func (m *Map) PixelWidth() float64 { return float64(m.Width * m.TileSize) }

// PixelHeight returns the world height in pixels.
func (m *Map) PixelHeight() float64 { return float64(m.Height * m.TileSize) }

// Center returns the world-space center point, used as the default stockpile.
func (m *Map) Center() Position {
	return Position{X: m.PixelWidth() / 2, Y: m.PixelHeight() / 2}
}

// TileCenter returns the world-space center of a grid cell.
func (m *Map) TileCenter(x, y int) Position {
	half := float64(m.TileSize) / 2
	return Position{X: float64(x*m.TileSize) + half, Y: float64(y*m.TileSize) + half}
}

// Clamp keeps a position inside the world bounds with a small margin.
func (m *Map) Clamp(pos Position, margin float64) Position {
	pos.X = math.Max(margin, math.Min(m.PixelWidth()-margin, pos.X))
	pos.Y = math.Max(margin, math.Min(m.PixelHeight()-margin, pos.Y))
	return pos
}

// TypeCounts tallies tiles by type, useful for generation logging.
func (m *Map) TypeCounts() map[TileType]int {
	counts := make(map[TileType]int)
	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			counts[m.tiles[x][y].Type]++
		}
	}
	return counts
}

func walkable(t TileType) bool {
	switch t {
	case TileRuins, TileDrainage:
		return false
	default:
		return true
	}
}

func buildable(t TileType) bool {
	switch t {
	case TileGrass, TileConcrete:
		return true
	default:
		return false
	}
}
