package resources

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/nvandermeer/suburbfall/internal/world"
)

// Node is a depletable resource deposit in world space. A node may be
// reserved by exactly one survivor at a time; only the holder may extract
// from it while the reservation stands.
type Node struct {
	ID           string         `json:"id"`
	Pos          world.Position `json:"pos"`
	ResourceType string         `json:"resource_type"`
	Amount       int            `json:"amount"`
	MaxAmount    int            `json:"max_amount"`
	RegenRate    float64        `json:"regen_rate"` // units per second
	Harvestable  bool           `json:"harvestable"`
	ReservedBy   string         `json:"reserved_by,omitempty"`

	sinceHarvestMs float64 // elapsed since last harvest
	regenInS       float64 // click-harvest regeneration countdown, 0 = none
}

// nodeSpawn is one entry of the per-tile spawn table.
type nodeSpawn struct {
	resourceType string
	chance       float64
}

var spawnTable = map[world.TileType][]nodeSpawn{
	world.TileRuins: {
		{Scrap, 0.3},
		{Electronics, 0.15},
		{Plastic, 0.2},
	},
	world.TileDrainage: {
		{Scrap, 0.4},
		{Concrete, 0.25},
	},
	world.TileGrass: {
		{Fabric, 0.1},
		{Wood, 0.25},
	},
}

// GenerateNodes populates resource nodes across the map according to the
// per-tile spawn tables.
func (l *Ledger) GenerateNodes(m *world.Map) {
	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			tile := m.Tile(x, y)
			for _, spawn := range spawnTable[tile.Type] {
				if l.rng.Float() >= spawn.chance {
					continue
				}
				center := m.TileCenter(x, y)
				pos := world.Position{
					X: center.X + float64(l.rng.Between(-m.TileSize, m.TileSize)),
					Y: center.Y + float64(l.rng.Between(-m.TileSize, m.TileSize)),
				}
				l.createNode(spawn.resourceType, pos)
			}
		}
	}
	slog.Info("resource nodes generated", "count", len(l.nodes))
}

// CreateNode adds a node directly, used by tests and scripted scenarios.
func (l *Ledger) CreateNode(resourceType string, pos world.Position, amount int) *Node {
	n := l.createNode(resourceType, pos)
	n.Amount = amount
	return n
}

func (l *Ledger) createNode(resourceType string, pos world.Position) *Node {
	n := &Node{
		ID:           uuid.NewString(),
		Pos:          pos,
		ResourceType: resourceType,
		Amount:       l.rng.Between(10, 30),
		MaxAmount:    50,
		RegenRate:    0.1,
		Harvestable:  true,
	}
	l.nodes[n.ID] = n
	l.nodeOrder = append(l.nodeOrder, n.ID)
	return n
}

// Node returns a node by id.
func (l *Ledger) Node(id string) (*Node, bool) {
	n, ok := l.nodes[id]
	return n, ok
}

// Nodes returns all live nodes in creation order.
func (l *Ledger) Nodes() []*Node {
	out := make([]*Node, 0, len(l.nodeOrder))
	for _, id := range l.nodeOrder {
		if n, ok := l.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Reserve marks a node for exclusive extraction by holderID. Succeeds when
// the node is harvestable and unreserved, or already held by holderID.
func (l *Ledger) Reserve(nodeID, holderID string) bool {
	n, ok := l.nodes[nodeID]
	if !ok || !n.Harvestable {
		return false
	}
	if n.ReservedBy != "" && n.ReservedBy != holderID {
		return false
	}
	n.ReservedBy = holderID
	return true
}

// Release clears a reservation if and only if holderID holds it.
func (l *Ledger) Release(nodeID, holderID string) {
	if n, ok := l.nodes[nodeID]; ok && n.ReservedBy == holderID {
		n.ReservedBy = ""
	}
}

// FindNearest returns the closest harvestable node of the type that is not
// reserved by someone else. allowHolder may match an existing reservation
// (a survivor re-finding its own node). Ties go to the earliest-created node.
func (l *Ledger) FindNearest(resourceType string, from world.Position, allowHolder string) *Node {
	var best *Node
	bestD2 := -1.0
	for _, id := range l.nodeOrder {
		n, ok := l.nodes[id]
		if !ok || !n.Harvestable || n.ResourceType != resourceType {
			continue
		}
		if n.ReservedBy != "" && n.ReservedBy != allowHolder {
			continue
		}
		d2 := n.Pos.Dist2(from)
		if best == nil || d2 < bestD2 {
			best = n
			bestD2 = d2
		}
	}
	return best
}

// Extract removes up to amount units from a node without depositing them,
// returning the actual amount taken. Respects reservations when holderID is
// given. A node extracted to zero is removed permanently.
func (l *Ledger) Extract(nodeID string, amount int, holderID string) int {
	n, ok := l.nodes[nodeID]
	if !ok || !n.Harvestable || n.Amount <= 0 {
		return 0
	}
	if holderID != "" && n.ReservedBy != "" && n.ReservedBy != holderID {
		return 0
	}

	extracted := amount
	if extracted > n.Amount {
		extracted = n.Amount
	}
	if extracted < 0 {
		extracted = 0
	}
	n.Amount -= extracted
	n.sinceHarvestMs = 0

	if n.Amount <= 0 {
		// Depletion by extraction is terminal.
		n.Harvestable = false
		delete(l.nodes, nodeID)
	}
	return extracted
}

// Harvest is the click-to-harvest mode: a fixed bite goes straight to the
// stockpile and a depleted node dims and schedules regeneration instead of
// being removed.
func (l *Ledger) Harvest(nodeID string) bool {
	n, ok := l.nodes[nodeID]
	if !ok || !n.Harvestable || n.Amount <= 0 {
		return false
	}

	harvested := l.clickHarvestAmount
	if harvested > n.Amount {
		harvested = n.Amount
	}
	n.Amount -= harvested
	n.sinceHarvestMs = 0

	l.Add(n.ResourceType, harvested)

	if n.Amount <= 0 {
		n.Harvestable = false
		n.regenInS = l.clickRegenDelayS
	}
	return true
}

// RemoveNode deletes a node outright.
func (l *Ledger) RemoveNode(nodeID string) {
	delete(l.nodes, nodeID)
}

// Update advances node timers: click-harvest regeneration countdowns and the
// per-tick probabilistic regeneration roll.
func (l *Ledger) Update(deltaMs float64) {
	dt := deltaMs / 1000
	for _, id := range l.nodeOrder {
		n, ok := l.nodes[id]
		if !ok {
			continue
		}

		if n.regenInS > 0 {
			n.regenInS -= dt
			if n.regenInS <= 0 {
				n.regenInS = 0
				n.Amount = min(n.MaxAmount, n.Amount+l.clickRegenAmount)
				n.Harvestable = true
			}
			continue
		}

		n.sinceHarvestMs += deltaMs
		if n.Amount < n.MaxAmount && n.sinceHarvestMs > l.regenDelayMs {
			if l.rng.Float() < n.RegenRate/60 {
				n.Amount = min(n.MaxAmount, n.Amount+1)
			}
		}
	}
	l.compactNodeOrder()
}

// compactNodeOrder drops ids of removed nodes once enough accumulate.
func (l *Ledger) compactNodeOrder() {
	if len(l.nodeOrder) < len(l.nodes)*2 || len(l.nodeOrder) < 32 {
		return
	}
	kept := l.nodeOrder[:0]
	for _, id := range l.nodeOrder {
		if _, ok := l.nodes[id]; ok {
			kept = append(kept, id)
		}
	}
	l.nodeOrder = kept
}
