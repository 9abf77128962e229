package placement

import (
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// LayerMask selects which obstacle layers a query considers
type LayerMask uint8

const (
	LayerBuildings LayerMask = 1 << iota
	LayerStatic

	LayerAll = LayerBuildings | LayerStatic
)

// Obstacle is one solid volume in the world
type Obstacle struct {
	ID    string
	Layer LayerMask
	Box   OrientedBox
}

// SpatialWorld answers volume queries against the world
type SpatialWorld interface {
	OverlapQuery(box OrientedBox, layers LayerMask) []Obstacle
}

// SpatialIndex is the in-memory SpatialWorld of one world.
// Obstacles are kept in insertion order so query results are deterministic.
type SpatialIndex struct {
	byID  map[string]Obstacle
	order []string
}

func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{byID: make(map[string]Obstacle)}
}

// Insert adds an obstacle; ids must be unique
func (s *SpatialIndex) Insert(o Obstacle) error {
	if o.ID == "" {
		return fmt.Errorf("obstacle id cannot be empty")
	}
	if _, exists := s.byID[o.ID]; exists {
		return fmt.Errorf("obstacle already indexed: %s", o.ID)
	}
	s.byID[o.ID] = o
	s.order = append(s.order, o.ID)
	return nil
}

// Remove drops an obstacle, reporting whether it existed
func (s *SpatialIndex) Remove(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, known := range s.order {
		if known == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// OverlapQuery returns every obstacle on the given layers sharing volume with box
func (s *SpatialIndex) OverlapQuery(box OrientedBox, layers LayerMask) []Obstacle {
	var hits []Obstacle
	for _, id := range s.order {
		o := s.byID[id]
		if o.Layer&layers == 0 {
			continue
		}
		if box.Overlaps(o.Box) {
			hits = append(hits, o)
		}
	}
	return hits
}

// ObstacleAt returns the first obstacle on the given layers whose ground rectangle holds p
func (s *SpatialIndex) ObstacleAt(p shared.Vec3, layers LayerMask) (Obstacle, bool) {
	for _, id := range s.order {
		o := s.byID[id]
		if o.Layer&layers != 0 && o.Box.ContainsXZ(p) {
			return o, true
		}
	}
	return Obstacle{}, false
}

// Obstacles returns every obstacle on the given layers in insertion order
func (s *SpatialIndex) Obstacles(layers LayerMask) []Obstacle {
	var out []Obstacle
	for _, id := range s.order {
		if o := s.byID[id]; o.Layer&layers != 0 {
			out = append(out, o)
		}
	}
	return out
}

func (s *SpatialIndex) Len() int {
	return len(s.order)
}
