package snapshot

import (
	"context"
	"errors"
	"os"

	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/player"
)

// Capture builds a snapshot of a world state
func (c *Codec) Capture(state *world.State) Snapshot {
	snap := Snapshot{
		Header: Header{
			Version: Version,
			SavedAt: c.clock.Now(),
			Tick:    state.Tick,
		},
		Elapsed:   state.Elapsed,
		Buildings: c.Encode(state.Buildings),
		Ledger:    state.Balances,
	}
	if state.Player != nil {
		snap.Player = &PlayerRecord{
			ID:              state.Player.ID,
			Name:            state.Player.Name,
			Level:           state.Player.Level,
			CompletedQuests: append([]string(nil), state.Player.CompletedQuests...),
		}
	}
	return snap
}

// Rebuild turns a snapshot back into world state. Records that cannot be
// resolved are dropped and returned as load errors.
func (c *Codec) Rebuild(ctx context.Context, snap Snapshot) (*world.State, []*LoadError) {
	buildings, errs := c.Decode(ctx, snap.Buildings)

	state := &world.State{
		Tick:      snap.Header.Tick,
		Elapsed:   snap.Elapsed,
		Buildings: buildings,
		Balances:  snap.Ledger,
	}
	if snap.Player != nil {
		p := player.NewPlayer(snap.Player.ID, snap.Player.Name)
		p.Level = snap.Player.Level
		p.CompletedQuests = append([]string(nil), snap.Player.CompletedQuests...)
		state.Player = p
	}
	return state, errs
}

// FileRepository is a world.Repository backed by a single snapshot file
type FileRepository struct {
	path  string
	codec *Codec
}

func NewFileRepository(path string, codec *Codec) *FileRepository {
	return &FileRepository{path: path, codec: codec}
}

func (r *FileRepository) Load(ctx context.Context) (*world.State, error) {
	snap, err := ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	state, _ := r.codec.Rebuild(ctx, snap)
	return state, nil
}

func (r *FileRepository) Save(ctx context.Context, state *world.State) error {
	return WriteFile(r.path, r.codec.Capture(state))
}
