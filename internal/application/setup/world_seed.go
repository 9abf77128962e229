package setup

import (
	"context"
	"fmt"

	ledgerCommands "github.com/andrescamacho/homestead-go/internal/application/ledger/commands"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	playerCommands "github.com/andrescamacho/homestead-go/internal/application/player/commands"
	"github.com/andrescamacho/homestead-go/internal/application/world"
)

// WorldSeed is what a brand new world starts with
type WorldSeed struct {
	PlayerName       string
	PlayerLevel      int
	StartingItems    map[string]int
	StartingCurrency map[string]int
}

// SeedWorld names the player, sets its level and grants the starting resources.
// The grant goes through the mediator so it appears in the journal.
func SeedWorld(ctx context.Context, m mediator.Mediator, host *world.Host, seed WorldSeed) error {
	if seed.PlayerName != "" {
		err := host.Mutate(ctx, func(w *world.World) error {
			w.Player().Name = seed.PlayerName
			return nil
		})
		if err != nil {
			return err
		}
	}

	if seed.PlayerLevel > 1 {
		if _, err := m.Send(ctx, &playerCommands.SetLevelCommand{Level: seed.PlayerLevel}); err != nil {
			return fmt.Errorf("failed to set starting level: %w", err)
		}
	}

	items := positive(seed.StartingItems)
	currencies := positive(seed.StartingCurrency)
	if len(items) == 0 && len(currencies) == 0 {
		return nil
	}
	_, err := m.Send(ctx, &ledgerCommands.GrantResourcesCommand{
		Items:       items,
		Currencies:  currencies,
		Description: "Starting resources",
	})
	if err != nil {
		return fmt.Errorf("failed to grant starting resources: %w", err)
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "New world seeded", map[string]interface{}{
		"player":     seed.PlayerName,
		"items":      items,
		"currencies": currencies,
	})
	return nil
}

func positive(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}
