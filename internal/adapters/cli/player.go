package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/player/commands"
	"github.com/andrescamacho/homestead-go/internal/application/player/queries"
	"github.com/andrescamacho/homestead-go/internal/domain/player"
)

// NewPlayerCommand creates the player command with subcommands
func NewPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Inspect and update player progression",
		Long: `Inspect and update the progression buildings are gated on.

Level and quests are normally driven by the quest system; these commands let
you set them by hand.

Examples:
  homestead player info
  homestead player set-level 3
  homestead player complete-quest first_harvest`,
	}

	cmd.AddCommand(newPlayerInfoCommand())
	cmd.AddCommand(newPlayerSetLevelCommand())
	cmd.AddCommand(newPlayerCompleteQuestCommand())

	return cmd
}

func newPlayerInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the player",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := openWorld(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := send[*queries.GetPlayerResponse](ctx, app.Mediator, &queries.GetPlayerQuery{})
			if err != nil {
				return err
			}
			printPlayer(resp.Player)
			return nil
		},
	}

	return cmd
}

func newPlayerSetLevelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-level <level>",
		Short: "Set the player level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var level int
			if _, err := fmt.Sscanf(args[0], "%d", &level); err != nil {
				return fmt.Errorf("invalid level %q", args[0])
			}

			app, ctx, err := openWorld(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := send[*commands.UpdateProgressResponse](ctx, app.Mediator, &commands.SetLevelCommand{Level: level})
			if err != nil {
				return err
			}
			fmt.Printf("✓ %s is now level %d\n", resp.Player.Name, resp.Player.Level)
			return nil
		},
	}

	return cmd
}

func newPlayerCompleteQuestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete-quest <quest-id>",
		Short: "Mark a quest as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := openWorld(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := send[*commands.UpdateProgressResponse](ctx, app.Mediator, &commands.CompleteQuestCommand{QuestID: args[0]})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Quest %s completed (%d total)\n", args[0], len(resp.Player.CompletedQuests))
			return nil
		},
	}

	return cmd
}

func printPlayer(p *player.Player) {
	fmt.Printf("Name:    %s\n", p.Name)
	fmt.Printf("Level:   %d\n", p.Level)
	if len(p.CompletedQuests) == 0 {
		fmt.Println("Quests:  (none completed)")
		return
	}
	fmt.Printf("Quests:  %s\n", strings.Join(p.CompletedQuests, ", "))
}
