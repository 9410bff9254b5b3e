package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/pkg/core/model"
	"github.com/jakechorley/baddersbot/pkg/core/overrides"
	"github.com/jakechorley/baddersbot/pkg/core/services"
	"github.com/jakechorley/baddersbot/pkg/db"
)

// EditRunCmd creates the editRun command
func EditRunCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editRun",
		Short: "Interactively override a run's allocations",
		Long: `Open an editing session pinned to one allocation run and apply manual
overrides: move an allocation to another session, hand its slot to another
player, or remove it. Every committed edit is written to the audit log on
save; undo and redo are available within the session.

Type 'help' inside the session for the available edits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, _ := cmd.Flags().GetString("run")
			actor, _ := cmd.Flags().GetString("actor")

			app.Logger.Debug("editRun command",
				zap.String("run_id", runID),
				zap.String("actor", actor))

			session, err := services.OpenEditingSession(app.Ctx, app.Database, runID, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to open editing session: %w", err)
			}

			fmt.Printf("\n✏️  Editing run %s\n", runID)
			fmt.Println("Type 'help' for available edits, 'save' to persist, 'quit' to discard")
			printAllocations(session)

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("edit> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				parts := strings.Fields(line)

				switch parts[0] {
				case "help":
					printEditHelp()

				case "list":
					printAllocations(session)

				case "log":
					entries, err := app.Database.GetOverrideLogs(app.Ctx, runID)
					if err != nil {
						fmt.Printf("❌ Failed to fetch audit log: %v\n", err)
						continue
					}
					printOverrideLog(entries, session.Log())

				case "reassign":
					if len(parts) < 3 {
						fmt.Println("❌ Usage: reassign <allocation-id> <session-id> [reason...]")
						continue
					}
					applyEdit(session, scanner, overrides.Action{
						Kind:            model.OverrideReassign,
						AllocationID:    parts[1],
						TargetSessionID: parts[2],
						Actor:           actor,
						Reason:          strings.Join(parts[3:], " "),
					})

				case "swap":
					if len(parts) < 3 {
						fmt.Println("❌ Usage: swap <allocation-id> <player-id> [reason...]")
						continue
					}
					applyEdit(session, scanner, overrides.Action{
						Kind:           model.OverrideSwap,
						AllocationID:   parts[1],
						TargetPlayerID: parts[2],
						Actor:          actor,
						Reason:         strings.Join(parts[3:], " "),
					})

				case "remove":
					if len(parts) < 2 {
						fmt.Println("❌ Usage: remove <allocation-id> [reason...]")
						continue
					}
					applyEdit(session, scanner, overrides.Action{
						Kind:         model.OverrideRemove,
						AllocationID: parts[1],
						Actor:        actor,
						Reason:       strings.Join(parts[2:], " "),
					})

				case "undo":
					result, err := session.Undo()
					if err != nil {
						if errors.Is(err, overrides.ErrNothingToUndo) {
							fmt.Println("ℹ️  Nothing to undo")
						} else {
							fmt.Printf("❌ Undo failed: %v\n", err)
						}
						continue
					}
					fmt.Printf("↩️  Undid %s on allocation %s\n", result.LogEntry.Kind, result.Allocation.ID)

				case "redo":
					result, err := session.Redo()
					if err != nil {
						if errors.Is(err, overrides.ErrNothingToRedo) {
							fmt.Println("ℹ️  Nothing to redo")
						} else {
							fmt.Printf("❌ Redo failed: %v\n", err)
						}
						continue
					}
					fmt.Printf("↪️  Redid %s on allocation %s\n", result.LogEntry.Kind, result.Allocation.ID)

				case "save":
					if err := services.SaveEdits(app.Ctx, app.Database, session, app.Logger); err != nil {
						return fmt.Errorf("failed to save edits: %w", err)
					}
					fmt.Printf("✅ Saved %d audit log entries.\n", len(session.Log()))
					return nil

				case "quit", "exit":
					if len(session.Log()) > 0 {
						fmt.Printf("⚠️  Discarding %d unsaved edits.\n", len(session.Log()))
					}
					fmt.Println("👋 Goodbye!")
					return nil

				default:
					fmt.Printf("❌ Unknown edit: %s (type 'help')\n", parts[0])
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("run", "", "Allocation run ID to edit (required)")
	cmd.MarkFlagRequired("run")
	cmd.Flags().String("actor", "organiser", "Name recorded against each edit in the audit log")

	return cmd
}

// applyEdit applies one action, prompting for acknowledgement when the
// move violates a hard constraint. Warn-but-allow: the edit only commits
// once the organiser confirms.
func applyEdit(session *overrides.Session, scanner *bufio.Scanner, action overrides.Action) {
	result, err := session.Apply(action)
	if err != nil {
		fmt.Printf("❌ Edit failed: %v\n", err)
		return
	}

	if result.Warning != nil && !result.Committed {
		fmt.Printf("⚠️  This edit violates: %s\n", strings.Join(result.Warning.FailedRules, ", "))
		fmt.Print("Apply anyway? (y/N) ")
		if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
			fmt.Println("ℹ️  Edit not applied")
			return
		}
		action.Acknowledged = true
		result, err = session.Apply(action)
		if err != nil {
			fmt.Printf("❌ Edit failed: %v\n", err)
			return
		}
	}

	allocation := result.Allocation
	fmt.Printf("✅ %s: allocation %s now player %s in session %s (%s)",
		action.Kind, allocation.ID, allocation.PlayerID, allocation.SessionID, allocation.Status)
	if allocation.Overfull {
		fmt.Print(" [overfull]")
	}
	fmt.Println()
}

func printAllocations(session *overrides.Session) {
	fmt.Println("\nAllocations:")
	for _, a := range session.Allocations() {
		marker := " "
		if !a.Active() {
			marker = "✗"
		}
		fmt.Printf("  %s %-36s  player %-12s  session %-12s  %-10s  conf %.1f\n",
			marker, a.ID, a.PlayerID, a.SessionID, a.Status, a.Confidence)
	}
	fmt.Println()
}

func printOverrideLog(persisted []db.OverrideLog, unsaved []model.OverrideLog) {
	if len(persisted) == 0 && len(unsaved) == 0 {
		fmt.Println("ℹ️  No overrides recorded for this run")
		return
	}

	fmt.Println("\nAudit log:")
	for _, record := range persisted {
		printLogEntry(record.ToModel(), "saved")
	}
	for _, entry := range unsaved {
		printLogEntry(entry, "unsaved")
	}
	fmt.Println()
}

func printLogEntry(entry model.OverrideLog, state string) {
	line := fmt.Sprintf("  [%s] %s  %-8s  by %s  allocations %s",
		state, entry.At.Format("2006-01-02 15:04:05"), entry.Kind, entry.Actor,
		strings.Join(entry.AllocationIDs, ","))
	if entry.ConstraintViolation {
		line += "  ⚠️ acknowledged violation"
	}
	if entry.Reason != "" {
		line += fmt.Sprintf("  (%s)", entry.Reason)
	}
	fmt.Println(line)
}

func printEditHelp() {
	fmt.Println("\nAvailable edits:")
	fmt.Println("  list                                       Show the run's allocations")
	fmt.Println("  log                                        Show the run's audit log (saved + unsaved)")
	fmt.Println("  reassign <allocation-id> <session-id>      Move an allocation to another session")
	fmt.Println("  swap <allocation-id> <player-id>           Hand the slot to another player")
	fmt.Println("  remove <allocation-id>                     Remove the allocation (slot reopens)")
	fmt.Println("  undo                                       Revert the most recent edit")
	fmt.Println("  redo                                       Re-apply the most recently undone edit")
	fmt.Println("  save                                       Persist edits and the audit log")
	fmt.Println("  quit                                       Discard unsaved edits and exit")
}
