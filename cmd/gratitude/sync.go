// ABOUTME: Sync subcommand for Charm cloud integration.
// ABOUTME: Provides link, unlink, status, repair, reset, and wipe commands for Charm sync.

package main

import (
	"fmt"
	"os"
	"strings"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harper/gratitude/internal/config"
	"github.com/harper/gratitude/internal/db"
	"github.com/spf13/cobra"
)

func newSyncCmd(a *app) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud sync",
		Long: `Sync your gratitude journal through the Charm cloud.

Charm uses SSH key authentication - no passwords needed.
Once linked, the charm backend syncs after each change.

Commands:
  status  - Show sync configuration and connection status
  link    - Connect this device to Charm cloud and switch to the charm backend
  unlink  - Disconnect from Charm cloud and switch back to SQLite
  repair  - Repair database corruption issues
  reset   - Reset local sync data (keeps cloud data)
  wipe    - Delete all synced data and start fresh

Examples:
  gratitude sync status
  gratitude sync link
  gratitude sync link --host charm.example.com
  gratitude sync repair
  gratitude sync reset`,
		Annotations: map[string]string{annotationNoStore: "true"},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show sync status",
		Long:  `Display storage backend, Charm sync configuration and connection status.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg

			fmt.Println("Sync Status")
			fmt.Println(strings.Repeat("-", 40))

			fmt.Printf("Config:    %s\n", config.ConfigPath())
			fmt.Printf("Backend:   %s\n", cfg.Backend)
			if cfg.Backend == config.BackendSQLite {
				path := cfg.DBPath
				if path == "" {
					path = db.DefaultPath()
				}
				fmt.Printf("Database:  %s\n", path)
			}
			if cfg.CharmHost != "" {
				fmt.Printf("Host:      %s\n", cfg.CharmHost)
			} else {
				fmt.Printf("Host:      %s\n", color.New(color.Faint).Sprint("(default: cloud.charm.sh)"))
			}

			if cfg.AutoSync {
				fmt.Printf("Auto-sync: %s\n", color.GreenString("enabled"))
			} else {
				fmt.Printf("Auto-sync: %s\n", color.YellowString("disabled"))
			}

			if cfg.Backend != config.BackendCharm {
				fmt.Println()
				fmt.Printf("Status:    %s\n", color.YellowString("not linked"))
				fmt.Println("\nRun 'gratitude sync link' to connect to Charm cloud.")
				return nil
			}

			client, err := a.charmClient()
			if err != nil {
				fmt.Println()
				fmt.Printf("Status:    %s\n", color.RedString("client not initialized"))
				return nil
			}

			if last := client.LastSyncTime(); !last.IsZero() {
				fmt.Printf("Last sync: %s\n", last.In(a.loc).Format("2006-01-02 15:04"))
			}

			user, err := client.User()
			fmt.Println()
			if err == nil && user != nil {
				fmt.Printf("User ID:   %s\n", user.CharmID)
				fmt.Printf("Name:      %s\n", valueOrNone(user.Name))
				fmt.Printf("Status:    %s\n", color.GreenString("connected"))
			} else {
				fmt.Printf("Status:    %s\n", color.YellowString("not linked"))
				fmt.Println("\nRun 'gratitude sync link' to connect to Charm cloud.")
			}
			return nil
		},
	}

	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Connect to Charm cloud",
		Long: `Link this device to Charm cloud for sync.

Charm uses SSH key authentication. On first link, you'll see
a code to verify on another device, or you can create a new account.

Your SSH keys are used automatically - no passwords needed.
Entries already in a local SQLite journal are not copied; use
'gratitude export' before linking and 'gratitude import' after.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host, _ := cmd.Flags().GetString("host")

			cfg := a.cfg
			if host != "" {
				cfg.CharmHost = host
			}
			cfg.Backend = config.BackendCharm

			client, err := a.charmClient()
			if err != nil {
				return fmt.Errorf("get client: %w", err)
			}

			// Link will prompt for authentication if needed
			if err := client.Link(); err != nil {
				return fmt.Errorf("link failed: %w", err)
			}

			user, err := client.User()
			if err != nil {
				return fmt.Errorf("get user: %w", err)
			}

			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			color.Green("\n✓ Linked to Charm cloud")
			fmt.Printf("  User ID: %s\n", user.CharmID)
			if user.Name != "" {
				fmt.Printf("  Name:    %s\n", user.Name)
			}
			fmt.Println("\nYour entries will now sync automatically.")

			return nil
		},
	}
	linkCmd.Flags().String("host", "", "Charm server host (default: cloud.charm.sh)")

	unlinkCmd := &cobra.Command{
		Use:   "unlink",
		Short: "Disconnect from Charm cloud",
		Long: `Unlink this device from Charm cloud.

This clears the local charm copy and switches back to the SQLite backend.
Cloud data is kept. You can re-link anytime with 'gratitude sync link'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Backend != config.BackendCharm {
				fmt.Println("Not linked to Charm cloud.")
				return nil
			}

			fmt.Println("This will disconnect this device from Charm cloud.")
			fmt.Println("Entries stay in the cloud but will no longer be read on this device.")
			if !confirm(os.Stdin, "\nType 'unlink' to confirm: ", "unlink") {
				fmt.Println("Aborted.")
				return nil
			}

			client, err := a.charmClient()
			if err != nil {
				return err
			}
			if err := client.Unlink(); err != nil {
				return fmt.Errorf("unlink failed: %w", err)
			}

			a.cfg.Backend = config.BackendSQLite
			if err := config.SaveConfig(a.cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			color.Green("\n✓ Unlinked from Charm cloud")
			fmt.Println("Run 'gratitude sync link' to reconnect.")

			return nil
		},
	}

	repairCmd := &cobra.Command{
		Use:   "repair",
		Short: "Repair database corruption issues",
		Long: `Repair the local KV database if it's corrupted.

This command:
- Checkpoints the WAL (write-ahead log)
- Removes shared memory files
- Runs integrity checks
- Vacuums the database if needed

Use --force to attempt repair even if integrity check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			client, err := a.charmClient()
			if err != nil {
				return err
			}

			fmt.Println("Repairing database...")
			result, err := charmkv.Repair(client.DBName(), force)
			if err != nil {
				return fmt.Errorf("repair failed: %w", err)
			}

			fmt.Println("\nRepair Results:")
			if result.WalCheckpointed {
				fmt.Println("  ✓ WAL checkpointed")
			}
			if result.ShmRemoved {
				fmt.Println("  ✓ SHM file removed")
			}
			if result.IntegrityOK {
				color.Green("  ✓ Integrity check passed")
			} else {
				color.Red("  ✗ Integrity check failed")
			}
			if result.Vacuumed {
				fmt.Println("  ✓ Database vacuumed")
			}

			if result.IntegrityOK {
				color.Green("\n✓ Database repaired successfully")
			} else {
				color.Yellow("\n⚠ Repair completed but integrity issues remain")
				fmt.Println("Consider running 'gratitude sync reset' or 'gratitude sync wipe'")
			}

			return nil
		},
	}
	repairCmd.Flags().Bool("force", false, "Force repair even if integrity check fails")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset local sync data",
		Long: `Reset the local KV database while keeping cloud data intact.

This removes all local sync state and forces a fresh sync from the cloud.
Use this when:
- Local database is corrupted
- You want to re-sync from cloud
- Sync state has diverged

Your cloud data is preserved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("This will reset local sync data.")
			fmt.Println("Cloud data will be preserved and re-synced.")
			if !confirm(os.Stdin, "\nContinue? [y/N]: ", "y") {
				fmt.Println("Aborted.")
				return nil
			}

			client, err := a.charmClient()
			if err != nil {
				return err
			}

			fmt.Println("\nResetting local data...")

			if err := charmkv.Reset(client.DBName()); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}

			color.Green("✓ Local sync data reset")
			fmt.Println("\nRun any gratitude command to re-sync from cloud.")

			return nil
		},
	}

	wipeCmd := &cobra.Command{
		Use:   "wipe",
		Short: "Wipe all sync data and start fresh",
		Long: `Delete all synced data from Charm cloud and local KV store.

This is the nuclear option - use when:
- Sync data is corrupted beyond repair
- You want to start completely fresh
- You're cleaning up after development/testing

This deletes BOTH cloud backups and local files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("This will DELETE all sync data:")
			fmt.Println("  - All entries in Charm cloud")
			fmt.Println("  - Local KV database")
			fmt.Println()
			color.Yellow("This cannot be undone!")
			if !confirm(os.Stdin, "\nType 'wipe' to confirm: ", "wipe") {
				fmt.Println("Aborted.")
				return nil
			}

			client, err := a.charmClient()
			if err != nil {
				return err
			}

			fmt.Println("\nWiping data...")

			result, err := charmkv.Wipe(client.DBName())
			if err != nil {
				return fmt.Errorf("wipe failed: %w", err)
			}

			fmt.Println("\nWipe Results:")
			if result.CloudBackupsDeleted > 0 {
				fmt.Printf("  ✓ Deleted %d cloud backups\n", result.CloudBackupsDeleted)
			}
			if result.LocalFilesDeleted > 0 {
				fmt.Printf("  ✓ Deleted %d local files\n", result.LocalFilesDeleted)
			}

			color.Green("\n✓ All sync data wiped")
			fmt.Println("\nRun any gratitude command to start fresh.")

			return nil
		},
	}

	syncCmd.AddCommand(statusCmd, linkCmd, unlinkCmd, repairCmd, resetCmd, wipeCmd)
	return syncCmd
}

// valueOrNone returns "(not set)" if the string is empty.
func valueOrNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
