package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/PS4Diamonds/NFirmwareEditor/dataflash"
	"github.com/PS4Diamonds/NFirmwareEditor/device"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Read the dataflash and save it to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn := connector()

		bar := progressbar.NewOptions(100,
			progressbar.OptionSetDescription("Reading"),
			progressbar.OptionSetWidth(40),
		)
		block, err := conn.ReadDataflash(func(p int) { _ = bar.Set(p) })
		if err != nil {
			return err
		}
		fmt.Println()

		if err := os.WriteFile(args[0], block, 0o644); err != nil {
			return fmt.Errorf("save dataflash: %w", err)
		}
		fmt.Printf("Dataflash saved to %s (%d bytes)\n", args[0], len(block))
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Write a saved dataflash file back to the device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		block, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read dataflash file: %w", err)
		}

		// Reject malformed files before the transport sees them; decode
		// also enforces the exact block size.
		df, err := dataflash.Decode(block)
		if err != nil {
			return err
		}
		log.Info("restoring dataflash",
			"product", df.ProductID(),
			"firmware", df.FirmwareVersionString(),
		)

		conn := connector()
		bar := progressbar.NewOptions(100,
			progressbar.OptionSetDescription("Writing"),
			progressbar.OptionSetWidth(40),
		)
		if err := conn.WriteDataflash(df.Encode(), func(p int) { _ = bar.Set(p) }); err != nil {
			return err
		}
		fmt.Println("\nDataflash restored.")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore factory dataflash defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connector().ResetDataflash(); err != nil {
			if device.IsTimeout(err) {
				return fmt.Errorf("%w (is the device connected?)", err)
			}
			return err
		}
		fmt.Println("Dataflash reset to factory defaults.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(resetCmd)
}
