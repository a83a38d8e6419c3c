package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/PS4Diamonds/NFirmwareEditor/firmware"
	"github.com/PS4Diamonds/NFirmwareEditor/updater"
)

var forceFlag bool

var updateCmd = &cobra.Command{
	Use:   "update <firmware-file>",
	Short: "Flash a firmware image to the device",
	Long: `Flash a firmware image to the connected device.

The image must embed the device's product identifier; an image built
for different hardware is rejected before anything is written. The
--force flag bypasses that check and can permanently brick the device.

The device restarts into its loader region during the update. Do not
disconnect it until the update reports success.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := firmware.Load(args[0])
		if err != nil {
			return err
		}
		if img.FromContainer {
			log.Debug("decoded firmware container", "bytes", len(img.Data))
		}

		conn := connector()
		bar := progressbar.NewOptions(100,
			progressbar.OptionSetDescription("Flashing"),
			progressbar.OptionSetWidth(40),
		)

		opts := []updater.Option{
			updater.WithLogger(log),
			updater.WithStateCallback(func(s updater.State) {
				log.Info("update", "state", s.String())
			}),
			updater.WithProgressCallback(func(p int) { _ = bar.Set(p) }),
		}
		if forceFlag {
			log.Warn("compatibility check disabled; flashing at your own risk")
			opts = append(opts, updater.WithCompatibilityOverride())
		}
		upd := updater.New(conn, opts...)

		session := updater.NewSession(conn, updater.WithSessionLogger(log))
		done := make(chan error, 1)
		if err := session.Do("update", func() error {
			return upd.Run(img)
		}, func(e error) { done <- e }); err != nil {
			return err
		}

		if err := <-done; err != nil {
			return err
		}
		fmt.Println("\nFirmware update complete.")
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&forceFlag, "force", false,
		"skip the product-identifier compatibility check (dangerous)")
	rootCmd.AddCommand(updateCmd)
}
