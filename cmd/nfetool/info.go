package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PS4Diamonds/NFirmwareEditor/dataflash"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Read the dataflash and print the device identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn := connector()

		block, err := conn.ReadDataflash(nil)
		if err != nil {
			return err
		}
		df, err := dataflash.Decode(block)
		if err != nil {
			return err
		}

		fmt.Printf("Product ID:        %s\n", df.ProductID())
		fmt.Printf("Hardware version:  %s\n", df.HardwareVersionString())
		fmt.Printf("Firmware version:  %s\n", df.FirmwareVersionString())
		fmt.Printf("Firmware build:    %d\n", df.FirmwareBuild())
		fmt.Printf("Boot source:       %s\n", df.BootSource())
		fmt.Printf("Puff count:        %d\n", df.PuffCount())

		if !df.HasFirmware() {
			fmt.Println("\nDevice has never been flashed.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
