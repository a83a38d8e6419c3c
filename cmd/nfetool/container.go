package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PS4Diamonds/NFirmwareEditor/firmware"
)

var packCmd = &cobra.Command{
	Use:   "pack <raw-file> <container-file>",
	Short: "Wrap a raw firmware payload in the obfuscated container format",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		if err := os.WriteFile(args[1], firmware.EncodeContainer(payload), 0o644); err != nil {
			return fmt.Errorf("write container: %w", err)
		}
		fmt.Printf("Packed %d bytes into %s\n", len(payload), args[1])
		return nil
	},
}

var unpackCmd = &cobra.Command{
	Use:   "unpack <container-file> <raw-file>",
	Short: "Extract the raw payload from a firmware container",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read container: %w", err)
		}
		payload, err := firmware.DecodeContainer(data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[1], payload, 0o644); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
		fmt.Printf("Unpacked %d bytes into %s\n", len(payload), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(unpackCmd)
}
