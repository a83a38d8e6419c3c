package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch device connect/disconnect events",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn := connector()

		cancel := conn.Subscribe(func(connected bool) {
			if connected {
				fmt.Println("device connected")
			} else {
				fmt.Println("device disconnected")
			}
		})
		defer cancel()

		if conn.IsConnected() {
			fmt.Println("device is connected")
		} else {
			fmt.Println("waiting for device...")
		}

		conn.StartMonitoring()
		defer conn.StopMonitoring()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		return nil
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
