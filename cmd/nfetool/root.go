package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/PS4Diamonds/NFirmwareEditor/device"
	"github.com/PS4Diamonds/NFirmwareEditor/internal/logging"
)

var (
	verboseFlag bool
	timeoutFlag time.Duration

	log logging.Logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "nfetool",
	Short: "Inspect and reprogram Arctic Fox devices over USB HID",
	Long: `nfetool talks to vape-mod devices running the Arctic Fox firmware:
read and write the persistent configuration block (dataflash), flash
new firmware, and watch device connect/disconnect events.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verboseFlag {
			level = zerolog.DebugLevel
		}
		zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
		log = logging.NewZerolog(zl)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", time.Second, "per-report response timeout")
}

// connector builds the production connector with the shared flags.
func connector() *device.Connector {
	return device.New(device.HIDBackend(),
		device.WithLogger(log),
		device.WithReadTimeout(timeoutFlag),
	)
}
