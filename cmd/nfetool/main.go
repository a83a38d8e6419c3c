// Command nfetool inspects and reprograms Arctic Fox devices over USB
// HID: dataflash dump/restore/reset, device info, presence monitoring,
// and firmware updates.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
