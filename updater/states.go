package updater

// State identifies a step of the update workflow. States advance
// monotonically; Failed and Succeeded are terminal.
type State int

const (
	// StateIdle means no update is running
	StateIdle State = iota

	// StateReadingDataflash reads the current configuration block
	StateReadingDataflash

	// StateEvaluatingBootMode decides whether a boot-mode switch is needed
	StateEvaluatingBootMode

	// StateSwitchingBootMode flips the boot flag and writes it back
	StateSwitchingBootMode

	// StateRestartAndWait restarts the device and waits for re-enumeration
	StateRestartAndWait

	// StateUploading streams the firmware image
	StateUploading

	// StateSucceeded is the successful terminal state
	StateSucceeded

	// StateFailed is the failed terminal state
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReadingDataflash:
		return "reading dataflash"
	case StateEvaluatingBootMode:
		return "evaluating boot mode"
	case StateSwitchingBootMode:
		return "switching boot mode"
	case StateRestartAndWait:
		return "restarting device"
	case StateUploading:
		return "uploading firmware"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
