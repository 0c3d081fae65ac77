package process

import "github.com/justyntemme/clapgo/pkg/clap"

// Status is what a processor reports back to the host for one block.
type Status = clap.ProcessStatus

const (
	ErrorStatus        Status = clap.ProcessError
	Continue           Status = clap.ProcessContinue
	ContinueIfNotQuiet Status = clap.ProcessContinueIfNotQuiet
	Tail               Status = clap.ProcessTail
	Sleep              Status = clap.ProcessSleep
)
