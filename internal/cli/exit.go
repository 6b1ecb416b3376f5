package cli

import "nathanbeddoewebdev/wanddns/internal/updater"

// Process exit codes.
const (
	ExitOK          = 0
	ExitCredential  = 1
	ExitWANQuery    = 2
	ExitOther       = 3
	ExitInterrupted = 130
)

// ExitCode maps a command error onto the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch updater.Classify(err) {
	case updater.CategoryCredential:
		return ExitCredential
	case updater.CategoryCGNAT, updater.CategoryEndpointList, updater.CategoryResolver:
		return ExitWANQuery
	case updater.CategoryCanceled:
		return ExitInterrupted
	}
	return ExitOther
}
