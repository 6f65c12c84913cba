package report

import (
	"fmt"
	"os"
	"sync"
)

// Reporter is responsible for displaying diagnostics, phase progress, and
// fatal errors to the user.  The reporter respects the set log level and is
// synchronized: its methods can be safely called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchronize report calls.
	m *sync.Mutex

	// The selected log level.  Must be one of the enumerated log levels.
	logLevel int

	// The number of diagnostics displayed so far.
	diagCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelVerbose        // Displays all compilation messages (default).
)

// The exit code used for internal compiler errors.  It is distinct from the
// exit code for ordinary compilation failures so that tooling can tell a
// Wabbit program error apart from a compiler bug.
const ICEExitCode = 70

// rep is the global reporter instance.
var rep *Reporter

// InitReporter initializes the global reporter to the given log level.  If the
// reporter has already been initialized, this function does nothing.
func InitReporter(logLevel int) {
	if rep == nil {
		rep = &Reporter{
			m:        &sync.Mutex{},
			logLevel: logLevel,
		}
	}
}

// ReportDiagnostics displays the given diagnostics against the source file at
// absPath.  reprPath is the path displayed to the user.
func ReportDiagnostics(absPath, reprPath string, diags []*Diagnostic) {
	if rep.logLevel >= LogLevelError {
		rep.m.Lock()
		defer rep.m.Unlock()

		for _, diag := range diags {
			displayDiagnostic(absPath, reprPath, diag)
			rep.diagCount++
		}
	}
}

// ReportFatal reports a fatal error and exits.  These are expected errors that
// generally result from invalid invocation: missing files, bad configuration,
// unwritable output paths, etc.
func ReportFatal(msg string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(msg, args...))
	}

	os.Exit(1)
}

// ReportICE reports an internal compiler error and exits with ICEExitCode.
// These indicate a bug in the compiler itself, never an error in the user's
// program.
func ReportICE(err error) {
	displayICE(err.Error())
	os.Exit(ICEExitCode)
}

// -----------------------------------------------------------------------------

// ReportBeginPhase reports the beginning of a compilation phase.
func ReportBeginPhase(phase string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayBeginPhase(phase)
	}
}

// ReportEndPhase reports the end of the current compilation phase.
func ReportEndPhase(success bool) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayEndPhase(success)
	}
}

// ReportCompilationFinished reports the concluding message of compilation.
func ReportCompilationFinished(success bool, outputPath string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayCompilationFinished(success, rep.diagCount, outputPath)
	}
}

// ReportInfoMessage displays a tagged informational message.
func ReportInfoMessage(tag, msg string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayInfoMessage(tag, msg)
	}
}
