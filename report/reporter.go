package report

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Reporter is responsible for reporting errors and other kinds of messages to
// the user during program execution.  The reporter respects the set log level
// and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been detected.
	isErr bool

	// The time the reporter was initialized.
	startTime time.Time
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// LogLevels maps the log level names accepted on the command line and in the
// module file to their log levels.
var LogLevels = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// rep is the global reporter instance.
var rep *Reporter

// InitReporter initializes the global error reporter to the given log level. If
// the reporter has already been initialized, this function does nothing.
func InitReporter(logLevel int) {
	if rep == nil {
		rep = &Reporter{
			m:         &sync.Mutex{},
			logLevel:  logLevel,
			startTime: time.Now(),
		}
	}
}

// SetLogLevel changes the log level of the global reporter.
func SetLogLevel(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
}

// -----------------------------------------------------------------------------

// ReportCompileError reports an error in the program at reprPath.
func ReportCompileError(reprPath string, cerr *CompileError) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)
		displayCompileError(reprPath, cerr)
	}
}

// ReportStdError reports a standard Go error which occurred while processing
// the file at reprPath.
func ReportStdError(reprPath string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)
		displayStdError(reprPath, err)
	}
}

// ReportError reports err choosing the display based on its type.
func ReportError(reprPath string, err error) {
	if cerr, ok := err.(*CompileError); ok {
		ReportCompileError(reprPath, cerr)
	} else {
		ReportStdError(reprPath, err)
	}
}

// ReportWarning reports a warning which does not stop resolution.
func ReportWarning(tag, msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		displayWarning(tag, fmt.Sprintf(msg, args...))
	}
}

// ReportFatal reports a fatal error and exits the program.
func ReportFatal(msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)
		displayFatal(fmt.Sprintf(msg, args...))
	}

	os.Exit(1)
}

// ReportICE reports an internal compiler error and exits the program.
// If the reporter has not been initialized, it panics with the error instead.
func ReportICE(msg string, args ...interface{}) {
	if rep == nil {
		panic(ICEError{Message: fmt.Sprintf(msg, args...)})
	}

	rep.m.Lock()
	defer rep.m.Unlock()

	displayEndPhase(false)
	displayICE(fmt.Sprintf(msg, args...))

	os.Exit(-1)
}

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	return rep.isErr
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is set to verbose.

// ReportCompileHeader reports the pre-compilation header.  timeFormat is the
// strftime pattern used to display the start time.
func ReportCompileHeader(target, timeFormat string) {
	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(target, timeFormat, rep.startTime)
	}
}

// ReportBeginPhase reports the beginning of a compilation phase.
func ReportBeginPhase(phase string) {
	if rep.logLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// ReportEndPhase reports the end of the current compilation phase.
func ReportEndPhase() {
	if rep.logLevel == LogLevelVerbose {
		displayEndPhase(!rep.isErr)
	}
}

// ReportInfo reports an informational message.
func ReportInfo(tag, msg string, args ...interface{}) {
	if rep.logLevel == LogLevelVerbose {
		displayInfo(tag, fmt.Sprintf(msg, args...))
	}
}

// ReportCompilationFinished reports the concluding message for compilation.
func ReportCompilationFinished() {
	if rep.logLevel > LogLevelSilent {
		displayCompilationFinished(!rep.isErr, time.Since(rep.startTime))
	}
}
