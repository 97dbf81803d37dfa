package report

import (
	"bitc/common"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Internal Error")
	ErrorColorFG.Println(" " + message)
	InfoColorFG.Println("This error was not supposed to happen: it is a bug in bitc.")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + message)
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	displayBanner("File Error", reprPath)
	ErrorColorFG.Println(err.Error())
	fmt.Println()
}

// displayCompileError displays a compile error with its banner and position.
func displayCompileError(reprPath string, cerr *CompileError) {
	displayBanner(cerr.Kind.String()+" Error", reprPath)

	if cerr.Span != nil {
		InfoColorFG.Print(fmt.Sprintf("%d:%d", cerr.Span.StartLine+1, cerr.Span.StartCol+1))
		fmt.Print(" ")
	}

	fmt.Println(cerr.Message)
	fmt.Println()
}

// displayBanner displays the banner on top of all error messages.
func displayBanner(label, reprPath string) {
	fmt.Print("\n-- ")
	ErrorStyleBG.Print(label)
	fmt.Print(" ")

	fileName := filepath.Base(reprPath)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - len(label) - 1
	if dashCount < 2 {
		dashCount = 2
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displayWarning displays a warning message.
func displayWarning(tag, msg string) {
	fmt.Print("\n")
	WarnStyleBG.Print("Warning")
	WarnColorFG.Print(" [" + tag + "] ")
	fmt.Println(msg)
}

// displayInfo displays an informational message.
func displayInfo(tag, msg string) {
	InfoStyleBG.Print(tag)
	fmt.Println(" " + msg)
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays the compiler information before resolution.
func displayCompileHeader(target, timeFormat string, startTime time.Time) {
	fmt.Print("bitc ")
	InfoColorFG.Print("v" + common.BitVersion)
	fmt.Print(" -- target: ")
	InfoColorFG.Println(target)

	if timeFormat == "" {
		timeFormat = common.DefaultTimeFormat
	}

	if stamp, err := strftime.Format(timeFormat, startTime); err == nil {
		fmt.Println("started " + stamp)
	}
}

// phaseSpinner stores the current phase spinner.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Resolving")

// displayBeginPhase displays the beginning of a compilation phase.
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a compilation phase.
func displayEndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}

	padding := strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2)
	elapsed := fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds())
	if success {
		phaseSpinner.Success(currentPhase+padding, elapsed)
	} else {
		phaseSpinner.Fail(currentPhase+padding, elapsed)
	}

	phaseSpinner = nil
}

// displayCompilationFinished displays the closing message.
func displayCompilationFinished(success bool, elapsed time.Duration) {
	fmt.Println()
	if success {
		SuccessStyleBG.Print("All Done!")
		SuccessColorFG.Println(fmt.Sprintf(" (%.3fs)", elapsed.Seconds()))
	} else {
		ErrorStyleBG.Print("Failed")
		ErrorColorFG.Println(" resolution stopped on the first error")
	}
}
