package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// displayInfoMessage displays a tagged informational message.
func displayInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// displayFatal displays a fatal error message.
func displayFatal(msg string) {
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + msg)
}

// displayICE displays an internal compiler error message.
func displayICE(msg string) {
	ErrorStyleBG.Print("Internal Compiler Error")
	ErrorColorFG.Println(" " + msg)
	fmt.Println("This error is a bug in the compiler, not in your program.")
}

// displayDiagnostic displays a compilation diagnostic along with the source
// text it occurs over.
func displayDiagnostic(absPath, reprPath string, diag *Diagnostic) {
	fmt.Print("\n-- ")
	ErrorStyleBG.Print(diag.Kind.String() + " Error")
	fmt.Print(" ")
	InfoColorFG.Println(reprPath)

	if diag.Span == nil {
		fmt.Println(diag.Message)
		return
	}

	fmt.Printf("%d:%d: %s\n\n", diag.Span.StartLine+1, diag.Span.StartCol+1, diag.Message)
	displaySourceText(absPath, diag.Span)
}

// -----------------------------------------------------------------------------

// displaySourceText displays the segment of source text covered by span, with
// line numbers and caret underlining.
func displaySourceText(absPath string, span *TextSpan) {
	file, err := os.Open(absPath)
	if err != nil {
		// The file may not exist when compiling from a non-file source (eg.
		// in tests); in that case only the message is displayed.
		return
	}
	defer file.Close()

	// Collect the source lines containing the span.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Printf(lineNumFmtStr, i+span.StartLine+1)
		fmt.Println(line)

		// Underline the spanned portion of the line with carets.
		carretStart := 0
		if i == 0 {
			carretStart = span.StartCol
		}

		carretEnd := len(line)
		if i == len(lines)-1 {
			carretEnd = span.EndCol + 1
		}

		if carretEnd > len(line) {
			carretEnd = len(line)
		}

		if carretEnd <= carretStart {
			continue
		}

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")
		fmt.Print(strings.Repeat(" ", carretStart))
		ErrorColorFG.Println(strings.Repeat("^", carretEnd-carretStart))
	}

	fmt.Println()
}

// -----------------------------------------------------------------------------

// phaseSpinner stores the current phase spinner.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Generating")

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

	phaseSpinner, _ = phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of the current compilation phase.
func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		padded := currentPhase + strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2)

		if success {
			phaseSpinner.Success(padded, fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()))
		} else {
			phaseSpinner.Fail(padded)
		}

		phaseSpinner = nil
	}
}

// displayCompilationFinished displays the concluding message of compilation.
func displayCompilationFinished(success bool, diagCount int, outputPath string) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
		fmt.Printf("Output written to `%s`.\n", outputPath)
	} else {
		ErrorColorFG.Print("Oh no! ")
		fmt.Printf("Compilation failed with %d error(s).\n", diagCount)
	}
}
