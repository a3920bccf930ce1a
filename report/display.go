package report

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

var (
	InfoColorFG  = pterm.FgLightGreen
	InfoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	ErrorColorFG = pterm.FgRed
	ErrorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

// PrintErrorMessage prints a standard Go error to the console.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// display writes the diagnostic to standard error.
func (d *Diagnostic) display() {
	fmt.Fprintln(os.Stderr, ErrorStyleBG.Sprint(kindLabels[d.Kind])+ErrorColorFG.Sprint(" "+d.Message))

	if loc := d.Loc; loc != nil {
		if loc.Line > 0 && loc.Col > 0 {
			fmt.Fprintf(os.Stderr, "  at line %d, column %d", loc.Line, loc.Col)
			if loc.Token != "" {
				fmt.Fprintf(os.Stderr, " (token: '%s')", loc.Token)
			}
			fmt.Fprintln(os.Stderr)
		}

		if loc.Class != "" {
			fmt.Fprintf(os.Stderr, "  in class '%s'\n", loc.Class)
		}

		if loc.File != "" {
			fmt.Fprintf(os.Stderr, "  in file '%s'\n", loc.File)
		}
	}
}

// Display renders an already recovered diagnostic without exiting.  It is
// used by callers that manage process exit themselves.
func Display(d *Diagnostic) {
	d.display()
}

// DisplayUsageError renders a command-line usage error.
func DisplayUsageError(msg string) {
	PrintErrorMessage("CLI Usage Error", errors.New(msg))
}
