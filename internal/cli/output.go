package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	fgGray  = "\033[90m"
	fgGreen = "\033[32m"
	fgRed   = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var disableColor = os.Getenv("NO_COLOR") != ""

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func colorize(color, s string) string {
	if disableColor || !isTTY() {
		return s
	}
	return color + s + reset
}

func ok(msg string)   { fmt.Println(colorize(fgGreen, symCheck+" "+msg)) }
func fail(msg string) { fmt.Fprintln(os.Stderr, colorize(fgRed, symCross+" "+msg)) }

// panel draws a framed box around lines, sized to the widest visible line.
func panel(lines []string) {
	maxw := 0
	for _, ln := range lines {
		if w := len([]rune(stripANSI(ln))); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		vis := len([]rune(stripANSI(s)))
		if vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Println("┌" + strings.Repeat("─", maxw+2) + "┐")
	for _, ln := range lines {
		fmt.Println("│ " + pad(ln) + " │")
	}
	fmt.Println("└" + strings.Repeat("─", maxw+2) + "┘")
}
