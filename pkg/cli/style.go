package cli

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

const (
	BrightBlue   = "#6ea6ff"
	BrightGreen  = "#2eff5f"
	BrightRed    = "#ff3333"
	BrightYellow = "#fffb7a"
	BrightPurple = "#bf94ff"
	BrightBlack  = "#8a8a8a"
)

// profile honours NO_COLOR and CLICOLOR_FORCE.
var profile = termenv.EnvColorProfile()

// Colorize applies a hex foreground color to message.
func Colorize(hex, message string) termenv.Style {
	return termenv.String(message).Foreground(profile.Color(hex))
}

var (
	errorPrefix = Colorize(BrightRed, "[ERROR] ").Bold()
	infoPrefix  = Colorize(BrightBlue, "[INFO]  ").Bold()
	warnPrefix  = Colorize(BrightYellow, "[WARN]  ").Bold()
	helpPrefix  = Colorize(BrightGreen, "[HELP]  ").Bold()
)

func printPrefixed(w io.Writer, prefix termenv.Style, color string, message ...string) {
	for _, m := range message {
		if color != "" {
			fmt.Fprintf(w, "%s%s\n", prefix, Colorize(color, m))
			continue
		}
		fmt.Fprintf(w, "%s%s\n", prefix, m)
	}
}

func Info(w io.Writer, message ...string)  { printPrefixed(w, infoPrefix, BrightBlack, message...) }
func Warn(w io.Writer, message ...string)  { printPrefixed(w, warnPrefix, "", message...) }
func Help(w io.Writer, message ...string)  { printPrefixed(w, helpPrefix, "", message...) }
func Error(w io.Writer, message ...string) { printPrefixed(w, errorPrefix, BrightRed, message...) }
