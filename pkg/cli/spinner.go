package cli

import (
	"io"
	"time"

	"github.com/theckman/yacspin"
)

// NewSpinner builds a spinner writing to w. Start and Stop are left to the
// caller.
func NewSpinner(w io.Writer, message string) (*yacspin.Spinner, error) {
	cfg := yacspin.Config{
		Writer:            w,
		Frequency:         100 * time.Millisecond,
		CharSet:           yacspin.CharSets[14],
		Suffix:            " ",
		Message:           message,
		StopCharacter:     check,
		StopColors:        []string{"fgGreen"},
		StopFailCharacter: cross,
		StopFailColors:    []string{"fgRed"},
	}
	return yacspin.New(cfg)
}
