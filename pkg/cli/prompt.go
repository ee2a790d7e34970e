package cli

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/eiannone/keyboard"
)

const (
	downRightArrow = "↳"
	arrow          = "➜"
	cross          = "✖"
	check          = "✔"
)

// ErrInterrupted is returned when the user aborts a prompt with Ctrl+C or Esc.
var ErrInterrupted = errors.New("interrupted by the user")

// Prompter asks questions one key at a time so the fallback can be shown
// inline and erased once the user starts typing.
type Prompter struct {
	Out io.Writer
}

func NewPrompter(out io.Writer) *Prompter {
	return &Prompter{Out: out}
}

func (p *Prompter) printQuestion(question, qColor, symbol, color string) {
	fmt.Fprint(p.Out, Colorize(color, symbol), " ", Colorize(qColor, question).Bold(), " ", Colorize(BrightBlack, arrow), " ")
}

func (p *Prompter) printFallback(fallback string) {
	fmt.Fprint(p.Out, Colorize(BrightBlack, "("+fallback+")"))
}

func (p *Prompter) clearFallback(fallback string) {
	for i := 0; i < len([]rune(fallback))+2; i++ {
		fmt.Fprint(p.Out, "\b \b")
	}
}

// Ask prompts until the answer (or fallback, on an empty answer) matches
// pattern. A nil pattern accepts anything.
func (p *Prompter) Ask(question, fallback string, pattern *regexp.Regexp) (string, error) {
	if err := keyboard.Open(); err != nil {
		return "", fmt.Errorf("could not open the keyboard: %w", err)
	}
	defer keyboard.Close()

	for {
		buffer := make([]rune, 0)
		p.printQuestion(question, BrightBlue, downRightArrow, BrightYellow)
		p.printFallback(fallback)

		answered := false
		for !answered {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return "", err
			}

			switch {
			case key == keyboard.KeyCtrlC || key == keyboard.KeyEsc:
				if len(buffer) == 0 {
					p.clearFallback(fallback)
				}
				fmt.Fprintln(p.Out)
				return "", ErrInterrupted
			case key == keyboard.KeyEnter:
				answered = true
			case key == keyboard.KeyBackspace || key == keyboard.KeyBackspace2:
				if len(buffer) > 0 {
					buffer = buffer[:len(buffer)-1]
					fmt.Fprint(p.Out, "\b \b")
					if len(buffer) == 0 {
						p.printFallback(fallback)
					}
				}
			default:
				if key == keyboard.KeySpace {
					char = ' '
				}
				if char == 0 {
					continue
				}
				if len(buffer) == 0 {
					p.clearFallback(fallback)
				}
				fmt.Fprintf(p.Out, "%c", char)
				buffer = append(buffer, char)
			}
		}

		answer := string(buffer)
		if len(buffer) == 0 {
			p.clearFallback(fallback)
			answer = fallback
		}
		fmt.Fprint(p.Out, "\r")

		if pattern != nil && !pattern.MatchString(answer) {
			p.printQuestion(question, BrightRed, cross, BrightRed)
			fmt.Fprintln(p.Out, Colorize(BrightBlack, "("+answer+")"))
			continue
		}

		p.printQuestion(question, BrightGreen, check, BrightGreen)
		fmt.Fprintln(p.Out, Colorize(BrightBlack, "("+answer+")"))
		return answer, nil
	}
}

// Confirm asks a yes/no question. Enter picks def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	if err := keyboard.Open(); err != nil {
		return false, fmt.Errorf("could not open the keyboard: %w", err)
	}
	defer keyboard.Close()

	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	p.printQuestion(question, BrightBlue, downRightArrow, BrightYellow)
	fmt.Fprint(p.Out, Colorize(BrightBlack, hint))

	char, key, err := keyboard.GetKey()
	if err != nil {
		return false, err
	}
	if key == keyboard.KeyCtrlC || key == keyboard.KeyEsc {
		fmt.Fprintln(p.Out)
		return false, ErrInterrupted
	}

	value := def
	switch char {
	case 'y', 'Y':
		value = true
	case 'n', 'N':
		value = false
	}

	answer := "no"
	if value {
		answer = "yes"
	}
	fmt.Fprint(p.Out, "\r")
	p.printQuestion(question, BrightGreen, check, BrightGreen)
	fmt.Fprintln(p.Out, Colorize(BrightBlack, "("+answer+")     "))
	return value, nil
}
