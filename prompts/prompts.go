package prompts

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Prompter asks questions on Out and reads answers line by line from In.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Stdio prompts on stderr so stdout stays free for the report.
func Stdio() *Prompter {
	return New(os.Stdin, os.Stderr)
}

// Prompt prints message and returns the next input line without its line
// ending. Once the input is exhausted it returns "".
func (p *Prompter) Prompt(message string) string {
	fmt.Fprint(p.out, message)
	if p.eof {
		return ""
	}
	input, err := p.in.ReadString('\n')
	if err != nil {
		p.eof = true
	}
	return strings.TrimRight(input, "\r\n")
}

func (p *Prompter) SeasonTitlePrompt() string {
	return strings.TrimSpace(p.Prompt("Season title: "))
}

// DropWeeksPrompt asks for the number of dropped weeks until it gets a
// non-negative integer. A blank answer keeps current.
func (p *Prompter) DropWeeksPrompt(current int) int {
	for {
		userInput := strings.TrimSpace(p.Prompt(fmt.Sprintf("Worst weeks to drop from each total [%d]: ", current)))
		if userInput == "" {
			return current
		}
		if n, err := strconv.Atoi(userInput); err == nil && n >= 0 {
			return n
		}
		fmt.Fprintf(p.out, "%q is not a non-negative whole number\n", userInput)
	}
}

// ConfirmPrompt asks a yes/no question; anything but y/yes is no.
func (p *Prompter) ConfirmPrompt(message string) bool {
	for {
		userInput := strings.ToLower(strings.TrimSpace(p.Prompt(message + " (y/N) ")))
		switch userInput {
		case "y", "yes":
			return true
		case "n", "no", "":
			return false
		}
	}
}
