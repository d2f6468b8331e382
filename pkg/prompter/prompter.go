package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInvalidSelection is returned when a menu answer is out of range.
var ErrInvalidSelection = errors.New("invalid selection")

// Prompter asks questions on a line-oriented terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// New reads answers from in and writes questions to out. Hidden input is
// only available when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Stdio returns a prompter on the process's standard streams.
func Stdio() *Prompter {
	return New(os.Stdin, os.Stdout)
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// String prompts for a single trimmed line.
func (p *Prompter) String(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// StringDefault prompts for a line and returns def when it is left empty.
func (p *Prompter) StringDefault(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]: ", strings.TrimRight(label, ": "), def)
	}
	answer, err := p.String(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Password prompts for a secret without echo when reading from a terminal.
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.tty {
		line, err := p.readLine()
		return strings.TrimSpace(line), err
	}

	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Confirm prompts for a yes/no answer. Anything but y or yes is a no.
func (p *Prompter) Confirm(label string) (bool, error) {
	fmt.Fprint(p.out, label+" (y/n) ")
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	response := strings.TrimSpace(strings.ToLower(line))
	return response == "y" || response == "yes", nil
}

// Select prints numbered options and returns the zero-based index picked.
func (p *Prompter) Select(label string, options []string) (int, error) {
	fmt.Fprintln(p.out, label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "%d) %s\n", i+1, opt)
	}

	fmt.Fprint(p.out, "Select option: ")
	line, err := p.readLine()
	if err != nil {
		return -1, err
	}

	var selection int
	if _, err := fmt.Sscanf(strings.TrimSpace(line), "%d", &selection); err != nil {
		return -1, ErrInvalidSelection
	}
	if selection < 1 || selection > len(options) {
		return -1, ErrInvalidSelection
	}
	return selection - 1, nil
}

// List prompts for lines until an empty one and returns the trimmed,
// non-empty entries.
func (p *Prompter) List(label string) ([]string, error) {
	fmt.Fprintf(p.out, "%s (empty line to finish):\n", label)
	var items []string
	for {
		line, err := p.readLine()
		if errors.Is(err, io.EOF) {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return items, nil
		}
		items = append(items, line)
	}
}
