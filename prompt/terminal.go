package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

const inputPrompt = "> "

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

// lineReader reads one line with text pre-filled.
type lineReader interface {
	PromptWithSuggestion(prompt, text string, pos int) (string, error)
}

// Terminal is the interactive Prompter.
type Terminal struct {
	line  lineReader
	out   io.Writer
	close func() error
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal starts line editing on standard input. Ctrl-C aborts the
// current question with ErrCancelled. Close must be called to restore the
// terminal.
func NewTerminal(out io.Writer) (*Terminal, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotTerminal
	}

	st := liner.NewLiner()
	st.SetCtrlCAborts(true)

	return &Terminal{line: st, out: out, close: st.Close}, nil
}

// NewReader asks the questions over plain lines read from r. An empty line
// accepts the pre-filled answer.
func NewReader(r io.Reader, out io.Writer) *Terminal {
	return &Terminal{line: &scanReader{s: bufio.NewScanner(r), out: out}, out: out}
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	if t.close == nil {
		return nil
	}

	return t.close()
}

// Select implements Prompter. Answers are the option number, `n` and `p` for
// the next and previous page, or nothing for the default.
func (t *Terminal) Select(label string, options []string, pageSize, def int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options for %q", label)
	}
	if def < 0 || def >= len(options) {
		def = 0
	}
	if pageSize <= 0 {
		pageSize = len(options)
	}

	page := def / pageSize
	pages := (len(options) + pageSize - 1) / pageSize

	for {
		t.printPage(label, options, page, pages, pageSize, def)

		answer, err := t.read("")
		if err != nil {
			return 0, err
		}

		switch answer = strings.TrimSpace(answer); answer {
		case "":
			return def, nil
		case "n":
			page = min(page+1, pages-1)

			continue
		case "p":
			page = max(page-1, 0)

			continue
		}

		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(options) {
			t.printError(fmt.Sprintf("enter a number between 1 and %d", len(options)))

			continue
		}

		debug.V(3).Log("selected %q for %q", options[n-1], label)

		return n - 1, nil
	}
}

func (t *Terminal) printPage(label string, options []string, page, pages, pageSize, def int) {
	fmt.Fprintln(t.out, labelStyle.Render(label))

	start := page * pageSize
	end := min(start+pageSize, len(options))
	for i := start; i < end; i++ {
		line := fmt.Sprintf("%3d. %s", i+1, options[i])
		if i == def {
			line = currentStyle.Render(line)
		}
		fmt.Fprintln(t.out, line)
	}

	if pages > 1 {
		fmt.Fprintln(t.out, helpStyle.Render(fmt.Sprintf("page %d/%d, n: next page, p: previous page", page+1, pages)))
	}
}

// Text implements Prompter.
func (t *Terminal) Text(label string, opts TextOptions) (string, error) {
	head := labelStyle.Render(label)
	if opts.Placeholder != "" && opts.Initial == "" {
		head += " " + helpStyle.Render("("+opts.Placeholder+")")
	}
	fmt.Fprintln(t.out, head)
	if opts.Help != "" {
		fmt.Fprintln(t.out, helpStyle.Render(opts.Help))
	}

	suggestion := opts.Initial
	for {
		answer, err := t.read(suggestion)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)

		if answer == "" && opts.Skippable {
			return "", nil
		}

		if err := check(answer, opts); err != nil {
			t.printError(err.Error())
			suggestion = answer

			continue
		}

		return answer, nil
	}
}

func check(answer string, opts TextOptions) error {
	if answer == "" {
		return errors.New("an answer is required")
	}
	if opts.Validate != nil {
		return opts.Validate(answer)
	}

	return nil
}

func (t *Terminal) read(suggestion string) (string, error) {
	answer, err := t.line.PromptWithSuggestion(inputPrompt, suggestion, -1)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}

		return "", fmt.Errorf("failed to read answer: %w", err)
	}

	return answer, nil
}

func (t *Terminal) printError(msg string) {
	fmt.Fprintln(t.out, errorStyle.Render("! "+msg))
}

type scanReader struct {
	s   *bufio.Scanner
	out io.Writer
}

func (r *scanReader) PromptWithSuggestion(prompt, text string, _ int) (string, error) {
	fmt.Fprint(r.out, prompt)

	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	if line := r.s.Text(); line != "" {
		return line, nil
	}

	return text, nil
}
