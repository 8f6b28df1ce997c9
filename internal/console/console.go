package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"dungeon-master/internal/chat"
	"dungeon-master/internal/session"

	"github.com/mattn/go-isatty"
)

const ruleWidth = 60

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[91m"
	ansiGreen  = "\033[92m"
	ansiYellow = "\033[93m"
	ansiBlue   = "\033[94m"
	ansiPurple = "\033[95m"
	ansiCyan   = "\033[96m"
	clearLine  = "\r\033[K"
)

// Console is a line-oriented terminal front end.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	color bool
	// pending is set while a progress notice is on screen.
	pending bool
}

// New creates a console. Colors are enabled when out is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Console{in: bufio.NewReader(in), out: out, color: color}
}

// WithColor forces colors on or off.
func (c *Console) WithColor(on bool) *Console {
	c.color = on
	return c
}

// Header prints the title banner.
func (c *Console) Header(title string) {
	fmt.Fprintf(c.out, "\n%s\n%s\n\n", c.paint(ansiPurple+ansiBold, title), c.paint(ansiBlue, strings.Repeat("=", ruleWidth)))
}

// Choose prints a numbered menu and reads a 1-based choice. Empty input picks the default.
func (c *Console) Choose(prompt string, options []string, defaultIndex int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("choose %q: no options", prompt)
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	fmt.Fprintf(c.out, "\n%s\n", c.paint(ansiCyan, prompt))
	for i, opt := range options {
		fmt.Fprintf(c.out, "  %2d) %s\n", i+1, opt)
	}
	for {
		fmt.Fprintf(c.out, "> [%d] ", defaultIndex+1)
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return defaultIndex, nil
		}
		if i, ok := parseChoice(line, options); ok {
			return i, nil
		}
		fmt.Fprintf(c.out, "Please enter a number between 1 and %d.\n", len(options))
	}
}

// ChooseMany reads up to limit comma or space separated choices.
func (c *Console) ChooseMany(prompt string, options []string, limit int) ([]int, error) {
	fmt.Fprintf(c.out, "\n%s\n", c.paint(ansiCyan, prompt))
	for i, opt := range options {
		fmt.Fprintf(c.out, "  %2d) %s\n", i+1, opt)
	}
	fmt.Fprintf(c.out, "Enter up to %d numbers separated by commas.\n", limit)

	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.readLine()
		if err != nil {
			return nil, err
		}
		picked, ok := parseMany(line, options, limit)
		if ok {
			return picked, nil
		}
		fmt.Fprintf(c.out, "Please enter numbers between 1 and %d.\n", len(options))
	}
}

// Ask reads one line of free text. Empty input yields defaultValue.
func (c *Console) Ask(prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", c.paint(ansiCyan, prompt), defaultValue)
	} else {
		fmt.Fprintf(c.out, "%s: ", c.paint(ansiCyan, prompt))
	}
	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

func (c *Console) Narrate(title, text string) {
	c.clearPending()
	if title != "" {
		fmt.Fprintf(c.out, "\n%s\n", c.paint(ansiCyan+ansiBold, title))
	}
	fmt.Fprintf(c.out, "%s\n", strings.TrimRight(text, "\n"))
}

func (c *Console) Notice(kind session.NoticeKind, message string) {
	c.clearPending()
	code := ansiCyan
	switch kind {
	case session.NoticeSuccess:
		code = ansiGreen
	case session.NoticeWarning:
		code = ansiYellow
	case session.NoticeError:
		code = ansiRed
	}
	fmt.Fprintf(c.out, "\n%s\n", c.paint(code+ansiBold, message))
}

func (c *Console) Status(lines ...string) {
	rule := c.paint(ansiBlue, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(c.out, "\n%s\n", rule)
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
	fmt.Fprintln(c.out, rule)
}

func (c *Console) ShowRoll(label string, results []int) {
	sum := 0
	parts := make([]string, len(results))
	for i, r := range results {
		sum += r
		parts[i] = strconv.Itoa(r)
	}
	fmt.Fprintf(c.out, "%s %s [%s] = %s\n",
		c.paint(ansiBlue, "Rolled"),
		c.paint(ansiYellow, label),
		strings.Join(parts, ", "),
		c.paint(ansiGreen+ansiBold, strconv.Itoa(sum)),
	)
}

// Announce shows a pending-exchange notice until Clear.
func (c *Console) Announce(message string) {
	if message == "" {
		return
	}
	fmt.Fprint(c.out, c.paint(ansiPurple, message))
	c.pending = true
}

func (c *Console) Clear() {
	c.clearPending()
}

func (c *Console) clearPending() {
	if !c.pending {
		return
	}
	c.pending = false
	if c.color {
		fmt.Fprint(c.out, clearLine)
		return
	}
	fmt.Fprintln(c.out)
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) paint(code, s string) string {
	if !c.color {
		return s
	}
	return code + s + ansiReset
}

// parseChoice accepts a 1-based number or an option's exact text.
func parseChoice(line string, options []string) (int, bool) {
	if n, err := strconv.Atoi(line); err == nil {
		if n >= 1 && n <= len(options) {
			return n - 1, true
		}
		return 0, false
	}
	for i, opt := range options {
		if strings.EqualFold(opt, line) {
			return i, true
		}
	}
	return 0, false
}

func parseMany(line string, options []string, limit int) ([]int, bool) {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' })
	picked := make([]int, 0, limit)
	seen := make(map[int]bool, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(options) {
			return nil, false
		}
		if seen[n-1] || len(picked) == limit {
			continue
		}
		seen[n-1] = true
		picked = append(picked, n-1)
	}
	return picked, true
}

var (
	_ session.UI    = (*Console)(nil)
	_ chat.Progress = (*Console)(nil)
)
