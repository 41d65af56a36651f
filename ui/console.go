// Package ui renders the interactive console: banner, menu, result tables,
// and prompts. All output goes through an injected writer so tests can
// capture it.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

const banner = `
    __  __                _         _     _____                      _
    |  \/  |             | |       | |   / ____|                    | |
    | \  / |  __ _  _ __ | | __ ___| |_ | (___    ___  ___   _   _ | |_
    | |\/| | / _` + "`" + ` || '__|| |/ // _ \ __| \___ \  / __|/ _ \ | | | || __|
    | |  | || (_| || |   |   <|  __/ |_  ____) || (__| (_) || |_| || |_
    |_|  |_| \__,_||_|   |_|\_\\___|\__||_____/  \___|\___/  \__,_| \__|
`

// Console bundles the reader, writer, and color styles for the terminal UI
type Console struct {
	in  *bufio.Reader
	out io.Writer
	eof bool

	cyan   *color.Color
	yellow *color.Color
	green  *color.Color
	white  *color.Color
	red    *color.Color
}

// NewConsole creates a console over the given streams
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		cyan:   color.New(color.FgCyan),
		yellow: color.New(color.FgYellow),
		green:  color.New(color.FgGreen),
		white:  color.New(color.FgWhite),
		red:    color.New(color.FgRed),
	}
}

// NewStdConsole creates a console over stdin/stdout
func NewStdConsole() *Console {
	return NewConsole(os.Stdin, os.Stdout)
}

// ClearScreen clears the terminal
func (c *Console) ClearScreen() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		// cls is a cmd.exe builtin, not an executable
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = c.out
	_ = cmd.Run()
}

// Welcome renders the startup banner and feature summary
func (c *Console) Welcome() {
	c.cyan.Fprintf(c.out, "%s\n", banner)
	c.rule(80)
	c.rule(80)
	c.yellow.Fprintf(c.out, "%sINVESTMENT RESEARCH ASSISTANT%s\n", strings.Repeat(" ", 25), strings.Repeat(" ", 25))
	c.rule(80)
	c.rule(80)
	c.green.Fprintln(c.out, "\nThis tool helps you analyze investment opportunities by:")
	c.green.Fprintln(c.out, "  • Finding relevant news articles")
	c.green.Fprintln(c.out, "  • Extracting key insights and players")
	c.green.Fprintln(c.out, "  • Identifying related stock tickers")
	c.green.Fprintln(c.out, "  • Retrieving current stock prices")
	fmt.Fprintln(c.out)
}

// Menu renders the main menu and reads the user's choice
func (c *Console) Menu() string {
	fmt.Fprintln(c.out)
	c.rule(40)
	c.yellow.Fprintln(c.out, "           MAIN MENU")
	c.rule(40)
	c.menuItem(1, "Research an investment topic")
	c.menuItem(2, "Look up specific stock ticker")
	c.menuItem(3, "View saved research")
	c.menuItem(4, "Brain Rot Mode 🧠")
	c.menuItem(5, "Exit")
	c.rule(40)
	return c.Prompt("Enter your choice (1-5): ")
}

func (c *Console) menuItem(n int, label string) {
	c.white.Fprintf(c.out, "%d. ", n)
	c.green.Fprintln(c.out, label)
}

// Header renders a 60-column section header
func (c *Console) Header(title string) {
	fmt.Fprintln(c.out)
	c.rule(60)
	c.yellow.Fprintf(c.out, "%s%s\n", strings.Repeat(" ", 16), title)
	c.rule(60)
}

func (c *Console) rule(width int) {
	c.cyan.Fprintln(c.out, strings.Repeat("=", width))
}

// Prompt prints a question and reads one trimmed line of input. A read
// failure marks the console as exhausted; callers driving a loop must check
// EOF to avoid prompting a closed stream forever.
func (c *Console) Prompt(question string) string {
	c.yellow.Fprint(c.out, question)
	line, err := c.in.ReadString('\n')
	if err != nil {
		c.eof = true
	}
	return strings.TrimSpace(line)
}

// EOF reports whether the input stream has ended
func (c *Console) EOF() bool {
	return c.eof
}

// Confirm asks a y/n question
func (c *Console) Confirm(question string) bool {
	answer := c.Prompt(question)
	return strings.EqualFold(answer, "y")
}

// Pause waits for the user to press Enter
func (c *Console) Pause() {
	c.Prompt("\nPress Enter to continue...")
}

// Info prints a status line
func (c *Console) Info(format string, args ...any) {
	c.cyan.Fprintf(c.out, format+"\n", args...)
}

// Success prints a positive status line
func (c *Console) Success(format string, args ...any) {
	c.green.Fprintf(c.out, format+"\n", args...)
}

// Notice prints a cautionary status line
func (c *Console) Notice(format string, args ...any) {
	c.yellow.Fprintf(c.out, format+"\n", args...)
}

// Error prints an error line
func (c *Console) Error(format string, args ...any) {
	c.red.Fprintf(c.out, format+"\n", args...)
}

// Text prints plain content
func (c *Console) Text(format string, args ...any) {
	c.white.Fprintf(c.out, format+"\n", args...)
}

// Working shows a spinner with the given message for the duration of fn
func (c *Console) Working(message string, fn func()) {
	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond,
		spinner.WithWriter(c.out), spinner.WithSuffix(" "+message))
	s.Start()
	defer s.Stop()
	fn()
}
