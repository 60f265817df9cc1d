package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"vidbox/src/jukebox"
)

// Shell reads commands line by line and executes them against a Jukebox.
type Shell struct {
	jukebox *jukebox.Jukebox
	in      *bufio.Reader
	out     *printer
	prompt  string
	done    bool
}

// New creates a shell that reads commands from in and writes its responses to
// out.
func New(jb *jukebox.Jukebox, in io.Reader, out io.Writer, prompt string) *Shell {
	return &Shell{
		jukebox: jb,
		in:      bufio.NewReader(in),
		out:     newPrinter(out),
		prompt:  prompt,
	}
}

// Run greets the user and executes commands until EXIT is entered, the input
// is exhausted or the context is cancelled.
func (sh *Shell) Run(ctx context.Context) error {
	sh.out.println("Hello and welcome to vidbox, what would you like to do?")
	sh.out.println("Enter HELP for list of available commands or EXIT to terminate.")

	for !sh.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(sh.out.w, sh.prompt)
		line, err := sh.readLine()
		if errors.Is(err, io.EOF) {
			sh.out.println()
			sh.exit()
			break
		} else if err != nil {
			return err
		}
		sh.Execute(ctx, line)
	}
	return nil
}

// Execute runs a single command line. Blank lines are ignored and the first
// word is matched case-insensitively.
func (sh *Shell) Execute(ctx context.Context, line string) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return
	}
	args[0] = strings.ToLower(args[0])
	log.WithField("command", args[0]).Debugf("Executing %q", line)
	// Reserved for cobra's hidden completion commands.
	if strings.HasPrefix(args[0], "__") {
		sh.out.println(unknownCommandMessage)
		return
	}

	root := sh.commandTree()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errUnknownCommand) {
			sh.out.println(unknownCommandMessage)
			return
		}
		sh.out.error(err)
	}
}

// Done reports whether EXIT was entered.
func (sh *Shell) Done() bool {
	return sh.done
}

func (sh *Shell) exit() {
	sh.out.println("vidbox has now terminated its execution. Thank you and goodbye!")
	sh.done = true
}

// readLine reads one line without its line ending. A final line that lacks a
// newline is still returned.
func (sh *Shell) readLine() (string, error) {
	line, err := sh.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
