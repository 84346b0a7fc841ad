package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/input/key"
)

// RunScript executes a batch script, one directive per line. Blank lines
// and lines starting with # are skipped. Besides command lines in the form
// accepted by command.Parse, a script may use:
//
//	key Ctrl+b Enter      feed key chords through the input pipeline
//	type "hello"          feed each character as a key press
//	record q              start recording macro register q
//	stop                  stop recording
//	play q 3              replay register q three times
//	print                 write the document text to out
//	json                  write the document JSON to out
//	quit                  stop reading the script
//
// Execution stops at the first failing line.
func (a *Application) RunScript(r io.Reader, out io.Writer) error {
	if a.isClosed() {
		return ErrClosed
	}
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := a.runLine(line, out)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return &ScriptError{Line: n, Text: line, Err: err}
		}
	}
	return sc.Err()
}

func (a *Application) runLine(line string, out io.Writer) error {
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch verb {
	case "key":
		for _, spec := range strings.Fields(arg) {
			ev, err := key.Parse(spec)
			if err != nil {
				return err
			}
			if _, err := a.HandleKey(ev); err != nil {
				return err
			}
		}
		return nil

	case "type":
		text := arg
		if strings.HasPrefix(arg, `"`) {
			s, err := strconv.Unquote(arg)
			if err != nil {
				return fmt.Errorf("%w: %s", command.ErrInvalidArgument, err)
			}
			text = s
		}
		for _, r := range text {
			if _, err := a.HandleKey(typed(r)); err != nil {
				return err
			}
		}
		return nil

	case "record":
		return a.recorder.StartRecording(arg)

	case "stop":
		a.recorder.StopRecording()
		return nil

	case "play":
		register, countArg, _ := strings.Cut(arg, " ")
		count := 1
		if countArg != "" {
			c, err := strconv.Atoi(strings.TrimSpace(countArg))
			if err != nil {
				return fmt.Errorf("%w: count %q", command.ErrInvalidArgument, countArg)
			}
			count = c
		}
		return a.PlayMacro(register, count)

	case "print":
		_, err := fmt.Fprintln(out, a.Text())
		return err

	case "quit":
		return ErrQuit

	case "json":
		data, err := a.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	cmd, err := command.Parse(line)
	if err != nil {
		return err
	}
	handled, err := a.Dispatch(cmd)
	if err != nil {
		return err
	}
	if !handled {
		a.logger.Debug("command not handled", "command", cmd.String())
	}
	return nil
}

// typed returns the key press that types r. Newline and tab become Enter
// and Tab.
func typed(r rune) *key.Event {
	switch r {
	case '\n':
		return key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	case '\t':
		return key.NewSpecialEvent(key.KeyTab, key.ModNone)
	}
	return key.NewRuneEvent(r, key.ModNone)
}
