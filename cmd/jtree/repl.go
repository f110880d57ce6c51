package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/ava12/jtree/parser"
)

const (
	historyFile = ".jtree_history"
	promptMain  = "jtree> "
	replName    = "repl"
)

const replHelp = `Lines are appended to the document, indentation defines nesting.
Tab completes keywords allowed at the current line.
Commands:
  :show              print the document
  :errors            list document errors
  :compile [target]  compile the document
  :syntax            print word types of document lines
  :undo              remove the last line
  :reset             clear the document
  :quit              exit`

// session is the interactive document state, independent of the terminal.
type session struct {
	parser *parser.Parser
	target string
	lines  []string
}

func (s *session) program() *parser.Program {
	return s.parser.ParseString(replName, strings.Join(s.lines, "\n"))
}

// handle processes a single input line. failed signals that text contains errors.
func (s *session) handle(input string) (text string, failed, quit bool) {
	cmd := strings.Fields(input)
	if len(cmd) == 0 {
		return "", false, false
	}
	if !strings.HasPrefix(input, ":") {
		s.lines = append(s.lines, input)
		return s.lastLineErrors()
	}

	switch cmd[0] {
	case ":quit":
		return "", false, true
	case ":help":
		return replHelp, false, false
	case ":show":
		return strings.Join(s.lines, "\n"), false, false
	case ":reset":
		s.lines = nil
		return "", false, false
	case ":undo":
		if len(s.lines) > 0 {
			s.lines = s.lines[:len(s.lines)-1]
		}
		return "", false, false
	case ":syntax":
		return s.program().InPlaceSyntaxTree(), false, false
	case ":errors":
		es := s.program().Errors()
		if len(es) == 0 {
			return "ok", false, false
		}
		messages := make([]string, len(es))
		for i, e := range es {
			messages[i] = e.Message
		}
		return strings.Join(messages, "\n"), true, false
	case ":compile":
		target := s.target
		if len(cmd) > 1 {
			target = cmd[1]
		}
		res, e := s.program().Compile(target)
		if e != nil {
			return e.Error(), true, false
		}
		return res, false, false
	}
	return fmt.Sprintf("unknown command %s, type :help for the list", cmd[0]), true, false
}

func (s *session) lastLineErrors() (string, bool, bool) {
	nodes := s.program().TopDownArray()
	if len(nodes) == 0 {
		return "", false, false
	}

	rn, is := nodes[len(nodes)-1].Type().(parser.Node)
	if !is {
		return "", false, false
	}
	es := rn.Errors()
	messages := make([]string, len(es))
	for i, e := range es {
		messages[i] = e.Message
	}
	return strings.Join(messages, "\n"), len(es) > 0, false
}

// complete returns keywords allowed at the position of the line being typed.
func (s *session) complete(line string) []string {
	doc := append(append([]string(nil), s.lines...), line)
	prog := s.parser.ParseString(replName, strings.Join(doc, "\n"))
	nodes := prog.TopDownArray()
	if len(nodes) == 0 {
		return nil
	}

	n := nodes[len(nodes)-1]
	if len(n.Words()) > 1 {
		return nil
	}

	d := prog.Definition()
	if pn, is := n.Parent().Type().(parser.Node); is {
		d = pn.Definition()
	}
	indent := n.Indentation()
	words := d.AutocompleteWords(n.Keyword())
	res := make([]string, len(words))
	for i, w := range words {
		res[i] = indent + w
	}
	return res
}

func cmdRepl(en *env, _ string) (int, error) {
	s := &session{parser: en.parser, target: en.target()}
	_, _ = hintColor.Fprintf(en.stdout, "jtree REPL for grammar %s\nType :help for help, Ctrl+D exits.\n", en.parser.Grammar().Name)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(s.complete)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, e := os.Open(histPath); e == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, e := os.Create(histPath); e == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	stop := watchSignals(sigc, func() {
		ln.Close()
		os.Exit(130)
	})
	defer func() {
		signal.Stop(sigc)
		stop()
	}()

	for {
		input, e := ln.Prompt(promptMain)
		if errors.Is(e, io.EOF) {
			fmt.Fprintln(en.stdout)
			break
		}
		if errors.Is(e, liner.ErrPromptAborted) {
			continue
		}
		if e != nil {
			return exitFailure, e
		}

		text, failed, quit := s.handle(input)
		if quit {
			break
		}
		if strings.TrimSpace(input) != "" {
			ln.AppendHistory(input)
		}
		switch {
		case failed:
			_, _ = errColor.Fprintln(en.stderr, text)
		case text != "":
			fmt.Fprintln(en.stdout, text)
		}
	}

	en.log.Debug("repl finished", zap.Int("lines", len(s.lines)))
	return exitOK, nil
}

// watchSignals calls onSignal if a signal arrives before stop is called.
// stop waits for the watching goroutine to finish.
func watchSignals(sigc <-chan os.Signal, onSignal func()) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-sigc:
			onSignal()
		case <-done:
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}
