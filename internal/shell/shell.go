// Package shell is a line oriented interpreter over stored string lists.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Asutorufa/dlist/pkg/backup"
	"github.com/Asutorufa/dlist/pkg/list"
	"github.com/Asutorufa/dlist/pkg/log"
	"github.com/Asutorufa/dlist/pkg/metrics"
	"github.com/Asutorufa/dlist/pkg/store"
)

const DefaultList = "default"

var (
	ErrUsage          = errors.New("usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBackupDisabled = errors.New("backup is not configured")
	errQuit           = errors.New("quit")
)

type Option func(*Shell)

// WithBackup enables the backup and restore commands.
func WithBackup(up backup.Uploader, prefix string) Option {
	return func(s *Shell) {
		s.uploader = up
		s.prefix = prefix
	}
}

// Shell holds the lists opened in a session, one of them being the working
// list with a cursor over it. List level edits reset the cursor to the front.
type Shell struct {
	store    *store.Store[string]
	uploader backup.Uploader
	prefix   string
	out      io.Writer

	// opened lists keep their unsaved edits across use
	opened map[string]*list.List[string]

	name   string
	list   *list.List[string]
	cursor *list.Cursor[string]
}

func New(st *store.Store[string], out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		store:  st,
		out:    out,
		opened: map[string]*list.List[string]{},
	}
	for _, o := range opts {
		o(s)
	}
	s.reset(DefaultList, list.New[string]())
	return s
}

func (s *Shell) Name() string              { return s.name }
func (s *Shell) List() *list.List[string] { return s.list }

func (s *Shell) reset(name string, l *list.List[string]) {
	s.name = name
	s.list = l
	s.cursor = l.Cursor()
	s.opened[name] = l
}

// Run executes r line by line until EOF, quit or ctx is done. Command
// errors are printed and do not stop the session.
func (s *Shell) Run(ctx context.Context, r io.Reader) error {
	// stops the reader when the session ends before the input does
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}

			err := s.Exec(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
		}
	}
}

// Exec runs one command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	cmd, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)

	err := s.exec(ctx, cmd, args)
	if errors.Is(err, errQuit) {
		return err
	}

	label := cmd
	if errors.Is(err, ErrUnknownCommand) {
		label = "unknown"
	}
	metrics.Counter.AddShellCommand(label, err == nil)
	if err != nil {
		log.Debug("shell command failed", "cmd", cmd, "err", err)
	}
	return err
}

func (s *Shell) exec(ctx context.Context, cmd, args string) error {
	switch cmd {
	case "use":
		return s.use(args)
	case "add":
		if err := s.list.Add(args); err != nil {
			return err
		}
		s.cursor = s.list.Cursor()
	case "insert":
		i, v, err := indexValue(args)
		if err != nil {
			return err
		}
		if err := s.list.Insert(i, v); err != nil {
			return err
		}
		s.cursor = s.list.Cursor()
	case "get":
		i, err := index(args)
		if err != nil {
			return err
		}
		v, err := s.list.Get(i)
		if err != nil {
			return err
		}
		s.println(v)
	case "set":
		i, v, err := indexValue(args)
		if err != nil {
			return err
		}
		old, err := s.list.Set(i, v)
		if err != nil {
			return err
		}
		s.cursor = s.list.Cursor()
		s.println(old)
	case "remove":
		i, err := index(args)
		if err != nil {
			return err
		}
		v, err := s.list.Remove(i)
		if err != nil {
			return err
		}
		s.cursor = s.list.Cursor()
		s.println(v)
	case "clear":
		s.list.Clear()
		s.cursor = s.list.Cursor()
	case "len":
		s.println(strconv.Itoa(s.list.Len()))
	case "show":
		s.println(s.list.String())

	case "cursor":
		s.cursor = s.list.Cursor()
	case "next":
		v, err := s.cursor.Next()
		if err != nil {
			return err
		}
		s.println(v)
	case "prev":
		v, err := s.cursor.Previous()
		if err != nil {
			return err
		}
		s.println(v)
	case "has":
		fmt.Fprintf(s.out, "next: %v, previous: %v\n", s.cursor.HasNext(), s.cursor.HasPrevious())
	case "index":
		fmt.Fprintf(s.out, "next: %d, previous: %d\n", s.cursor.NextIndex(), s.cursor.PreviousIndex())
	case "cinsert":
		return s.cursor.Insert(args)
	case "replace":
		return s.cursor.Replace(args)
	case "delete":
		return s.cursor.Delete()

	case "save":
		return s.store.Save(s.name, s.list)
	case "saveall":
		if err := s.store.SaveAll(s.opened); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "saved %d\n", len(s.opened))
	case "load":
		l, err := s.store.Load(s.name)
		if err != nil {
			return err
		}
		s.reset(s.name, l)
		fmt.Fprintf(s.out, "loaded %s (%d)\n", s.name, l.Len())
	case "drop":
		if err := s.store.Delete(s.name); err != nil {
			return err
		}
		s.reset(s.name, list.New[string]())
	case "lists":
		names, err := s.store.Names()
		if err != nil {
			return err
		}
		for _, n := range names {
			s.println(n)
		}

	case "backup":
		if s.uploader == nil {
			return ErrBackupDisabled
		}
		done, err := backup.Backup(ctx, s.store, s.uploader, s.prefix, strings.Fields(args)...)
		fmt.Fprintf(s.out, "uploaded %d\n", len(done))
		return err
	case "restore":
		if s.uploader == nil {
			return ErrBackupDisabled
		}
		names := strings.Fields(args)
		if len(names) == 0 {
			names = []string{s.name}
		}
		for i, name := range names {
			if err := backup.Restore(ctx, s.store, s.uploader, s.prefix, name); err != nil {
				return errors.Join(err, s.reopen(names[:i]))
			}
		}
		return s.reopen(names)

	case "help":
		fmt.Fprint(s.out, usage)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}

	return nil
}

func (s *Shell) use(name string) error {
	if name == "" || strings.ContainsAny(name, " \t") {
		return fmt.Errorf("%w: use NAME", ErrUsage)
	}

	if l, ok := s.opened[name]; ok {
		s.reset(name, l)
		return nil
	}

	l, err := s.store.Load(name)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		l = list.New[string]()
	default:
		return err
	}

	s.reset(name, l)
	return nil
}

// reopen drops the session copies of names so the next use reads the store,
// and reloads the working list when it is among them.
func (s *Shell) reopen(names []string) error {
	current := false
	for _, n := range names {
		delete(s.opened, n)
		current = current || n == s.name
	}
	if !current {
		return nil
	}

	l, err := s.store.Load(s.name)
	if err != nil {
		return err
	}
	s.reset(s.name, l)
	fmt.Fprintf(s.out, "loaded %s (%d)\n", s.name, l.Len())
	return nil
}

func (s *Shell) println(v string) { fmt.Fprintln(s.out, v) }

func index(args string) (int, error) {
	if args == "" {
		return 0, fmt.Errorf("%w: missing index", ErrUsage)
	}
	i, err := strconv.Atoi(args)
	if err != nil {
		return 0, fmt.Errorf("%w: bad index %q", ErrUsage, args)
	}
	return i, nil
}

func indexValue(args string) (int, string, error) {
	idx, v, _ := strings.Cut(args, " ")
	i, err := index(idx)
	if err != nil {
		return 0, "", err
	}
	return i, strings.TrimSpace(v), nil
}

const usage = `list commands:
  use NAME        switch to NAME, loading it when not opened yet
  add V           append V
  insert I V      insert V at I
  get I           print the element at I
  set I V         replace the element at I, print the old one
  remove I        remove the element at I and print it
  clear           remove every element
  len             print the size
  show            print the list
cursor commands:
  cursor          start a new cursor at the front
  next, prev      move the cursor and print the element passed
  has             print whether next and prev can move
  index           print next and previous index
  cinsert V       insert V at the cursor
  replace V       replace the element last returned
  delete          remove the element last returned
store commands:
  save, saveall, load, drop, lists
  backup [NAME...], restore [NAME...]
  help, quit
`
