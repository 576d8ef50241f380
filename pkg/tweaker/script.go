package tweaker

import (
	"fmt"
	"os"
	"strings"
)

// Header is the first line of every generated script.
const Header = "//Script created with mtweaker"

// Extension is appended to a script's name to form its output path.
const Extension = ".zs"

// Script is an ordered, append-only list of ZenScript statements destined for
// a single file. The zero value is not usable; call NewScript.
//
// A Script is not safe for concurrent use.
type Script struct {
	name    string
	lines   []string
	storage Storage
	notify  func(path string)
}

// Option configures a Script.
type Option func(*Script)

// WithStorage sets the storage Materialize writes to. Defaults to OSStorage.
func WithStorage(s Storage) Option {
	return func(sc *Script) { sc.storage = s }
}

// WithNotifier sets the callback run after a successful Materialize.
// Defaults to a one-line notice on stdout. A nil fn disables the notice.
func WithNotifier(fn func(path string)) Option {
	return func(sc *Script) { sc.notify = fn }
}

// NewScript returns a script seeded with Header. name becomes the output
// path once Extension is appended, so it may contain directories.
func NewScript(name string, opts ...Option) *Script {
	s := &Script{
		name:    name,
		lines:   []string{Header},
		storage: OSStorage{},
		notify:  defaultNotice,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultNotice(path string) {
	fmt.Fprintf(os.Stdout, "Created %s! Have fun.\n", path)
}

// Name returns the name the script was created with.
func (s *Script) Name() string { return s.name }

// Path returns the file the script materializes to.
func (s *Script) Path() string { return s.name + Extension }

// Len returns the number of statements, header included.
func (s *Script) Len() int { return len(s.lines) }

// Lines returns a copy of the statements in order, header first.
func (s *Script) Lines() []string {
	return append([]string(nil), s.lines...)
}

// Append adds line verbatim.
func (s *Script) Append(line string) {
	s.lines = append(s.lines, line)
}

// Include appends a comment+import statement for modulePath. The comment
// names the last dot-separated segment:
//
//	Include("mods.tconstruct.Casting") → //Importing Casting
//	                                     import mods.tconstruct.Casting;
func (s *Script) Include(modulePath string) {
	imported := modulePath
	if i := strings.LastIndex(modulePath, "."); i >= 0 {
		imported = modulePath[i+1:]
	}
	s.Append("//Importing " + imported + "\nimport " + modulePath + ";")
}

// Print appends a print statement. expr is emitted as-is, so string
// literals must carry their own quotes.
func (s *Script) Print(expr string) {
	s.Append("print(" + expr + ");")
}

// Render joins all statements with newlines.
func (s *Script) Render() string {
	return strings.Join(s.lines, "\n")
}

// Materialize writes Render's output to Path through the configured storage
// and then runs the notifier. A write error is returned wrapped and the
// notifier is skipped.
func (s *Script) Materialize() error {
	path := s.Path()
	if err := s.storage.WriteWholeFile(path, s.Render()); err != nil {
		return fmt.Errorf("materialize %s: %w", path, err)
	}
	if s.notify != nil {
		s.notify(path)
	}
	return nil
}
