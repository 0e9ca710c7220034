// Package config handles escopo.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mgomes/escopo/escopo"
)

// FileName is the project configuration file looked up by FindAndLoad.
const FileName = "escopo.toml"

// Settings represents an escopo.toml file.
type Settings struct {
	Language Language `toml:"language"`
	Output   Output   `toml:"output"`
	Log      Log      `toml:"log"`

	// Dir is the directory containing the escopo.toml file (set at load time).
	Dir string `toml:"-"`
}

// Language overrides keyword spellings. Empty entries keep the defaults.
type Language struct {
	Block  string `toml:"block"`
	End    string `toml:"end"`
	Number string `toml:"number"`
	String string `toml:"string"`
	Print  string `toml:"print"`
}

// Output configures how program output is rendered.
type Output struct {
	Locale             string `toml:"locale"`
	LineNumbers        bool   `toml:"line-numbers"`
	ReportUnrecognized bool   `toml:"report-unrecognized"`
	Dir                string `toml:"dir"`
	Color              bool   `toml:"color"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	Path      string `toml:"path"`
}

// Default returns the settings used when no escopo.toml exists.
func Default() *Settings {
	return &Settings{}
}

// Load parses an escopo.toml file from the given directory.
func Load(dir string) (*Settings, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return parse(data, path, dir)
}

// LoadFile parses an explicit configuration file of any name.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return parse(data, path, filepath.Dir(path))
}

func parse(data []byte, path, dir string) (*Settings, error) {
	var s Settings
	meta, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse error in %s: unknown key %s", path, undecoded[0])
	}

	s.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &s, nil
}

// FindAndLoad walks up from startDir to find an escopo.toml file, then loads
// and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Settings, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Keywords returns the configured keyword spellings.
func (s *Settings) Keywords() escopo.Keywords {
	return escopo.Keywords{
		Block:  s.Language.Block,
		End:    s.Language.End,
		Number: s.Language.Number,
		String: s.Language.String,
		Print:  s.Language.Print,
	}
}

// Interpreter converts the settings to an interpreter configuration.
func (s *Settings) Interpreter() escopo.Config {
	return escopo.Config{
		Keywords:           s.Keywords(),
		Locale:             s.Output.Locale,
		LineNumbers:        s.Output.LineNumbers,
		ReportUnrecognized: s.Output.ReportUnrecognized,
	}
}

// Validate reports keyword or locale settings the interpreter would reject.
func (s *Settings) Validate() error {
	_, err := escopo.NewInterpreter(s.Interpreter(), nil)
	return err
}

// OutputDir returns the transcript directory, resolved against Dir when
// relative. It is empty when no directory is configured.
func (s *Settings) OutputDir() string {
	if s.Output.Dir == "" || filepath.IsAbs(s.Output.Dir) || s.Dir == "" {
		return s.Output.Dir
	}
	return filepath.Join(s.Dir, s.Output.Dir)
}
