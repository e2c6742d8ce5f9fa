// Package metastore reads and writes the meta.ini file that mod managers keep
// in each mod folder. Files are held fully in memory between Load and Save so
// unrelated sections and keys round-trip untouched.
package metastore

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// SectionGeneral is the meta.ini section that carries version information.
const SectionGeneral = "General"

// Keys read and written inside [General].
const (
	KeyVersion       = "version"
	KeyNewestVersion = "newestVersion"
)

// ErrNotFound reports that the metadata file does not exist.
var ErrNotFound = errors.New("metadata file not found")

// ParseError reports a metadata file that exists but could not be read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError reports a failure to persist a metadata file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func init() {
	// meta.ini uses key=value without padding around the delimiter
	ini.PrettyFormat = false
}

// File is one mod's metadata held in memory.
type File struct {
	path string
	ini  *ini.File
}

// Load reads the metadata file at path. A missing file yields ErrNotFound; a
// file that exists but cannot be parsed yields a *ParseError.
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	f, err := ini.Load(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &File{path: path, ini: f}, nil
}

// Path returns the file's on-disk location
func (f *File) Path() string {
	return f.path
}

// HasSection returns true if the named section exists
func (f *File) HasSection(name string) bool {
	_, err := f.ini.GetSection(name)
	return err == nil
}

// Value returns the trimmed value of key within section, or fallback when the
// section or key is absent or the value is empty. Key lookup is
// case-insensitive.
func (f *File) Value(section, key, fallback string) string {
	sec, err := f.ini.GetSection(section)
	if err != nil {
		return fallback
	}
	k := findKey(sec, key)
	if k == nil {
		return fallback
	}
	v := strings.TrimSpace(k.String())
	if v == "" {
		return fallback
	}
	return v
}

// SetValue updates key within section in memory only. An existing key is
// matched case-insensitively so the file's original casing survives a save.
func (f *File) SetValue(section, key, value string) {
	sec := f.ini.Section(section)
	if k := findKey(sec, key); k != nil {
		k.SetValue(value)
		return
	}
	_, _ = sec.NewKey(key, value) // fails only on an empty key name
}

// Save rewrites the whole file in place. Sections and keys this package never
// touched are written back as loaded.
func (f *File) Save() error {
	if err := f.ini.SaveTo(f.path); err != nil {
		return &WriteError{Path: f.path, Err: err}
	}
	return nil
}

func findKey(sec *ini.Section, name string) *ini.Key {
	for _, k := range sec.Keys() {
		if strings.EqualFold(k.Name(), name) {
			return k
		}
	}
	return nil
}
