// Package settings persists the user's slider look between sessions.
package settings

import (
	"sync"

	"github.com/metafates/gache"
	"github.com/squiggle-cli/squiggle/filesystem"
	"github.com/squiggle-cli/squiggle/log"
	"github.com/squiggle-cli/squiggle/wave"
)

// Record is the persisted subset of a slider's configuration.
type Record struct {
	Wavelength  float64 `json:"wavelength,omitempty" jsonschema:"description=Wavelength of the progress squiggle,minimum=0"`
	Amplitude   float64 `json:"amplitude,omitempty" jsonschema:"description=Peak amplitude of the progress squiggle,minimum=0"`
	ActiveColor string  `json:"activeColor,omitempty" jsonschema:"description=Colour of the played part of the bar"`
}

// Options converts the usable fields of r into wave options. Empty, negative
// and unparsable fields are skipped.
func (r Record) Options() []wave.Option {
	var opts []wave.Option
	if r.Wavelength > 0 {
		opts = append(opts, wave.WithWavelength(r.Wavelength))
	}
	if r.Amplitude > 0 {
		opts = append(opts, wave.WithAmplitude(r.Amplitude))
	}
	if opt, ok := r.ColorOption(); ok {
		opts = append(opts, opt)
	}
	return opts
}

// ColorOption returns the active colour option alone, as used by the mirror bar.
func (r Record) ColorOption() (wave.Option, bool) {
	if r.ActiveColor == "" {
		return nil, false
	}
	paint, err := wave.ParsePaint(r.ActiveColor)
	if err != nil {
		log.Component("settings").WithError(err).Debug("ignoring stored colour")
		return nil, false
	}
	return wave.WithActiveColor(paint), true
}

// Store loads and saves one Record.
type Store interface {
	Load() (Record, bool)
	Save(Record) error
}

// File keeps records in a JSON file, one per key.
type File struct {
	key    string
	cacher *gache.Cache[map[string]Record]
}

// NewFile returns a store that keeps the record named key in the file at path.
func NewFile(path, key string) *File {
	return &File{
		key: key,
		cacher: gache.New[map[string]Record](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (f *File) all() (map[string]Record, error) {
	cached, expired, err := f.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]Record), nil
	}
	return cached, nil
}

// Load returns the stored record. A missing or unreadable file yields false.
func (f *File) Load() (Record, bool) {
	records, err := f.all()
	if err != nil {
		log.Component("settings").WithError(err).Debug("ignoring malformed settings")
		return Record{}, false
	}
	r, ok := records[f.key]
	return r, ok
}

// Save replaces the stored record. An unreadable file is overwritten.
func (f *File) Save(r Record) error {
	records, err := f.all()
	if err != nil {
		records = make(map[string]Record)
	}
	records[f.key] = r
	return f.cacher.Set(records)
}

// Reset forgets the stored record.
func (f *File) Reset() error {
	records, err := f.all()
	if err != nil {
		records = make(map[string]Record)
	}
	delete(records, f.key)
	return f.cacher.Set(records)
}

// Memory is an in-process store.
type Memory struct {
	mu     sync.Mutex
	record Record
	ok     bool
	Saves  int
}

func (m *Memory) Load() (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record, m.ok
}

func (m *Memory) Save(r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record, m.ok = r, true
	m.Saves++
	return nil
}
