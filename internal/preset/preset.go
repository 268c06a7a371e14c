// Package preset defines the conversion preset table and the codec registry
// behind it.
package preset

import (
	"errors"
	"fmt"
)

// Codec identifies a target video codec.
type Codec string

// Supported codecs.
const (
	CodecH265 Codec = "h265"
	CodecAV1  Codec = "av1"
)

// codecInfo describes how a codec maps onto the encoder's CLI and the
// output container.
type codecInfo struct {
	Library   string // encoder library passed to -c:v
	Extension string // output container extension, with leading dot
}

// codecs maps each supported codec to its encoder library and container.
// Adding a codec means adding one constant and one entry here.
var codecs = map[Codec]codecInfo{
	CodecH265: {Library: "libx265", Extension: ".mp4"},
	CodecAV1:  {Library: "libaom-av1", Extension: ".mkv"},
}

// Valid reports whether the codec is a known entry in the registry.
func (c Codec) Valid() bool {
	_, ok := codecs[c]
	return ok
}

// Library returns the encoder library name for the codec, e.g. libx265.
func (c Codec) Library() string {
	return codecs[c].Library
}

// Extension returns the output container extension for the codec, with the
// leading dot.
func (c Codec) Extension() string {
	return codecs[c].Extension
}

// ParseCodec converts a config-supplied string into a Codec.
func ParseCodec(s string) (Codec, error) {
	c := Codec(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown codec %q, must be one of: h265, av1", s)
	}
	return c, nil
}

// Preset is a named conversion configuration. Fields are fixed at
// definition time.
type Preset struct {
	ID          string
	Codec       Codec
	Width       int
	Height      int
	BitrateKbps int
}

// Resolution returns the preset's target resolution as WIDTHxHEIGHT.
func (p Preset) Resolution() string {
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

// Bitrate returns the preset's bitrate in the encoder's k-suffixed form.
func (p Preset) Bitrate() string {
	return fmt.Sprintf("%dk", p.BitrateKbps)
}

// Validate checks the preset fields and returns any validation errors.
func (p Preset) Validate() error {
	var errs ValidationErrors

	if p.ID == "" {
		errs = append(errs, ValidationError{Field: "ID", Message: "cannot be empty"})
	}
	if !p.Codec.Valid() {
		errs = append(errs, ValidationError{
			Field:   "Codec",
			Message: fmt.Sprintf("invalid codec %q, must be one of: h265, av1", string(p.Codec)),
		})
	}
	if p.Width <= 0 {
		errs = append(errs, ValidationError{Field: "Width", Message: "must be positive"})
	}
	if p.Height <= 0 {
		errs = append(errs, ValidationError{Field: "Height", Message: "must be positive"})
	}
	if p.BitrateKbps <= 0 {
		errs = append(errs, ValidationError{Field: "BitrateKbps", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DefaultID is the preset used when the caller does not pick one. The CLI
// layer passes it down explicitly.
const DefaultID = "h265_fhd_6"

// ErrUnknownPreset is returned by Resolve for ids not present in the table.
var ErrUnknownPreset = errors.New("unknown preset")

// Table maps preset ids to presets while preserving definition order for
// display.
type Table struct {
	order []string
	byID  map[string]Preset
}

// BuiltinTable returns a table holding the four built-in presets.
func BuiltinTable() *Table {
	t := &Table{byID: make(map[string]Preset)}
	for _, p := range []Preset{
		{ID: "h265_fhd_6", Codec: CodecH265, Width: 1920, Height: 1080, BitrateKbps: 6000},
		{ID: "h265_uhd_40", Codec: CodecH265, Width: 3840, Height: 2160, BitrateKbps: 40000},
		{ID: "av1_fhd_5", Codec: CodecAV1, Width: 1920, Height: 1080, BitrateKbps: 5000},
		{ID: "av1_uhd_20", Codec: CodecAV1, Width: 3840, Height: 2160, BitrateKbps: 20000},
	} {
		t.order = append(t.order, p.ID)
		t.byID[p.ID] = p
	}
	return t
}

// Resolve returns the preset registered under id.
func (t *Table) Resolve(id string) (Preset, error) {
	p, ok := t.byID[id]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return p, nil
}

// IDs returns all preset ids in definition order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.order))
	copy(ids, t.order)
	return ids
}

// All returns all presets in definition order.
func (t *Table) All() []Preset {
	presets := make([]Preset, 0, len(t.order))
	for _, id := range t.order {
		presets = append(presets, t.byID[id])
	}
	return presets
}

// Add registers an additional preset, rejecting invalid fields and
// duplicate ids.
func (t *Table) Add(p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, exists := t.byID[p.ID]; exists {
		return ValidationErrors{{Field: "ID", Message: fmt.Sprintf("duplicate preset id %q", p.ID)}}
	}
	t.order = append(t.order, p.ID)
	t.byID[p.ID] = p
	return nil
}
