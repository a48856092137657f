package hardware

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Save writes the hardware description to path as YAML.  A path ending in
// ".gz" is gzip compressed.
func (hw *Hardware) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(hw); err != nil {
		return fmt.Errorf("hardware: encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if gz != nil {
		return gz.Close()
	}
	return nil
}

// Load reads a hardware description saved by Save.  A path ending in
// ".gz" is decompressed.  Load performs no cross-reference validation;
// see Validate.
func Load(path string) (*Hardware, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("hardware: reading %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	hw := new(Hardware)
	if err := yaml.NewDecoder(r).Decode(hw); err != nil {
		return nil, fmt.Errorf("hardware: decoding %s: %w", path, err)
	}
	return hw, nil
}
