// Package csvout serializes recovered grids to CSV text.
//
// Output follows RFC 4180 field quoting: a cell is wrapped in double
// quotes, with embedded quotes doubled, only when it contains a comma, a
// double quote, or a newline. Rows are terminated with LF by default (CRLF
// via an option), consistently throughout the file, with no trailing blank
// line. A zero-row grid serializes to zero bytes.
package csvout

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gridocr/gridocr/model"
)

// Option configures serialization.
type Option func(*settings)

type settings struct {
	useCRLF bool
}

// WithCRLF terminates rows with \r\n instead of \n.
func WithCRLF() Option {
	return func(s *settings) { s.useCRLF = true }
}

// WriteTo serializes the grid as CSV to w.
func WriteTo(w io.Writer, grid model.Grid, opts ...Option) error {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = s.useCRLF

	for r := 0; r < grid.Rows(); r++ {
		if err := cw.Write(grid.Row(r)); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Marshal serializes the grid as CSV text.
func Marshal(grid model.Grid, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := WriteTo(&sb, grid, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}
