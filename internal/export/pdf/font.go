package pdf

import (
	"os"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// ErrFontUnavailable is returned when a PDF export is attempted but no
// usable TrueType font was found at startup. The probe result is only
// surfaced here: a missing font must not block editing, only export.
var ErrFontUnavailable = errors.New("no usable font for PDF export")

// FontCapability is the result of the startup font probe. The zero
// value is "unavailable".
type FontCapability struct {
	Family string
	Data   []byte
	path   string
}

// Available reports whether a font was found.
func (c FontCapability) Available() bool {
	return len(c.Data) > 0
}

// Path returns the file the font was loaded from, for logging.
func (c FontCapability) Path() string {
	return c.path
}

// ProbeFont looks for a TrueType font under the given paths and loads
// the first one that can be read. The program sheet carries Japanese
// titles, so the configured font should cover CJK; the probe does not
// inspect coverage, only readability.
func ProbeFont(family string, paths []string) FontCapability {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			zlog.Debug().Str("path", p).Msgf("font probe: %v", err)
			continue
		}
		zlog.Info().Str("path", p).Str("family", family).Msg("PDF font loaded")
		return FontCapability{Family: family, Data: data, path: p}
	}
	zlog.Warn().Strs("paths", paths).Msg("no PDF font found; export will be unavailable")
	return FontCapability{}
}
