package pdf

import (
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// DefaultLayout returns the layout with every field at its default.
func DefaultLayout() Layout {
	var l Layout
	// Tags are all literals, Set cannot fail here
	_ = defaults.Set(&l)
	return l
}

// DecodeSettings builds a Layout from a loose settings map, typically
// the exporter's settings block in the config file. Unset keys fall
// back to the defaults; the result is validated before use.
func DecodeSettings(settings map[string]any) (Layout, error) {
	var l Layout

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &l,
		TagName: "mapstructure",
	})
	if err != nil {
		return Layout{}, errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return Layout{}, errors.Wrap(err, "failed to decode layout settings")
	}

	if err := defaults.Set(&l); err != nil {
		return Layout{}, errors.Wrap(err, "failed to set defaults")
	}

	validate := validator.New()
	if err := validate.Struct(l); err != nil {
		return Layout{}, errors.Wrap(err, "layout validation failed")
	}

	if l.BodyTop > l.PageHeight-l.BottomBand {
		return Layout{}, errors.New("body_top must leave room above the bottom band")
	}
	if l.ContTop > l.PageHeight-l.BottomBand {
		return Layout{}, errors.New("cont_top must leave room above the bottom band")
	}
	return l, nil
}
