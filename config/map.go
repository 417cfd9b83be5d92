package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/gogpu/glyphforge/style"
)

// DecodeMap reads a Document from a generic map such as decoded JSON or
// YAML. Keys use the camelCase names of the Document tags. Unknown keys
// are an error.
func DecodeMap(m map[string]any) (Document, error) {
	var d Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &d,
	})
	if err != nil {
		return Document{}, fmt.Errorf("config: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return Document{}, fmt.Errorf("config: decode map: %w", err)
	}
	return d, nil
}

// FromMap decodes m into a resolved style.Config.
func FromMap(m map[string]any) (style.Config, error) {
	d, err := DecodeMap(m)
	if err != nil {
		return style.Config{}, err
	}
	return d.StyleConfig()
}
