package boxresponse

import "encoding/json"

// Converter deserializes a response body into target.
type Converter interface {
	Parse(text string, target any) error
}

type ConverterFunc func(text string, target any) error

func (f ConverterFunc) Parse(text string, target any) error {
	return f(text, target)
}

type JSONConverter struct{}

func (JSONConverter) Parse(text string, target any) error {
	return json.Unmarshal([]byte(text), target)
}

var _ Converter = JSONConverter{}

// RawConverter hands success bodies over untouched when the target is a
// *[]byte or *string, so binary content such as previews survives. Any other
// target, including error payloads, is decoded as JSON.
type RawConverter struct{}

func (RawConverter) Parse(text string, target any) error {
	switch dst := target.(type) {
	case *[]byte:
		*dst = []byte(text)

		return nil
	case *string:
		*dst = text

		return nil
	default:
		return JSONConverter{}.Parse(text, target)
	}
}

var _ Converter = RawConverter{}
