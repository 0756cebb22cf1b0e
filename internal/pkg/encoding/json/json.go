// Package json wraps the json-iterator codec.
// Pipeline and dataset documents are decoded into ordered maps,
// so the key order survives a load/transform/save round-trip.
package json

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Encode a value as JSON. jsoniter keeps insignificant whitespace from
// custom marshalers verbatim (the orderedmap codec terminates every key
// and value with a newline), so the output is normalized to the standard
// compact or indented form.
func Encode(v any, pretty bool) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if pretty {
		if err := stdjson.Indent(&out, data, "", "  "); err != nil {
			return nil, err
		}
		out.WriteByte('\n')
	} else {
		if err := stdjson.Compact(&out, data); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

func MustEncode(v any, pretty bool) []byte {
	data, err := Encode(v, pretty)
	if err != nil {
		panic(err)
	}
	return data
}

func EncodeString(v any, pretty bool) (string, error) {
	data, err := Encode(v, pretty)
	return string(data), err
}

func MustEncodeString(v any, pretty bool) string {
	data, err := EncodeString(v, pretty)
	if err != nil {
		panic(err)
	}
	return data
}

func Decode(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return err
	}
	return nil
}

func MustDecode(data []byte, target any) {
	if err := Decode(data, target); err != nil {
		panic(err)
	}
}

func DecodeString(data string, target any) error {
	return Decode([]byte(data), target)
}

func MustDecodeString(data string, target any) {
	if err := DecodeString(data, target); err != nil {
		panic(err)
	}
}
