package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Encode writes doc to w in the given format.
func Encode(w io.Writer, format FileFormat, doc Document) error {
	switch format {
	case FormatYAML:
		return EncodeYAML(w, doc)
	case FormatMsgpack:
		return EncodeMsgpack(w, doc)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
}

// Decode reads one document from r. source names the input in errors.
func Decode(r io.Reader, format FileFormat, source string) (Document, error) {
	switch format {
	case FormatYAML:
		return DecodeYAML(r, source)
	case FormatMsgpack:
		return DecodeMsgpack(r, source)
	default:
		return Document{}, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
}

// EncodeYAML writes doc as a YAML document.
func EncodeYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("codec: encode yaml: %w", err)
	}
	return enc.Close()
}

// DecodeYAML reads a YAML document. Unknown fields are rejected so that typos
// in hand-written documents surface as errors. An empty input is an empty
// document.
func DecodeYAML(r io.Reader, source string) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{Version: CurrentVersion}, nil
		}
		return Document{}, &DocumentError{Source: source, Index: -1, Err: err}
	}
	return doc, nil
}

// EncodeMsgpack writes doc as a MessagePack snapshot.
func EncodeMsgpack(w io.Writer, doc Document) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("codec: encode msgpack: %w", err)
	}
	return nil
}

// DecodeMsgpack reads a MessagePack snapshot.
func DecodeMsgpack(r io.Reader, source string) (Document, error) {
	var doc Document
	dec := msgpack.NewDecoder(r)
	dec.DisallowUnknownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, &DocumentError{Source: source, Index: -1, Err: err}
	}
	return doc, nil
}
