package jsobj

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/notegrab"
)

// Parse strictly parses text as a single JSON value into a Value tree.
// Failures are reported as *notegrab.MalformedError carrying the failing
// byte offset and the surrounding text.
func Parse(text string) (*Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, malformed(text, dec, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, malformed(text, dec, err)
	}

	return v, nil
}

func parseValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case bool:
		return BoolValue(t), nil
	case nil:
		return NullValue(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseObject(dec *json.Decoder) (*Value, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (*Value, error) {
	arr := &Value{kind: Array, items: []*Value{}}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr.items = append(arr.items, val)
	}
	// Closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func malformed(text string, dec *json.Decoder, err error) error {
	offset := dec.InputOffset()
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		offset = syn.Offset
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &notegrab.MalformedError{
		Offset:  offset,
		Context: contextWindow(text, int(offset), notegrab.ContextRadius),
		Err:     err,
	}
}

// contextWindow returns up to radius characters on each side of the byte
// offset off, never splitting a UTF-8 sequence.
func contextWindow(text string, off, radius int) string {
	if off < 0 {
		off = 0
	}
	if off > len(text) {
		off = len(text)
	}
	for off > 0 && off < len(text) && !utf8.RuneStart(text[off]) {
		off--
	}

	start := off
	for i := 0; i < radius && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}

	end := off
	for i := 0; i < radius && end < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}

	return text[start:end]
}
