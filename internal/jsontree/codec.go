package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// SyntaxError reports a document that is not well-formed JSON.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON at offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parse decodes a complete JSON document into a tree. Documents that are not
// valid UTF-8 are rejected so rewriting never alters retained strings.
func Parse(data []byte) (*Node, error) {
	if offset, ok := firstInvalidUTF8(data); !ok {
		return nil, &SyntaxError{Offset: int64(offset), Err: errors.New("invalid UTF-8 sequence")}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &SyntaxError{Offset: dec.InputOffset(), Err: err}
	}
	root, err := parseValue(dec, tok, nil)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, &SyntaxError{Offset: dec.InputOffset(), Err: err}
	}
	return root, nil
}

func firstInvalidUTF8(data []byte) (int, bool) {
	if utf8.Valid(data) {
		return 0, true
	}
	for offset := 0; offset < len(data); {
		r, size := utf8.DecodeRune(data[offset:])
		if r == utf8.RuneError && size <= 1 {
			return offset, false
		}
		offset += size
	}
	return len(data), false
}

func parseValue(dec *json.Decoder, tok json.Token, parent *Node) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseObject(dec, parent)
		case '[':
			return parseArray(dec, parent)
		default:
			return nil, &SyntaxError{Offset: dec.InputOffset(), Err: fmt.Errorf("unexpected delimiter %q", v)}
		}
	case string:
		return &Node{Kind: KindString, Literal: v, parent: parent}, nil
	case json.Number:
		return &Node{Kind: KindNumber, Literal: v.String(), parent: parent}, nil
	case bool:
		return &Node{Kind: KindBool, Bool: v, parent: parent}, nil
	case nil:
		return &Node{Kind: KindNull, parent: parent}, nil
	default:
		return nil, &SyntaxError{Offset: dec.InputOffset(), Err: fmt.Errorf("unexpected token %v", tok)}
	}
}

func parseObject(dec *json.Decoder, parent *Node) (*Node, error) {
	node := &Node{Kind: KindObject, parent: parent}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &SyntaxError{Offset: dec.InputOffset(), Err: err}
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, &SyntaxError{Offset: dec.InputOffset(), Err: fmt.Errorf("object key is %T, not string", keyTok)}
		}
		valueTok, err := dec.Token()
		if err != nil {
			return nil, &SyntaxError{Offset: dec.InputOffset(), Err: err}
		}
		value, err := parseValue(dec, valueTok, node)
		if err != nil {
			return nil, err
		}
		node.Members = append(node.Members, Member{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, &SyntaxError{Offset: dec.InputOffset(), Err: err}
	}
	return node, nil
}

func parseArray(dec *json.Decoder, parent *Node) (*Node, error) {
	node := &Node{Kind: KindArray, parent: parent}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &SyntaxError{Offset: dec.InputOffset(), Err: err}
		}
		item, err := parseValue(dec, tok, node)
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, item)
	}
	if _, err := dec.Token(); err != nil {
		return nil, &SyntaxError{Offset: dec.InputOffset(), Err: err}
	}
	return node, nil
}

// Encode serializes n with one level of indent per nesting depth and a
// trailing newline. Output for a given tree is deterministic.
func Encode(n *Node, indent string) []byte {
	var buf bytes.Buffer
	writeNode(&buf, n, indent, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, n *Node, indent string, depth int) {
	if n == nil {
		buf.WriteString("null")
		return
	}
	switch n.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if n.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(n.Literal)
	case KindString:
		writeString(buf, n.Literal)
	case KindArray:
		if len(n.Items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeNode(buf, item, indent, depth+1)
		}
		newline(buf, indent, depth)
		buf.WriteByte(']')
	case KindObject:
		if len(n.Members) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteByte('{')
		for i, member := range n.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeString(buf, member.Key)
			buf.WriteString(": ")
			writeNode(buf, member.Value, indent, depth+1)
		}
		newline(buf, indent, depth)
		buf.WriteByte('}')
	}
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}

func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}
