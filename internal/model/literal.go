package model

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ErrMalformedListLiteral is returned when a rule value for the "in"
// operator is not a flat bracketed list of scalars.
var ErrMalformedListLiteral = eris.New("malformed list literal")

// ParseList parses a bracketed list literal such as ['A','B','C'] or
// [1, 2.5, True]. Only a flat list of quoted strings, numbers, and booleans
// is accepted. The literal is decoded as a YAML flow sequence and every node
// is checked, so nothing in the literal is ever evaluated.
func ParseList(literal string) (Value, error) {
	s := strings.TrimSpace(literal)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return Value{}, eris.Wrapf(ErrMalformedListLiteral, "model: %q is not bracketed", literal)
	}

	if end := closingBracket(s); end != len(s)-1 {
		return Value{}, eris.Wrapf(ErrMalformedListLiteral, "model: %q has text after the list", literal)
	}

	dec := yaml.NewDecoder(strings.NewReader(s))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		return Value{}, eris.Wrapf(ErrMalformedListLiteral, "model: decode %q: %v", literal, err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Value{}, eris.Wrapf(ErrMalformedListLiteral, "model: %q has text after the list", literal)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return Value{}, eris.Wrapf(ErrMalformedListLiteral, "model: %q is not a single list", literal)
	}

	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode || seq.Style&yaml.FlowStyle == 0 || seq.Anchor != "" || seq.Style&yaml.TaggedStyle != 0 {
		return Value{}, eris.Wrapf(ErrMalformedListLiteral, "model: %q is not a flat list", literal)
	}

	items := make([]Value, 0, len(seq.Content))
	for _, node := range seq.Content {
		v, err := scalarFromNode(node)
		if err != nil {
			return Value{}, eris.Wrapf(ErrMalformedListLiteral, "model: %q: %v", literal, err)
		}
		items = append(items, v)
	}

	return Value{Kind: KindList, Raw: literal, List: items}, nil
}

func scalarFromNode(node *yaml.Node) (Value, error) {
	if node.Kind != yaml.ScalarNode {
		return Value{}, eris.New("element is not a scalar")
	}
	if node.Anchor != "" || node.Style&yaml.TaggedStyle != 0 {
		return Value{}, eris.Errorf("element %q uses anchors or tags", node.Value)
	}

	if node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
		return StringValue(node.Value), nil
	}

	// Unquoted elements must be numbers or booleans.
	switch node.ShortTag() {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return Value{}, eris.Errorf("element %q is not a decimal number", node.Value)
		}
		return Value{Kind: KindNumber, Raw: node.Value, Num: f}, nil
	case "!!bool":
		switch strings.ToLower(node.Value) {
		case "true":
			return Value{Kind: KindBool, Raw: node.Value, Bool: true}, nil
		case "false":
			return Value{Kind: KindBool, Raw: node.Value, Bool: false}, nil
		}
	}
	return Value{}, eris.Errorf("unquoted element %q is not a number or boolean", node.Value)
}

// closingBracket returns the index of the bracket that closes the one at
// s[0], skipping quoted text, or -1 if it is never closed.
func closingBracket(s string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote == '\'':
			if c == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					i++ // '' escapes a quote
					continue
				}
				quote = 0
			}
		case quote == '"':
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
