package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// ValidatePart scans a serialized part and checks the child order of every
// container with a registered schema. It returns the first SchemaError
// found, or a plain error when the part is not well-formed.
func ValidatePart(data []byte) error {
	d := xml.NewDecoder(bytes.NewReader(data))

	type frame struct {
		name  string
		rank  int
		last  string
		count map[string]int
	}
	var stack []*frame

	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("malformed part: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if t.Name.Space != "" {
				name = t.Name.Space + ":" + t.Name.Local
			}
			if len(stack) > 0 {
				if err := checkChild(stack[len(stack)-1].name, name, &stack[len(stack)-1].rank, &stack[len(stack)-1].last, stack[len(stack)-1].count); err != nil {
					return err
				}
			}
			stack = append(stack, &frame{name: name, rank: -1, count: make(map[string]int)})
		case xml.EndElement:
			if len(stack) == 0 {
				return fmt.Errorf("malformed part: unexpected end element")
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return fmt.Errorf("malformed part: %d unclosed elements", len(stack))
	}
	return nil
}

func checkChild(container, child string, rank *int, last *string, count map[string]int) error {
	s, ok := SchemaFor(container)
	if !ok {
		return nil
	}
	r, ok := s.Rank(child)
	if !ok {
		return &SchemaError{Container: container, Element: child, Reason: "is not allowed here"}
	}
	if r < *rank {
		return &SchemaError{Container: container, Element: child, Reason: fmt.Sprintf("must precede %s", *last)}
	}
	count[child]++
	if count[child] > 1 && !s.Repeats(child) {
		return &SchemaError{Container: container, Element: child, Reason: "appears more than once"}
	}
	*rank = r
	*last = child
	return nil
}
