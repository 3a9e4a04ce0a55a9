/*
Copyright © 2026 the enertech authors.
This file is part of enertech.

enertech is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

enertech is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with enertech.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package xmlio contains helpers for reading and writing the element-per-field
// XML format used for technology input files.
package xmlio

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Children calls fn for every child element of start, in document order.
// fn must consume the child it is given, either by decoding it or by
// calling d.Skip. Children returns after consuming the end of start.
func Children(d *xml.Decoder, start xml.StartElement, fn func(child xml.StartElement) error) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("xmlio: reading <%s>: %v", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

// String decodes the character data of start.
func String(d *xml.Decoder, start xml.StartElement) (string, error) {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return "", fmt.Errorf("xmlio: decoding <%s>: %v", start.Name.Local, err)
	}
	return strings.TrimSpace(s), nil
}

// Float decodes the character data of start as a floating point number.
func Float(d *xml.Decoder, start xml.StartElement) (float64, error) {
	s, err := String(d, start)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("xmlio: parsing <%s>: %v", start.Name.Local, err)
	}
	return v, nil
}

// Attr returns the value of the attribute called name.
func Attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// IntAttr returns the value of the integer attribute called name.
func IntAttr(start xml.StartElement, name string) (int, bool, error) {
	s, ok := Attr(start, name)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, true, fmt.Errorf("xmlio: parsing attribute %s of <%s>: %v", name, start.Name.Local, err)
	}
	return v, true, nil
}

// StartElement creates a start element with the given name and
// attributes, which are given as name/value pairs.
func StartElement(name string, attrs ...string) xml.StartElement {
	s := xml.StartElement{Name: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		s.Attr = append(s.Attr, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	return s
}

// Element writes v as a single element called name.
func Element(e *xml.Encoder, name string, v interface{}) error {
	return e.EncodeElement(v, StartElement(name))
}

// FloatCheckDefault writes v as an element called name unless it equals
// def.
func FloatCheckDefault(e *xml.Encoder, name string, v, def float64) error {
	if v == def {
		return nil
	}
	return Element(e, name, v)
}

// StringCheckDefault writes v as an element called name unless it equals
// def.
func StringCheckDefault(e *xml.Encoder, name, v, def string) error {
	if v == def {
		return nil
	}
	return Element(e, name, v)
}

// Elements writes a list of name/value elements, stopping at the first
// error.
func Elements(e *xml.Encoder, kv ...interface{}) error {
	for i := 0; i+1 < len(kv); i += 2 {
		if err := Element(e, kv[i].(string), kv[i+1]); err != nil {
			return err
		}
	}
	return nil
}
