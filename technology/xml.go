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

package technology

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech/caldata"
	"github.com/spatialmodel/enertech/ghg"
	"github.com/spatialmodel/enertech/internal/xmlio"
	"github.com/spatialmodel/enertech/output"
	"github.com/spatialmodel/enertech/techinfo"
)

// Element names of the two XML forms of a technology. A vintage is
// persisted as a <period> element inside the element that names the
// technology; the debug form is self-contained.
const (
	XMLNamePeriod = "period"
	XMLNameDebug  = "technology"
)

// Decode reads the vintage of the technology called name from the
// <period> element start.
func Decode(d *xml.Decoder, start xml.StartElement, name string, log logrus.FieldLogger) (*Technology, error) {
	t := New(name, 0)
	if log != nil {
		t.Log = log
		t.owned.Log = log
	}
	if err := t.UnmarshalXML(d, start); err != nil {
		return nil, err
	}
	return t, nil
}

// UnmarshalXML implements xml.Unmarshaler. It reads the year attribute of
// start and the technology parameters in its children. Unrecognized
// elements are logged and skipped. The technology name is not part of the
// element and must already be set.
func (t *Technology) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if t.ghgIndex == nil {
		*t = *New(t.name, t.year)
	}
	if name, ok := xmlio.Attr(start, "name"); ok && t.name == "" {
		t.name = name
		t.owned = techinfo.NewGeneric(name)
		t.owned.Log = t.Log
	}
	year, ok, err := xmlio.IntAttr(start, "year")
	if err != nil {
		return fmt.Errorf("technology: %s: %v", t.name, err)
	}
	if ok {
		t.SetYear(year)
	}
	return xmlio.Children(d, start, func(child xml.StartElement) error {
		if err := t.parseElement(d, child); err != nil {
			return fmt.Errorf("technology: %s (%d): %v", t.name, t.year, err)
		}
		return nil
	})
}

func (t *Technology) parseElement(d *xml.Decoder, child xml.StartElement) error {
	if handled, err := t.owned.ParseElement(d, child); handled {
		t.useGlobal = false
		return err
	}
	var err error
	n := child.Name.Local
	switch {
	case n == "name" || n == "year":
		// Superseded by the attributes of the enclosing elements.
		return d.Skip()
	case n == "sharewt":
		t.shareWeight, err = xmlio.Float(d, child)
	case n == "pMultiplier":
		t.pMultiplier, err = xmlio.Float(d, child)
	case n == "logitexp":
		t.logitExp, err = xmlio.Float(d, child)
	case n == "fixedOutput":
		var v float64
		if v, err = xmlio.Float(d, child); err == nil {
			t.SetFixedOutput(v)
		}
	case n == "note":
		t.note, err = xmlio.String(d, child)
	case caldata.IsCalDataNode(n):
		t.calData, err = caldata.Parse(d, child)
	case ghg.IsGHGNode(n):
		var g ghg.GHG
		if g, err = ghg.Parse(d, child, t.Log); err == nil {
			t.addGHG(g)
		}
	case n == output.XMLNameSecondary:
		var o *output.Secondary
		if o, err = output.ParseSecondary(d, child, t.Log); err == nil {
			t.outputs = append(t.outputs, o)
		}
	case n == techinfo.XMLNameGlobal:
		t.useGlobal = true
		return d.Skip()
	default:
		t.logger().WithField("element", n).Warn("technology: unrecognized element")
		return d.Skip()
	}
	return err
}

// MarshalXML implements xml.Marshaler. It writes the persistent form of
// the vintage as a <period> element, omitting parameters that have their
// default values.
func (t *Technology) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xmlio.StartElement(XMLNamePeriod, "year", strconv.Itoa(t.year))
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := xmlio.FloatCheckDefault(e, "sharewt", t.shareWeight, DefaultShareWeight); err != nil {
		return err
	}
	if t.calData != nil {
		if err := caldata.Encode(e, t.calData); err != nil {
			return err
		}
	}
	if t.useGlobal {
		if err := e.EncodeToken(xmlio.StartElement(techinfo.XMLNameGlobal)); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: xml.Name{Local: techinfo.XMLNameGlobal}}); err != nil {
			return err
		}
	} else if err := t.owned.EncodeElements(e); err != nil {
		return err
	}
	if err := xmlio.FloatCheckDefault(e, "pMultiplier", t.pMultiplier, DefaultPMultiplier); err != nil {
		return err
	}
	if err := xmlio.FloatCheckDefault(e, "logitexp", t.logitExp, DefaultLogitExponent); err != nil {
		return err
	}
	if err := xmlio.FloatCheckDefault(e, "fixedOutput", t.fixed.Float(), -1); err != nil {
		return err
	}
	if err := xmlio.StringCheckDefault(e, "note", t.note, ""); err != nil {
		return err
	}
	for _, o := range t.outputs {
		if err := o.EncodeXML(e); err != nil {
			return err
		}
	}
	for _, g := range t.ghgs {
		if err := g.EncodeXML(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// WriteDebugXML writes the state of the technology in period to w.
func (t *Technology) WriteDebugXML(w io.Writer, period int) error {
	e := xml.NewEncoder(w)
	e.Indent("", "\t")
	if err := t.encodeDebug(e, period); err != nil {
		return fmt.Errorf("technology: writing debug XML for %s (%d): %v", t.name, t.year, err)
	}
	return e.Flush()
}

func (t *Technology) encodeDebug(e *xml.Encoder, period int) error {
	start := xmlio.StartElement(XMLNameDebug, "name", t.name, "year", strconv.Itoa(t.year))
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := xmlio.Element(e, "sharewt", t.shareWeight); err != nil {
		return err
	}
	if t.calData != nil {
		if err := caldata.Encode(e, t.calData); err != nil {
			return err
		}
	}
	if err := t.info().EncodeDebug(e, period); err != nil {
		return err
	}
	err := xmlio.Elements(e,
		"efficiencyEffective", t.Efficiency(),
		"nonEnergyCostEffective", t.NonEnergyCost(),
		"pMultiplier", t.pMultiplier,
		"logitexp", t.logitExp,
		"fuelcost", t.fuelCost,
		"techcost", t.cost,
		"share", t.share,
		"input", t.input,
		"fixedOutput", t.fixed.Float(),
	)
	if err != nil {
		return err
	}
	for _, o := range t.outputs {
		if err := o.EncodeDebug(e, period); err != nil {
			return err
		}
	}
	for _, g := range t.ghgs {
		if err := g.EncodeDebug(e, period); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
