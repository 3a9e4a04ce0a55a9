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

package techinfo

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/internal/xmlio"
)

// XMLNameGlobal is the element that marks a technology as using a global
// technology instead of its own parameters.
const XMLNameGlobal = "global-technology"

// Global is a parameter set that is shared by every technology vintage that
// refers to it. It is owned by a Database and must not be copied.
type Global struct {
	*Generic
	year int
}

// Year returns the vintage year of g.
func (g *Global) Year() int { return g.year }

// Clone panics: a Global is shared and has no single owner that could
// take a copy. Technologies must be copied before they are bound to a
// global technology.
func (g *Global) Clone() Info {
	panic(&enertech.ContractError{
		Op:  "techinfo.Global.Clone",
		Msg: fmt.Sprintf("global technology %s (%d) is shared and cannot be cloned", g.name, g.year),
	})
}

type globalKey struct {
	name string
	year int
}

// Database holds the global technologies, keyed by name and year.
type Database struct {
	techs map[globalKey]*Global

	// Log is passed on to the technologies in the database.
	Log logrus.FieldLogger
}

// NewDatabase returns an empty global technology database.
func NewDatabase() *Database {
	return &Database{
		techs: make(map[globalKey]*Global),
		Log:   logrus.StandardLogger(),
	}
}

// Add adds the parameters p to the database under name and year,
// replacing any technology already stored there.
func (db *Database) Add(year int, p *Generic) {
	p.Log = db.Log
	db.techs[globalKey{name: p.Name(), year: year}] = &Global{Generic: p, year: year}
}

// Technology returns the completed global technology with the given
// name and year. The returned value is shared; callers must not modify or
// clone it.
func (db *Database) Technology(name string, year int) (Info, bool) {
	if db == nil {
		return nil, false
	}
	g, ok := db.techs[globalKey{name: name, year: year}]
	if !ok {
		return nil, false
	}
	g.CompleteInit()
	return g, true
}

// Len returns the number of technologies in the database.
func (db *Database) Len() int { return len(db.techs) }

func (db *Database) sortedKeys() []globalKey {
	keys := make([]globalKey, 0, len(db.techs))
	for k := range db.techs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].year < keys[j].year
	})
	return keys
}

// LoadDatabase reads a global technology database from XML.
func LoadDatabase(r io.Reader) (*Database, error) {
	db := NewDatabase()
	d := xml.NewDecoder(r)
	if err := d.Decode(db); err != nil {
		return nil, fmt.Errorf("techinfo: loading global technology database: %v", err)
	}
	return db, nil
}

// UnmarshalXML implements xml.Unmarshaler.
func (db *Database) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if db.techs == nil {
		db.techs = make(map[globalKey]*Global)
	}
	if db.Log == nil {
		db.Log = logrus.StandardLogger()
	}
	return xmlio.Children(d, start, func(child xml.StartElement) error {
		if child.Name.Local != "technology" {
			db.Log.WithField("element", child.Name.Local).Warn("techinfo: unrecognized element in global technology database")
			return d.Skip()
		}
		name, _ := xmlio.Attr(child, "name")
		year, ok, err := xmlio.IntAttr(child, "year")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("techinfo: global technology %q has no year", name)
		}
		p := NewGeneric(name)
		p.Log = db.Log
		err = xmlio.Children(d, child, func(field xml.StartElement) error {
			handled, err := p.ParseElement(d, field)
			if err != nil {
				return err
			}
			if !handled {
				db.Log.WithFields(logrus.Fields{
					"element":    field.Name.Local,
					"technology": name,
				}).Warn("techinfo: unrecognized element in global technology")
				return d.Skip()
			}
			return nil
		})
		if err != nil {
			return err
		}
		db.Add(year, p)
		return nil
	})
}

// MarshalXML implements xml.Marshaler.
func (db *Database) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range db.sortedKeys() {
		g := db.techs[k]
		s := xmlio.StartElement("technology", "name", k.name, "year", strconv.Itoa(k.year))
		if err := e.EncodeToken(s); err != nil {
			return err
		}
		if err := g.EncodeElements(e); err != nil {
			return err
		}
		if err := e.EncodeToken(s.End()); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
