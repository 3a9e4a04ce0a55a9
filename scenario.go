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

package enertech

import "github.com/sirupsen/logrus"

// Scenario holds the collaborators that are shared by every technology in
// a model run. A Scenario is created once at the start of a run and handed
// to each component when it is initialized.
type Scenario struct {
	Market    Marketplace
	Modeltime Modeltime

	// Log receives all diagnostic messages. If nil, the logrus standard
	// logger is used.
	Log logrus.FieldLogger

	// DebugChecking turns on additional, purely diagnostic, warnings.
	DebugChecking bool
}

// Logger returns the logger of s, falling back to the standard logger.
func (s *Scenario) Logger() logrus.FieldLogger {
	if s == nil || s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
