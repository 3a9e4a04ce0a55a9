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

import "fmt"

// ContractError reports that a function was called in a way that its
// documentation forbids, for example with a negative demand or with a
// non-positive efficiency. Calculations panic with a *ContractError
// rather than returning it.
type ContractError struct {
	// Op is the operation whose contract was broken.
	Op string
	// Msg describes the violation.
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("enertech: contract violation in %s: %s", e.Op, e.Msg)
}

// Require panics with a *ContractError if cond is false.
func Require(cond bool, op, format string, args ...interface{}) {
	if !cond {
		panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
	}
}
