// Copyright (C) 2022-2026, VigilantDoomer
//
// This file is part of VigilantWalk program.
//
// VigilantWalk is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// VigilantWalk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VigilantWalk.  If not, see <https://www.gnu.org/licenses/>.

package spatial

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Error types reported by the spatial index. Query-time problems never produce
// errors (they clamp or match nothing); these are reserved for build-time
// invariant violations and resource limits.
const (
	ErrTypeResourceExhausted = "resource_exhausted"
	ErrTypeMalformedTopology = "malformed_topology"
	ErrTypeInvalidConfig     = "invalid_config"
	ErrTypeOutOfBounds       = "out_of_bounds"
	ErrTypeAlreadyLinked     = "already_linked"
)

// IsResourceExhausted reports whether err was caused by a full pool
func IsResourceExhausted(err error) bool {
	return errors.Type(err) == ErrTypeResourceExhausted
}

// IsMalformedTopology reports whether err was caused by inconsistent level
// geometry handed to the index at build time
func IsMalformedTopology(err error) bool {
	return errors.Type(err) == ErrTypeMalformedTopology
}

// newError builds a typed error; tags come in key, value pairs
func newError(errType string, msg string, tags ...interface{}) error {
	err := errors.New(msg).WithType(errType)
	for i := 0; i+1 < len(tags); i += 2 {
		key, ok := tags[i].(string)
		if !ok {
			continue
		}
		err = err.WithTag(key, tags[i+1])
	}
	return err
}

func errResourceExhausted(pool string, limit int) error {
	return newError(ErrTypeResourceExhausted, "pool exhausted",
		"pool", pool, "limit", limit)
}
