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

package main

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

const ( // NumericOrState.whichType values
	ARG_ENABLED = iota
	ARG_DISABLED
	ARG_IS_NUMBER
)

type NumericOrState struct {
	whichType int // see consts above
	value     int
}

// Inspired by from zokumbsp's parser
func (c *ProgramConfig) FromCommandLine(args []string) bool {
	files := make([]string, 0)
	// -o and -q take the file name from the next argument
	var fileModifier *string
	modifierName := ""
	outputModifierUsed := false
	probeModifierUsed := false
	skip := false
	for argIdx, arg := range args {
		if len(arg) < 1 {
			break
		}
		if skip {
			skip = false
			continue
		}

		if fileModifier != nil {
			*fileModifier = arg
			fileModifier = nil
			continue
		}

		if arg[0] != '-' {
			files = append(files, arg)
			if len(files) > 1 {
				Log.Error("This program doesn't support specifying more than one input file - aborting.\n")
				return false
			}
			c.InputFileName = files[0]
			continue
		}

		if len(arg) < 2 {
			continue
		}
		switch arg[1] {
		case 'l':
			{
				rest := []byte(arg)[2:]
				if len(rest) < 2 || rest[0] != '=' {
					Log.Error("Syntax error: expected -l=<level name>, got '%s' - aborting.\n", arg)
					return false
				}
				c.LevelName = strings.ToUpper(string(rest[1:]))
			}
		case 'c':
			{
				num, rest := readNumeric("-c", []byte(arg)[2:])
				if num.whichType != ARG_IS_NUMBER || num.value <= 0 {
					Log.Error("Syntax error: expected -c=<positive cell size>, got '%s' - aborting.\n", arg)
					return false
				}
				c.CellSize = num.value
				if len(rest) > 0 {
					Log.Error("-c parameter is followed by garbage '%s'. It will be ignored.\n", string(rest))
				}
			}
		case 't':
			{
				tr, ok := parseTraceRequest([]byte(arg)[2:])
				if !ok {
					Log.Error("Syntax error: expected -t=x1,y1,x2,y2, got '%s' - aborting.\n", arg)
					return false
				}
				c.Traces = append(c.Traces, tr)
			}
		case 'm':
			{
				flags, ok := parseTraceFlags([]byte(arg)[2:])
				if !ok {
					Log.Error("Syntax error: expected -m= followed by any of 'l', 'm', 'd', got '%s' - aborting.\n", arg)
					return false
				}
				c.TraceFlags = flags
			}
		case 'j':
			{
				enabled, rest := isEnabled([]byte(arg)[2:])
				c.JSONOutput = enabled
				if len(rest) > 0 {
					Log.Error("Syntax error: -j parameter is followed by garbage; expected -j, -j+ or -j-, no other variants allowed.\n")
				}
			}
		case 's':
			{
				enabled, rest := isEnabled([]byte(arg)[2:])
				c.Stats = enabled
				if len(rest) > 0 {
					Log.Error("Syntax error: -s parameter is followed by garbage; expected -s, -s+ or -s-, no other variants allowed.\n")
				}
			}
		case 'v':
			{
				// "count" type: -v, -vv, -vvv, etc.
				vs := 0
				barg := []byte(arg)[1:]
				for i := 0; i < len(arg)-1; i++ {
					if barg[i] == 'v' {
						vs++
					} else {
						break
					}
				}
				c.VerbosityLevel += vs
			}
		case 'o', 'q':
			{
				if len(arg) != 2 {
					Log.Error("Unrecognized modifier '%s' (expected '%s <file>', space between '%s' and file name) - aborting.\n",
						arg, arg[:2], arg[:2])
					return false
				}
				if arg[1] == 'o' {
					if outputModifierUsed {
						Log.Error("Can't specify output file twice, only one output file is supported - aborting.\n")
						return false
					}
					outputModifierUsed = true
					fileModifier = &c.OutputFileName
				} else {
					if probeModifierUsed {
						Log.Error("Can't specify probe file twice - aborting.\n")
						return false
					}
					probeModifierUsed = true
					fileModifier = &c.ProbeFileName
				}
				modifierName = arg
			}
		case '-':
			{
				// parameter starts with double hyphen, e.g. --something
				if bytes.Equal([]byte(arg), []byte("--view")) {
					c.View = true
				} else if bytes.Equal([]byte(arg), []byte("--cpuprofile")) {
					// Parameter: write cpu profile to file following this
					// parameter
					fileSatisfied := (len(args) > (argIdx + 1)) &&
						(args[argIdx+1] != "")
					if !fileSatisfied {
						Log.Error("Modifier '%s' was present without a file name following it - aborting.\n",
							arg)
						return false
					}
					c.Profile = true
					c.ProfilePath = args[argIdx+1]
					skip = true
				} else {
					Log.Error("Unrecognised argument '%s' - aborting.\n", arg)
					return false
				}
			}
		default:
			{
				Log.Error("Unrecognised argument '%s' - aborting.\n", arg)
				return false
			}
		}
	}
	if fileModifier != nil {
		Log.Error("Modifier '%s' was present without a file name following it - aborting.\n",
			modifierName)
		return false
	}
	return true
}

// =x1,y1,x2,y2 where coordinates may be negative and fractional
func parseTraceRequest(arg []byte) (TraceRequest, bool) {
	if len(arg) < 1 || arg[0] != '=' {
		return TraceRequest{}, false
	}
	parts := bytes.Split(arg[1:], []byte(","))
	if len(parts) != 4 {
		return TraceRequest{}, false
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(string(p), 64)
		if err != nil {
			return TraceRequest{}, false
		}
		vals[i] = v
	}
	return TraceRequest{
		From: spatial.Vec2{X: vals[0], Y: vals[1]},
		To:   spatial.Vec2{X: vals[2], Y: vals[3]},
	}, true
}

func parseTraceFlags(arg []byte) (spatial.TraceFlags, bool) {
	if len(arg) < 2 || arg[0] != '=' {
		return 0, false
	}
	return traceFlagsFromLetters(string(arg[1:]))
}

// l - lines, m - mobjs, d - stop at destination
func traceFlagsFromLetters(s string) (spatial.TraceFlags, bool) {
	var flags spatial.TraceFlags
	for _, ch := range s {
		switch ch {
		case 'l':
			flags |= spatial.TraceLines
		case 'm':
			flags |= spatial.TraceMobjs
		case 'd':
			flags |= spatial.TraceStopAtDestination
		default:
			return 0, false
		}
	}
	return flags, true
}

// traceFlagsLetters is the inverse of traceFlagsFromLetters
func traceFlagsLetters(flags spatial.TraceFlags) string {
	s := ""
	if flags&spatial.TraceLines != 0 {
		s += "l"
	}
	if flags&spatial.TraceMobjs != 0 {
		s += "m"
	}
	if flags&spatial.TraceStopAtDestination != 0 {
		s += "d"
	}
	return s
}

func isEnabled(arg []byte) (bool, []byte) {
	if len(arg) == 0 {
		return true, arg
	}
	if arg[0] == '+' {
		return true, arg[1:]
	} else if arg[0] == '-' {
		return false, arg[1:]
	} else {
		return true, arg
	}
}

// a+, a-, or a=<numeric_value_without_sign>
func readNumeric(prefix string, arg []byte) (NumericOrState, []byte) {
	if len(arg) == 0 {
		return NumericOrState{whichType: ARG_ENABLED}, arg
	}
	if arg[0] == '+' {
		return NumericOrState{whichType: ARG_ENABLED}, arg[1:]
	} else if arg[0] == '-' {
		return NumericOrState{whichType: ARG_DISABLED}, arg[1:]
	} else if arg[0] == '=' {
		// !!! doesn't support negative values, and values with explicit "+"
		// sign either
		t, v, rest := readNumericOnly(arg[1:])
		if t {
			return NumericOrState{
				whichType: ARG_IS_NUMBER,
				value:     v,
			}, rest
		} else {
			Log.Error("Couldn't properly parse '%s=%s'. Some parameters are going to be ignored as the result.\n", prefix, string(arg))
			return NumericOrState{
				whichType: ARG_ENABLED,
			}, arg[:0] // ignore the rest of parameters
		}
	} else {
		return NumericOrState{whichType: ARG_ENABLED}, arg
	}
}

func readNumericOnly(arg []byte) (bool, int, []byte) {
	if len(arg) == 0 {
		return false, 0, arg
	}
	l := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if '0' <= c && c <= '9' {
			l++
		} else {
			break
		}
	}
	if l > 0 {
		v, err := strconv.Atoi(string(arg[:l]))
		if err != nil {
			Log.Error("value '%s' was too big to interpret as int.\n",
				string(arg[:l]))
			return false, 0, arg[l:]
		}
		return true, v, arg[l:]
	}
	return false, 0, arg
}
