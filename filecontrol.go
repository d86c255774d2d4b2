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
	"os"
	"path/filepath"
)

// Controls lifetime of both input and output files - ensures they are
// properly closed by the end of program, regardless of success and failure.
// Output is written to a temporary file next to the requested one, which
// replaces it on success or is deleted on failure, so that a failed export
// never leaves a truncated scene behind
type FileControl struct {
	success        bool
	fin            *os.File
	fout           *os.File
	inputFileName  string
	outputFileName string
	tmpFileName    string
}

func (fc *FileControl) OpenInputFile(inputFileName string) (*os.File, error) {
	fc.inputFileName = inputFileName
	var err error
	fc.fin, err = os.Open(inputFileName)
	return fc.fin, err
}

// OpenOutputFile creates the temporary file the output is written to
func (fc *FileControl) OpenOutputFile(outputFileName string) (*os.File, error) {
	fc.outputFileName = outputFileName
	var err error
	fc.fout, err = os.CreateTemp(filepath.Dir(outputFileName), "vigilantwalk*.tmp")
	if err != nil {
		return nil, err
	}
	fc.tmpFileName = fc.fout.Name()
	return fc.fout, nil
}

// Success closes files and moves the written output into place. Returns
// false if any of that failed, in which case Shutdown still cleans up
func (fc *FileControl) Success() bool {
	if fc.fin != nil {
		err := fc.fin.Close()
		fc.fin = nil
		if err != nil {
			Log.Error("Couldn't close input file '%s': %s\n", fc.inputFileName, err.Error())
		}
	}
	if fc.fout == nil {
		fc.success = true
		return true
	}
	err := fc.fout.Close()
	fc.fout = nil
	if err != nil {
		Log.Error("Couldn't close output file '%s': %s\n", fc.tmpFileName, err.Error())
		return false
	}
	err = os.Rename(fc.tmpFileName, fc.outputFileName)
	if err != nil {
		Log.Error("Couldn't write output file '%s': %s\n", fc.outputFileName, err.Error())
		return false
	}
	fc.success = true
	return true
}

// Ensures we close all files when program exits. Temporary file is getting
// deleted at this moment
func (fc *FileControl) Shutdown() {
	if fc.success {
		return
	}

	var errFin error
	if fc.fin != nil {
		errFin = fc.fin.Close()
	}

	var errFout error
	if fc.fout != nil {
		errFout = fc.fout.Close()
	}

	if errFin != nil {
		Log.Error("Couldn't close input file '%s': %s\n", fc.inputFileName, errFin.Error())
	}

	if errFout != nil {
		Log.Error("Couldn't close output file '%s': %s\n", fc.tmpFileName, errFout.Error())
	}

	if fc.tmpFileName != "" { // Aborting unsuccessful operation
		if errFout != nil {
			Log.Error("Couldn't delete temporary file '%s' because failed to close it already.\n",
				fc.tmpFileName)
			return
		}
		err := os.Remove(fc.tmpFileName)
		if err != nil && !os.IsNotExist(err) {
			Log.Error("Got error when trying to delete a temporary file '%s': %s\n", fc.tmpFileName, err.Error())
		}
	}
}
