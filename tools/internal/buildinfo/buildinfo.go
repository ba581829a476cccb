// seehuhn.de/go/fax - decoding CCITT Group 3 and Group 4 fax data
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package buildinfo reports the version of the fax command line tools.
package buildinfo

import "runtime/debug"

const modulePath = "seehuhn.de/go/fax"

// Version returns the module version of the running binary.  For development
// builds the abbreviated VCS revision is used instead.  The result is empty
// if no version information is available.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return revision(info.Settings)
}

func revision(settings []debug.BuildSetting) string {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	rev := vcs["vcs.revision"]
	if rev == "" {
		return ""
	}
	rev = rev[:min(len(rev), 8)]
	if vcs["vcs.modified"] == "true" {
		rev += "+dirty"
	}
	return rev
}

// Short returns the tool name together with the version, for use in usage
// messages.
func Short(toolName string) string {
	v := Version()
	if v == "" {
		return toolName
	}
	return toolName + " (" + modulePath + " " + v + ")"
}
