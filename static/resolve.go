/*
DESCRIPTION
  Request path resolution for the static file server.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  This is free software: you can redistribute it and/or modify it
  under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.

  It is distributed in the hope that it will be useful,
  but WITHOUT ANY WARRANTY; without even the implied warranty of
  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
  GNU General Public License for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt. If not, see http://www.gnu.org/licenses/.
*/

package static

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a request path does not map to a regular file
// inside the base directory.
var ErrNotFound = errors.New("not found")

// Resolve maps the URL path name to a regular file under root and returns the
// file's path. root must be absolute with symlinks already resolved, as
// produced by Config.Validate. Paths that escape root, directly or through a
// symlink, paths naming anything other than a regular file and paths with a
// dot-prefixed segment give ErrNotFound.
func Resolve(root, name string) (string, error) {
	if strings.ContainsAny(name, "\x00\\") {
		return "", ErrNotFound
	}

	if namesDirectory(name) {
		return "", ErrNotFound
	}

	// Cleaning a rooted path discards any leading "..", so the
	// joined path cannot climb above root lexically.
	clean := path.Clean("/" + name)
	if clean == "/" || hasDotSegment(clean) {
		return "", ErrNotFound
	}
	p := filepath.Join(root, filepath.FromSlash(clean))
	if !within(root, p) {
		return "", ErrNotFound
	}

	p, err := filepath.EvalSymlinks(p)
	if err != nil {
		return "", ErrNotFound
	}
	if !within(root, p) {
		return "", ErrNotFound
	}

	fi, err := os.Stat(p)
	if err != nil || !fi.Mode().IsRegular() {
		return "", ErrNotFound
	}
	return p, nil
}

// namesDirectory reports whether name ends in a slash or a dot segment. Such
// a name can only refer to a directory, even though path.Clean would strip
// the suffix.
func namesDirectory(name string) bool {
	last := name[strings.LastIndex(name, "/")+1:]
	return last == "" || last == "." || last == ".."
}

// hasDotSegment reports whether any segment of the cleaned path p starts with
// a dot, such as /.env or /.git/config. Dotfiles are never served.
func hasDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// within reports whether p is root or lies beneath it.
func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// load resolves name under root and reads the file, returning its contents
// and content type. The content type is inferred from the file extension,
// falling back to sniffing the content.
func load(root, name string) ([]byte, string, error) {
	p, err := Resolve(root, name)
	if err != nil {
		return nil, "", err
	}

	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		// Removed between resolution and reading.
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}

	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		ctype = http.DetectContentType(b)
	}
	return b, ctype, nil
}
