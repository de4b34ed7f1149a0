// Package fileprop lazily derives stem/dir/ext strings from a current
// input filename, scoped to a single matcher.SetFilename call.
package fileprop

import (
	"errors"
	"path"
	"strings"
)

// ErrUnknownProperty is returned by Property for any name other than
// "", "stem", "dir", or "ext".
var ErrUnknownProperty = errors.New("fileprop: unknown property")

// Cache holds the filename installed by the most recent SetFilename
// call and lazily computes stem, dir, and ext on first read. It is not
// safe for concurrent use — the matcher that owns it runs single
// threaded per the core's concurrency model.
type Cache struct {
	filename string

	haveStem bool
	stem     string
	haveDir  bool
	dir      string
	haveExt  bool
	ext      string
}

// New records filename with no I/O and no parsing performed yet.
func New(filename string) *Cache {
	return &Cache{filename: filename}
}

// Property resolves name against the cache. An empty name returns the
// whole filename verbatim.
func (c *Cache) Property(name string) (string, error) {
	switch strings.ToLower(name) {
	case "":
		return c.filename, nil
	case "stem":
		return c.getStem(), nil
	case "dir":
		return c.getDir(), nil
	case "ext":
		return c.getExt(), nil
	default:
		return "", ErrUnknownProperty
	}
}

// getStem is the basename split on its first dot, mirroring the
// original implementation's StringRef::split('.').first rather than
// the more common "strip last suffix" reading — a multi-dot basename
// like archive.tar.gz yields stem "archive", not "archive.tar".
func (c *Cache) getStem() string {
	if !c.haveStem {
		base := path.Base(c.filename)
		if i := strings.IndexByte(base, '.'); i >= 0 {
			c.stem = base[:i]
		} else {
			c.stem = base
		}
		c.haveStem = true
	}
	return c.stem
}

func (c *Cache) getDir() string {
	if !c.haveDir {
		dir := path.Dir(c.filename)
		if dir == "." {
			dir = ""
		}
		c.dir = dir
		c.haveDir = true
	}
	return c.dir
}

// getExt is the last dotted suffix of the basename, dot included, or
// empty if the basename carries no dot.
func (c *Cache) getExt() string {
	if !c.haveExt {
		base := path.Base(c.filename)
		if i := strings.LastIndexByte(base, '.'); i >= 0 {
			c.ext = base[i:]
		} else {
			c.ext = ""
		}
		c.haveExt = true
	}
	return c.ext
}
