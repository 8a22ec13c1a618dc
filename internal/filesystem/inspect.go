package filesystem

import (
	"errors"
	"io/fs"
	"os"
)

type LinkState int

const (
	LinkMissing LinkState = iota
	LinkOK
	LinkRetarget
	LinkBroken
	LinkConflict
)

func (s LinkState) String() string {
	switch s {
	case LinkMissing:
		return "missing"
	case LinkOK:
		return "ok"
	case LinkRetarget:
		return "retarget"
	case LinkBroken:
		return "broken"
	case LinkConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

func (s LinkState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Inspect what currently lives at linkPath relative to the
// link that is expected to point at targetPath.
//
// The current link destination is returned whenever linkPath
// is a symbolic link, even if it does not match.
func Inspect(fsys Filesystem, linkPath string, targetPath string) (LinkState, string, error) {
	info, err := fsys.Lstat(linkPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LinkMissing, "", nil
		}
		return LinkMissing, "", err
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return LinkConflict, "", nil
	}

	current, err := fsys.ReadLink(linkPath)
	if err != nil {
		return LinkMissing, "", err
	}

	if current != targetPath {
		return LinkRetarget, current, nil
	}

	if _, err := fsys.Stat(linkPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LinkBroken, current, nil
		}
		return LinkMissing, current, err
	}

	return LinkOK, current, nil
}
