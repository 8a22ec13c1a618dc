package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const DefaultDirMode os.FileMode = 0o755

var ErrNotSymlink = errors.New("path exists and is not a symbolic link")

// LinkError records the step of link creation that failed, along
// with the link and target involved.
type LinkError struct {
	Op     string
	Link   string
	Target string
	Err    error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Link, e.Target, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// Create a symbolic link at linkPath that points to targetPath,
// creating any missing parent directories of linkPath first.
//
// targetPath is stored as-is; relative targets are resolved by the
// OS relative to the directory containing the link.
//
// An existing symbolic link at linkPath is replaced unless it already
// points to targetPath, in which case nothing is changed. Anything else
// occupying linkPath is left alone and ErrNotSymlink is returned.
func AddSymbolicLink(fsys Filesystem, linkPath string, targetPath string) error {
	return AddSymbolicLinkWithMode(fsys, linkPath, targetPath, DefaultDirMode)
}

// Same as AddSymbolicLink, but any created parent directories
// use dirMode instead of DefaultDirMode.
func AddSymbolicLinkWithMode(fsys Filesystem, linkPath string, targetPath string, dirMode os.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(linkPath), dirMode); err != nil {
		return &LinkError{Op: "mkdir", Link: linkPath, Target: targetPath, Err: err}
	}

	info, err := fsys.Lstat(linkPath)
	if err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return &LinkError{Op: "replace", Link: linkPath, Target: targetPath, Err: ErrNotSymlink}
		}

		current, err := fsys.ReadLink(linkPath)
		if err != nil {
			return &LinkError{Op: "readlink", Link: linkPath, Target: targetPath, Err: err}
		}

		if current == targetPath {
			return nil
		}

		if err := fsys.Remove(linkPath); err != nil {
			return &LinkError{Op: "remove", Link: linkPath, Target: targetPath, Err: err}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &LinkError{Op: "lstat", Link: linkPath, Target: targetPath, Err: err}
	}

	if err := fsys.Symlink(targetPath, linkPath); err != nil {
		return &LinkError{Op: "symlink", Link: linkPath, Target: targetPath, Err: err}
	}

	return nil
}
