package filesystem

import "os"

// Filesystem is the set of primitives needed to create and inspect
// symbolic links. Paths are interpreted by the underlying implementation,
// so an SFTP-backed filesystem sees paths on the remote host.
type Filesystem interface {
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)
	ReadLink(path string) (string, error)
	MkdirAll(path string, perm os.FileMode) error
	ReadFile(path string) ([]byte, error)
	Symlink(target string, link string) error
	Remove(path string) error
}
