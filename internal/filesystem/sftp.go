package filesystem

import (
	"io"
	"os"

	"github.com/pkg/sftp"
)

type SFTPFilesystem struct {
	client *sftp.Client
}

func NewSFTPFilesystem(client *sftp.Client) *SFTPFilesystem {
	return &SFTPFilesystem{
		client: client,
	}
}

func (f *SFTPFilesystem) Stat(path string) (os.FileInfo, error) {
	return f.client.Stat(path)
}

func (f *SFTPFilesystem) Lstat(path string) (os.FileInfo, error) {
	return f.client.Lstat(path)
}

func (f *SFTPFilesystem) ReadLink(path string) (string, error) {
	return f.client.ReadLink(path)
}

func (f *SFTPFilesystem) ReadFile(path string) ([]byte, error) {
	file, err := f.client.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return io.ReadAll(file)
}

// The SFTP protocol has no recursive mkdir with a mode, so the
// permissions are left to the remote umask.
func (f *SFTPFilesystem) MkdirAll(path string, perm os.FileMode) error {
	return f.client.MkdirAll(path)
}

func (f *SFTPFilesystem) Symlink(target string, link string) error {
	return f.client.Symlink(target, link)
}

func (f *SFTPFilesystem) Remove(path string) error {
	return f.client.Remove(path)
}
