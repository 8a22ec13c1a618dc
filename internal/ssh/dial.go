package ssh

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/kevinburke/ssh_config"
	"github.com/linkfarm/linkfarm/internal/filesystem"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/settings"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

const (
	UserConfigFile     = ".ssh/config"
	UserKnownHostsFile = ".ssh/known_hosts"

	dialTimeout = 10 * time.Second
)

var ErrAgentNotStarted = errors.New("SSH_AUTH_SOCK not set; please start or forward an SSH agent")

// Connection is an SSH session to a remote host with an
// SFTP subsystem opened on top of it.
type Connection struct {
	agentConn net.Conn
	client    *ssh.Client
	sftp      *sftp.Client
	target    Target
}

func Dial(dest string, cfg settings.SSHSettings, log logger.Logger) (*Connection, error) {
	target, err := ParseTarget(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse host: %w", err)
	}

	if configFile := sshConfigFile(cfg); configFile != "" {
		target, err = resolveFromConfig(target, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %v: %w", configFile, err)
		}
	}

	if target.User == "" {
		target.User = currentUsername()
		if target.User == "" {
			return nil, fmt.Errorf("failed to determine current user")
		}
	}

	sshAuthSock := os.Getenv("SSH_AUTH_SOCK")
	if sshAuthSock == "" {
		return nil, ErrAgentNotStarted
	}

	log.Debugf("connecting to SSH agent at %v", sshAuthSock)

	agentConn, err := net.DialTimeout("unix", sshAuthSock, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SSH socket: %w", err)
	}
	agentClient := agent.NewClient(agentConn)

	hostKeyCallback, err := knownhosts.New(knownHostsFiles(cfg)...)
	if err != nil {
		_ = agentConn.Close()
		return nil, fmt.Errorf("failed to create known hosts callback: %w", err)
	}

	log.Debugf("dialing %v", target)

	client, err := ssh.Dial("tcp", target.Address(), &ssh.ClientConfig{
		User:            target.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeysCallback(agentClient.Signers)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	})
	if err != nil {
		_ = agentConn.Close()
		return nil, fmt.Errorf("failed to connect to %v: %w", target, err)
	}

	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		_ = client.Close()
		_ = agentConn.Close()
		return nil, fmt.Errorf("failed to instantiate SFTP client: %w", err)
	}

	return &Connection{
		agentConn: agentConn,
		client:    client,
		sftp:      sftpClient,
		target:    target,
	}, nil
}

func (c *Connection) FS() filesystem.Filesystem {
	return filesystem.NewSFTPFilesystem(c.sftp)
}

func (c *Connection) Target() Target {
	return c.target
}

func (c *Connection) Close() {
	_ = c.sftp.Close()
	_ = c.client.Close()
	_ = c.agentConn.Close()
}

// Fill in anything the target does not specify from the matching
// Host block in an ssh_config(5) file. Explicit values always win.
func resolveFromConfig(target Target, configFile string) (Target, error) {
	f, err := os.Open(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return target, nil
		}
		return target, err
	}
	defer func() { _ = f.Close() }()

	cfg, err := ssh_config.Decode(f)
	if err != nil {
		return target, err
	}

	alias := target.Host

	if hostname, _ := cfg.Get(alias, "HostName"); hostname != "" {
		target.Host = strings.ReplaceAll(hostname, "%h", alias)
	}

	if target.User == "" {
		if u, _ := cfg.Get(alias, "User"); u != "" {
			target.User = u
		}
	}

	if target.Port == 0 {
		if p, _ := cfg.Get(alias, "Port"); p != "" {
			port, err := parsePort(p)
			if err != nil {
				return target, fmt.Errorf("invalid port for host %v: %w", alias, err)
			}
			target.Port = port
		}
	}

	return target, nil
}

func knownHostsFiles(cfg settings.SSHSettings) []string {
	if len(cfg.KnownHostsFiles) > 0 {
		return cfg.KnownHostsFiles
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	return []string{filepath.Join(home, UserKnownHostsFile)}
}

func currentUsername() string {
	if current, err := user.Current(); err == nil {
		return current.Username
	}
	return os.Getenv("USER")
}
