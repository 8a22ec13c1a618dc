package ssh

import (
	"errors"
	"fmt"
	"maps"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kevinburke/hostsfile/lib"
	"github.com/kevinburke/ssh_config"
	"github.com/linkfarm/linkfarm/internal/settings"
	"golang.org/x/crypto/ssh"
)

const (
	HostsFile        = "/etc/hosts"
	HostsFileMaxSize = 1 << 20

	SystemConfigFile     = "/etc/ssh/ssh_config"
	SystemKnownHostsFile = "/etc/ssh/ssh_known_hosts"

	hostPatternChars = "*?!"
)

// Get a sorted, deduplicated list of host names for completion from:
// - the hosts file, if enabled
// - Host blocks of the system and user SSH config files
// - the system and configured known_hosts files
//
// Missing files are skipped. A file that cannot be parsed does not
// stop the others from being read; its error is joined into the
// returned error alongside the hosts that were found.
func KnownHostNames(cfg settings.SSHSettings) ([]string, error) {
	hosts := make(map[string]struct{})
	var errs []error

	collect := func(path string, add func(string, map[string]struct{}) error) {
		if err := add(path, hosts); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("%v: %w", path, err))
		}
	}

	if cfg.HostsFileCompletion {
		collect(HostsFile, addHostsFileHosts)
	}

	collect(SystemConfigFile, addConfigHosts)
	if f := sshConfigFile(cfg); f != "" {
		collect(f, addConfigHosts)
	}

	collect(SystemKnownHostsFile, addKnownHosts)
	for _, f := range knownHostsFiles(cfg) {
		collect(f, addKnownHosts)
	}

	return slices.Sorted(maps.Keys(hosts)), errors.Join(errs...)
}

// The ssh_config(5) file to resolve aliases from, or an
// empty string if none can be determined.
func sshConfigFile(cfg settings.SSHSettings) string {
	if cfg.ConfigFile != "" {
		return cfg.ConfigFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigFile)
}

func addHostsFileHosts(path string, hosts map[string]struct{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	// Large hosts files are usually blocklists.
	info, err := f.Stat()
	if err != nil {
		return err
	} else if info.Size() > HostsFileMaxSize {
		return nil
	}

	h, err := hostsfile.Decode(f)
	if err != nil {
		return err
	}

	for _, record := range h.Records() {
		if record.IpAddress.IP.IsUnspecified() {
			continue
		}
		for name := range record.Hostnames {
			hosts[name] = struct{}{}
		}
	}

	return nil
}

func addConfigHosts(path string, hosts map[string]struct{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	cfg, err := ssh_config.Decode(f)
	if err != nil {
		return err
	}

	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			name := pattern.String()
			if name == "" || strings.ContainsAny(name, hostPatternChars) {
				continue
			}
			hosts[name] = struct{}{}
		}
	}

	return nil
}

func addKnownHosts(path string, hosts map[string]struct{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	rest := data
	for len(rest) > 0 {
		var marker string
		var names []string

		// io.EOF once no entries are left. A malformed line also
		// ends the scan, keeping what was found before it.
		marker, names, _, _, rest, err = ssh.ParseKnownHosts(rest)
		if err != nil {
			break
		}

		if marker == "revoked" {
			continue
		}

		for _, name := range names {
			if name = knownHostName(name); name != "" {
				hosts[name] = struct{}{}
			}
		}
	}

	return nil
}

// Strip the port from `[host]:port` entries. Hashed and
// wildcard entries yield an empty string.
func knownHostName(entry string) string {
	if strings.HasPrefix(entry, "|") || strings.ContainsAny(entry, hostPatternChars) {
		return ""
	}

	if strings.HasPrefix(entry, "[") {
		host, _, err := net.SplitHostPort(entry)
		if err != nil {
			return ""
		}
		return host
	}

	return entry
}
