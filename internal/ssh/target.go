package ssh

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

const DefaultPort = 22

// Target is a remote host given as `[user@]host[:port]`, where host
// may be a bracketed IPv6 address or an alias from ssh_config(5).
// Zero values mean "not specified".
type Target struct {
	User string
	Host string
	Port int
}

var errPortRange = errors.New("port must be between 1-65535")

func ParseTarget(s string) (Target, error) {
	var t Target

	s = strings.TrimPrefix(s, "ssh://")

	if at := strings.LastIndex(s, "@"); at != -1 {
		t.User = s[:at]
		s = s[at+1:]
	}

	if s == "" {
		return t, fmt.Errorf("host cannot be empty")
	}

	if strings.ContainsAny(s, "[]") {
		host, rest, err := splitBracketedHost(s)
		if err != nil {
			return t, err
		}
		t.Host = host

		if rest != "" {
			if !strings.HasPrefix(rest, ":") {
				return t, fmt.Errorf("invalid host format")
			}
			if t.Port, err = parsePort(rest[1:]); err != nil {
				return t, err
			}
		}

		return t, nil
	}

	host, port, err := net.SplitHostPort(s)
	if err != nil {
		// No port, or a bare IPv6 address; both are taken as-is.
		t.Host = s
		return t, nil
	}

	t.Host = host
	if t.Port, err = parsePort(port); err != nil {
		return t, err
	}

	return t, nil
}

// Split `[host]rest`, requiring exactly one matched pair of
// brackets at the start of the string.
func splitBracketedHost(s string) (string, string, error) {
	if strings.Count(s, "[") != 1 || strings.Count(s, "]") != 1 {
		return "", "", fmt.Errorf("invalid IPv6 address format; mismatched or multiple brackets detected")
	}

	if !strings.HasPrefix(s, "[") {
		return "", "", fmt.Errorf("invalid IPv6 address format; missing [")
	}

	end := strings.Index(s, "]")
	if end == 1 {
		return "", "", fmt.Errorf("host cannot be empty")
	}

	return s[1:end], s[end+1:], nil
}

func parsePort(input string) (int, error) {
	p, err := strconv.ParseUint(input, 10, 16)
	if err != nil || p == 0 {
		return 0, errPortRange
	}

	return int(p), nil
}

func (t Target) Address() string {
	port := t.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(t.Host, strconv.Itoa(port))
}

func (t Target) String() string {
	if t.User == "" {
		return t.Address()
	}
	return t.User + "@" + t.Address()
}
