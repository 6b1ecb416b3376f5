package wanip

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultEndpoints is written to a missing endpoint list file.
var DefaultEndpoints = []string{
	"https://api.seeip.org",
	"https://api64.ipify.org",
}

// EndpointsFileName is the endpoint list's name inside the config directory.
const EndpointsFileName = "api_urls.txt"

// LoadEndpoints reads the ordered endpoint list at path, one URL per line.
// Blank lines and lines starting with '#' are skipped. If the file does not
// exist it is created with DefaultEndpoints and those are returned.
func LoadEndpoints(path string) ([]*url.URL, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeDefaults(path); err != nil {
			return nil, err
		}
		return parseLines(path, DefaultEndpoints)
	}
	if err != nil {
		return nil, fmt.Errorf("wanip: %w: failed to open %s: %w", ErrEndpointList, path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wanip: %w: failed to read %s: %w", ErrEndpointList, path, err)
	}
	return parseLines(path, lines)
}

func writeDefaults(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("wanip: %w: failed to create directory %s: %w", ErrEndpointList, dir, err)
		}
	}

	var b strings.Builder
	for _, u := range DefaultEndpoints {
		b.WriteString(u)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("wanip: %w: failed to write %s: %w", ErrEndpointList, path, err)
	}
	return nil
}

func parseLines(path string, lines []string) ([]*url.URL, error) {
	var urls []*url.URL
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		u, err := parseEndpoint(line)
		if err != nil {
			return nil, &URLParseError{Path: path, Line: i + 1, Value: line, Err: err}
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
	case schemeDNS:
		if u.Path == "" || u.Path == "/" {
			return nil, errors.New("dns endpoint needs a query name as its path")
		}
	case "":
		return nil, errors.New("URL must be absolute")
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("missing host")
	}
	return u, nil
}
