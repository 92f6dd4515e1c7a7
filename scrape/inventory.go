package scrape

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// inventoryEntry is one record from a Sphinx objects.inv file.
type inventoryEntry struct {
	Name     string
	Role     string // "domain:role", e.g. "py:function"
	URI      string
	DispName string
}

// inventoryHeader marks a Sphinx object inventory. Both v1 and v2
// files start with it (the version 2 payload is zlib-compressed, but
// the header lines are plain text).
const inventoryHeader = "# Sphinx inventory version"

// looksLikeInventory sniffs whether a response body is a Sphinx object
// inventory.
func looksLikeInventory(body []byte) bool {
	return bytes.HasPrefix(body, []byte(inventoryHeader))
}

// inventoryLine matches one v2 record: name, domain:role, priority,
// uri, dispname. Names may contain spaces, so the name match is lazy.
var inventoryLine = regexp.MustCompile(`^(.+?)\s+(\S+)\s+(-?\d+)\s+(\S+)\s+(.*)$`)

// parseInventory decodes a Sphinx objects.inv payload. Version 2
// bodies are zlib-compressed after four plain-text header lines;
// uncompressed variants are accepted too.
func parseInventory(data []byte) ([]inventoryEntry, error) {
	r := bufio.NewReader(bytes.NewReader(data))

	version, err := readInventoryVersion(r)
	if err != nil {
		return nil, err
	}
	if version != 2 {
		return nil, fmt.Errorf("unsupported inventory version %d", version)
	}

	// Skip the Project and Version header lines.
	for i := 0; i < 2; i++ {
		if _, err := r.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("truncated inventory header: %w", err)
		}
	}

	compressed, err := r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("truncated inventory header: %w", err)
	}

	var payload io.Reader = r
	if strings.Contains(compressed, "zlib") {
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("decompressing inventory: %w", err)
		}
		defer zr.Close()
		payload = zr
	}

	var entries []inventoryEntry
	scanner := bufio.NewScanner(payload)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := inventoryLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		name, role, uri, disp := m[1], m[2], m[4], m[5]

		// A "$" URI suffix abbreviates the object name.
		uri = strings.TrimSuffix(uri, "$")
		if strings.HasSuffix(m[4], "$") {
			uri += name
		}
		// "-" means the display name equals the object name.
		if disp == "-" {
			disp = name
		}

		entries = append(entries, inventoryEntry{
			Name:     name,
			Role:     role,
			URI:      uri,
			DispName: disp,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading inventory records: %w", err)
	}

	if len(entries) == 0 {
		return nil, errors.New("inventory contains no records")
	}
	return entries, nil
}

// readInventoryVersion parses the "# Sphinx inventory version N" line.
func readInventoryVersion(r *bufio.Reader) (int, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, errors.New("missing inventory header")
	}
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, inventoryHeader) {
		return 0, errors.New("not a Sphinx inventory")
	}

	var version int
	if _, err := fmt.Sscanf(line, "# Sphinx inventory version %d", &version); err != nil {
		return 0, errors.New("malformed inventory version line")
	}
	return version, nil
}
