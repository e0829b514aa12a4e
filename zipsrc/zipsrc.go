// Package zipsrc extracts a universe file and its optional sidecar
// metadata from a zip container. Universe files are sometimes shipped
// zipped alongside a UNW_Storage/ResourceHeader directory tree holding
// connection info, designer parameters, hidden-item ids, and resource
// descriptors; this package recovers what it can from that tree on a
// best-effort basis: a member that is missing or cannot be read is left at
// its zero value, with no error and no diagnostic.
package zipsrc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dpeckham/unvread/universe"
)

// ExtractUniverseFile opens zipData as a zip archive and returns the
// content of its first member ending in ".unv".
func ExtractUniverseFile(zipData []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return nil, fmt.Errorf("zipsrc: open archive: %w", err)
	}
	for _, f := range r.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".unv") {
			return readZipFile(f)
		}
	}
	return nil, fmt.Errorf("zipsrc: no .unv member found in archive")
}

// ExtractSidecar recovers best-effort UNW_Storage/ResourceHeader metadata
// from zipData. A member the tree expects to find but doesn't is simply
// left at its zero value; nothing here is treated as fatal.
func ExtractSidecar(zipData []byte) (*universe.Sidecar, error) {
	r, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return nil, fmt.Errorf("zipsrc: open archive: %w", err)
	}

	byName := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		byName[f.Name] = f
	}

	sc := &universe.Sidecar{
		ConnectionInfo:   map[string]string{},
		CustomParameters: map[string]string{},
		Descriptor:       map[string]string{},
	}

	if f, ok := byName["UNW_Storage/Connection/Connection"]; ok {
		if data, err := readZipFile(f); err == nil {
			sc.ConnectionInfo = extractKeyValuePairs(data)
		}
	}
	if f, ok := byName["UNW_Storage/Parameters/Parameters"]; ok {
		if data, err := readZipFile(f); err == nil {
			sc.CustomParameters = extractKeyValuePairs(data)
		}
	}
	if f, ok := byName["UNW_Storage/Hidden_Items/Hidden_Items"]; ok {
		if data, err := readZipFile(f); err == nil {
			sc.HiddenItemIDs = extractU32LEList(data)
		}
	}
	if f, ok := byName["ResourceHeader/Descriptor;"]; ok {
		if data, err := readZipFile(f); err == nil {
			sc.Descriptor = extractKeyValuePairs(data)
		}
	}

	return sc, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

var keyValuePattern = regexp.MustCompile(`([A-Z_]+)=([^=\r\n]+)`)

// extractKeyValuePairs recovers KEY=VALUE pairs from free-text binary
// data, the same pattern the original reader's connection/parameter
// scrapers use.
func extractKeyValuePairs(data []byte) map[string]string {
	out := map[string]string{}
	text := string(data)
	for _, m := range keyValuePattern.FindAllStringSubmatch(text, -1) {
		out[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
	}
	return out
}

// extractU32LEList reads data as a flat sequence of little-endian u32
// ids, truncating to the last complete 4-byte group.
func extractU32LEList(data []byte) []uint32 {
	n := len(data) / 4
	ids := make([]uint32, 0, n)
	for i := 0; i < n; i++ {
		b := data[i*4 : i*4+4]
		ids = append(ids, uint32(b[0])|uint32(b[1])<<8|uint32(b[2])<<16|uint32(b[3])<<24)
	}
	return ids
}
