// Package procedure extracts stored-procedure parameter metadata embedded
// as XML fragments in the binary tail of the Tables; section (§4.6). Some
// universe files carry these fragments; most don't, so failure to find or
// parse one is never an error -- it just yields an empty result.
package procedure

import (
	"encoding/xml"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dpeckham/unvread/universe"
)

var procedurePattern = regexp.MustCompile(`(?s)<Procedure[^>]*>.*?</Procedure>`)

var manualNamePattern = regexp.MustCompile(`name="([^"]*)"`)
var manualParamPattern = regexp.MustCompile(`<Parameter\s+name="([^"]*)"[^>]*type="([^"]*)"[^>]*value="([^"]*)"`)

const extractConcurrency = 4

// Extract scans tail (the bytes remaining after the Tables; section's
// fixed header and table records) for <Procedure> fragments and returns a
// procedure-name to parameter-list map. tail is decoded as a lossless
// single-byte (latin-1-equivalent) mapping, since the embedded XML is not
// reliably UTF-8.
func Extract(tail []byte) map[string][]universe.ProcedureParameter {
	text := decodeLatin1(tail)
	matches := procedurePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return map[string][]universe.ProcedureParameter{}
	}

	type found struct {
		name   string
		params []universe.ProcedureParameter
	}

	eg := errgroup.Group{}
	eg.SetLimit(extractConcurrency)
	results := make([]found, len(matches))
	for i := range matches {
		i := i
		eg.Go(func() error {
			name, params := parseProcedure(matches[i])
			results[i] = found{name: name, params: params}
			return nil
		})
	}
	_ = eg.Wait()

	out := make(map[string][]universe.ProcedureParameter, len(results))
	for _, r := range results {
		if len(r.params) == 0 {
			continue
		}
		out[r.name] = r.params
	}
	return out
}

// parseProcedure decodes one <Procedure>...</Procedure> fragment, trying a
// real XML parse first and falling back to regex extraction when the
// fragment isn't well-formed XML.
func parseProcedure(raw string) (string, []universe.ProcedureParameter) {
	cleaned := strings.ReplaceAll(raw, "&quot;", `"`)

	var parsed procedureElement
	if err := xml.Unmarshal([]byte(cleaned), &parsed); err == nil {
		name := parsed.Name
		if name == "" {
			name = "Unknown"
		}
		params := make([]universe.ProcedureParameter, 0, len(parsed.Parameters))
		for _, p := range parsed.Parameters {
			params = append(params, universe.ProcedureParameter{Name: p.Name, Type: p.Type, Value: p.Value})
		}
		return name, params
	}

	return parseProcedureManual(raw)
}

type procedureElement struct {
	XMLName    xml.Name `xml:"Procedure"`
	Name       string   `xml:"name,attr"`
	Parameters []struct {
		Name  string `xml:"name,attr"`
		Type  string `xml:"type,attr"`
		Value string `xml:"value,attr"`
	} `xml:"Parameter"`
}

func parseProcedureManual(raw string) (string, []universe.ProcedureParameter) {
	name := "Unknown"
	if m := manualNamePattern.FindStringSubmatch(raw); m != nil {
		name = m[1]
	}

	var params []universe.ProcedureParameter
	for _, m := range manualParamPattern.FindAllStringSubmatch(raw, -1) {
		params = append(params, universe.ProcedureParameter{Name: m[1], Type: m[2], Value: m[3]})
	}
	return name, params
}

// decodeLatin1 maps each input byte directly to the Unicode code point of
// the same value, the lossless byte-preserving decode the original
// implementation relies on for XML fragments of uncertain encoding.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
