// Package frontmatter reads and writes Markdown documents that carry a YAML
// header between two "---" lines.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrNoFrontmatter is returned by Decode when data has no YAML header.
var ErrNoFrontmatter = errors.New("invalid frontmatter format")

// Encode renders meta as a YAML header followed by body.
func Encode(meta any, body string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(delimiter + "\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(meta); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(body)

	return buf.Bytes(), nil
}

// Decode parses the YAML header of data into meta and returns the trimmed body.
// Only a closing delimiter on its own line ends the header, so bodies may
// contain "---" freely.
func Decode(data []byte, meta any) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	if !bytes.HasPrefix(data, []byte(delimiter+"\n")) {
		return "", ErrNoFrontmatter
	}
	rest := data[len(delimiter)+1:]

	var header, body []byte
	switch {
	case bytes.HasPrefix(rest, []byte(delimiter+"\n")), bytes.Equal(rest, []byte(delimiter)):
		header = nil
		body = bytes.TrimPrefix(rest, []byte(delimiter))
	default:
		end := bytes.Index(rest, []byte("\n"+delimiter+"\n"))
		if end < 0 {
			if !bytes.HasSuffix(rest, []byte("\n"+delimiter)) {
				return "", ErrNoFrontmatter
			}
			end = len(rest) - len(delimiter) - 1
		}
		header = rest[:end]
		body = rest[min(end+len(delimiter)+2, len(rest)):]
	}

	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, meta); err != nil {
			return "", fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}

	return string(bytes.TrimSpace(body)), nil
}
