package fs

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/margin/pkg/anchor"
	"github.com/aretw0/margin/pkg/core"
)

// parseNote decodes a Markdown file with optional YAML frontmatter into
// the note's Metadata and Content. Comments and the revision counter live
// in the sidecar, not here.
func parseNote(data []byte) (core.Metadata, string, error) {
	meta := make(core.Metadata)

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return meta, string(data), nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return nil, "", errors.New("frontmatter started but no closing delimiter found")
	}

	if err := yaml.Unmarshal(parts[0], &meta); err != nil {
		return nil, "", fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	content := strings.TrimPrefix(string(parts[1]), "\n")
	content = strings.TrimPrefix(content, "\r\n")
	return meta, content, nil
}

// serializeNote is the inverse of parseNote.
func serializeNote(metadata core.Metadata, content string) ([]byte, error) {
	var buf bytes.Buffer

	if len(metadata) > 0 {
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(metadata); err != nil {
			return nil, err
		}
		encoder.Close()
		buf.WriteString("---\n")
	}

	buf.WriteString(content)
	return buf.Bytes(), nil
}

// sidecar is the on-disk shape of a note's comment state, persisted next
// to the note as <id>.comments.yaml.
type sidecar struct {
	Rev      int              `yaml:"rev"`
	Comments []anchor.Comment `yaml:"comments"`
}

// SidecarSuffix names the comment sidecar convention: <id>.comments.yaml
// next to <id>.md.
const SidecarSuffix = ".comments.yaml"

func parseSidecar(data []byte) (sidecar, error) {
	var sc sidecar
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sidecar{}, fmt.Errorf("failed to parse comment sidecar: %w", err)
	}
	return sc, nil
}

func serializeSidecar(sc sidecar) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(sc); err != nil {
		return nil, err
	}
	encoder.Close()
	return buf.Bytes(), nil
}
