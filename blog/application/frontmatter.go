package application

import (
	"bytes"
	"maps"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const yamlDelimiter = "---"

var utf8BOM = []byte("\xef\xbb\xbf")

// splitFrontMatter separates a document into its front-matter fields and body.
// A document without front matter yields an empty map and the whole content as body.
// Front matter that fails to parse as a whole is recovered one entry at a time,
// so a single bad field never discards the others.
func splitFrontMatter(key string, content []byte) (map[string]any, []byte) {
	// neither parser sees the opening delimiter behind a byte-order mark
	content = bytes.TrimPrefix(content, utf8BOM)

	meta := make(map[string]any)
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err == nil {
		return meta, body
	}

	log.Warn().Err(err).Str("key", key).Msg("Malformed front matter, recovering fields individually")
	return recoverFrontMatter(key, content)
}

// recoverFrontMatter decodes a `---` delimited YAML block entry by entry.
func recoverFrontMatter(key string, content []byte) (map[string]any, []byte) {
	meta := make(map[string]any)

	lines := strings.SplitAfter(string(content), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != yamlDelimiter {
		return meta, content
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == yamlDelimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return meta, content
	}

	for _, entry := range frontMatterEntries(lines[1:end]) {
		var field map[string]any
		if err := yaml.Unmarshal([]byte(entry), &field); err != nil {
			log.Debug().Err(err).Str("key", key).Str("entry", strings.TrimSpace(entry)).Msg("Dropping unparseable front matter entry")
			continue
		}
		maps.Copy(meta, field)
	}

	return meta, []byte(strings.Join(lines[end+1:], ""))
}

// frontMatterEntries groups YAML lines into top-level entries. An entry starts
// on an unindented line and owns every following indented, list or blank line.
func frontMatterEntries(lines []string) []string {
	var entries []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			entries = append(entries, current.String())
			current.Reset()
		}
	}

	for _, line := range lines {
		if startsEntry(line) {
			flush()
		}
		current.WriteString(line)
	}
	flush()

	return entries
}

func startsEntry(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	switch line[0] {
	case ' ', '\t', '-', '#':
		return false
	}
	return true
}
