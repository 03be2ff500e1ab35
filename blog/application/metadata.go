package application

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/devchandra/devsite/blog/domain"
)

// Front-matter keys read from each document.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldDate        = "date"
	fieldUpdated     = "updated"
	fieldCategory    = "category"
	fieldTags        = "tags"
	fieldImage       = "image"
	fieldDraft       = "draft"
)

// postFromMetadata applies the typed extraction rules to a loosely typed
// front-matter map. Every field has an explicit default.
func postFromMetadata(key string, meta map[string]any, body []byte) domain.Post {
	return domain.Post{
		Key:           key,
		Title:         stringField(meta, fieldTitle, key),
		Description:   stringField(meta, fieldDescription, ""),
		PublishedDate: stringField(meta, fieldDate, ""),
		UpdatedDate:   stringField(meta, fieldUpdated, ""),
		Category:      stringField(meta, fieldCategory, domain.DefaultCategory),
		Tags:          tagsField(meta, fieldTags),
		Image:         stringField(meta, fieldImage, ""),
		ReadingTime:   EstimateReadTime(body).Text,
		Draft:         boolField(meta, fieldDraft),
	}
}

func stringField(meta map[string]any, name string, fallback string) string {
	s, ok := scalarString(meta[name])
	if !ok || s == "" {
		return fallback
	}
	return s
}

func tagsField(meta map[string]any, name string) []string {
	tags := make([]string, 0)

	switch v := meta[name].(type) {
	case []any:
		for _, item := range v {
			if s, ok := scalarString(item); ok && s != "" {
				tags = append(tags, s)
			}
		}
	case []string:
		for _, item := range v {
			if s := strings.TrimSpace(item); s != "" {
				tags = append(tags, s)
			}
		}
	case string:
		for _, item := range strings.Split(v, ",") {
			if s := strings.TrimSpace(item); s != "" {
				tags = append(tags, s)
			}
		}
	}

	return tags
}

func boolField(meta map[string]any, name string) bool {
	switch v := meta[name].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1":
			return true
		}
	}
	return false
}

// scalarString renders a single front-matter value as text. Maps, sequences
// and nil are not scalars.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case time.Time:
		return domain.FormatDate(t), true
	case bool:
		return strconv.FormatBool(t), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(t), true
	case fmt.Stringer:
		// TOML local dates and times
		return strings.TrimSpace(t.String()), true
	}
	return "", false
}
