package seo

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/devchandra/devsite/blog/domain"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry is one URL of the sitemap. LastModified holds a date as
// written in front matter and may be empty or unparseable.
type SitemapEntry struct {
	URL             string  `json:"url"`
	LastModified    string  `json:"lastModified,omitempty"`
	ChangeFrequency string  `json:"changeFrequency"`
	Priority        float64 `json:"priority"`
}

// Sitemap lists the static pages, stamped with now, followed by every post in the given order.
func Sitemap(posts []domain.Post, now time.Time) []SitemapEntry {
	stamp := domain.FormatDate(now)

	entries := []SitemapEntry{
		{URL: SiteURL, LastModified: stamp, ChangeFrequency: "weekly", Priority: 1},
		{URL: SiteURL + "/blog", LastModified: stamp, ChangeFrequency: "weekly", Priority: 0.9},
		{URL: SiteURL + "/about", LastModified: stamp, ChangeFrequency: "monthly", Priority: 0.5},
	}

	for _, post := range posts {
		entries = append(entries, SitemapEntry{
			URL:             CanonicalURL(post.Key),
			LastModified:    post.LastModified(),
			ChangeFrequency: "monthly",
			Priority:        0.8,
		})
	}

	return entries
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []urlTag `xml:"url"`
}

type urlTag struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// WriteSitemapXML encodes entries as a sitemaps.org urlset. Dates that do not
// parse are left out of lastmod.
func WriteSitemapXML(w io.Writer, entries []SitemapEntry) error {
	set := urlSet{
		Xmlns: sitemapNamespace,
		URLs:  make([]urlTag, 0, len(entries)),
	}

	for _, e := range entries {
		tag := urlTag{
			Loc:        e.URL,
			ChangeFreq: e.ChangeFrequency,
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		}
		if t, ok := domain.ParseDate(e.LastModified); ok {
			tag.LastMod = domain.FormatDate(t)
		}
		set.URLs = append(set.URLs, tag)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write sitemap header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}

	return nil
}
