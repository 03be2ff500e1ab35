// Package seo derives page metadata, structured data and sitemap entries
// from post records. Output is plain data; rendering is left to the caller.
package seo

import (
	"strings"

	"github.com/devchandra/devsite/blog/domain"
)

const (
	SiteURL  = "https://devchandra.com"
	SiteName = "Dev Chandra"

	DefaultTitle       = SiteName + " — Entrepreneur, Navy Officer, Builder"
	TitleTemplate      = "%s | " + SiteName
	DefaultDescription = "Dev Chandra — Entrepreneur, Navy Officer, Builder. Book summaries, productivity frameworks, and lessons from building startups."

	twitterCard    = "summary_large_image"
	twitterCreator = "@devchandra"
	schemaContext  = "https://schema.org"
)

// Metadata is the head metadata of a single page.
type Metadata struct {
	Title         string    `json:"title"`
	TitleTemplate string    `json:"titleTemplate,omitempty"`
	Description   string    `json:"description"`
	OpenGraph     OpenGraph `json:"openGraph"`
	Twitter       Twitter   `json:"twitter"`
	Robots        *Robots   `json:"robots,omitempty"`
	Canonical     string    `json:"canonical"`
}

type OpenGraph struct {
	Type          string   `json:"type"`
	Locale        string   `json:"locale,omitempty"`
	URL           string   `json:"url"`
	SiteName      string   `json:"siteName,omitempty"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PublishedTime string   `json:"publishedTime,omitempty"`
	ModifiedTime  string   `json:"modifiedTime,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Images        []Image  `json:"images,omitempty"`
}

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Twitter struct {
	Card        string `json:"card"`
	Creator     string `json:"creator,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type Robots struct {
	Index     bool      `json:"index"`
	Follow    bool      `json:"follow"`
	GoogleBot GoogleBot `json:"googleBot"`
}

type GoogleBot struct {
	Index           bool   `json:"index"`
	Follow          bool   `json:"follow"`
	MaxVideoPreview int    `json:"max-video-preview"`
	MaxImagePreview string `json:"max-image-preview"`
	MaxSnippet      int    `json:"max-snippet"`
}

// Article is the schema.org Article structured data of a post.
type Article struct {
	Context          string  `json:"@context"`
	Type             string  `json:"@type"`
	Headline         string  `json:"headline"`
	Description      string  `json:"description"`
	DatePublished    string  `json:"datePublished"`
	DateModified     string  `json:"dateModified"`
	Author           Person  `json:"author"`
	Publisher        Person  `json:"publisher"`
	MainEntityOfPage WebPage `json:"mainEntityOfPage"`
	Image            string  `json:"image,omitempty"`
	Keywords         string  `json:"keywords"`
}

type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type WebPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

// CanonicalURL returns the public URL of the post with the given key.
func CanonicalURL(key string) string {
	return SiteURL + "/blog/" + key
}

// PostTitle is the display title of a post, marked with its update date when it has one.
func PostTitle(post domain.Post) string {
	if post.IsUpdated() {
		return post.Title + " (Updated " + post.UpdatedDate + ")"
	}
	return post.Title
}

// SiteMetadata returns the defaults shared by every page of the site.
func SiteMetadata() Metadata {
	return Metadata{
		Title:         DefaultTitle,
		TitleTemplate: TitleTemplate,
		Description:   DefaultDescription,
		OpenGraph: OpenGraph{
			Type:        "website",
			Locale:      "en_US",
			URL:         SiteURL,
			SiteName:    SiteName,
			Title:       SiteName,
			Description: DefaultDescription,
		},
		Twitter: Twitter{
			Card:    twitterCard,
			Creator: twitterCreator,
		},
		Robots: &Robots{
			Index:  true,
			Follow: true,
			GoogleBot: GoogleBot{
				Index:           true,
				Follow:          true,
				MaxVideoPreview: -1,
				MaxImagePreview: "large",
				MaxSnippet:      -1,
			},
		},
		Canonical: SiteURL,
	}
}

// PostMetadata returns the page metadata of a single post.
func PostMetadata(post domain.Post) Metadata {
	url := CanonicalURL(post.Key)
	title := PostTitle(post)

	var images []Image
	if post.Image != "" {
		images = []Image{{URL: post.Image, Alt: post.Title}}
	}

	return Metadata{
		Title:       title,
		Description: post.Description,
		OpenGraph: OpenGraph{
			Type:          "article",
			URL:           url,
			Title:         title,
			Description:   post.Description,
			PublishedTime: post.PublishedDate,
			ModifiedTime:  post.LastModified(),
			Authors:       []string{SiteName},
			Tags:          post.Tags,
			Images:        images,
		},
		Twitter: Twitter{
			Card:        twitterCard,
			Title:       title,
			Description: post.Description,
		},
		Canonical: url,
	}
}

// ArticleJSONLD returns the Article structured data of a post.
func ArticleJSONLD(post domain.Post) Article {
	author := Person{Type: "Person", Name: SiteName, URL: SiteURL}

	return Article{
		Context:       schemaContext,
		Type:          "Article",
		Headline:      post.Title,
		Description:   post.Description,
		DatePublished: post.PublishedDate,
		DateModified:  post.LastModified(),
		Author:        author,
		Publisher:     author,
		MainEntityOfPage: WebPage{
			Type: "WebPage",
			ID:   CanonicalURL(post.Key),
		},
		Image:    post.Image,
		Keywords: strings.Join(post.Tags, ", "),
	}
}
