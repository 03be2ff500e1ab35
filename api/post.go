package api

import (
	"github.com/devchandra/devsite/blog/domain"
	"github.com/devchandra/devsite/blog/seo"
)

type Post struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Updated     string   `json:"updated,omitempty"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image,omitempty"`
	ReadingTime string   `json:"readingTime"`
	Draft       bool     `json:"draft,omitempty"`
}

type PostList struct {
	Posts []Post `json:"posts"`
	Count int    `json:"count"`
}

type CategoryList struct {
	Categories []string `json:"categories"`
}

type PostDetail struct {
	Meta     Post         `json:"meta"`
	Content  string       `json:"content"`
	Metadata seo.Metadata `json:"metadata"`
	JSONLD   seo.Article  `json:"jsonLd"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func FromPost(p domain.Post) Post {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return Post{
		Slug:        p.Key,
		Title:       p.Title,
		Description: p.Description,
		Date:        p.PublishedDate,
		Updated:     p.UpdatedDate,
		Category:    p.Category,
		Tags:        tags,
		Image:       p.Image,
		ReadingTime: p.ReadingTime,
		Draft:       p.Draft,
	}
}

func NewPostList(posts []domain.Post) PostList {
	list := PostList{
		Posts: make([]Post, 0, len(posts)),
		Count: len(posts),
	}
	for _, p := range posts {
		list.Posts = append(list.Posts, FromPost(p))
	}
	return list
}

func NewCategoryList(categories []string) CategoryList {
	if categories == nil {
		categories = []string{}
	}
	return CategoryList{Categories: categories}
}

// NewPostDetail bundles a post with its body and the metadata a page needs to render it.
func NewPostDetail(p *domain.PostContent) PostDetail {
	return PostDetail{
		Meta:     FromPost(p.Post),
		Content:  string(p.Body),
		Metadata: seo.PostMetadata(p.Post),
		JSONLD:   seo.ArticleJSONLD(p.Post),
	}
}
