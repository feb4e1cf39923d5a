package search

import "encoding/json"

// Request is one search invocation. It is built once and never modified.
type Request struct {
	Query      string
	Region     string
	SafeSearch bool
	// Limit caps the number of results; zero means no limit
	Limit int
	// Operators is a pre-encoded fragment appended to the instant answer query
	Operators string
}

func (r Request) region() string {
	if r.Region == "" {
		return DefaultRegion
	}
	return r.Region
}

// InstantAnswer is the document returned by the instant answer API. Optional
// text fields are pointers so that a missing field can be told apart from an
// empty one.
type InstantAnswer struct {
	Abstract         *string         `json:"Abstract,omitempty"`
	AbstractSource   *string         `json:"AbstractSource,omitempty"`
	AbstractText     *string         `json:"AbstractText,omitempty"`
	AbstractURL      *string         `json:"AbstractURL,omitempty"`
	Answer           FlexValue       `json:"Answer"`
	AnswerType       *string         `json:"AnswerType,omitempty"`
	Definition       *string         `json:"Definition,omitempty"`
	DefinitionSource *string         `json:"DefinitionSource,omitempty"`
	DefinitionURL    *string         `json:"DefinitionURL,omitempty"`
	Entity           *string         `json:"Entity,omitempty"`
	Heading          *string         `json:"Heading,omitempty"`
	Image            *string         `json:"Image,omitempty"`
	ImageHeight      FlexValue       `json:"ImageHeight"`
	ImageIsLogo      FlexValue       `json:"ImageIsLogo"`
	ImageWidth       FlexValue       `json:"ImageWidth"`
	Infobox          json.RawMessage `json:"Infobox,omitempty"`
	Redirect         *string         `json:"Redirect,omitempty"`
	RelatedTopics    []Topic         `json:"RelatedTopics"`
	Results          []Topic         `json:"Results"`
	Type             string          `json:"Type"`
	ExampleQuery     *string         `json:"ExampleQuery,omitempty"`
	CreatedDate      *string         `json:"CreatedDate,omitempty"`
}

// Topic is a related topic entry. Category groups carry a Name and nested
// Topics instead of Text and FirstURL.
type Topic struct {
	FirstURL *string `json:"FirstURL,omitempty"`
	Icon     *Icon   `json:"Icon,omitempty"`
	Result   *string `json:"Result,omitempty"`
	Text     *string `json:"Text,omitempty"`
	URL      *string `json:"URL,omitempty"`
	Name     *string `json:"Name,omitempty"`
	Topics   []Topic `json:"Topics,omitempty"`
}

// Renderable reports whether the topic is a leaf result with display text.
func (t Topic) Renderable() bool {
	return t.Text != nil && *t.Text != ""
}

// Icon is the thumbnail attached to a topic. URL is a path relative to the
// site origin, often empty.
type Icon struct {
	Height FlexValue `json:"Height"`
	URL    string    `json:"URL"`
	Width  FlexValue `json:"Width"`
}

// LiteResult is one row scraped from the lite HTML page.
type LiteResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// ImageResult is one entry of the image search feed.
type ImageResult struct {
	Title     string `json:"title"`
	Image     string `json:"image"`
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url"`
	Height    int    `json:"height"`
	Width     int    `json:"width"`
	Source    string `json:"source"`
}

// NewsResult is one entry of the news search feed. Date is RFC 3339.
type NewsResult struct {
	Date   string  `json:"date"`
	Title  string  `json:"title"`
	Body   string  `json:"body"`
	URL    string  `json:"url"`
	Image  *string `json:"image,omitempty"`
	Source string  `json:"source"`
}
