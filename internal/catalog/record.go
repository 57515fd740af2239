package catalog

import "time"

// Record is one raw page from the external document database. Property
// names and shapes vary per catalog (they are edited by hand, in whatever
// locale the owner uses), so everything beyond the envelope is optional.
type Record struct {
	ID             string              `json:"id"`
	CreatedTime    time.Time           `json:"created_time"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Properties     map[string]Property `json:"properties"`
}

// Property is a tagged union over the value shapes the document database
// exposes. Type names the populated branch; all other branches stay zero.
type Property struct {
	ID       string        `json:"id,omitempty"`
	Type     string        `json:"type"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Number   *float64      `json:"number,omitempty"`
	Checkbox *bool         `json:"checkbox,omitempty"`
	Files    []FileRef     `json:"files,omitempty"`
}

// RichText is one fragment of a title or rich_text value. Only the plain
// text matters to the storefront.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is the chosen label of a single-select property.
type SelectOption struct {
	Name string `json:"name"`
}

// FileRef is one attachment: either an externally hosted link or a file
// hosted by the catalog service itself.
type FileRef struct {
	Type     string    `json:"type"`
	External *FileLink `json:"external,omitempty"`
	File     *FileLink `json:"file,omitempty"`
}

// FileLink carries the URL of an attachment.
type FileLink struct {
	URL string `json:"url"`
}

// Database describes the remote collection itself: its identity and the
// schema of its properties. Used by the diagnostic path only.
type Database struct {
	ID             string              `json:"id"`
	CreatedTime    time.Time           `json:"created_time"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Title          []RichText          `json:"title,omitempty"`
	Properties     map[string]Property `json:"properties"`
}
