// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"mime"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/talentflow/internal/pool"
	"github.com/go-a2a/talentflow/types"
)

// Message roles of a [Rendered] prompt.
const (
	RoleSystem = types.RoleSystem
	RoleUser   = types.RoleUser
	RoleModel  = types.RoleModel
)

// Media is a reference to a multimodal attachment.
type Media struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
}

// NewMedia returns a [Media], taking the content type from a data URI when contentType is empty.
// The payload is never decoded.
func NewMedia(url, contentType string) *Media {
	if contentType == "" {
		contentType = DataURIContentType(url)
	}
	return &Media{URL: url, ContentType: contentType}
}

// DataURIContentType returns the media type declared by a data URI, or "" when uri is not a
// data URI.
func DataURIContentType(uri string) string {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return ""
	}
	header, _, ok := strings.Cut(rest, ",")
	if !ok {
		return ""
	}
	header = strings.TrimSuffix(header, ";base64")
	if header == "" {
		return "text/plain"
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return mt
}

// Message is one turn of a [Rendered] prompt. Exactly one of Text and Media is set.
type Message struct {
	Role  string `json:"role"`
	Text  string `json:"text,omitempty"`
	Media *Media `json:"media,omitempty"`
}

// Rendered is the output of rendering a template.
type Rendered struct {
	Messages []*Message `json:"messages"`
}

// NewRendered returns a [Rendered] made of the given messages.
func NewRendered(msgs ...*Message) *Rendered {
	return &Rendered{Messages: msgs}
}

// Text returns the text of every message, in order, separated by blank lines.
// Media parts are represented by their URL.
func (r *Rendered) Text() string {
	sb := pool.String.Get()
	defer pool.String.Put(sb)

	for i, m := range r.Messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if m.Media != nil {
			sb.WriteString(m.Media.URL)
			continue
		}
		sb.WriteString(m.Text)
	}
	return sb.String()
}

// System returns the text of the system messages.
func (r *Rendered) System() string {
	var parts []string
	for _, m := range r.Messages {
		if m.Role == RoleSystem && m.Text != "" {
			parts = append(parts, m.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Contents converts the non-system messages into genai contents, merging consecutive parts of
// the same role into one content.
func (r *Rendered) Contents() []*genai.Content {
	var contents []*genai.Content
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			continue
		}
		var part *genai.Part
		if m.Media != nil {
			part = genai.NewPartFromURI(m.Media.URL, m.Media.ContentType)
		} else {
			part = genai.NewPartFromText(m.Text)
		}
		if n := len(contents); n > 0 && contents[n-1].Role == m.Role {
			contents[n-1].Parts = append(contents[n-1].Parts, part)
			continue
		}
		contents = append(contents, &genai.Content{Role: m.Role, Parts: []*genai.Part{part}})
	}
	return contents
}

// appendText appends text to the last message when it has the same role and is textual.
func (r *Rendered) appendText(role, text string) {
	if n := len(r.Messages); n > 0 {
		last := r.Messages[n-1]
		if last.Role == role && last.Media == nil {
			last.Text += text
			return
		}
	}
	r.Messages = append(r.Messages, &Message{Role: role, Text: text})
}
