// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/google/dotprompt/go/dotprompt"

	"github.com/go-a2a/talentflow/schema"
)

var (
	// fieldRe matches {{field}} and {{{field}}}.
	fieldRe = regexp.MustCompile(`\{\{\{?\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}?\}\}`)
	// mediaRe matches {{media url=field}} with an optional contentType argument.
	mediaRe = regexp.MustCompile(`\{\{\s*media\s+url\s*=\s*([A-Za-z_][A-Za-z0-9_]*)(?:\s+[^}]*)?\}\}`)
)

// keywords are bare Handlebars expressions that are not input fields.
var keywords = map[string]bool{
	"else": true,
	"this": true,
}

// Placeholder is a field reference found in a template.
type Placeholder struct {
	Name string
	// Media reports whether the field is bound by the media helper.
	Media bool
}

// Template is a compiled prompt template.
//
// A Template is safe for concurrent use once compiled.
type Template struct {
	name         string
	source       string
	render       dotprompt.PromptFunction
	placeholders []Placeholder
}

// Compile parses source into a [Template].
func Compile(name, source string) (*Template, error) {
	dp := dotprompt.NewDotprompt(&dotprompt.DotpromptOptions{})
	fn, err := dp.Compile(source, &dotprompt.PromptMetadata{})
	if err != nil {
		return nil, NewInvalidTemplateError(name, err)
	}

	return &Template{
		name:         name,
		source:       source,
		render:       fn,
		placeholders: extractPlaceholders(source),
	}, nil
}

// MustCompile is like [Compile] but panics if the template does not compile.
// It simplifies initialization of package-level templates.
func MustCompile(name, source string) *Template {
	t, err := Compile(name, source)
	if err != nil {
		panic(fmt.Sprintf("prompt: MustCompile(%q): %v", name, err))
	}
	return t
}

// Name returns the name of the template.
func (t *Template) Name() string { return t.name }

// Source returns the template text.
func (t *Template) Source() string { return t.source }

// Placeholders returns the distinct field references of the template in order of first use.
func (t *Template) Placeholders() []Placeholder {
	return slices.Clone(t.placeholders)
}

// Verify checks that every placeholder references a field declared by in, and that at most one
// media placeholder is used.
func (t *Template) Verify(in *schema.Schema) error {
	var media []string
	for _, p := range t.placeholders {
		if _, ok := in.Lookup(p.Name); !ok {
			return NewUnknownPlaceholderError(t.name, p.Name)
		}
		if p.Media {
			media = append(media, p.Name)
		}
	}
	if len(media) > 1 {
		return NewTooManyMediaError(t.name, media)
	}
	return nil
}

// Render fills the template from input.
func (t *Template) Render(input map[string]any) (*Rendered, error) {
	out, err := t.render(&dotprompt.DataArgument{Input: input}, &dotprompt.PromptMetadata{})
	if err != nil {
		return nil, NewRenderError(t.name, err)
	}

	r := &Rendered{}
	for _, msg := range out.Messages {
		role := string(msg.Role)
		if role == "" {
			role = RoleUser
		}
		for _, part := range msg.Content {
			switch p := part.(type) {
			case *dotprompt.TextPart:
				r.appendText(role, p.Text)
			case *dotprompt.MediaPart:
				r.Messages = append(r.Messages, &Message{
					Role:  role,
					Media: NewMedia(p.Media.URL, p.Media.ContentType),
				})
			}
		}
	}
	return r, nil
}

func extractPlaceholders(source string) []Placeholder {
	var out []Placeholder
	seen := make(map[string]bool)

	// Strip media expressions first so that their field is reported once, as media.
	for _, m := range mediaRe.FindAllStringSubmatch(source, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, Placeholder{Name: m[1], Media: true})
		}
	}
	rest := mediaRe.ReplaceAllString(source, "")
	for _, m := range fieldRe.FindAllStringSubmatch(rest, -1) {
		name := m[1]
		if keywords[name] || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Placeholder{Name: name})
	}

	// order of first use
	slices.SortStableFunc(out, func(a, b Placeholder) int {
		return firstIndex(source, a) - firstIndex(source, b)
	})
	return out
}

func firstIndex(source string, p Placeholder) int {
	re := fieldRe
	if p.Media {
		re = mediaRe
	}
	for _, loc := range re.FindAllStringSubmatchIndex(source, -1) {
		if source[loc[2]:loc[3]] == p.Name {
			return loc[0]
		}
	}
	return len(source)
}
