// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"regexp"
	"strings"
)

// Pre-compiled regex patterns for JSON extraction from model responses.
var (
	// jsonBlockPattern matches JSON inside markdown code blocks: ```json { ... } ```
	jsonBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	// jsonObjectPattern matches any JSON object (greedy fallback).
	jsonObjectPattern = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
)

// ExtractJSON extracts a JSON object from model output text.
// It handles markdown code blocks, leading prose and trailing commas outside string values.
// It returns "" when the text holds no object.
func ExtractJSON(content string) string {
	raw := ""
	if matches := jsonBlockPattern.FindStringSubmatch(content); len(matches) > 1 {
		raw = matches[1]
	} else if match := jsonObjectPattern.FindString(content); match != "" {
		raw = match
	}
	if raw == "" {
		return ""
	}
	return stripTrailingCommas(strings.TrimSpace(raw))
}

// stripTrailingCommas drops the commas that directly precede a closing ] or }, leaving string
// values untouched.
func stripTrailingCommas(s string) string {
	var (
		sb       strings.Builder
		inString bool
		escaped  bool
	)
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			sb.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			if closesAfter(s[i+1:]) {
				continue
			}
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// closesAfter reports whether the first non-space byte of s closes an array or object.
func closesAfter(s string) bool {
	rest := strings.TrimLeft(s, " \t\r\n")
	return rest != "" && (rest[0] == '}' || rest[0] == ']')
}
