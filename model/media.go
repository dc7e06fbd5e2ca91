// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"google.golang.org/genai"
)

// ErrInvalidDataURI indicates a malformed data URI attachment.
var ErrInvalidDataURI = errors.New("invalid data URI")

// DataURI is a decoded RFC 2397 data URI.
type DataURI struct {
	MIMEType string
	// Base64 is the payload in standard base64 encoding.
	Base64 string
}

// ParseDataURI parses uri without decoding a base64 payload.
func ParseDataURI(uri string) (*DataURI, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: missing data: scheme", ErrInvalidDataURI)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}

	mimeType, isBase64 := strings.CutSuffix(header, ";base64")
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	if mimeType == "" {
		mimeType = "text/plain"
	}

	if isBase64 {
		return &DataURI{MIMEType: mimeType, Base64: payload}, nil
	}
	raw, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}
	return &DataURI{MIMEType: mimeType, Base64: base64.StdEncoding.EncodeToString([]byte(raw))}, nil
}

// Bytes decodes the payload.
func (d *DataURI) Bytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(d.Base64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}
	return b, nil
}

// inlineDataURIs returns a copy of contents where file parts referencing data URIs are replaced
// by inline data parts.
func inlineDataURIs(contents []*genai.Content) ([]*genai.Content, error) {
	out := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		if c == nil {
			continue
		}
		nc := &genai.Content{Role: c.Role, Parts: make([]*genai.Part, 0, len(c.Parts))}
		for _, p := range c.Parts {
			if p == nil {
				continue
			}
			if p.FileData == nil || !strings.HasPrefix(p.FileData.FileURI, "data:") {
				nc.Parts = append(nc.Parts, p)
				continue
			}
			d, err := ParseDataURI(p.FileData.FileURI)
			if err != nil {
				return nil, err
			}
			data, err := d.Bytes()
			if err != nil {
				return nil, err
			}
			mimeType := p.FileData.MIMEType
			if mimeType == "" {
				mimeType = d.MIMEType
			}
			nc.Parts = append(nc.Parts, genai.NewPartFromBytes(data, mimeType))
		}
		out = append(out, nc)
	}
	return out, nil
}
