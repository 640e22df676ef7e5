package webopt

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ContentKind selects the minification rules for a file
type ContentKind int

const (
	// KindOpaque files are compressed without minification
	KindOpaque ContentKind = iota
	KindMarkup
	KindStylesheet
	KindScript
)

func (k ContentKind) String() string {
	switch k {
	case KindMarkup:
		return "markup"
	case KindStylesheet:
		return "stylesheet"
	case KindScript:
		return "script"
	default:
		return "opaque"
	}
}

// MarshalText lets kinds appear by name in YAML manifests and config files.
func (k ContentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ContentKind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

var kindNames = map[string]ContentKind{
	"markup":     KindMarkup,
	"html":       KindMarkup,
	"stylesheet": KindStylesheet,
	"css":        KindStylesheet,
	"script":     KindScript,
	"js":         KindScript,
	"opaque":     KindOpaque,
	"none":       KindOpaque,
}

// ParseKind parses a kind name such as "markup" or its short form "html".
func ParseKind(s string) (ContentKind, error) {
	if kind, ok := kindNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return kind, nil
	}
	return KindOpaque, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

var extensionKinds = map[string]ContentKind{
	".html": KindMarkup,
	".htm":  KindMarkup,
	".css":  KindStylesheet,
	".js":   KindScript,
	".mjs":  KindScript,
	".cjs":  KindScript,
}

// KindFromName infers the content kind from a file extension.
func KindFromName(name string) ContentKind {
	return extensionKinds[strings.ToLower(filepath.Ext(name))]
}

// Entry is one file to process, relative to the asset directory
type Entry struct {
	Name string      `yaml:"name"`
	Kind ContentKind `yaml:"kind"`
}

// EntryFor builds an entry whose kind is inferred from the name.
func EntryFor(name string) Entry {
	return Entry{Name: name, Kind: KindFromName(name)}
}

// ParseEntry parses "name" or "name=kind".
func ParseEntry(s string) (Entry, error) {
	name, kind, ok := strings.Cut(s, "=")
	if !ok {
		return EntryFor(strings.TrimSpace(s)), nil
	}
	k, err := ParseKind(kind)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: strings.TrimSpace(name), Kind: k}, nil
}

// DefaultEntries is the stock asset list of a small static site.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "index.html", Kind: KindMarkup},
		{Name: "success.html", Kind: KindMarkup},
		{Name: "style.css", Kind: KindStylesheet},
		{Name: "script.js", Kind: KindScript},
	}
}
