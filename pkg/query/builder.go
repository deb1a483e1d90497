// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds and checks SciX query strings.
//
// Builder assembles field clauses and boolean operators in order; Validate
// catches the syntax mistakes the search service would otherwise reject
// with an unhelpful 400.
package query

import (
	"fmt"
	"strings"
)

// Builder accumulates query clauses. Clauses are joined with spaces, so an
// operator must be added explicitly between clauses that need one.
type Builder struct {
	parts []string
}

// New returns an empty builder.
func New() *Builder { return &Builder{} }

func (b *Builder) add(part string) *Builder {
	b.parts = append(b.parts, part)
	return b
}

func (b *Builder) quoted(field, value string) *Builder {
	return b.add(field + ":" + quote(value))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func (b *Builder) Author(name string) *Builder      { return b.quoted("author", name) }
func (b *Builder) FirstAuthor(name string) *Builder { return b.quoted("first_author", name) }
func (b *Builder) Title(text string) *Builder       { return b.quoted("title", text) }
func (b *Builder) Abstract(text string) *Builder    { return b.quoted("abs", text) }
func (b *Builder) DOI(doi string) *Builder          { return b.quoted("doi", doi) }
func (b *Builder) Object(name string) *Builder      { return b.quoted("object", name) }

func (b *Builder) Year(year int) *Builder { return b.add(fmt.Sprintf("year:%d", year)) }

// YearRange matches from through to, inclusive.
func (b *Builder) YearRange(from, to int) *Builder {
	return b.add(fmt.Sprintf("year:[%d TO %d]", from, to))
}

func (b *Builder) Bibcode(bibcode string) *Builder { return b.add("bibcode:" + bibcode) }
func (b *Builder) Arxiv(id string) *Builder        { return b.add("identifier:arXiv:" + id) }
func (b *Builder) Bibstem(stem string) *Builder    { return b.add("bibstem:" + stem) }
func (b *Builder) Property(prop string) *Builder   { return b.add("property:" + prop) }
func (b *Builder) Doctype(doctype string) *Builder { return b.add("doctype:" + doctype) }
func (b *Builder) ORCID(orcid string) *Builder     { return b.add("orcid:" + orcid) }

func (b *Builder) And() *Builder { return b.add("AND") }
func (b *Builder) Or() *Builder  { return b.add("OR") }
func (b *Builder) Not() *Builder { return b.add("NOT") }

// Raw appends a fragment verbatim.
func (b *Builder) Raw(fragment string) *Builder { return b.add(fragment) }

// CitationsOf starts a query for papers citing bibcode.
func CitationsOf(bibcode string) *Builder { return New().add("citations(bibcode:" + bibcode + ")") }

// ReferencesOf starts a query for papers cited by bibcode.
func ReferencesOf(bibcode string) *Builder { return New().add("references(bibcode:" + bibcode + ")") }

// SimilarTo starts a query for papers similar to bibcode.
func SimilarTo(bibcode string) *Builder { return New().add("similar(bibcode:" + bibcode + ")") }

// Trending starts a query for papers co-read with bibcode.
func Trending(bibcode string) *Builder { return New().add("trending(bibcode:" + bibcode + ")") }

// Build returns the query string.
func (b *Builder) Build() string { return strings.Join(b.parts, " ") }

func (b *Builder) String() string { return b.Build() }
