// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Library is the metadata of a SciX personal library.
type Library struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Description      string `json:"description" yaml:"description"`
	NumDocuments     int    `json:"num_documents" yaml:"num_documents"`
	Public           bool   `json:"public" yaml:"public"`
	Owner            string `json:"owner,omitempty" yaml:"owner,omitempty"`
	DateCreated      string `json:"date_created,omitempty" yaml:"date_created,omitempty"`
	DateLastModified string `json:"date_last_modified,omitempty" yaml:"date_last_modified,omitempty"`
}

// LibraryDetail is a library together with the bibcodes it holds.
type LibraryDetail struct {
	Metadata  Library  `json:"metadata" yaml:"metadata"`
	Documents []string `json:"documents" yaml:"documents"`
}

// LibraryEdit carries the fields to change on a library; nil fields are left alone.
type LibraryEdit struct {
	Name        *string
	Description *string
	Public      *bool
}

// enumSet backs the small string enumerations below: the zero value of each
// type is its first name.
type enumSet []string

func (e enumSet) name(i int, typ string) string {
	if i < 0 || i >= len(e) {
		return fmt.Sprintf("%s(%d)", typ, i)
	}
	return e[i]
}

func (e enumSet) parse(s, typ string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, n := range e {
		if n == v {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (want one of %s)", typ, s, strings.Join(e, ", "))
}

// Permission is an access level on a shared library.
type Permission int

const (
	PermissionOwner Permission = iota
	PermissionAdmin
	PermissionWrite
	PermissionRead
)

var permissionNames = enumSet{"owner", "admin", "write", "read"}

func (p Permission) String() string { return permissionNames.name(int(p), "Permission") }

// ParsePermission reads a permission level name.
func ParsePermission(s string) (Permission, error) {
	i, err := permissionNames.parse(s, "permission")
	return Permission(i), err
}

// SetOperation combines a library with other libraries.
type SetOperation int

const (
	OpUnion SetOperation = iota
	OpIntersection
	OpDifference
	OpCopy
	OpEmpty
)

var setOperationNames = enumSet{"union", "intersection", "difference", "copy", "empty"}

func (o SetOperation) String() string { return setOperationNames.name(int(o), "SetOperation") }

// NeedsSources reports whether the operation reads from other libraries.
func (o SetOperation) NeedsSources() bool {
	return o == OpUnion || o == OpIntersection || o == OpDifference || o == OpCopy
}

// ParseSetOperation reads a set operation name.
func ParseSetOperation(s string) (SetOperation, error) {
	i, err := setOperationNames.parse(s, "set operation")
	return SetOperation(i), err
}

// DocumentAction adds bibcodes to or removes them from a library.
type DocumentAction int

const (
	ActionAdd DocumentAction = iota
	ActionRemove
)

var documentActionNames = enumSet{"add", "remove"}

func (a DocumentAction) String() string { return documentActionNames.name(int(a), "DocumentAction") }

// ParseDocumentAction reads "add" or "remove".
func ParseDocumentAction(s string) (DocumentAction, error) {
	i, err := documentActionNames.parse(s, "document action")
	return DocumentAction(i), err
}

// NetworkType selects the visualization network.
type NetworkType int

const (
	NetworkAuthor NetworkType = iota
	NetworkPaper
)

var networkTypeNames = enumSet{"author", "paper"}

func (n NetworkType) String() string { return networkTypeNames.name(int(n), "NetworkType") }

// ParseNetworkType reads "author" or "paper".
func ParseNetworkType(s string) (NetworkType, error) {
	i, err := networkTypeNames.parse(s, "network type")
	return NetworkType(i), err
}

// LinkType narrows link resolution to one kind of link.
type LinkType int

const (
	LinkEsource LinkType = iota
	LinkData
	LinkCitation
	LinkReference
	LinkCoreads
)

var linkTypeNames = enumSet{"esource", "data", "citation", "reference", "coreads"}

func (l LinkType) String() string { return linkTypeNames.name(int(l), "LinkType") }

// ParseLinkType reads a resolver link type.
func ParseLinkType(s string) (LinkType, error) {
	i, err := linkTypeNames.parse(s, "link type")
	return LinkType(i), err
}

// ResolvedReference pairs a free-text reference with the bibcode it matched.
type ResolvedReference struct {
	Reference string `json:"reference" yaml:"reference"`
	Bibcode   string `json:"bibcode,omitempty" yaml:"bibcode,omitempty"`
	Score     string `json:"score,omitempty" yaml:"score,omitempty"`
}
