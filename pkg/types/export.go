// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// ExportFormat is one of the citation formats the export endpoint produces.
type ExportFormat int

const (
	ExportBibTeX ExportFormat = iota
	ExportBibTeXAbs
	ExportAASTeX
	ExportIcarus
	ExportMNRAS
	ExportSoPh
	ExportRIS
	ExportEndNote
	ExportMEDLARS
	ExportIEEE
	ExportCSL
	ExportDCXML
	ExportRefXML
	ExportRefAbsXML
	ExportVOTable
	ExportRSS
	ExportCustom
)

var exportFormatNames = [...]string{
	ExportBibTeX:    "bibtex",
	ExportBibTeXAbs: "bibtexabs",
	ExportAASTeX:    "aastex",
	ExportIcarus:    "icarus",
	ExportMNRAS:     "mnras",
	ExportSoPh:      "soph",
	ExportRIS:       "ris",
	ExportEndNote:   "endnote",
	ExportMEDLARS:   "medlars",
	ExportIEEE:      "ieee",
	ExportCSL:       "csl",
	ExportDCXML:     "dcxml",
	ExportRefXML:    "refxml",
	ExportRefAbsXML: "refabsxml",
	ExportVOTable:   "votable",
	ExportRSS:       "rss",
	ExportCustom:    "custom",
}

// ExportFormats lists every format in declaration order.
func ExportFormats() []ExportFormat {
	out := make([]ExportFormat, len(exportFormatNames))
	for i := range exportFormatNames {
		out[i] = ExportFormat(i)
	}
	return out
}

// ExportFormatNames lists the wire names of every format.
func ExportFormatNames() []string {
	return append([]string(nil), exportFormatNames[:]...)
}

// String returns the wire name used in the /export/<format> path.
func (f ExportFormat) String() string {
	if f < 0 || int(f) >= len(exportFormatNames) {
		return fmt.Sprintf("ExportFormat(%d)", int(f))
	}
	return exportFormatNames[f]
}

// ParseExportFormat maps a case-insensitive wire name to its format.
func ParseExportFormat(s string) (ExportFormat, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range exportFormatNames {
		if n == name {
			return ExportFormat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown export format %q (want one of %s)", s, strings.Join(exportFormatNames[:], ", "))
}
