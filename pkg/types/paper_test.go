// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestParseAuthor(t *testing.T) {
	tests := []struct {
		in, family, given, display, bibtex string
	}{
		{"Einstein, Albert", "Einstein", "Albert", "Albert Einstein", "Einstein, Albert"},
		{"van der Berg, J. K.", "van der Berg", "J. K.", "J. K. van der Berg", "van der Berg, J. K."},
		{"Albert Einstein", "Einstein", "Albert", "Albert Einstein", "Einstein, Albert"},
		{"Euclid", "Euclid", "", "Euclid", "Euclid"},
	}
	for _, tt := range tests {
		a := ParseAuthor(tt.in)
		if a.Name != tt.in {
			t.Errorf("Name = %q, want %q", a.Name, tt.in)
		}
		if a.FamilyName != tt.family {
			t.Errorf("%q: FamilyName = %q, want %q", tt.in, a.FamilyName, tt.family)
		}
		if a.GivenName != tt.given {
			t.Errorf("%q: GivenName = %q, want %q", tt.in, a.GivenName, tt.given)
		}
		if got := a.DisplayName(); got != tt.display {
			t.Errorf("%q: DisplayName() = %q, want %q", tt.in, got, tt.display)
		}
		if got := a.BibTeXName(); got != tt.bibtex {
			t.Errorf("%q: BibTeXName() = %q, want %q", tt.in, got, tt.bibtex)
		}
	}
}

func TestBuildPDFLinksOrder(t *testing.T) {
	links := BuildPDFLinks([]string{"EPRINT_PDF", "PUB_PDF", "PUB_HTML", "ADS_SCAN"}, "10.1/x", "2301.00001", "2023ApJ...1A")
	if len(links) != 3 {
		t.Fatalf("len(links) = %d, want 3", len(links))
	}
	want := []PDFLinkType{LinkArxiv, LinkPublisher, LinkADSScan}
	for i, w := range want {
		if links[i].Type != w {
			t.Errorf("links[%d].Type = %q, want %q", i, links[i].Type, w)
		}
	}
	if links[0].URL != "https://arxiv.org/pdf/2301.00001.pdf" {
		t.Errorf("arXiv URL = %q", links[0].URL)
	}
	if links[2].URL != "https://articles.adsabs.harvard.edu/pdf/2023ApJ...1A" {
		t.Errorf("scan URL = %q", links[2].URL)
	}
}

func TestBuildPDFLinksFallbacks(t *testing.T) {
	links := BuildPDFLinks(nil, "10.1/x", "2301.00001", "b")
	if len(links) != 2 {
		t.Fatalf("len(links) = %d, want 2", len(links))
	}
	if links[0].Type != LinkArxiv || links[1].Type != LinkPublisher {
		t.Errorf("fallback order = %v, %v", links[0].Type, links[1].Type)
	}

	if got := BuildPDFLinks([]string{"EPRINT_PDF"}, "", "", "b"); len(got) != 0 {
		t.Errorf("expected no links without ids, got %v", got)
	}
}
