package models

import "testing"

func TestKindFromPath(t *testing.T) {
	tests := []struct {
		path string
		want FileKind
	}{
		{"data/uploads/bill.pdf", KindPDF},
		{"scan.PDF", KindPDF},
		{"photo.jpg", KindImage},
		{"photo.jpeg", KindImage},
		{"photo.PNG", KindImage},
		{"notes.txt", KindPlainText},
		{"archive.zip", KindUnsupported},
		{"noext", KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := KindFromPath(tt.path); got != tt.want {
				t.Errorf("KindFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSortFieldValid(t *testing.T) {
	for _, f := range []SortField{SortByVendor, SortByDate, SortByAmount, SortByCategory} {
		if !f.Valid() {
			t.Errorf("%q should be valid", f)
		}
	}
	for _, f := range []SortField{"id", "", "vendor; DROP TABLE receipts"} {
		if f.Valid() {
			t.Errorf("%q should be invalid", f)
		}
	}
}
