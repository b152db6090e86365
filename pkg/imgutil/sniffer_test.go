package imgutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	var tbl = []struct {
		name   string
		header []byte
		kind   Kind
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F'}, KindJPEG},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, KindPNG},
		{"bmp", []byte{'B', 'M', 0x3a, 0, 0, 0, 0, 0}, KindBMP},
		{"tiff-le", []byte{'I', 'I', 0x2a, 0, 8, 0, 0, 0}, KindTIFF},
		{"tiff-be", []byte{'M', 'M', 0, 0x2a, 0, 0, 0, 8}, KindTIFF},
		{"gif89", []byte("GIF89a\x01\x00"), KindGIF},
		{"gif87", []byte("GIF87a\x01\x00"), KindGIF},
		{"text", []byte("hello, world"), KindUnknown},
	}

	for _, tc := range tbl {
		kind, err := DetectHeader(tc.header)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if kind != tc.kind {
			t.Errorf("%s: got %s, expected %s", tc.name, kind, tc.kind)
		}
	}
}

func TestSniffReaderShort(t *testing.T) {
	_, err := SniffReader(bytes.NewReader([]byte{0xff, 0xd8}))
	if !errors.Is(err, ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
}

func TestSniffFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.png")
	if err := os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	kind, err := SniffFile(path)
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if kind != KindPNG {
		t.Fatalf("got %s, expected png", kind)
	}
}

func TestKindFromExt(t *testing.T) {
	var tbl = []struct {
		name string
		kind Kind
	}{
		{"a.jpg", KindJPEG}, {"A.JPG", KindJPEG}, {"b.JpEg", KindJPEG},
		{"c.png", KindPNG}, {"d.BMP", KindBMP},
		{"e.gif", KindUnknown}, {"notes.txt", KindUnknown}, {"noext", KindUnknown},
		{"x.tiff", KindUnknown},
	}

	for _, tc := range tbl {
		if got := KindFromExt(tc.name); got != tc.kind {
			t.Errorf("%s: got %s, expected %s", tc.name, got, tc.kind)
		}
		if SupportedExt(tc.name) != (tc.kind != KindUnknown) {
			t.Errorf("%s: SupportedExt mismatch", tc.name)
		}
	}
}
