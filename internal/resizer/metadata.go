package resizer

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"downsize/pkg/imgutil"
)

var pngSignature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// droppedMetadata lists the metadata blocks in rs that a re-encode will not
// carry over. The Go encoders write pixel data only.
func droppedMetadata(rs io.ReadSeeker, kind imgutil.Kind) ([]string, error) {
	switch kind {
	case imgutil.KindJPEG:
		found, err := hasExif(rs)
		if err != nil || !found {
			return nil, err
		}
		return []string{"EXIF"}, nil
	case imgutil.KindPNG:
		return scanPNGChunks(rs)
	default:
		return nil, nil
	}
}

func hasExif(rs io.ReadSeeker) (bool, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return false, err
	}

	raw, err := exif.SearchAndExtractExifWithReader(rs)
	if err != nil {
		if errorsIsNoExif(err) {
			return false, nil
		}
		return false, err
	}
	return len(raw) > 0, nil
}

func errorsIsNoExif(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exif.ErrNoExif) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}

func scanPNGChunks(rs io.ReadSeeker) ([]string, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	br := bufio.NewReader(rs)

	sig := make([]byte, 8)
	if _, err := io.ReadFull(br, sig); err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, pngSignature) {
		return nil, errors.New("invalid PNG signature")
	}

	var found []string
	seen := map[string]bool{}
	note := func(label string) {
		if !seen[label] {
			seen[label] = true
			found = append(found, label)
		}
	}

	for {
		lenBuf := make([]byte, 4)
		if _, err := io.ReadFull(br, lenBuf); err != nil {
			if err == io.EOF {
				return found, nil
			}
			return found, err
		}
		length := binary.BigEndian.Uint32(lenBuf)

		chunkType := make([]byte, 4)
		if _, err := io.ReadFull(br, chunkType); err != nil {
			return found, err
		}
		chunkName := string(chunkType)

		switch chunkName {
		case "tEXt", "zTXt", "iTXt":
			note("text")
		case "eXIf":
			note("EXIF")
		case "tIME":
			note("timestamp")
		case "iCCP":
			note("ICC profile")
		}

		if _, err := io.CopyN(io.Discard, br, int64(length)+4); err != nil {
			return found, err
		}
		if chunkName == "IEND" {
			return found, nil
		}
	}
}
