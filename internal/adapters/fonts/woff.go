package fonts

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"
	"slices"

	"github.com/klauspost/compress/zlib"
)

const (
	woffSignature    = 0x774F4646 // "wOFF"
	woffHeaderSize   = 44
	woffDirEntrySize = 20
	sfntHeaderSize   = 12
	sfntRecordSize   = 16
)

var (
	errTruncated     = errors.New("truncated font data")
	errBadSignature  = errors.New("not a WOFF file")
	errTableBounds   = errors.New("table outside font data")
	errTableSizeDiff = errors.New("decompressed table size mismatch")
)

type table struct {
	tag      uint32
	checksum uint32
	data     []byte
}

func pad4(n int) int {
	return (n + 3) &^ 3
}

// readSFNT splits an OpenType/TrueType file into its flavor and tables.
func readSFNT(data []byte) (uint32, []table, error) {
	if len(data) < sfntHeaderSize {
		return 0, nil, errTruncated
	}
	be := binary.BigEndian
	flavor := be.Uint32(data)
	n := int(be.Uint16(data[4:]))
	if len(data) < sfntHeaderSize+n*sfntRecordSize {
		return 0, nil, errTruncated
	}

	tables := make([]table, n)
	for i := range n {
		rec := data[sfntHeaderSize+i*sfntRecordSize:]
		off, length := be.Uint32(rec[8:]), be.Uint32(rec[12:])
		if uint64(off)+uint64(length) > uint64(len(data)) {
			return 0, nil, errTableBounds
		}
		tables[i] = table{
			tag:      be.Uint32(rec),
			checksum: be.Uint32(rec[4:]),
			data:     data[off : off+length],
		}
	}
	return flavor, tables, nil
}

// writeSFNT assembles tables into an sfnt file with a sorted directory.
func writeSFNT(flavor uint32, tables []table) []byte {
	slices.SortFunc(tables, func(a, b table) int {
		return int(int64(a.tag) - int64(b.tag))
	})

	n := len(tables)
	size := sfntHeaderSize + n*sfntRecordSize
	for _, t := range tables {
		size += pad4(len(t.data))
	}

	out := make([]byte, size)
	be := binary.BigEndian
	be.PutUint32(out, flavor)
	be.PutUint16(out[4:], uint16(n))
	if n > 0 {
		sel := bits.Len(uint(n)) - 1
		searchRange := (1 << sel) * sfntRecordSize
		be.PutUint16(out[6:], uint16(searchRange))
		be.PutUint16(out[8:], uint16(sel))
		be.PutUint16(out[10:], uint16(n*sfntRecordSize-searchRange))
	}

	off := sfntHeaderSize + n*sfntRecordSize
	for i, t := range tables {
		rec := out[sfntHeaderSize+i*sfntRecordSize:]
		be.PutUint32(rec, t.tag)
		be.PutUint32(rec[4:], t.checksum)
		be.PutUint32(rec[8:], uint32(off))
		be.PutUint32(rec[12:], uint32(len(t.data)))
		copy(out[off:], t.data)
		off += pad4(len(t.data))
	}
	return out
}

// sfntToWOFF wraps an sfnt file in a WOFF 1.0 container. Each table is
// zlib-compressed when that makes it smaller.
func sfntToWOFF(data []byte) ([]byte, error) {
	flavor, tables, err := readSFNT(data)
	if err != nil {
		return nil, err
	}

	n := len(tables)
	sfntSize := sfntHeaderSize + n*sfntRecordSize
	stored := make([][]byte, n)
	for i, t := range tables {
		sfntSize += pad4(len(t.data))

		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(t.data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}

		stored[i] = t.data
		if buf.Len() < len(t.data) {
			stored[i] = buf.Bytes()
		}
	}

	size := woffHeaderSize + n*woffDirEntrySize
	for _, s := range stored {
		size += pad4(len(s))
	}

	out := make([]byte, size)
	be := binary.BigEndian
	be.PutUint32(out, woffSignature)
	be.PutUint32(out[4:], flavor)
	be.PutUint32(out[8:], uint32(size))
	be.PutUint16(out[12:], uint16(n))
	be.PutUint32(out[16:], uint32(sfntSize))
	be.PutUint16(out[20:], 1)

	off := woffHeaderSize + n*woffDirEntrySize
	for i, t := range tables {
		entry := out[woffHeaderSize+i*woffDirEntrySize:]
		be.PutUint32(entry, t.tag)
		be.PutUint32(entry[4:], uint32(off))
		be.PutUint32(entry[8:], uint32(len(stored[i])))
		be.PutUint32(entry[12:], uint32(len(t.data)))
		be.PutUint32(entry[16:], t.checksum)
		copy(out[off:], stored[i])
		off += pad4(len(stored[i]))
	}
	return out, nil
}

// woffToSFNT unwraps a WOFF 1.0 container back into an sfnt file.
func woffToSFNT(data []byte) ([]byte, error) {
	if len(data) < woffHeaderSize {
		return nil, errTruncated
	}
	be := binary.BigEndian
	if be.Uint32(data) != woffSignature {
		return nil, errBadSignature
	}
	flavor := be.Uint32(data[4:])
	n := int(be.Uint16(data[12:]))
	if len(data) < woffHeaderSize+n*woffDirEntrySize {
		return nil, errTruncated
	}

	tables := make([]table, n)
	for i := range n {
		entry := data[woffHeaderSize+i*woffDirEntrySize:]
		off, compLen, origLen := be.Uint32(entry[4:]), be.Uint32(entry[8:]), be.Uint32(entry[12:])
		if uint64(off)+uint64(compLen) > uint64(len(data)) {
			return nil, errTableBounds
		}
		raw := data[off : off+compLen]

		if compLen < origLen {
			zr, err := zlib.NewReader(bytes.NewReader(raw))
			if err != nil {
				return nil, err
			}
			raw, err = io.ReadAll(io.LimitReader(zr, int64(origLen)+1))
			_ = zr.Close()
			if err != nil {
				return nil, err
			}
		}
		if uint32(len(raw)) != origLen {
			return nil, errTableSizeDiff
		}

		tables[i] = table{
			tag:      be.Uint32(entry),
			checksum: be.Uint32(entry[16:]),
			data:     raw,
		}
	}
	return writeSFNT(flavor, tables), nil
}
