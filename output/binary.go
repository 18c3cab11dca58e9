package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/oeo/processor"
)

// Binary wire layout, version 1: the 4-byte magic, a varint field count
// preamble per section, then length-prefixed payloads. Strings and byte
// slices carry a uvarint length; integers are uvarint-encoded (zigzag for
// the signed metadata stamps).
var binaryMagic = []byte("DPR1")

// ErrBadMagic reports binary input that does not start with the expected
// header.
var ErrBadMagic = errors.New("output: not a binary document record")

// Binary renders the document in the compact binary encoding.
func Binary(doc *processor.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(binaryMagic)

	writeString(&buf, doc.FileType)
	writeString(&buf, doc.FilePath)
	writeString(&buf, doc.Strategy)
	writeString(&buf, doc.System)
	writeString(&buf, doc.Prompt)

	writeUvarint(&buf, uint64(len(doc.PromptParts)))
	for _, part := range doc.PromptParts {
		writeString(&buf, part)
	}

	writeUvarint(&buf, uint64(len(doc.Attachments)))
	for _, att := range doc.Attachments {
		writeUvarint(&buf, uint64(att.Page))
		writeBytes(&buf, att.Data)
	}

	if doc.Metadata == nil {
		buf.WriteByte(0)
	} else {
		buf.WriteByte(1)
		m := doc.Metadata
		writeVarint(&buf, m.StartedAt)
		writeVarint(&buf, m.CompletedAt)
		writeVarint(&buf, m.TotalDurationMS)
		writeVarint(&buf, m.OriginalFileSize)
		writeUvarint(&buf, uint64(len(m.Errors)))
		for _, e := range m.Errors {
			writeString(&buf, e)
		}
		writeUvarint(&buf, uint64(len(m.Steps)))
		for _, s := range m.Steps {
			writeString(&buf, s.Name)
			writeVarint(&buf, s.DurationMS)
			writeString(&buf, s.Status)
			writeVarint(&buf, s.MemoryMB)
		}
	}
	return buf.Bytes(), nil
}

// DecodeBinary parses a record previously produced by Binary.
func DecodeBinary(data []byte) (*processor.Document, error) {
	if len(data) < len(binaryMagic) || !bytes.Equal(data[:len(binaryMagic)], binaryMagic) {
		return nil, ErrBadMagic
	}
	r := bytes.NewReader(data[len(binaryMagic):])

	doc := &processor.Document{}
	var err error
	read := func(dst *string, field string) {
		if err != nil {
			return
		}
		*dst, err = readString(r)
		if err != nil {
			err = fmt.Errorf("output: decode %s: %w", field, err)
		}
	}
	read(&doc.FileType, "file_type")
	read(&doc.FilePath, "file_path")
	read(&doc.Strategy, "strategy")
	read(&doc.System, "system")
	read(&doc.Prompt, "prompt")
	if err != nil {
		return nil, err
	}

	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("output: decode prompt_parts count: %w", err)
	}
	for i := uint64(0); i < n; i++ {
		part, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("output: decode prompt_parts[%d]: %w", i, err)
		}
		doc.PromptParts = append(doc.PromptParts, part)
	}

	n, err = binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("output: decode attachments count: %w", err)
	}
	for i := uint64(0); i < n; i++ {
		page, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("output: decode attachments[%d].page: %w", i, err)
		}
		data, err := readBytes(r)
		if err != nil {
			return nil, fmt.Errorf("output: decode attachments[%d].data: %w", i, err)
		}
		doc.Attachments = append(doc.Attachments, processor.Attachment{Page: int(page), Data: data})
	}

	hasMeta, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("output: decode metadata flag: %w", err)
	}
	if hasMeta == 0 {
		return doc, nil
	}

	m := &processor.Metadata{}
	for _, field := range []struct {
		dst  *int64
		name string
	}{
		{&m.StartedAt, "started_at"},
		{&m.CompletedAt, "completed_at"},
		{&m.TotalDurationMS, "total_duration_ms"},
		{&m.OriginalFileSize, "original_file_size"},
	} {
		v, err := binary.ReadVarint(r)
		if err != nil {
			return nil, fmt.Errorf("output: decode %s: %w", field.name, err)
		}
		*field.dst = v
	}

	n, err = binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("output: decode errors count: %w", err)
	}
	for i := uint64(0); i < n; i++ {
		e, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("output: decode errors[%d]: %w", i, err)
		}
		m.Errors = append(m.Errors, e)
	}

	n, err = binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("output: decode steps count: %w", err)
	}
	for i := uint64(0); i < n; i++ {
		var s processor.StepRecord
		if s.Name, err = readString(r); err != nil {
			return nil, fmt.Errorf("output: decode steps[%d].name: %w", i, err)
		}
		if s.DurationMS, err = binary.ReadVarint(r); err != nil {
			return nil, fmt.Errorf("output: decode steps[%d].duration: %w", i, err)
		}
		if s.Status, err = readString(r); err != nil {
			return nil, fmt.Errorf("output: decode steps[%d].status: %w", i, err)
		}
		if s.MemoryMB, err = binary.ReadVarint(r); err != nil {
			return nil, fmt.Errorf("output: decode steps[%d].memory: %w", i, err)
		}
		m.Steps = append(m.Steps, s)
	}
	doc.Metadata = m
	return doc, nil
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	buf.Write(tmp[:binary.PutUvarint(tmp[:], v)])
}

func writeVarint(buf *bytes.Buffer, v int64) {
	var tmp [binary.MaxVarintLen64]byte
	buf.Write(tmp[:binary.PutVarint(tmp[:], v)])
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeUvarint(buf, uint64(len(b)))
	buf.Write(b)
}

func writeString(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Len()) {
		return nil, io.ErrUnexpectedEOF
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func readString(r *bytes.Reader) (string, error) {
	b, err := readBytes(r)
	return string(b), err
}
