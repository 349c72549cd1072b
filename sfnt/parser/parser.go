// seehuhn.de/go/ttf - read and subset TrueType and OpenType fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package parser implements a buffered, bounds-checked reader for the
// binary data in sfnt font files.
package parser

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const bufferSize = 1024

// Errors returned by the Parser.  They are wrapped together with the
// table name and the file position of the failing read.
var (
	ErrTruncated    = errors.New("unexpected end of data")
	ErrOutOfRange   = errors.New("position out of range")
	ErrUnterminated = errors.New("unterminated string")
)

// Parser allows to read data from an sfnt file.
type Parser struct {
	r         ReadSeekSizer
	tableName string

	buf       []byte
	from      int64
	pos, used int
	lastRead  int64
}

// ReadSeekSizer describes the requirements for a reader that can be used
// as the input to a Parser.  A *bytes.Reader satisfies this interface.
type ReadSeekSizer interface {
	io.ReadSeeker
	Size() int64
}

// New allocates a new Parser.
// The tableName is only used in error messages.
func New(tableName string, r ReadSeekSizer) *Parser {
	p := &Parser{
		r:         r,
		tableName: tableName,
	}
	err := p.SeekPos(0)
	if err != nil {
		panic(err)
	}
	return p
}

// SetTable changes the table name used in error messages.
func (p *Parser) SetTable(name string) {
	p.tableName = name
}

// Size returns the total size of the underlying input file.
func (p *Parser) Size() int64 {
	return p.r.Size()
}

// Pos returns the current reading position.
func (p *Parser) Pos() int64 {
	return p.from + int64(p.pos)
}

// SeekPos changes the reading position.
// Positions beyond the end of the input give ErrOutOfRange.
func (p *Parser) SeekPos(filePos int64) error {
	if filePos < 0 || filePos > p.r.Size() {
		p.lastRead = filePos
		return p.Error("seek to %d: %w", filePos, ErrOutOfRange)
	}

	if filePos >= p.from && filePos <= p.from+int64(p.used) {
		p.pos = int(filePos - p.from)
	} else {
		_, err := p.r.Seek(filePos, io.SeekStart)
		if err != nil {
			return err
		}
		p.from = filePos
		p.pos = 0
		p.used = 0
	}

	return nil
}

// Discard skips the next n bytes of input.
func (p *Parser) Discard(n int) error {
	if n < 0 {
		panic("negative discard")
	}
	return p.SeekPos(p.Pos() + int64(n))
}

// Read reads len(buf) bytes of data into buf.  It returns the number of bytes
// read and an error, if any.  The error is non-nil if and only if less than
// len(buf) bytes were read.
func (p *Parser) Read(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		chunk, err := p.ReadBytes(min(len(buf)-total, bufferSize))
		if err != nil {
			return total, err
		}
		total += copy(buf[total:], chunk)
	}
	return total, nil
}

// ReadUint8 reads a single uint8 value from the current position.
func (p *Parser) ReadUint8() (uint8, error) {
	buf, err := p.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadInt8 reads a single int8 value from the current position.
func (p *Parser) ReadInt8() (int8, error) {
	val, err := p.ReadUint8()
	return int8(val), err
}

// ReadUint16 reads a big-endian uint16 value from the current position.
func (p *Parser) ReadUint16() (uint16, error) {
	buf, err := p.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadInt16 reads a big-endian int16 value from the current position.
func (p *Parser) ReadInt16() (int16, error) {
	val, err := p.ReadUint16()
	return int16(val), err
}

// ReadUint32 reads a big-endian uint32 value from the current position.
func (p *Parser) ReadUint32() (uint32, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// ReadInt32 reads a big-endian int32 value from the current position.
func (p *Parser) ReadInt32() (int32, error) {
	val, err := p.ReadUint32()
	return int32(val), err
}

// ReadUint16Slice reads a length followed by a sequence of uint16 values.
func (p *Parser) ReadUint16Slice() ([]uint16, error) {
	n, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	return p.ReadUint16s(int(n))
}

// ReadUint16s reads n consecutive uint16 values.
func (p *Parser) ReadUint16s(n int) ([]uint16, error) {
	res := make([]uint16, n)
	for i := range res {
		val, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		res[i] = val
	}
	return res, nil
}

// ReadBytes reads n bytes, starting at the current position.  The returned
// slice points into the internal buffer.  It must not be modified by the
// caller and is only valid until the next call to a Parser method.
//
// The read size n must be at most 1024.
func (p *Parser) ReadBytes(n int) ([]byte, error) {
	p.lastRead = p.Pos()
	if n > bufferSize {
		panic("buffer size exceeded")
	}
	n = max(n, 0)

	if p.pos+n > p.used {
		err := p.fill(n)
		if err != nil {
			return nil, p.Error("read %d bytes: %w", n, err)
		}
	}

	res := p.buf[p.pos : p.pos+n]
	p.pos += n
	return res, nil
}

// fill moves the unread data to the start of the buffer and reads from the
// input until at least n bytes are available.
func (p *Parser) fill(n int) error {
	if p.buf == nil {
		p.buf = make([]byte, bufferSize)
	}
	p.used = copy(p.buf, p.buf[p.pos:p.used])
	p.from += int64(p.pos)
	p.pos = 0

	for p.used < n {
		k, err := p.r.Read(p.buf[p.used:])
		p.used += k
		switch {
		case err == io.EOF && p.used >= n:
			return nil
		case err == io.EOF || err == nil && k == 0:
			return ErrTruncated
		case err != nil:
			return err
		}
	}
	return nil
}

// Error formats an error message which includes the table name and
// the position of the last read.
func (p *Parser) Error(format string, a ...interface{}) error {
	tableName := p.tableName
	if tableName == "" {
		tableName = "header"
	}
	a = append([]interface{}{tableName, p.lastRead}, a...)
	return fmt.Errorf("%s%+d: "+format, a...)
}
