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

package parser

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Platform IDs used in the "name" and "cmap" tables.
const (
	PlatformUnicode   = 0
	PlatformMacintosh = 1
	PlatformWindows   = 3
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// ReadString reads n bytes and decodes them using the encoding implied
// by the platform ID.  Unicode and Windows strings are UTF-16BE,
// Macintosh strings use the Mac OS Roman character set.
func (p *Parser) ReadString(n int, platformID uint16) (string, error) {
	if n < 0 || p.Pos()+int64(n) > p.Size() {
		p.lastRead = p.Pos()
		return "", p.Error("read %d bytes: %w", n, ErrTruncated)
	}
	buf := make([]byte, n)
	_, err := p.Read(buf)
	if err != nil {
		return "", err
	}
	return DecodeString(buf, platformID), nil
}

// DecodeString decodes raw string data found in the "name" table.
func DecodeString(buf []byte, platformID uint16) string {
	switch platformID {
	case PlatformUnicode, PlatformWindows:
		res, err := utf16be.NewDecoder().Bytes(buf)
		if err != nil {
			return ""
		}
		return string(res)
	case PlatformMacintosh:
		res, err := charmap.Macintosh.NewDecoder().Bytes(buf)
		if err != nil {
			return ""
		}
		return string(res)
	default:
		return string(buf)
	}
}

// ReadPascalString reads a string which is preceded by a one-byte length.
// The bytes are returned without further decoding.
func (p *Parser) ReadPascalString() (string, error) {
	n, err := p.ReadUint8()
	if err != nil {
		return "", err
	}
	buf, err := p.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadNullTerminated reads bytes up to and including the next zero byte.
// The terminator is not part of the result.  If the end of input is
// reached first, ErrUnterminated is returned.
func (p *Parser) ReadNullTerminated() (string, error) {
	start := p.Pos()
	var res []byte
	for {
		if p.Pos() >= p.Size() {
			p.lastRead = start
			return "", p.Error("%w", ErrUnterminated)
		}
		c, err := p.ReadUint8()
		if err != nil {
			return "", err
		}
		if c == 0 {
			return string(res), nil
		}
		res = append(res, c)
	}
}
