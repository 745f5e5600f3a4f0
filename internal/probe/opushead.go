// Package probe inspects converted files the way the player does: it reads
// the first packet of the OGG stream and decodes the OpusHead identification
// header (RFC 7845 section 5.1).
package probe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonas747/ogg"

	"github.com/backmassage/opuspack/internal/config"
)

// ErrNotOpus is returned when the first OGG packet is not an OpusHead.
var ErrNotOpus = errors.New("first packet is not an OpusHead header")

const (
	opusHeadMagic  = "OpusHead"
	opusHeadMinLen = 19
)

// OpusHeader holds the fields of the Opus identification header.
type OpusHeader struct {
	Version       uint8
	Channels      int
	PreSkip       uint16
	SampleRate    int // Input sample rate; informational for the decoder.
	OutputGain    int16
	MappingFamily uint8
}

// Matches reports whether the header agrees with the profile's channel count
// and sample rate.
func (h OpusHeader) Matches(p config.Profile) bool {
	return h.Channels == p.Channels && h.SampleRate == p.SampleRate
}

// Inspect opens path and decodes its OpusHead.
func Inspect(path string) (OpusHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return OpusHeader{}, err
	}
	defer f.Close()
	return ReadHeader(f)
}

// ReadHeader decodes the OpusHead from the first packet of an OGG stream.
func ReadHeader(r io.Reader) (OpusHeader, error) {
	dec := ogg.NewPacketDecoder(ogg.NewDecoder(r))
	packet, _, err := dec.Decode()
	if err != nil {
		return OpusHeader{}, fmt.Errorf("read ogg packet: %w", err)
	}
	return ParseOpusHead(packet)
}

// ParseOpusHead decodes a raw OpusHead packet.
func ParseOpusHead(b []byte) (OpusHeader, error) {
	if len(b) < opusHeadMinLen || !bytes.HasPrefix(b, []byte(opusHeadMagic)) {
		return OpusHeader{}, ErrNotOpus
	}
	return OpusHeader{
		Version:       b[8],
		Channels:      int(b[9]),
		PreSkip:       binary.LittleEndian.Uint16(b[10:12]),
		SampleRate:    int(binary.LittleEndian.Uint32(b[12:16])),
		OutputGain:    int16(binary.LittleEndian.Uint16(b[16:18])),
		MappingFamily: b[18],
	}, nil
}
