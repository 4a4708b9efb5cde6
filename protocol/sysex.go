package protocol

import (
	"errors"
	"fmt"
)

// SysEx envelope: F0 7F 01 <tag> <flags> <payload...> F7
const (
	sysexStart    = 0xF0
	sysexEnd      = 0xF7
	sysexVendor   = 0x7F
	sysexDevice   = 0x01
	flagOrigin    = 0x03
	flagPacked    = 0x04
	sysexOverhead = 6
)

var (
	ErrNotSurfaceSysEx = errors.New("protocol: sysex header mismatch")
	ErrBadFrame        = errors.New("protocol: malformed frame")
)

// WrapSysEx builds a complete SysEx message around frame ([tag][payload]).
// Payload bytes with the high bit set are 8-to-7 packed and flagged so the
// message stays MIDI-safe.
func WrapSysEx(frame []byte, origin Origin) ([]byte, error) {
	if len(frame) == 0 || frame[0] >= 0x80 {
		return nil, fmt.Errorf("wrap sysex: %w", ErrBadFrame)
	}
	payload := frame[1:]
	flags := byte(origin) & flagOrigin
	if needsPacking(payload) {
		payload = pack7(payload)
		flags |= flagPacked
	}
	out := make([]byte, 0, sysexOverhead+len(payload))
	out = append(out, sysexStart, sysexVendor, sysexDevice, frame[0], flags)
	out = append(out, payload...)
	return append(out, sysexEnd), nil
}

// UnwrapSysEx reverses WrapSysEx. The leading F0 and trailing F7 are
// optional since MIDI drivers differ in whether they strip them.
func UnwrapSysEx(msg []byte) (Frame, error) {
	if len(msg) > 0 && msg[0] == sysexStart {
		msg = msg[1:]
	}
	if len(msg) > 0 && msg[len(msg)-1] == sysexEnd {
		msg = msg[:len(msg)-1]
	}
	if len(msg) < 4 || msg[0] != sysexVendor || msg[1] != sysexDevice {
		return Frame{}, ErrNotSurfaceSysEx
	}
	tag, flags, payload := msg[2], msg[3], msg[4:]
	if flags&flagPacked != 0 {
		var err error
		if payload, err = unpack7(payload); err != nil {
			return Frame{}, err
		}
	}
	data := make([]byte, 0, 1+len(payload))
	data = append(data, tag)
	data = append(data, payload...)
	return Frame{Data: data, Origin: Origin(flags & flagOrigin)}, nil
}

func needsPacking(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return true
		}
	}
	return false
}

// pack7 emits, for each group of up to seven bytes, one byte holding their
// high bits followed by the bytes with the high bit cleared.
func pack7(b []byte) []byte {
	out := make([]byte, 0, len(b)+(len(b)+6)/7)
	for i := 0; i < len(b); i += 7 {
		end := min(i+7, len(b))
		var msb byte
		for j := i; j < end; j++ {
			msb |= (b[j] >> 7) << (j - i)
		}
		out = append(out, msb)
		for j := i; j < end; j++ {
			out = append(out, b[j]&0x7F)
		}
	}
	return out
}

func unpack7(b []byte) ([]byte, error) {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i += 8 {
		end := min(i+8, len(b))
		if end-i < 2 {
			return nil, fmt.Errorf("unpack sysex: %w", ErrBadFrame)
		}
		msb := b[i]
		for j := i + 1; j < end; j++ {
			out = append(out, b[j]&0x7F|((msb>>(j-i-1))&1)<<7)
		}
	}
	return out, nil
}
