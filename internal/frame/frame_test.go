// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package frame

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentrywall.dev/sentrywall/internal/types"
)

func v4Frame(proto types.L4Proto, src, dst [4]byte) []byte {
	b := make([]byte, 14+20+20)
	binary.BigEndian.PutUint16(b[12:14], uint16(types.EtherTypeIPv4))
	ip := b[14:34]
	ip[0] = 0x45
	ip[9] = byte(proto)
	copy(ip[12:16], src[:])
	copy(ip[16:20], dst[:])
	return b
}

func v6Frame(proto types.L4Proto, src, dst [16]byte) []byte {
	b := make([]byte, 14+40+20)
	binary.BigEndian.PutUint16(b[12:14], uint16(types.EtherTypeIPv6))
	ip := b[14:54]
	ip[6] = byte(proto)
	copy(ip[8:24], src[:])
	copy(ip[24:40], dst[:])
	return b
}

func TestParse_V4(t *testing.T) {
	src := [4]byte{10, 0, 0, 1}
	dst := [4]byte{10, 0, 0, 2}
	f := New(v4Frame(types.ProtoTCP, src, dst))

	d, ok := Parse(f)
	require.True(t, ok)
	assert.True(t, d.IsV4)
	assert.False(t, d.IsV6)
	assert.Equal(t, 20, d.HeaderLen)
	assert.Equal(t, types.ProtoTCP, d.L4Proto)
	assert.Equal(t, src[:], d.SrcAddr[:4])
	assert.Equal(t, dst[:], d.DstAddr[:4])
}

func TestParse_V6(t *testing.T) {
	var src, dst [16]byte
	src[0] = 0xfe
	dst[0] = 0xff
	f := New(v6Frame(types.ProtoUDP, src, dst))

	d, ok := Parse(f)
	require.True(t, ok)
	assert.True(t, d.IsV6)
	assert.Equal(t, 40, d.HeaderLen)
	assert.Equal(t, types.ProtoUDP, d.L4Proto)
	assert.Equal(t, src[:], d.SrcAddr[:])
}

func TestParse_UnrecognisedEtherTypeIsNeitherFamily(t *testing.T) {
	b := make([]byte, 20)
	binary.BigEndian.PutUint16(b[12:14], 0x88CC)
	f := New(b)

	d, ok := Parse(f)
	require.True(t, ok)
	assert.False(t, d.IsV4)
	assert.False(t, d.IsV6)
}

func TestParse_TruncatedFrameFails(t *testing.T) {
	f := New(make([]byte, 10))
	_, ok := Parse(f)
	assert.False(t, ok)
}

func TestL4Ports(t *testing.T) {
	b := v4Frame(types.ProtoTCP, [4]byte{1, 1, 1, 1}, [4]byte{2, 2, 2, 2})
	binary.BigEndian.PutUint16(b[34:36], 40000)
	binary.BigEndian.PutUint16(b[36:38], 443)
	f := New(b)

	d, ok := Parse(f)
	require.True(t, ok)
	sport, dport, ok := d.L4Ports(f)
	require.True(t, ok)
	assert.Equal(t, uint16(40000), sport)
	assert.Equal(t, uint16(443), dport)
}

func TestTCPFlags(t *testing.T) {
	b := v4Frame(types.ProtoTCP, [4]byte{1, 1, 1, 1}, [4]byte{2, 2, 2, 2})
	b[34+13] = types.TCPFlagSYN
	f := New(b)

	d, ok := Parse(f)
	require.True(t, ok)
	flags, ok := d.TCPFlags(f)
	require.True(t, ok)
	assert.Equal(t, types.TCPFlagSYN, flags)
}

func TestBuildFlowSlots_OnlyOneSlotPopulated(t *testing.T) {
	b := v4Frame(types.ProtoTCP, [4]byte{1, 1, 1, 1}, [4]byte{2, 2, 2, 2})
	f := New(b)
	d, ok := Parse(f)
	require.True(t, ok)

	slots, ok := BuildFlowSlots(f, d)
	require.True(t, ok)

	var zeroV4 types.FlowKeyV4
	var zeroV6 types.FlowKeyV6
	assert.NotEqual(t, zeroV4, slots.V4TCP)
	assert.Equal(t, zeroV4, slots.V4UDP)
	assert.Equal(t, zeroV6, slots.V6TCP)
	assert.Equal(t, zeroV6, slots.V6UDP)
}
