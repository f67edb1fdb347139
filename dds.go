// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"encoding/binary"
	"fmt"
)

// DXGI format identifiers recognized for DX10 texture reconstruction,
// matching the subset of dxgiformat.h values the format table in
// original_source actually produces.
const (
	dxgiBC1Unorm     = 71
	dxgiBC1UnormSRGB = 72
	dxgiBC2Unorm     = 74
	dxgiBC2UnormSRGB = 75
	dxgiBC3Unorm     = 77
	dxgiBC3UnormSRGB = 78
	dxgiBC4Unorm     = 80
	dxgiBC5Unorm     = 83
	dxgiBC5Snorm     = 84
	dxgiBC7Unorm     = 98
	dxgiBC7UnormSRGB = 99
	dxgiR8G8B8A8     = 28
	dxgiB8G8R8A8     = 87
	dxgiB8G8R8X8     = 88
	dxgiR8Unorm      = 61
)

const (
	ddsMagic = "DDS "

	ddsdCaps        = 0x1
	ddsdHeight      = 0x2
	ddsdWidth       = 0x4
	ddsdPitch       = 0x8
	ddsdPixelFormat = 0x1000
	ddsdMipMapCount = 0x20000
	ddsdLinearSize  = 0x80000

	ddpfAlphaPixels = 0x1
	ddpfFourCC      = 0x4
	ddpfRGB         = 0x40
	ddpfLuminance   = 0x20000

	ddscapsTexture = 0x1000
	ddscapsMipMap  = 0x400000

	ddsCubemapAllFaces = 0xFE00

	dxgiResourceDimensionTexture2D = 3
)

// pixelFormat is the subset of ddspf fields the synthesis table needs to
// populate; dwSize/dwFlags/dwFourCC/dwRGBBitCount/masks.
type pixelFormat struct {
	flags       uint32
	fourCC      string
	bitCount    uint32
	rMask       uint32
	gMask       uint32
	bMask       uint32
	aMask       uint32
	needsDXT10  bool
	dxt10Format uint32
}

// ddsPixelFormatFor resolves the DDS_HEADER pixel format (and whether a
// DXT10 extension header is required) from a DX10 texture's DXGI format,
// per the mapping table.
func ddsPixelFormatFor(dxgiFormat uint16) (pixelFormat, uint32, bool, error) {
	switch dxgiFormat {
	case dxgiBC1Unorm, dxgiBC1UnormSRGB:
		return pixelFormat{flags: ddpfFourCC, fourCC: "DXT1"}, 0, false, nil
	case dxgiBC2Unorm, dxgiBC2UnormSRGB:
		return pixelFormat{flags: ddpfFourCC, fourCC: "DXT3"}, 0, false, nil
	case dxgiBC3Unorm, dxgiBC3UnormSRGB:
		return pixelFormat{flags: ddpfFourCC, fourCC: "DXT5"}, 0, false, nil
	case dxgiBC4Unorm:
		return pixelFormat{flags: ddpfFourCC, fourCC: "BC4U"}, 0, false, nil
	case dxgiBC5Unorm:
		return pixelFormat{flags: ddpfFourCC, fourCC: "ATI2"}, 0, false, nil
	case dxgiBC5Snorm:
		return pixelFormat{flags: ddpfFourCC, fourCC: "BC5S"}, 0, false, nil
	case dxgiBC7Unorm, dxgiBC7UnormSRGB:
		return pixelFormat{flags: ddpfFourCC, fourCC: "DX10"}, uint32(dxgiFormat), true, nil
	case dxgiR8G8B8A8:
		return pixelFormat{
			flags: ddpfRGB | ddpfAlphaPixels, bitCount: 32,
			rMask: 0x00FF0000, gMask: 0x0000FF00, bMask: 0x000000FF, aMask: 0xFF000000,
		}, 0, false, nil
	case dxgiB8G8R8A8:
		return pixelFormat{
			flags: ddpfRGB | ddpfAlphaPixels, bitCount: 32,
			rMask: 0x000000FF, gMask: 0x0000FF00, bMask: 0x00FF0000, aMask: 0xFF000000,
		}, 0, false, nil
	case dxgiB8G8R8X8:
		return pixelFormat{
			flags: ddpfRGB, bitCount: 32,
			rMask: 0x000000FF, gMask: 0x0000FF00, bMask: 0x00FF0000,
		}, 0, false, nil
	case dxgiR8Unorm:
		return pixelFormat{flags: ddpfLuminance, bitCount: 8, rMask: 0xFF}, 0, false, nil
	default:
		return pixelFormat{}, 0, false, fmt.Errorf("%w: dxgi format %d", ErrUnsupportedFormat, dxgiFormat)
	}
}

// pitchOrLinearSizeFor computes the DDS_HEADER pitch_or_linear_size field
// per the mapping table; zero means "unset" (no DDSD_LINEARSIZE/DDSD_PITCH
// flag is added for that format).
func pitchOrLinearSizeFor(dxgiFormat uint16, width, height uint16) (uint32, bool) {
	w, h := uint32(width), uint32(height)
	switch dxgiFormat {
	case dxgiBC1Unorm, dxgiBC1UnormSRGB:
		return w * h / 2, true
	case dxgiBC2Unorm, dxgiBC2UnormSRGB, dxgiBC3Unorm, dxgiBC3UnormSRGB,
		dxgiBC4Unorm, dxgiBC5Unorm, dxgiBC5Snorm, dxgiBC7Unorm, dxgiBC7UnormSRGB:
		return w * h, true
	case dxgiR8G8B8A8, dxgiB8G8R8A8:
		return w * h * 4, true
	case dxgiR8Unorm:
		return w * h, true
	case dxgiB8G8R8X8:
		return 0, false
	default:
		return 0, false
	}
}

// buildDDSHeader synthesizes the "DDS " magic, the 124-byte DDS_HEADER, and
// an optional 20-byte DDS_HEADER_DXT10 for a single DX10 texture file.
func buildDDSHeader(th TextureHeader) ([]byte, error) {
	dxgiFormat := th.Format
	pf, dxt10Format, needsDXT10, err := ddsPixelFormatFor(dxgiFormat)
	if err != nil {
		return nil, err
	}

	flags := uint32(ddsdCaps | ddsdHeight | ddsdWidth | ddsdPixelFormat | ddsdMipMapCount)
	pitch, hasPitch := pitchOrLinearSizeFor(dxgiFormat, th.Width, th.Height)
	if hasPitch {
		flags |= ddsdLinearSize
	}

	caps := uint32(ddscapsTexture | ddscapsMipMap)
	var caps2 uint32
	if th.IsCubemap {
		caps2 = ddsCubemapAllFaces
	}

	out := make([]byte, 4+124)
	copy(out[0:4], ddsMagic)

	h := out[4:]
	binary.LittleEndian.PutUint32(h[0:4], 124)
	binary.LittleEndian.PutUint32(h[4:8], flags)
	binary.LittleEndian.PutUint32(h[8:12], uint32(th.Height))
	binary.LittleEndian.PutUint32(h[12:16], uint32(th.Width))
	binary.LittleEndian.PutUint32(h[16:20], pitch)
	binary.LittleEndian.PutUint32(h[20:24], 0) // depth
	binary.LittleEndian.PutUint32(h[24:28], uint32(th.MipCount))
	// bytes 28..72 are reserved1 (11 u32s), left zero.

	pfBuf := h[72:104]
	binary.LittleEndian.PutUint32(pfBuf[0:4], 32)
	binary.LittleEndian.PutUint32(pfBuf[4:8], pf.flags)
	if pf.fourCC != "" {
		copy(pfBuf[8:12], pf.fourCC)
	}
	binary.LittleEndian.PutUint32(pfBuf[12:16], pf.bitCount)
	binary.LittleEndian.PutUint32(pfBuf[16:20], pf.rMask)
	binary.LittleEndian.PutUint32(pfBuf[20:24], pf.gMask)
	binary.LittleEndian.PutUint32(pfBuf[24:28], pf.bMask)
	binary.LittleEndian.PutUint32(pfBuf[28:32], pf.aMask)

	binary.LittleEndian.PutUint32(h[104:108], caps)
	binary.LittleEndian.PutUint32(h[108:112], caps2)
	// bytes 112..124 are caps3, caps4, reserved2 — left zero.

	if !needsDXT10 {
		return out, nil
	}

	dxt10 := make([]byte, 20)
	binary.LittleEndian.PutUint32(dxt10[0:4], dxt10Format)
	binary.LittleEndian.PutUint32(dxt10[4:8], dxgiResourceDimensionTexture2D)
	binary.LittleEndian.PutUint32(dxt10[8:12], 0)
	binary.LittleEndian.PutUint32(dxt10[12:16], 1)
	binary.LittleEndian.PutUint32(dxt10[16:20], 0)

	return append(out, dxt10...), nil
}
