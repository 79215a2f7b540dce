// Package blend provides the straight-alpha compositing used by the
// annotation renderers.
//
// All values are non-premultiplied 8-bit samples. Math is done in float64
// on channels normalized to [0, 1] and rounded back to bytes, so a fully
// opaque source always replaces the destination and a fully transparent
// source always leaves it untouched.
package blend

import "image/color"

// epsilon is the output alpha below which a blend result is treated as
// fully transparent.
const epsilon = 2.220446049250313e-16

// SourceOver composites src over dst:
//
//	outA = sa + da*(1-sa)
//	outC = (sc*sa + dc*da*(1-sa)) / outA
//
// When outA is numerically zero the result is transparent black.
func SourceOver(src, dst color.NRGBA) color.NRGBA {
	switch src.A {
	case 0xff:
		return src
	case 0:
		return dst
	}

	srcA := float64(src.A) / 255
	dstA := float64(dst.A) / 255
	invSrcA := 1.0 - srcA

	outA := srcA + dstA*invSrcA
	if outA < epsilon {
		return color.NRGBA{}
	}

	return color.NRGBA{
		R: channel(src.R, dst.R, srcA, dstA, invSrcA, outA),
		G: channel(src.G, dst.G, srcA, dstA, invSrcA, outA),
		B: channel(src.B, dst.B, srcA, dstA, invSrcA, outA),
		A: toByte(outA * 255),
	}
}

// channel blends one color channel. Inputs and output are bytes, the
// weights are normalized alphas.
func channel(s, d uint8, srcA, dstA, invSrcA, outA float64) uint8 {
	return toByte((float64(s)*srcA + float64(d)*dstA*invSrcA) / outA)
}

// ScaleAlpha returns c with its alpha multiplied by f, clamped to [0, 1].
func ScaleAlpha(c color.NRGBA, f float64) color.NRGBA {
	if f >= 1 {
		return c
	}
	if !(f > 0) {
		c.A = 0
		return c
	}
	c.A = toByte(float64(c.A) * f)
	return c
}

// Coverage returns c with its alpha reduced by an 8-bit coverage value.
func Coverage(c color.NRGBA, cov uint8) color.NRGBA {
	switch cov {
	case 0xff:
		return c
	case 0:
		c.A = 0
		return c
	}
	c.A = uint8((uint32(c.A)*uint32(cov) + 127) / 255)
	return c
}

// toByte rounds x to the nearest value in [0, 255].
func toByte(x float64) uint8 {
	if !(x > 0) {
		return 0
	}
	if x >= 254.5 {
		return 255
	}
	return uint8(x + 0.5)
}
