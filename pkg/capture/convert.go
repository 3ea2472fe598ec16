package capture

import "github.com/user/teapotcast/pkg/ports"

// swizzle rewrites packed RGBA pixels in place into the target layout.
func swizzle(pix []byte, format ports.PixelFormat) {
	switch format {
	case ports.FormatBGRA:
		for i := 0; i+3 < len(pix); i += 4 {
			pix[i], pix[i+2] = pix[i+2], pix[i]
		}
	case ports.FormatARGB:
		for i := 0; i+3 < len(pix); i += 4 {
			r, g, b, a := pix[i], pix[i+1], pix[i+2], pix[i+3]
			pix[i], pix[i+1], pix[i+2], pix[i+3] = a, r, g, b
		}
	}
}

// ToRGBA returns a copy of a frame's pixels in RGBA order.
func ToRGBA(frame ports.VideoFrame) []byte {
	out := make([]byte, len(frame.Pix))
	copy(out, frame.Pix)
	switch frame.Format {
	case ports.FormatBGRA:
		for i := 0; i+3 < len(out); i += 4 {
			out[i], out[i+2] = out[i+2], out[i]
		}
	case ports.FormatARGB:
		for i := 0; i+3 < len(out); i += 4 {
			a, r, g, b := out[i], out[i+1], out[i+2], out[i+3]
			out[i], out[i+1], out[i+2], out[i+3] = r, g, b, a
		}
	}
	return out
}
