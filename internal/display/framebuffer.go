package display

import (
	"image"
)

// packRGB565 converts an RGBA frame into big-endian 16-bit 5-6-5 pixels,
// the panel's native format. dst must hold width*height*2 bytes.
func packRGB565(frame *image.RGBA, dst []byte) {
	bounds := frame.Bounds()
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := frame.Pix[(y-bounds.Min.Y)*frame.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			r := row[x*4]
			g := row[x*4+1]
			b := row[x*4+2]
			v := uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3
			dst[i] = byte(v >> 8)
			dst[i+1] = byte(v)
			i += 2
		}
	}
}
