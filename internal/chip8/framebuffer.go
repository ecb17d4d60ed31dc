package chip8

// Display dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Framebuffer is the monochrome 64x32 pixel grid, stored row-major with
// one byte per pixel holding 0 or 1.
type Framebuffer struct {
	pixels [ScreenWidth * ScreenHeight]uint8
}

// Clear sets all pixels to 0.
func (f *Framebuffer) Clear() {
	f.pixels = [ScreenWidth * ScreenHeight]uint8{}
}

// Pixel returns the pixel value at the given position, coordinates wrap
// around the screen edges.
func (f *Framebuffer) Pixel(x, y int) uint8 {
	return f.pixels[pixelIndex(x, y)]
}

// Bytes returns a copy of the pixel data.
func (f *Framebuffer) Bytes() []byte {
	b := make([]byte, len(f.pixels))
	copy(b, f.pixels[:])
	return b
}

// flip XORs the pixel at the given position and reports whether the pixel
// was switched from set to clear.
func (f *Framebuffer) flip(x, y int) bool {
	i := pixelIndex(x, y)
	f.pixels[i] ^= 1
	return f.pixels[i] == 0
}

func pixelIndex(x, y int) int {
	x %= ScreenWidth
	if x < 0 {
		x += ScreenWidth
	}
	y %= ScreenHeight
	if y < 0 {
		y += ScreenHeight
	}
	return x + y*ScreenWidth
}
