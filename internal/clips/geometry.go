package clips

// Geometry describes the one raw pixel encoding this service understands
// natively: interleaved frames of Width x Height pixels, BytesPerPixel bytes
// each, no padding, played back at FrameRate frames per second. It is a value
// injected into the estimator, trimmer, and merger at construction; nothing
// in this package reads it from a global.
type Geometry struct {
	Width         int
	Height        int
	BytesPerPixel int
	FrameRate     int
}

// DefaultGeometry is 320x240 24-bit RGB at 30 fps (230400 bytes per frame).
func DefaultGeometry() Geometry {
	return Geometry{Width: 320, Height: 240, BytesPerPixel: 3, FrameRate: 30}
}

// FrameSize returns the byte size of a single frame.
func (g Geometry) FrameSize() int64 {
	return int64(g.Width) * int64(g.Height) * int64(g.BytesPerPixel)
}

// FrameCount returns the number of whole frames in byteSize bytes.
// A partial trailing frame is discarded by the floor division.
func (g Geometry) FrameCount(byteSize int64) int64 {
	return byteSize / g.FrameSize()
}

// Duration returns the playtime in seconds of byteSize bytes of raw video.
func (g Geometry) Duration(byteSize int64) float64 {
	return float64(g.FrameCount(byteSize)) / float64(g.FrameRate)
}
