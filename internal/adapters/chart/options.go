package chart

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the pixel size of every chart.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}
