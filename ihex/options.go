package ihex

// Config holds the codec configuration.
type Config struct {
	// ImageSize is the size of the flat image in bytes
	ImageSize int

	// StrictChecksum makes a checksum mismatch fatal instead of a warning
	StrictChecksum bool
}

func defaultConfig() Config {
	return Config{
		ImageSize: DefaultImageSize,
	}
}

// Option is a functional option for Decode and Encode.
type Option func(*Config)

// WithImageSize sets the image size. Non-positive sizes are ignored.
//
// Example:
//
//	out, err := ihex.Decode(r, ihex.WithImageSize(0x10000))
func WithImageSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.ImageSize = size
		}
	}
}

// WithStrictChecksum makes Decode fail on the first checksum mismatch.
// Default is false: mismatches are reported in Decoded.Warnings.
func WithStrictChecksum(strict bool) Option {
	return func(c *Config) {
		c.StrictChecksum = strict
	}
}
