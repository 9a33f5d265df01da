package extract

import (
	"github.com/moffa90/go-kingstfw/ihex"
	"github.com/spf13/afero"
)

// Config holds the extractor configuration.
type Config struct {
	// ProgressCallback is called during extraction to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Fs is the filesystem all files are read from and written to
	Fs afero.Fs

	// Symbols names the resource table symbols in the executable
	Symbols SymbolNames

	// OutputDir receives exported resources. Library outputs default to the
	// library's own directory when empty.
	OutputDir string

	// FirmwareDir enables installing classified firmware below FirmwareDir/kingst
	FirmwareDir string

	// ImageSize is the size of generated .fw images
	ImageSize int

	// Strict makes any malformed resource node fatal
	Strict bool

	// Libraries lists the vendor libraries ExtractLibrary accepts
	Libraries []Library
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Fs:        afero.NewOsFs(),
		Symbols:   DefaultSymbolNames(),
		ImageSize: ihex.DefaultImageSize,
		Libraries: KnownLibraries,
	}
}

// Option is a functional option for configuring the Extractor.
type Option func(*Config)

// WithProgressCallback sets a callback function to track extraction progress.
//
// Example:
//
//	ex := extract.New(
//	    extract.WithProgressCallback(func(p extract.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the extractor operations.
//
// Example:
//
//	ex := extract.New(extract.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithFs sets the filesystem. Default is the OS filesystem.
//
// Example:
//
//	ex := extract.New(extract.WithFs(afero.NewMemMapFs()))
func WithFs(fs afero.Fs) Option {
	return func(c *Config) {
		if fs != nil {
			c.Fs = fs
		}
	}
}

// WithSymbolNames sets the symbol name suffixes of the resource tables.
//
// Example:
//
//	ex := extract.New(extract.WithSymbolNames(extract.SymbolNames{
//	    Struct:  "qt_resource_struct_app",
//	    Names:   "qt_resource_name_app",
//	    Payload: "qt_resource_data_app",
//	}))
func WithSymbolNames(names SymbolNames) Option {
	return func(c *Config) {
		c.Symbols = names
	}
}

// WithOutputDir sets the directory exported files are written to.
func WithOutputDir(dir string) Option {
	return func(c *Config) {
		c.OutputDir = dir
	}
}

// WithFirmwareDir makes ExtractExecutable install firmware into dir/kingst.
//
// Example:
//
//	ex := extract.New(extract.WithFirmwareDir("/usr/share/sigrok-firmware"))
func WithFirmwareDir(dir string) Option {
	return func(c *Config) {
		c.FirmwareDir = dir
	}
}

// WithImageSize sets the size of generated .fw images. Default is 0x4000.
func WithImageSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.ImageSize = size
		}
	}
}

// WithStrict makes malformed resource nodes abort the extraction.
// Default is false: such nodes are skipped and reported as warnings.
func WithStrict(strict bool) Option {
	return func(c *Config) {
		c.Strict = strict
	}
}

// WithLibraries replaces the table of supported vendor libraries.
func WithLibraries(libs []Library) Option {
	return func(c *Config) {
		c.Libraries = libs
	}
}
