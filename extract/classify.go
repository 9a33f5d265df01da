package extract

import "strings"

// Category classifies an exported resource as device firmware.
type Category int

const (
	// CategoryNone marks resources that are not firmware
	CategoryNone Category = iota

	// CategoryCypress marks Cypress FX2 USB controller firmware (fwusb/)
	CategoryCypress

	// CategorySpartan marks Xilinx Spartan FPGA bitstreams (fwfpga/)
	CategorySpartan
)

// String returns the name of the category.
func (c Category) String() string {
	switch c {
	case CategoryCypress:
		return "cypress"
	case CategorySpartan:
		return "spartan"
	default:
		return "none"
	}
}

// Firmware is an exported resource file recognised as device firmware.
type Firmware struct {
	// Path is the exported file on the extractor's filesystem
	Path string

	// Category selects how the file is installed
	Category Category
}

// Classify returns the firmware category of a resource by its slash-separated path.
func Classify(resourcePath string) Category {
	p := "/" + strings.TrimPrefix(resourcePath, "/")
	switch {
	case strings.Contains(p, "/fwusb/"):
		return CategoryCypress
	case strings.Contains(p, "/fwfpga/"):
		return CategorySpartan
	default:
		return CategoryNone
	}
}
