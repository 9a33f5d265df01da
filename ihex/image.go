package ihex

// DefaultImageSize is the address space of the FX2 firmware target.
const DefaultImageSize = 0x4000

// Image is a flat, zero-filled memory image.
type Image struct {
	data []byte
}

// NewImage returns a zero-filled image of size bytes.
func NewImage(size int) *Image {
	return &Image{data: make([]byte, size)}
}

// Size returns the image size in bytes.
func (im *Image) Size() int {
	return len(im.data)
}

// Bytes returns the image contents. The slice aliases the image.
func (im *Image) Bytes() []byte {
	return im.data
}

// Write copies data to addr. Nothing is written unless all of data fits.
func (im *Image) Write(addr int, data []byte) error {
	if err := im.write(addr, data); err != nil {
		return err
	}
	return nil
}

func (im *Image) write(addr int, data []byte) *AddressOutOfRangeError {
	if addr < 0 || addr+len(data) > len(im.data) {
		return &AddressOutOfRangeError{Address: addr, Length: len(data), Size: len(im.data)}
	}
	copy(im.data[addr:], data)
	return nil
}
