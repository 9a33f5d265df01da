package extract

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/moffa90/go-kingstfw/ihex"
	"github.com/moffa90/go-kingstfw/qrc"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

// MockLogger records log calls for testing
type MockLogger struct {
	DebugMessages []string
	InfoMessages  []string
	ErrorMessages []string
}

func (m *MockLogger) Debug(msg string, keysAndValues ...interface{}) {
	m.DebugMessages = append(m.DebugMessages, msg)
}

func (m *MockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.InfoMessages = append(m.InfoMessages, msg)
}

func (m *MockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.ErrorMessages = append(m.ErrorMessages, msg)
}

var (
	bitstreamData = bytes.Repeat([]byte{0xAA, 0x99, 0x55, 0x66}, 8)
	binaryFw      = []byte{0x02, 0x00, 0x06, 0x00}
)

// hexFirmware returns two full data records at 0x0000 and 0x0010 plus EOF.
func hexFirmware() (string, []byte) {
	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = byte(i + 1)
	}

	var lines []string
	for off := 0; off < len(payload); off += 16 {
		rec := &ihex.Record{Type: ihex.TypeData, Address: uint16(off), Data: payload[off : off+16]}
		rec.Checksum = rec.ComputeChecksum()
		lines = append(lines, rec.String())
	}
	lines = append(lines, ihex.EOFRecord)
	return strings.Join(lines, "\n") + "\n", payload
}

// resourceTables builds, in node id order (root, dirs, readme, files):
//
//	/fwfpga/LA1010A   bitstream
//	/fwusb/fw01A2     HEX text
//	/fwusb/fw02       binary firmware
//	/readme.txt       plain resource
func resourceTables(t *testing.T) qrc.Tables {
	t.Helper()
	hexText, _ := hexFirmware()

	var structs, names, payload bytes.Buffer
	name := func(s string) uint32 {
		text, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
		require.NoError(t, err)
		off := uint32(names.Len())
		var hdr [qrc.NameHeaderSize]byte
		binary.BigEndian.PutUint16(hdr[0:2], uint16(len(text)/2))
		names.Write(hdr[:])
		names.Write(text)
		return off
	}
	record := func(nameOff uint32, flags uint16, a, b uint32) {
		var rec [qrc.StructRecordSize]byte
		binary.BigEndian.PutUint32(rec[0:4], nameOff)
		binary.BigEndian.PutUint16(rec[4:6], flags)
		binary.BigEndian.PutUint32(rec[6:10], a)
		binary.BigEndian.PutUint32(rec[10:14], b)
		structs.Write(rec[:])
	}
	dir := func(n string, count, first uint32) {
		record(name(n), qrc.FlagDirectory, count, first)
	}
	file := func(n string, data []byte) {
		off := uint32(payload.Len())
		var hdr [qrc.PayloadHeaderSize]byte
		binary.BigEndian.PutUint32(hdr[:], uint32(len(data)))
		payload.Write(hdr[:])
		payload.Write(data)
		record(name(n), 0, 0, off)
	}

	dir("", 3, 1)
	dir("fwfpga", 1, 4)
	dir("fwusb", 2, 5)
	file("readme.txt", []byte("hello"))
	file("LA1010A", bitstreamData)
	file("fw01A2", []byte(hexText))
	file("fw02", binaryFw)

	return qrc.Tables{Struct: structs.Bytes(), Names: names.Bytes(), Payload: payload.Bytes()}
}

type elfSymbol struct {
	name string
	data []byte
}

const rodataAddr = 0x401000

// buildELF assembles a minimal little-endian ELF64 image with a .rodata
// section holding each symbol's data and a .symtab describing them.
func buildELF(t *testing.T, syms []elfSymbol) []byte {
	t.Helper()

	const (
		ehsize = 64
		shsize = 64
		symsz  = 24
	)
	align := func(n int) int { return (n + 7) &^ 7 }

	var rodata bytes.Buffer
	strtab := []byte{0}
	symtab := make([]elf.Sym64, 1, len(syms)+1)
	for _, s := range syms {
		symtab = append(symtab, elf.Sym64{
			Name:  uint32(len(strtab)),
			Info:  elf.ST_INFO(elf.STB_LOCAL, elf.STT_OBJECT),
			Shndx: 1,
			Value: uint64(rodataAddr + rodata.Len()),
			Size:  uint64(len(s.data)),
		})
		strtab = append(append(strtab, s.name...), 0)
		rodata.Write(s.data)
		for rodata.Len()%8 != 0 {
			rodata.WriteByte(0)
		}
	}

	shstrtab := []byte("\x00.rodata\x00.symtab\x00.strtab\x00.shstrtab\x00")
	shName := func(n string) uint32 {
		return uint32(bytes.Index(shstrtab, []byte("\x00"+n+"\x00")) + 1)
	}

	rodataOff := ehsize
	symtabOff := align(rodataOff + rodata.Len())
	strtabOff := symtabOff + len(symtab)*symsz
	shstrOff := strtabOff + len(strtab)
	shOff := align(shstrOff + len(shstrtab))

	sections := []elf.Section64{
		{},
		{
			Name: shName(".rodata"), Type: uint32(elf.SHT_PROGBITS), Flags: uint64(elf.SHF_ALLOC),
			Addr: rodataAddr, Off: uint64(rodataOff), Size: uint64(rodata.Len()), Addralign: 8,
		},
		{
			Name: shName(".symtab"), Type: uint32(elf.SHT_SYMTAB), Off: uint64(symtabOff),
			Size: uint64(len(symtab) * symsz), Link: 3, Info: 1, Addralign: 8, Entsize: symsz,
		},
		{
			Name: shName(".strtab"), Type: uint32(elf.SHT_STRTAB), Off: uint64(strtabOff),
			Size: uint64(len(strtab)), Addralign: 1,
		},
		{
			Name: shName(".shstrtab"), Type: uint32(elf.SHT_STRTAB), Off: uint64(shstrOff),
			Size: uint64(len(shstrtab)), Addralign: 1,
		},
	}

	hdr := elf.Header64{
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_X86_64),
		Version:   uint32(elf.EV_CURRENT),
		Shoff:     uint64(shOff),
		Ehsize:    ehsize,
		Phentsize: 56,
		Shentsize: shsize,
		Shnum:     uint16(len(sections)),
		Shstrndx:  4,
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	var out bytes.Buffer
	write := func(v interface{}) {
		require.NoError(t, binary.Write(&out, binary.LittleEndian, v))
	}
	pad := func(to int) {
		require.LessOrEqual(t, out.Len(), to, fmt.Sprintf("layout overlap at %d", to))
		out.Write(make([]byte, to-out.Len()))
	}

	write(hdr)
	pad(rodataOff)
	out.Write(rodata.Bytes())
	pad(symtabOff)
	write(symtab)
	out.Write(strtab)
	out.Write(shstrtab)
	pad(shOff)
	write(sections)

	return out.Bytes()
}

// kingstELF returns an executable image carrying resourceTables under the
// mangled names rcc emits.
func kingstELF(t *testing.T) []byte {
	tables := resourceTables(t)
	return buildELF(t, []elfSymbol{
		{name: "_ZL18qt_resource_struct", data: tables.Struct},
		{name: "_ZL16qt_resource_name", data: tables.Names},
		{name: "_ZL16qt_resource_data", data: tables.Payload},
		{name: "main_helper", data: []byte{1, 2, 3}},
	})
}
