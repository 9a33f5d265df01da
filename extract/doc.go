// Package extract pulls Kingst logic analyzer firmware out of the KingstVIS
// vendor software and installs it for sigrok.
//
// # Overview
//
// Two sources are supported:
//   - The Linux KingstVIS executable, whose Qt resources hold the FX2 firmware
//     (fwusb/) and FPGA bitstreams (fwfpga/)
//   - Known builds of the Windows device library (e.g. LA1010.dll), which embed
//     the FX2 firmware as micro-records and the bitstream as raw bytes
//
// # Basic Usage
//
//	ex := extract.New(extract.WithOutputDir("resources"))
//
//	res, err := ex.ExtractExecutable(context.Background(), "KingstVIS")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, fw := range res.Firmware {
//	    fmt.Println(fw.Category, fw.Path)
//	}
//
// # Installing
//
// With a firmware directory set, classified firmware is copied into its
// kingst/ subdirectory: Cypress firmware as NAME.fw (plus NAME.hex when the
// resource is HEX text) and Spartan bitstreams as NAME.bitstream.
//
//	ex := extract.New(extract.WithFirmwareDir("/usr/share/sigrok-firmware"))
//
// # Filesystem
//
// All file access goes through an afero.Fs, so the extractor can run against
// an in-memory filesystem:
//
//	ex := extract.New(extract.WithFs(afero.NewMemMapFs()))
//
// # Logging
//
// Any logger with Debug, Info and Error methods taking key-value pairs can be
// plugged in with WithLogger. Tolerated problems (dropped resource nodes,
// checksum mismatches) are logged at info level and returned in
// Result.Warnings.
package extract
