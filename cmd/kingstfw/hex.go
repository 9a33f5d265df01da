package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/moffa90/go-kingstfw/ihex"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newHex2FwCmd(root *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "hex2fw <in.hex> <out.fw>",
		Short: "Convert Intel HEX text to a flat binary image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			decoded, err := ihex.Decode(f, ihex.WithImageSize(root.size), ihex.WithStrictChecksum(strict))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			for _, w := range decoded.Warnings {
				root.log.Warn(args[0], zap.Error(w))
			}

			if err := os.WriteFile(args[1], decoded.Image.Bytes(), 0o644); err != nil {
				return err
			}
			root.log.Info("image written",
				zap.String("path", args[1]),
				zap.Int("records", len(decoded.Records)),
				zap.String("size", humanize.Bytes(uint64(decoded.Image.Size()))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict-checksum", false, "fail on checksum mismatches")
	return cmd
}

func newEncodeCmd(root *rootOptions) *cobra.Command {
	var (
		offset int
		length int
	)

	cmd := &cobra.Command{
		Use:   "encode <source> <out-prefix>",
		Short: "Encode a micro-record region of a file as <out-prefix>.hex and <out-prefix>.fw",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if length <= 0 {
				length = len(data) - offset
			}
			if offset < 0 || length < 0 || offset+length > len(data) {
				return fmt.Errorf("region 0x%X+0x%X exceeds %s (%d bytes)", offset, length, args[0], len(data))
			}

			enc, err := ihex.Encode(data[offset:offset+length], ihex.WithImageSize(root.size))
			if err != nil {
				return err
			}
			for _, w := range enc.Warnings {
				root.log.Warn("record not mirrored into image", zap.Error(w))
			}

			var text bytes.Buffer
			if _, err := enc.WriteTo(&text); err != nil {
				return err
			}
			if err := os.WriteFile(args[1]+".hex", text.Bytes(), 0o644); err != nil {
				return err
			}
			if err := os.WriteFile(args[1]+".fw", enc.Image.Bytes(), 0o644); err != nil {
				return err
			}
			root.log.Info("encoded",
				zap.Int("records", len(enc.Records)),
				zap.String("hex", args[1]+".hex"),
				zap.String("fw", args[1]+".fw"))
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "start of the micro-record region")
	cmd.Flags().IntVar(&length, "length", 0, "length of the region (default: to end of file)")
	return cmd
}
