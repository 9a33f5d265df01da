package main

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultFirmwareDir = "~/.local/share/sigrok-firmware"

func newResourcesCmd(root *rootOptions) *cobra.Command {
	var (
		firmwareDir string
		yes         bool
		noInstall   bool
	)

	cmd := &cobra.Command{
		Use:   "resources <KingstVIS executable>",
		Short: "Export all Qt resources and install the firmware they contain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex := root.extractor()

			res, err := ex.ExtractExecutable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				root.log.Warn("skipped", zap.Error(w))
			}
			if noInstall || len(res.Firmware) == 0 {
				return nil
			}

			dir := firmwareDir
			if !yes {
				dir, err = promptFirmwareDir(cmd.InOrStdin(), cmd.OutOrStdout(), dir)
				if err != nil {
					return err
				}
			}
			if dir, err = homedir.Expand(dir); err != nil {
				return err
			}
			dir, err = filepath.Abs(dir)
			if err != nil {
				return err
			}

			installed, err := ex.Install(cmd.Context(), dir, res.Firmware)
			if err != nil {
				return err
			}
			for _, p := range installed.Installed {
				fmt.Fprintln(cmd.OutOrStdout(), "installed", p)
			}
			for _, w := range installed.Warnings {
				root.log.Warn("firmware conversion", zap.Error(w))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&firmwareDir, "firmware-dir", defaultFirmwareDir, "sigrok firmware directory")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "install without asking for the target directory")
	cmd.Flags().BoolVar(&noInstall, "no-install", false, "only export the resources")
	return cmd
}

// promptFirmwareDir asks for the install directory; an empty answer keeps def.
func promptFirmwareDir(in io.Reader, out io.Writer, def string) (string, error) {
	fmt.Fprintf(out, "Firmware will be copied to %q; press enter or type another directory.\n", def)
	fmt.Fprint(out, "WARNING: existing files in the target directory are overwritten: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if line = strings.TrimSpace(line); line != "" {
		return line, nil
	}
	return def, nil
}

func newLibraryCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "library <LA1010.dll>",
		Short: "Extract FX2 firmware and FPGA bitstream from a vendor library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := root.extractor().ExtractLibrary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				root.log.Warn("record not mirrored into image", zap.Error(w))
			}
			for _, p := range res.Installed {
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", p)
			}
			return nil
		},
	}
}
