package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/ls8/cpu"
	ls8io "github.com/ezrec/ls8/io"
)

func newDisasmCmd() *cobra.Command {
	var strict bool

	disasmCmd := &cobra.Command{
		Use:   "disasm program.ls8",
		Short: "Disassemble an LS8 program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inf, err := os.Open(args[0])
			if err != nil {
				return errors.Join(ls8io.ErrLoad, err)
			}
			defer inf.Close()

			rom := &ls8io.Rom{Strict: strict}
			err = rom.Load(inf)
			if err != nil {
				return fmt.Errorf("%v: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			for address, code := range cpu.Disassemble(rom.Data) {
				_, err = fmt.Fprintf(out, "%02x: %-11v ; %08b\n", address, code, code.Word)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
	disasmCmd.Flags().BoolVar(&strict, "strict", true, "Reject malformed .ls8 lines instead of skipping them")

	return disasmCmd
}
