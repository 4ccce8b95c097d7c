// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("ls8: ")

	err := newRootCmd().Execute()
	if err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{
		output: "-",
		strict: true,
	}

	rootCmd := &cobra.Command{
		Use:   "ls8 [program.ls8]",
		Short: "LS8 8-bit virtual machine",
		Long: "Runs an LS8 program image. With no program, a built-in program\n" +
			"that prints 8 is run.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.image = args[0]
			}
			opts.stdout = cmd.OutOrStdout()
			return opts.run()
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose mode")
	flags.BoolVar(&opts.strict, "strict", opts.strict, "Reject malformed .ls8 lines instead of skipping them")
	flags.StringVarP(&opts.compile, "compile", "c", "", ".asm file to compile")
	flags.BoolVarP(&opts.save, "save", "s", false, "Save compiled program as .ls8, do not execute")
	flags.StringVarP(&opts.output, "output", "o", opts.output, "Output for --save")

	rootCmd.AddCommand(newDisasmCmd())

	return rootCmd
}
