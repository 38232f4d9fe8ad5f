package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bogdan-nikitin/disasm/cmd/info"
	"github.com/bogdan-nikitin/disasm/cmd/tools"
	"github.com/bogdan-nikitin/disasm/cmd/view"
	"github.com/bogdan-nikitin/disasm/pkg/disasm"
	"github.com/bogdan-nikitin/disasm/pkg/elf"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "disasm input output",
	Short: "A static disassembler for RV32 ELF object files",
	Long: `disasm reads a 32-bit little-endian RISC-V ELF object file and writes a
textual listing: the disassembled .text section with ABI register names and
labels on branch/jump targets, followed by a decoded .symtab dump.

Supported instruction sets: RV32I base and RV32M. Unknown encodings are
listed as unknown_instruction and do not stop the disassembly.`,
	Args: cobra.ArbitraryArgs,
	Run:  runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(tools.ToolsCmd, info.InfoCmd, view.ViewCmd)
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log pipeline details to stderr")
	RootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log-file", RootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use the config file named by cfgFile.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".disasm" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".disasm")
	}

	viper.SetEnvPrefix("disasm")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// All diagnostics carry this prefix on stderr
func reportError(err error) {
	fmt.Fprintf(os.Stderr, "Error. %v\n", err)
}

func runRoot(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		// Wrong arity is a usage problem, not an error: the message goes to
		// stdout and the exit status stays zero.
		fmt.Println("Specify input and output files and only")
		return
	}

	logger, cleanup, err := makeLogger()
	if err != nil {
		reportError(err)
		return
	}
	defer cleanup()

	if err := disassembleFile(args[0], args[1], logger); err != nil {
		reportError(err)
	}
}

func disassembleFile(inputPath string, outputPath string, logger *slog.Logger) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("couldn't open input file: %w", err)
	}

	file, err := elf.Parse(elf.NewBuffer(data))
	if err != nil {
		return err
	}

	d := disasm.New(file, &disasm.Options{Logger: logger})

	// Validate everything, symbols included, before the output file exists
	if err := d.Prepare(); err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("couldn't open output file: %w", err)
	}

	runErr := d.Run(out)
	closeErr := out.Close()

	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return fmt.Errorf("couldn't close output file: %w", closeErr)
	}
	return nil
}
