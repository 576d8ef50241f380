package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//go:embed examples/example.yml
var exampleYAML []byte

//go:embed examples/example.hcl
var exampleHCL []byte

const exampleYAMLHeader = `# mtweaker: recipe reference (YAML)
# Run:     mtweaker --file <this-file>
# Preview: mtweaker --file <this-file> --dry-run
# HCL:     mtweaker example --hcl

`

const exampleHCLHeader = `# mtweaker: recipe reference (HCL)
# Run:     mtweaker --file <this-file>
# Preview: mtweaker --file <this-file> --dry-run

`

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print a reference recipe file covering every statement kind",
	Long: "Print a recipe file that demonstrates every statement kind.\n" +
		"By default the YAML form is printed. Use --hcl for the HCL form.\n" +
		"Use --output to write to a file instead of stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		useHCL, _ := cmd.Flags().GetBool("hcl")

		header, body := exampleYAMLHeader, exampleYAML
		if useHCL {
			header, body = exampleHCLHeader, exampleHCL
		}

		output, _ := cmd.Flags().GetString("output")
		w := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		fmt.Fprint(w, header)
		if _, err := w.Write(body); err != nil {
			return err
		}

		if output != "" {
			fmt.Fprintf(os.Stderr, "written to %s\n", output)
		}
		return nil
	},
}

func init() {
	exampleCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	exampleCmd.Flags().Bool("hcl", false, "print the HCL form instead of YAML")
}
