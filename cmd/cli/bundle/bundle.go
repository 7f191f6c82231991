package bundle

import (
	"fmt"
	"github.com/myrjola/kompassi/internal/ssr"
	"github.com/spf13/cobra"
	"os"
)

var Group = &cobra.Group{
	ID:    "bundle",
	Title: "Bundler",
}

var CustomElements = &cobra.Command{
	Use:     "custom-elements [file...]",
	GroupID: "bundle",
	Short:   "Expand custom elements",
	Long:    "Expands custom element aliases in HTML fragments and writes the result to stdout",
	Run: func(_ *cobra.Command, args []string) {
		if len(args) == 0 {
			if err := ssr.ReplaceCustomElements(os.Stdout, os.Stdin); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Bundler error: %v\n", err)
			}
			return
		}

		for _, path := range args {
			file, err := os.Open(path)
			if err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Open error: %v\n", err)
				return
			}
			err = ssr.ReplaceCustomElements(os.Stdout, file)
			_ = file.Close()
			if err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Bundler error: %v\n", err)
				return
			}
		}
	},
}
