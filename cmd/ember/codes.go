package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/diag"
)

var codesFormat string

func init() {
	codesCmd.Flags().StringVar(&codesFormat, "format", "pretty", "output format (pretty|json)")
}

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List diagnostic codes ember can emit",
	RunE: func(cmd *cobra.Command, args []string) error {
		codes := registeredCodes()
		switch strings.ToLower(codesFormat) {
		case "pretty":
			for _, c := range codes {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", c.ID(), c.Title())
			}
			return nil
		case "json":
			type codeEntry struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			}
			entries := make([]codeEntry, 0, len(codes))
			for _, c := range codes {
				entries = append(entries, codeEntry{ID: c.ID(), Title: c.Title()})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", codesFormat)
		}
	},
}

// registeredCodes отдаёт коды без нулевого значения: UnknownCode не
// документируем, он лишь страховка от незаполненного поля.
func registeredCodes() []diag.Code {
	all := diag.AllCodes()
	out := make([]diag.Code, 0, len(all))
	for _, c := range all {
		if c == diag.UnknownCode {
			continue
		}
		out = append(out, c)
	}
	return out
}
