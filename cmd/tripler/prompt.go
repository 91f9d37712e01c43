package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/siherrmann/tripler/core/taxonomy"
	"github.com/siherrmann/tripler/core/validator"
	"github.com/siherrmann/tripler/helper"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [text]",
	Short: "Print the validator prompt for a text",
	Long:  "Print the validator prompt for a text. The text is read from stdin when no argument is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return helper.NewError("read text", err)
			}
			text = strings.TrimSpace(string(raw))
		}

		_, err := fmt.Fprintln(cmd.OutOrStdout(), validator.BuildPrompt(text, taxonomy.Default()))
		return err
	},
}
