package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Yogendra14/chatbot-ner/city"
)

// legacyOutput is the three-list shape printed by detect --legacy.
type legacyOutput struct {
	Values    []city.LegacyValue `json:"entity_value"`
	Originals []string           `json:"original_text"`
	Methods   []string           `json:"detection_method"`
}

func newDetectCmd(a *app) *cobra.Command {
	var (
		botMessage string
		legacy     bool
	)
	cmd := &cobra.Command{
		Use:   "detect [text...]",
		Short: "Detect cities in one message (read from stdin when no text is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(b)
			}

			res, err := a.detector.Detect(text, botMessage)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if legacy {
				values, originals, methods := city.Legacy(res.Entities)
				return enc.Encode(legacyOutput{Values: values, Originals: originals, Methods: methods})
			}
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&botMessage, "bot-message", "b", "", "The bot prompt the message answers")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Print entity values, original texts and methods as parallel lists")
	return cmd
}
