package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"svfmt/internal/format"
	"svfmt/internal/source"
	"svfmt/internal/syntax"
	"svfmt/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.sv",
	Short: "Dump the classified token stream of a source file",
	Long:  `Tokenize shows the token stream the formatter works on, which helps when debugging surprising output`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return err
	}
	sf := fileSet.Get(id)

	tree, err := syntax.Parse(sf)
	if err != nil {
		return err
	}
	tokens := format.Tokens(tree)

	switch outputFormat {
	case "pretty":
		return renderTokensPretty(sf, tokens)
	case "json":
		return renderTokensJSON(tokens)
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}
}

func renderTokensPretty(sf *source.File, tokens []token.Token) error {
	for _, tok := range tokens {
		pos := sf.Pos(tok.Offset)
		text := tok.Text
		if tok.Kind == token.Newline {
			text = `\n`
		}
		if _, err := fmt.Fprintf(os.Stdout, "%4d:%-3d %-13s %s\n",
			pos.Line, pos.Col, tok.Kind, strconv.Quote(text)); err != nil {
			return err
		}
	}
	return nil
}

func renderTokensJSON(tokens []token.Token) error {
	type jsonToken struct {
		Text   string `json:"text"`
		Kind   string `json:"kind"`
		Offset uint32 `json:"offset"`
		Len    uint32 `json:"len"`
	}

	payload := make([]jsonToken, 0, len(tokens))
	for _, tok := range tokens {
		payload = append(payload, jsonToken{
			Text:   tok.Text,
			Kind:   tok.Kind.String(),
			Offset: tok.Offset,
			Len:    tok.Len,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
