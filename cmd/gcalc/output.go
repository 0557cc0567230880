package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ltungv/gcalc/internal/calc"
	"github.com/ltungv/gcalc/internal/config"
)

func writeSummary(w io.Writer, summary *calc.Summary, format string, printAST bool) error {
	switch format {
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(summary); err != nil {
			return err
		}
		return encoder.Close()
	}

	if !printAST {
		_, err := fmt.Fprintln(w, summary.Total)
		return err
	}
	for _, result := range summary.Results {
		if result.AST == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, result.AST); err != nil {
			return err
		}
	}
	return nil
}
