// Command ast_codegen writes the expression node types of the calculator.
//
//	go run ./internal/cmd/ast_codegen internal/calc
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: ast_codegen <output directory>")
		os.Exit(64)
	}

	outputDir := os.Args[1]
	// we do it the scripting way, instead of having types support from Go stdlib
	expressionTypes := []string{
		"Binary: Op *Token, Left Expr, Right Expr",
		"Grouping: Expression Expr",
		"Literal: Value uint64",
		// Unary only ever holds a MINUS operator.
		"Unary: Op *Token, Expression Expr",
	}

	if err := defineAst(outputDir, "Expr", expressionTypes); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defineAst(outputDir string, baseName string, types []string) error {
	packageName := filepath.Base(outputDir)
	if abs, err := filepath.Abs(outputDir); err == nil {
		packageName = filepath.Base(abs)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by ast_codegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n", packageName)

	// Interface for Expr in AST
	fmt.Fprintf(&buf, "type %s interface {\n", baseName)
	fmt.Fprintf(&buf, "\tAccept(visitor %sVisitor) (interface{}, error)\n", baseName)
	fmt.Fprintf(&buf, "}\n")

	defineVisitor(&buf, baseName, types)

	// Generate struct for each AST type
	for _, t := range types {
		typeName, fields, ok := strings.Cut(t, ":")
		if !ok {
			return fmt.Errorf("malformed type definition %q", t)
		}
		defineType(
			&buf,
			baseName,
			strings.TrimSpace(typeName),
			strings.TrimSpace(fields),
		)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format generated %s: %w", baseName, err)
	}

	fpath := filepath.Join(
		outputDir,
		fmt.Sprintf("%s.go", strings.ToLower(baseName)),
	)
	return os.WriteFile(fpath, src, 0644)
}

func defineVisitor(writer io.Writer, baseName string, types []string) {
	// We have one method for each AST type
	fmt.Fprintf(writer, "type %sVisitor interface {\n", baseName)
	for _, t := range types {
		typeName, _, _ := strings.Cut(t, ":")
		typeName = strings.TrimSpace(typeName)
		fmt.Fprintf(
			writer,
			"\tVisit%s%s(%s *%s%s) (interface{}, error)\n",
			typeName, baseName,
			strings.ToLower(baseName),
			typeName, baseName,
		)
	}
	fmt.Fprintf(writer, "}\n")
}

func defineType(
	writer io.Writer,
	baseName string,
	typeName string,
	fieldList string,
) {
	var fields []string
	var fieldNames []string
	for _, f := range strings.Split(fieldList, ",") {
		field := strings.TrimSpace(f)
		fields = append(fields, field)
		fieldNames = append(fieldNames, strings.Fields(field)[0])
	}

	// Struct definition
	fmt.Fprintf(writer, "type %s%s struct {\n", typeName, baseName)
	for _, f := range fields {
		fmt.Fprintf(writer, "\t%s\n", f)
	}
	fmt.Fprintf(writer, "}\n")

	// Constructor
	fmt.Fprintf(
		writer,
		"func New%s%s(%s) *%s%s {\n",
		typeName, baseName,
		fieldList,
		typeName, baseName,
	)
	fmt.Fprintf(
		writer,
		"\treturn &%s%s{%s}\n",
		typeName, baseName,
		strings.Join(fieldNames, ", "),
	)
	fmt.Fprintf(writer, "}\n")

	// Accept method
	fmt.Fprintf(
		writer,
		"func (%s *%s%s) Accept(visitor %sVisitor) (interface{}, error) {\n",
		strings.ToLower(baseName),
		typeName, baseName,
		baseName,
	)
	fmt.Fprintf(
		writer,
		"\treturn visitor.Visit%s%s(%s)\n",
		typeName, baseName,
		strings.ToLower(baseName),
	)
	fmt.Fprintf(writer, "}\n")
}
