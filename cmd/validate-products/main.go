package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/shop/pkg/validate"
)

// validate-products проверяет карточки товаров в том же формате, что читает консьюмер каталога.
// Валидные записи печатаются в stdout каноническим JSON, отклонённые — в stderr с номером строки.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl); stdin (jsonl) when empty")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	quiet := flag.Bool("q", false, "print only the summary line to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	format := validate.InputFormat(*formatStr)
	path := *inputPath
	if path == "" {
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	rep, err := validate.ValidateFile(ctx, validate.NewProductValidator(), path, format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation aborted: %v (%s)\n", err, rep)
		os.Exit(2)
	}
	if !*quiet {
		for _, f := range rep.Failures {
			fmt.Fprintln(os.Stderr, f.Error())
		}
	}
	fmt.Fprintf(os.Stderr, "validation done: %s\n", rep)
	if rep.Invalid > 0 {
		os.Exit(1)
	}
}
