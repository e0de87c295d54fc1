package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/shop/internal/ports"
)

// InputFormat — формат входного файла с карточками товаров.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

const maxLineSize = 10 << 20

// LineError — отклонённая запись и номер её строки (для JSON-документа всегда 1).
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

// Report — итог пакетной проверки.
type Report struct {
	Valid    int
	Invalid  int
	Failures []LineError
}

func (r Report) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.Valid, r.Invalid)
}

// DetectFormat выбирает формат по расширению; всё, кроме .jsonl, считается JSON.
func DetectFormat(path string) InputFormat {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile — проверяет файл и пишет канонический JSON валидных товаров в w.
func ValidateFile(ctx context.Context, v ports.ProductValidator, path string, format InputFormat, w io.Writer) (Report, error) {
	if format == FormatAuto {
		format = DetectFormat(path)
	}
	if format != FormatJSON && format != FormatJSONL {
		return Report{}, fmt.Errorf("unsupported format: %s", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if format == FormatJSONL {
		return ValidateStream(ctx, v, f, w)
	}
	return ValidateDocument(ctx, v, f, w)
}

// ValidateDocument — один товар в одном JSON-документе.
func ValidateDocument(ctx context.Context, v ports.ProductValidator, r io.Reader, w io.Writer) (Report, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("read document: %w", err)
	}

	var rep Report
	if err := rep.check(ctx, v, 1, raw, w); err != nil {
		return rep, err
	}
	return rep, nil
}

// ValidateStream — JSONL: по товару на строку, пустые строки пропускаются.
// Невалидные строки попадают в отчёт и не прерывают обработку.
func ValidateStream(ctx context.Context, v ports.ProductValidator, r io.Reader, w io.Writer) (Report, error) {
	var rep Report

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := rep.check(ctx, v, line, raw, w); err != nil {
			return rep, err
		}
	}
	if err := sc.Err(); err != nil {
		return rep, fmt.Errorf("scan line %d: %w", line+1, err)
	}
	return rep, nil
}

// check учитывает одну запись; ошибка возвращается только при сбое записи в w.
func (r *Report) check(ctx context.Context, v ports.ProductValidator, line int, raw []byte, w io.Writer) error {
	payload, err := ValidateProductFromJSON(ctx, v, raw)
	if err != nil {
		r.Invalid++
		r.Failures = append(r.Failures, LineError{Line: line, Err: err})
		return nil
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode line %d: %w", line, err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("write line %d: %w", line, err)
	}
	r.Valid++
	return nil
}
