// Package epd reads test suites of positions in EPD or FEN form, plain or
// zstd compressed.
package epd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"chessbot/board"
)

// Record is one suite position with its operations.
type Record struct {
	Line int
	FEN  string
	ID   string
	// BestMoves and AvoidMoves keep the move text as written, usually SAN.
	BestMoves  []string
	AvoidMoves []string
	Ops        map[string]string
}

// Open opens a suite file, decompressing it when the name ends in .zst.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &zstdFile{Decoder: dec, f: f}, nil
}

type zstdFile struct {
	*zstd.Decoder
	f *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

// Parse reads one EPD line. A line carrying halfmove and fullmove clocks
// after the four board fields is accepted as plain FEN.
func Parse(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Record{}, &board.ParseError{Input: line, Reason: "expected at least 4 fields"}
	}
	fenFields := fields[:4]
	rest := fields[4:]
	if len(rest) >= 2 && isCounter(rest[0]) && isCounter(strings.TrimSuffix(rest[1], ";")) {
		fenFields = append(fenFields[:4:4], rest[0], strings.TrimSuffix(rest[1], ";"))
		rest = rest[2:]
	}
	fen := strings.Join(fenFields, " ")
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return Record{}, err
	}

	rec := Record{FEN: pos.FEN(), Ops: map[string]string{}}
	for _, op := range strings.Split(strings.Join(rest, " "), ";") {
		parts := strings.Fields(op)
		if len(parts) == 0 {
			continue
		}
		name, operands := parts[0], parts[1:]
		rec.Ops[name] = strings.Trim(strings.Join(operands, " "), `"`)
		switch name {
		case "bm":
			rec.BestMoves = operands
		case "am":
			rec.AvoidMoves = operands
		case "id":
			rec.ID = rec.Ops[name]
		}
	}
	return rec, nil
}

func isCounter(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// ReadAll parses every non-blank, non-comment line of r.
func ReadAll(r io.Reader) ([]Record, error) {
	var recs []Record
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := Parse(line)
		if err != nil {
			return recs, fmt.Errorf("line %d: %w", n, err)
		}
		rec.Line = n
		recs = append(recs, rec)
	}
	return recs, scanner.Err()
}

// Load reads a whole suite file.
func Load(path string) ([]Record, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadAll(r)
}
