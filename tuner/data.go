// tuner/data.go
package tuner

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chessbot/board"
	"chessbot/engine"
	"chessbot/internal/epd"
)

// Sample holds the unweighted evaluation terms of one position, so the
// weighted score can be recomputed cheaply for any weight vector.
type Sample struct {
	Terms [numTerms]float64
	Label float64 // P(White wins): 1, 0.5 or 0
}

const numTerms = 5

func termsOf(b engine.Breakdown) [numTerms]float64 {
	return [numTerms]float64{
		float64(b.Material),
		float64(b.Placement),
		float64(b.Mobility),
		float64(b.KingSafety),
		float64(b.PawnStructure),
	}
}

func parseLabel(s string) (float64, error) {
	switch s {
	case "1-0":
		return 1.0, nil
	case "0-1":
		return 0.0, nil
	case "1/2-1/2", "1/2", "0.5":
		return 0.5, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 || f > 1 {
			return 0, fmt.Errorf("label out of [0,1]: %v", f)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot parse label: %q", s)
}

// ParseLine accepts "fen [label]", "fen<TAB>label" and "fen,label".
func ParseLine(line string) (string, float64, error) {
	var fen, label string
	switch {
	case strings.Contains(line, "["):
		parts := strings.SplitN(line, "[", 2)
		fen, label = parts[0], strings.TrimSuffix(strings.TrimSpace(parts[1]), "]")
	case strings.Contains(line, "\t"):
		parts := strings.SplitN(line, "\t", 2)
		fen, label = parts[0], parts[1]
	case strings.Contains(line, ","):
		i := strings.LastIndex(line, ",")
		fen, label = line[:i], line[i+1:]
	default:
		return "", 0, fmt.Errorf("no label in %q", line)
	}
	v, err := parseLabel(strings.TrimSpace(label))
	if err != nil {
		return "", 0, err
	}
	return strings.TrimSpace(fen), v, nil
}

// ReadSamples parses labelled positions from r, stopping after maxRows
// samples when maxRows > 0. Malformed lines are counted and skipped.
func ReadSamples(r io.Reader, maxRows int) ([]Sample, int, error) {
	var out []Sample
	skipped := 0
	ev := engine.NewEvaluator(engine.DefaultWeights)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fen, label, err := ParseLine(line)
		if err != nil {
			skipped++
			continue
		}
		pos, err := board.ParseFEN(fen)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, Sample{Terms: termsOf(ev.Breakdown(pos)), Label: label})
		if maxRows > 0 && len(out) >= maxRows {
			break
		}
	}
	return out, skipped, sc.Err()
}

// LoadDataset reads a dataset file, zstd compressed when it ends in .zst.
func LoadDataset(path string, maxRows int) ([]Sample, int, error) {
	r, err := epd.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()
	return ReadSamples(r, maxRows)
}
