package uci

import "fmt"

// option is a spin option announced by uci and changed by setoption.
type option struct {
	Name     string
	Default  int
	Min, Max int
	set      func(p *Protocol, v int) error
}

func (o option) String() string {
	return fmt.Sprintf("option name %s type spin default %d min %d max %d", o.Name, o.Default, o.Min, o.Max)
}

// weightOption exposes one evaluation weight, named as in the config file.
func weightOption(name, key string, current int) option {
	return option{
		Name:    name,
		Default: current,
		Min:     0,
		Max:     500,
		set:     func(p *Protocol, v int) error { return p.weights.Set(key, v) },
	}
}

// optionList reports the options with their current values. Callers hold p.mu.
func (p *Protocol) optionList() []option {
	return []option{
		{Name: "Hash", Default: p.hashMB, Min: 1, Max: 1024, set: func(p *Protocol, v int) error {
			p.hashMB = v
			return nil
		}},
		// Threads and Skill Level are accepted but the search is single threaded
		// and always plays its best move.
		{Name: "Threads", Default: p.threads, Min: 1, Max: 16, set: func(p *Protocol, v int) error {
			p.threads = v
			return nil
		}},
		{Name: "Skill Level", Default: p.skill, Min: 0, Max: 20, set: func(p *Protocol, v int) error {
			p.skill = v
			return nil
		}},
		weightOption("Material", "material", p.weights.Material),
		weightOption("Placement", "placement", p.weights.Placement),
		weightOption("Mobility", "mobility", p.weights.Mobility),
		weightOption("King Safety", "king_safety", p.weights.KingSafety),
		weightOption("Pawn Structure", "pawn_structure", p.weights.PawnStructure),
	}
}
