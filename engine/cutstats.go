package engine

import "github.com/rs/zerolog"

// CutStatistics collects node counts and the cutoffs of each mechanism
// during one search.
type CutStatistics struct {
	Nodes            uint64
	QNodes           uint64
	TTHits           uint64
	TTCutoffs        uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
	QSEEPrunes       uint64
}

// MarshalZerologObject lets the statistics be logged as one event field.
func (cs CutStatistics) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", cs.Nodes).
		Uint64("qnodes", cs.QNodes).
		Uint64("tt_hits", cs.TTHits).
		Uint64("tt_cutoffs", cs.TTCutoffs).
		Uint64("beta_cutoffs", cs.BetaCutoffs).
		Uint64("q_standpat_cutoffs", cs.QStandPatCutoffs).
		Uint64("q_beta_cutoffs", cs.QBetaCutoffs).
		Uint64("q_see_prunes", cs.QSEEPrunes)
}
