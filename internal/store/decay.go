package store

import "go.uber.org/zap"

// DefaultDecayStep is subtracted from every active episodic strength per
// decay call. Empirical constant carried over from the original tuning.
const DefaultDecayStep = 0.1

// DecayResult summarizes one decay pass.
type DecayResult struct {
	EpisodesDecayed int `json:"episodes_decayed"`
	EpisodesFloored int `json:"episodes_floored"`
}

// SetDecayStep overrides the per-call strength reduction.
func (s *Store) SetDecayStep(step float64) {
	s.decayStep = clamp01(step)
}

// ApplyEpisodicDecay subtracts one fixed decay step from the strength of
// every active episodic entry. The operation is a pure function of current
// state: no randomness, no wall-clock scaling, one uniform step per call.
// Strength never increases and never goes below zero; entries that hit zero
// stay in the store but leave the active view.
func (s *Store) ApplyEpisodicDecay() DecayResult {
	var result DecayResult
	for _, e := range s.episodes {
		if e.Strength <= 0 {
			continue
		}
		ns := e.Strength - s.decayStep
		if ns <= 0 {
			ns = 0
			result.EpisodesFloored++
		}
		e.Strength = ns
		result.EpisodesDecayed++
	}
	s.touch()

	if result.EpisodesDecayed > 0 {
		s.logger.Info("episodic decay applied",
			zap.Int("episodes_decayed", result.EpisodesDecayed),
			zap.Int("episodes_floored", result.EpisodesFloored))
	}
	return result
}
