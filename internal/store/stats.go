package store

// DuelStats aggregates a duel event log.
type DuelStats struct {
	Sessions      int
	Rounds        int
	Correct       int
	TimedOut      int
	TotalScore    int
	BestScore     int
	NetworkedDuel int
	Wins          int
}

// Accuracy is the fraction of rounds answered correctly.
func (s DuelStats) Accuracy() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Rounds)
}

// ComputeStats folds events into DuelStats. Session totals come from
// session_end events.
func ComputeStats(events []DuelEvent) DuelStats {
	var s DuelStats
	for _, ev := range events {
		switch ev.Kind {
		case EventSessionStart:
			s.Sessions++
		case EventRound:
			s.Rounds++
			if ev.Correct {
				s.Correct++
			}
			if ev.TimedOut {
				s.TimedOut++
			}
		case EventSessionEnd:
			s.TotalScore += ev.LocalScore
			s.BestScore = max(s.BestScore, ev.LocalScore)
			if ev.Role != "SOLO" {
				s.NetworkedDuel++
				if ev.LocalScore > ev.RemoteScore {
					s.Wins++
				}
			}
		}
	}
	return s
}
