package session

import (
	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/screen"
	"github.com/abhisek/mathblat/internal/screens/summary"
	"github.com/abhisek/mathblat/internal/system"
)

// newSummaryScreen builds the results screen shown after a session ends.
func newSummaryScreen(sum duel.Summary, sys *system.System, player string) screen.Screen {
	return summary.New(sum, sys, player)
}
