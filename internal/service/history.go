package service

import "visionchat/internal/llm"

const (
	// historyCap is the turn count past which the history is cut down.
	historyCap = 41
	// historyWindow is how many trailing turns survive a cut.
	historyWindow = 20
)

// truncate enforces the history cap: once the history exceeds historyCap
// turns it is replaced by a fresh system turn followed by the last
// historyWindow turns. Everything earlier is discarded.
func truncate(history []Turn, systemPrompt string) []Turn {
	if len(history) <= historyCap {
		return history
	}
	truncated := make([]Turn, 0, historyWindow+1)
	truncated = append(truncated, Turn{Role: llm.RoleSystem, Content: systemPrompt})
	return append(truncated, history[len(history)-historyWindow:]...)
}
