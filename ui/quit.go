package ui

import (
	"fmt"

	"github.com/yllada/grid-manager/common"
	"github.com/yllada/grid-manager/gateway"
)

// QuitClass classifies the state of all folders at quit time.
type QuitClass int

const (
	// QuitIdle means no folder is loading or syncing anywhere.
	QuitIdle QuitClass = iota
	// QuitLoading means at least one folder has not finished loading.
	QuitLoading
	// QuitSyncing means at least one folder is mid-transfer and none is
	// still loading.
	QuitSyncing
)

// String returns a short label for logging.
func (c QuitClass) String() string {
	switch c {
	case QuitLoading:
		return "loading"
	case QuitSyncing:
		return "syncing"
	default:
		return "idle"
	}
}

// Prompt is the confirmation dialog the front-end renders before
// quitting. The user must opt in; declining is the default.
type Prompt struct {
	Title    string
	Question string
	Detail   string
	// Warning marks the loading and syncing variants, which the
	// front-end renders with a warning icon.
	Warning bool
	// AcceptLabel and RejectLabel are the two response options;
	// RejectLabel is the default response.
	AcceptLabel string
	RejectLabel string
}

// Guard classifies quit attempts by scanning folder state across every
// registered gateway.
type Guard struct {
	registry *gateway.Registry
}

// NewGuard creates a quit guard over the given registry.
func NewGuard(registry *gateway.Registry) *Guard {
	return &Guard{registry: registry}
}

// Classify scans every folder of every gateway. A loading folder
// anywhere decides the result immediately; quitting then risks losing a
// half-established folder join, which outranks interrupting a transfer.
func (g *Guard) Classify() QuitClass {
	syncing := false
	for _, gw := range g.registry.List() {
		for _, f := range gw.MagicFolders {
			if f.IsLoading() {
				return QuitLoading
			}
			if f.Status == gateway.StatusSyncing {
				syncing = true
			}
		}
	}
	if syncing {
		return QuitSyncing
	}
	return QuitIdle
}

// PromptFor builds the confirmation dialog for a quit classification.
func (g *Guard) PromptFor(class QuitClass) Prompt {
	var detail string
	switch class {
	case QuitLoading:
		detail = "One or more folders have not finished loading. If " +
			"these folders were recently added, you may need to add " +
			"them again."
	case QuitSyncing:
		detail = fmt.Sprintf(
			"One or more folders are currently syncing. If you quit, "+
				"any pending upload or download operations will be "+
				"cancelled until you launch %s again.", common.AppName)
	default:
		detail = fmt.Sprintf(
			"If you quit, %s will stop synchronizing your folders "+
				"until you launch it again.", common.AppName)
	}
	return Prompt{
		Title:       fmt.Sprintf("Exit %s?", common.AppName),
		Question:    "Are you sure you wish to quit?",
		Detail:      detail,
		Warning:     class != QuitIdle,
		AcceptLabel: "Yes",
		RejectLabel: "No",
	}
}

// ConfirmQuit classifies the current folder state and returns the
// matching prompt.
func (g *Guard) ConfirmQuit() Prompt {
	class := g.Classify()
	common.LogDebug("Quit requested while %s", class)
	return g.PromptFor(class)
}
