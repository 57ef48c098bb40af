package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/ruri-sayo/word-test-KAI/internal/quiz"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Submit  key.Binding
	Choose  key.Binding
	Next    key.Binding
	Pause   key.Binding
	Limit   key.Binding
	Home    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "choose"),
		),
		Choose: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "answer"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", "n", " "),
			key.WithHelp("enter/n", "next"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Limit: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "time limit"),
		),
		Home: key.NewBinding(
			key.WithKeys("h", "esc"),
			key.WithHelp("h", "home"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// phaseHelp exposes only the bindings that act in the current phase.
type phaseHelp []key.Binding

func (p phaseHelp) ShortHelp() []key.Binding {
	return p
}

func (p phaseHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{p}
}

func (k keyMap) forPhase(phase quiz.Phase, paused bool) phaseHelp {
	switch phase {
	case quiz.PhaseModeSelect:
		return phaseHelp{k.Up, k.Down, k.Submit, k.Limit, k.Quit}
	case quiz.PhaseUnanswered:
		if paused {
			return phaseHelp{k.Pause, k.Limit, k.Home, k.Quit}
		}
		return phaseHelp{k.Choose, k.Up, k.Down, k.Submit, k.Pause, k.Limit, k.Home, k.Quit}
	case quiz.PhaseAnswered:
		return phaseHelp{k.Next, k.Pause, k.Limit, k.Home, k.Quit}
	default:
		return phaseHelp{k.Restart, k.Home, k.Quit}
	}
}
