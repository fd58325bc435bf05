package tui

import tea "github.com/charmbracelet/bubbletea"

type (
	cueChangedMsg   int
	sessionEndedMsg struct{}
)

func (b *bubble) Init() tea.Cmd {
	return tea.Batch(b.waitForChange(), b.waitForEnd())
}

func (b *bubble) waitForChange() tea.Cmd {
	if b.options.Changes == nil {
		return nil
	}

	return func() tea.Msg {
		index, ok := <-b.options.Changes
		if !ok {
			return nil
		}
		return cueChangedMsg(index)
	}
}

func (b *bubble) waitForEnd() tea.Cmd {
	if b.options.Done == nil {
		return nil
	}

	return func() tea.Msg {
		<-b.options.Done
		return sessionEndedMsg{}
	}
}
