package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/quiz"
	statsPkg "github.com/ruri-sayo/word-test-KAI/internal/stats"
)

const defaultWidth = 80

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	textStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	timeoutStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pausedStyle    = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
)

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	contentWidth := max(1, int(float64(width)*0.70))

	var body, helpLine string
	if m.loadErr != nil {
		body = m.renderError(contentWidth)
		helpLine = m.help.View(phaseHelp{m.keys.Quit})
	} else {
		snap := m.engine.Snapshot()
		switch snap.Phase {
		case quiz.PhaseModeSelect:
			body = m.renderModeSelect(contentWidth)
		case quiz.PhaseComplete:
			body = m.renderResult(snap, contentWidth)
		default:
			body = m.renderQuestion(snap, contentWidth)
		}
		helpLine = m.help.View(m.keys.forPhase(snap.Phase, snap.Paused))
	}

	content := lipgloss.NewStyle().Width(contentWidth).Render(body)
	footer := m.renderFooter()
	if m.width == 0 || m.height < 4 {
		return strings.Join([]string{content, footer, helpLine}, "\n")
	}
	bodyHeight := m.height - 2
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	helpPlaced := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, helpLine)
	return placed + "\n" + footerLine + "\n" + helpPlaced
}

func (m *Model) renderError(width int) string {
	lines := []string{
		incorrectStyle.Render("Cannot start a quiz"),
		"",
	}
	for _, line := range wrapText(m.loadErr.Error(), width) {
		lines = append(lines, textStyle.Render(line))
	}
	lines = append(lines, "", mutedStyle.Render("Check the word file and try again."))
	return strings.Join(lines, "\n")
}

func (m *Model) renderModeSelect(width int) string {
	lines := []string{titleStyle.Render("Word Test"), "", textStyle.Render("Select a mode")}
	for i, mode := range m.modes {
		label := fmt.Sprintf("%d. %s", i+1, modeName(mode))
		available := m.engine.ModeAvailable(mode)
		style := textStyle
		prefix := "  "
		switch {
		case !available:
			label += " (needs meanings)"
			style = mutedStyle
		case i == m.cursor:
			prefix = cursorStyle.Render("> ")
			style = cursorStyle
		}
		lines = append(lines, prefix+style.Render(truncate(label, width-2)))
	}
	lines = append(lines,
		"",
		mutedStyle.Render(fmt.Sprintf("Words: %d", len(m.engine.Words()))),
		mutedStyle.Render("Time limit: "+limitText(m.engine.TimeLimit())),
	)
	return strings.Join(lines, "\n")
}

func (m *Model) renderQuestion(snap quiz.Snapshot, width int) string {
	header := fmt.Sprintf("Question %d/%d", snap.Index+1, snap.Total)
	lines := []string{
		titleStyle.Render(header) + "  " + mutedStyle.Render(timerText(snap)),
		mutedStyle.Render(scoreText(snap.Correct, snap.Incorrect)),
		"",
	}
	for _, line := range wrapText(snap.Question, width) {
		lines = append(lines, textStyle.Render(line))
	}
	lines = append(lines, "")
	if snap.Paused {
		lines = append(lines, pausedStyle.Render("Paused. Press p to resume."))
		return strings.Join(lines, "\n")
	}
	for i, opt := range snap.Options {
		lines = append(lines, m.renderOption(snap, i, opt, width)...)
	}
	if snap.Answered {
		lines = append(lines, "")
		for _, line := range wrapText(feedbackText(snap.Feedback, snap.CorrectText), width) {
			lines = append(lines, feedbackStyle(snap.Feedback).Render(line))
		}
		next := "Press enter for the next question."
		if snap.Index+1 == snap.Total {
			next = "Press enter to see your result."
		}
		lines = append(lines, mutedStyle.Render(next))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderOption(snap quiz.Snapshot, i int, opt model.AnswerOption, width int) []string {
	marker := "( )"
	if snap.Answered && i == snap.Selected {
		marker = "(•)"
	} else if !snap.Answered && i == m.cursor {
		marker = "(•)"
	}
	prefix := fmt.Sprintf("%d. %s ", i+1, marker)
	indent := strings.Repeat(" ", runewidth.StringWidth(prefix))

	style := textStyle
	switch {
	case snap.Answered && opt.IsCorrect:
		style = correctStyle
	case snap.Answered && i == snap.Selected:
		style = incorrectStyle
	case snap.Answered:
		style = mutedStyle
	case i == m.cursor:
		style = cursorStyle
	}

	wrapped := wrapText(opt.Text, width-runewidth.StringWidth(prefix))
	out := make([]string, 0, len(wrapped))
	for j, line := range wrapped {
		lead := indent
		if j == 0 {
			lead = prefix
		}
		out = append(out, style.Render(lead+line))
	}
	return out
}

func (m *Model) renderResult(snap quiz.Snapshot, width int) string {
	lines := []string{titleStyle.Render("Finished!"), ""}
	if m.summary == nil {
		lines = append(lines, textStyle.Render(scoreText(snap.Correct, snap.Incorrect)))
		return strings.Join(lines, "\n")
	}
	s := m.summary
	acc := statsPkg.Accuracy(s.Correct, s.Incorrect)
	lines = append(lines,
		textStyle.Render(fmt.Sprintf("You got %d of %d right (%.0f%%).", s.Correct, s.Total, acc*100)),
		mutedStyle.Render(scoreText(s.Correct, s.Incorrect)),
		mutedStyle.Render(fmt.Sprintf("Mode: %s  Time limit: %s  Timeouts: %d", modeName(s.Mode), limitText(s.TimeLimit), s.Timeouts)),
	)
	missed := missedWords(s.Outcomes)
	if len(missed) > 0 {
		lines = append(lines, "", textStyle.Render("Review:"))
		for _, line := range wrapText(strings.Join(missed, ", "), width) {
			lines = append(lines, incorrectStyle.Render(line))
		}
	}
	switch {
	case m.saveErr != "":
		lines = append(lines, "", incorrectStyle.Render(truncate(m.saveErr, width)))
	case m.saved:
		lines = append(lines, "", mutedStyle.Render("Result saved."))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if !m.hasLast && !m.hasAll {
		return ""
	}
	segments := []string{}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f%%", m.lastAcc*100))
	}
	if m.hasAll {
		segments = append(segments, fmt.Sprintf("All-time %.1f%% over %d sessions", m.allAcc*100, m.sessCount))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func modeName(mode model.QuestionMode) string {
	if mode == model.ModePartOfSpeech {
		return "Part of speech"
	}
	return "Vocabulary"
}

func limitText(seconds int) string {
	if seconds <= 0 {
		return "no limit"
	}
	return fmt.Sprintf("%d s", seconds)
}

func timerText(snap quiz.Snapshot) string {
	text := "Time left: " + snap.TimerText
	if snap.Paused {
		text += " (paused)"
	}
	return text
}

func scoreText(correct, incorrect int) string {
	return fmt.Sprintf("Correct: %d  Incorrect: %d", correct, incorrect)
}

func feedbackText(fb quiz.Feedback, answer string) string {
	switch fb {
	case quiz.FeedbackCorrect:
		return "Correct!"
	case quiz.FeedbackIncorrect:
		return "Incorrect. The answer is " + answer
	case quiz.FeedbackTimeout:
		return "Time's up! The answer is " + answer
	default:
		return ""
	}
}

func feedbackStyle(fb quiz.Feedback) lipgloss.Style {
	switch fb {
	case quiz.FeedbackCorrect:
		return correctStyle
	case quiz.FeedbackTimeout:
		return timeoutStyle
	default:
		return incorrectStyle
	}
}

func missedWords(outcomes []model.WordOutcome) []string {
	out := []string{}
	for _, o := range outcomes {
		if o.Outcome != model.OutcomeCorrect {
			out = append(out, o.Word)
		}
	}
	return out
}
