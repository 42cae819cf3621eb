package ui

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func testTheme() *Theme {
	return NewTheme(ThemeConfig{NoColor: true})
}

func headless() *HeadlessManager {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	return hm
}

// newTestProgram creates a tea.Program configured for test environments without a TTY.
func newTestProgram(m tea.Model) *tea.Program {
	return tea.NewProgram(m,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
}

// startTestProgram starts a tea.Program in a goroutine and returns a done channel.
func startTestProgram(p *tea.Program) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
	// Allow the program goroutine to initialize before sending messages.
	time.Sleep(10 * time.Millisecond)
	return done
}

// waitForProgram waits for the program to exit, failing the test if it exceeds timeout.
func waitForProgram(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("tea.Program did not exit within 2 second timeout")
	}
}

func TestInteractiveSpinner_SetTitleThenStop(t *testing.T) {
	p := newTestProgram(newSpinnerModel(testTheme(), "Resolving template"))
	s := &interactiveSpinner{program: p}
	done := startTestProgram(p)

	s.SetTitle("Writing environment file")
	s.Stop()

	waitForProgram(t, done)
}

func TestInteractiveSpinner_Stop_Idempotent(t *testing.T) {
	p := newTestProgram(newSpinnerModel(testTheme(), "Installing dependencies"))
	s := &interactiveSpinner{program: p}
	done := startTestProgram(p)

	s.Stop()
	s.Stop()

	waitForProgram(t, done)
}

func TestInteractiveProgressBar_IncrementThenDone(t *testing.T) {
	p := newTestProgram(newProgressModel(testTheme(), "Copying template", 4))
	pb := &interactiveProgressBar{program: p}
	done := startTestProgram(p)

	pb.Increment(1)
	pb.SetTitle("src/App.tsx")
	pb.Increment(2)
	pb.Done()
	pb.Done()

	waitForProgram(t, done)
}

func TestSpinnerModel_Update(t *testing.T) {
	m := newSpinnerModel(NewTheme(ThemeConfig{Mode: "dark"}), "Resolving")

	updated, _ := m.Update(spinnerTitleMsg("Fetching"))
	m = updated.(spinnerModel)
	if m.title != "Fetching" {
		t.Errorf("title = %q, want Fetching", m.title)
	}
	if !strings.Contains(m.View(), "Fetching") {
		t.Errorf("View() = %q, want it to contain the title", m.View())
	}

	tick := m.Init()
	if tick == nil {
		t.Fatal("Init should return a tick command")
	}
	if msg, ok := tick().(spinner.TickMsg); ok {
		updated, _ = m.Update(msg)
		if updated.(spinnerModel).done {
			t.Error("tick should not stop the spinner")
		}
	}

	updated, cmd := m.Update(spinnerStopMsg{})
	m = updated.(spinnerModel)
	if !m.done || cmd == nil {
		t.Error("stop message should mark done and quit")
	}
	if m.View() != "" {
		t.Errorf("stopped spinner View() = %q, want empty", m.View())
	}
}

func TestProgressModel_Update(t *testing.T) {
	m := newProgressModel(NewTheme(ThemeConfig{Mode: "light"}), "Copying", 3)

	for range 5 {
		updated, _ := m.Update(progressIncrMsg(1))
		m = updated.(progressModel)
	}
	if m.current != 3 {
		t.Errorf("current = %d, want it clamped to 3", m.current)
	}
	if m.percent() != 1 {
		t.Errorf("percent() = %v, want 1", m.percent())
	}
	if !strings.Contains(m.View(), "[3/3] Copying") {
		t.Errorf("View() = %q", m.View())
	}

	updated, _ := m.Update(progress.FrameMsg{})
	if updated.(progressModel).done {
		t.Error("FrameMsg should not mark the bar as done")
	}

	updated, cmd := m.Update(progressDoneMsg{})
	if !updated.(progressModel).done || cmd == nil {
		t.Error("done message should mark done and quit")
	}
}

func TestProgressModel_ZeroTotal(t *testing.T) {
	m := newProgressModel(testTheme(), "Empty", 0)
	if m.percent() != 0 {
		t.Errorf("percent() = %v, want 0", m.percent())
	}
}

func TestHeadlessProgressBar(t *testing.T) {
	var buf strings.Builder
	p := NewProgress(testTheme(), headless(), &buf)

	bar := p.Start("Copying template", 2)
	bar.SetTitle("package.json")
	bar.Increment(1)
	bar.SetTitle("index.html")
	bar.Increment(5)
	bar.Done()

	want := "[1/2] package.json\n[2/2] index.html\n[2/2] index.html\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestHeadlessSpinner(t *testing.T) {
	var buf strings.Builder
	p := NewProgress(NewTheme(ThemeConfig{}), headless(), &buf)

	s := p.Spinner("Resolving template")
	s.SetTitle("Fetching template")
	s.Stop()

	want := "Resolving template...\nFetching template...\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestNoColorForcesPlainOutput(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(false)

	var buf strings.Builder
	p := NewProgress(testTheme(), hm, &buf)
	if _, ok := p.Spinner("Resolving").(*headlessSpinner); !ok {
		t.Error("NoColor theme should produce a headless spinner")
	}
	if _, ok := p.Start("Copying", 1).(*headlessProgressBar); !ok {
		t.Error("NoColor theme should produce a headless progress bar")
	}
}

func TestHeadlessManager_Force(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("forced headless should report headless")
	}
	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("forced interactive should not report headless")
	}
	hm.ClearForce()
	if hm.forced != nil {
		t.Error("ClearForce should remove the override")
	}
}

func TestNewTheme(t *testing.T) {
	tests := []struct {
		mode      string
		wantMode  string
		wantColor string
	}{
		{"", "dark", darkColors.Primary},
		{"dark", "dark", darkColors.Primary},
		{"light", "light", lightColors.Primary},
		{"solarized", "dark", darkColors.Primary},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			th := NewTheme(ThemeConfig{Mode: tt.mode})
			if th.Mode != tt.wantMode || th.Colors.Primary != tt.wantColor {
				t.Errorf("NewTheme(%q) = {%s %s}, want {%s %s}",
					tt.mode, th.Mode, th.Colors.Primary, tt.wantMode, tt.wantColor)
			}
		})
	}

	if got := testTheme().SuccessMark(); got != "✓" {
		t.Errorf("NoColor SuccessMark() = %q, want plain check", got)
	}
}
