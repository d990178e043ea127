package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/mathblat/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	closed  int
	updates int
	resumed int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Close()                                  { s.closed++ }
func (s *stubScreen) Resume() tea.Cmd                         { s.resumed++; return nil }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "second", r.Active().Title())
	assert.True(t, s2.initRan)
}

func TestPopClosesScreen(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "first", r.Active().Title())
	assert.Equal(t, 1, s2.closed)
	assert.Zero(t, s1.closed)
	assert.Equal(t, 1, s1.resumed)
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	assert.Equal(t, 1, r.Depth())
	assert.Zero(t, s1.closed)
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "second", r.Active().Title())
	assert.True(t, s2.initRan)
	assert.Equal(t, 1, s1.closed)
}

func TestReplacePreservesStackDepth(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Push(&stubScreen{title: "second"})

	s3 := &stubScreen{title: "third"}
	r.Update(ReplaceScreenMsg{Screen: s3})

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "third", r.Active().Title())
	assert.True(t, s3.initRan)
}

func TestPopToRoot(t *testing.T) {
	root := &stubScreen{title: "root"}
	r := New(root)
	a := &stubScreen{title: "a"}
	b := &stubScreen{title: "b"}
	r.Push(a)
	r.Push(b)

	r.Update(PopToRootMsg{})

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "root", r.Active().Title())
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
	assert.Equal(t, 1, root.resumed)
	assert.Zero(t, a.resumed)

	r.Update(PopToRootMsg{})
	assert.Equal(t, 1, root.resumed)
}

func TestCloseAll(t *testing.T) {
	root := &stubScreen{title: "root"}
	r := New(root)
	top := &stubScreen{title: "top"}
	r.Push(top)

	r.CloseAll()

	assert.Equal(t, 1, root.closed)
	assert.Equal(t, 1, top.closed)
}

func TestUpdateForwardsToActive(t *testing.T) {
	root := &stubScreen{title: "root"}
	r := New(root)
	top := &stubScreen{title: "top"}
	r.Update(PushScreenMsg{Screen: top})

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})

	assert.Equal(t, 1, top.updates)
	assert.Zero(t, root.updates)
	assert.Equal(t, "top", r.View(80, 24))
}
