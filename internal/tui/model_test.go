package tui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-list/internal/studentlist"
	"github.com/aanand-mishra/student-list/internal/types"
)

type fetcherFunc func(ctx context.Context) ([]types.Student, error)

func (f fetcherFunc) FetchStudents(ctx context.Context) ([]types.Student, error) {
	return f(ctx)
}

var leanne = types.Student{
	ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz",
	Address: &types.Address{City: "Gwenborough"},
}

// TestNew tests model initialization.
func TestNew(t *testing.T) {
	var calls atomic.Int32
	m := New(context.Background(), fetcherFunc(func(context.Context) ([]types.Student, error) {
		calls.Add(1)
		return nil, nil
	}))

	require.NotNil(t, m)
	assert.True(t, m.State().Loading)
	assert.Equal(t, int32(0), calls.Load(), "nothing is fetched before Init")
	assert.Contains(t, m.View(), "Loading student data...")
}

// TestModel_FetchCmd runs the fetch command the way the runtime would.
func TestModel_FetchCmd(t *testing.T) {
	var calls atomic.Int32
	m := New(context.Background(), fetcherFunc(func(context.Context) ([]types.Student, error) {
		calls.Add(1)
		return []types.Student{leanne}, nil
	}))

	msg := m.fetchCmd()
	assert.Equal(t, int32(1), calls.Load())

	_, cmd := m.Update(msg)
	assert.Nil(t, cmd)
	assert.False(t, m.State().Loading)

	view := m.View()
	assert.Contains(t, view, "Student List")
	assert.Contains(t, view, "Leanne Graham")
	assert.Contains(t, view, "Sincere@april.biz")
	assert.Contains(t, view, "Gwenborough")
	assert.NotContains(t, view, "Loading")
}

func TestModel_Error(t *testing.T) {
	m := New(context.Background(), nil)

	m.Update(studentsLoadedMsg{err: errors.New("Failed to fetch data")})

	assert.True(t, m.State().Failed)
	assert.Contains(t, m.View(), "Error: Failed to fetch data")
	assert.NotContains(t, m.View(), "Student List")
}

func TestModel_SettledIsTerminal(t *testing.T) {
	m := New(context.Background(), nil)

	m.Update(studentsLoadedMsg{err: errors.New("offline")})
	m.Update(studentsLoadedMsg{students: []types.Student{leanne}})

	assert.True(t, m.State().Failed)
	assert.Empty(t, m.State().Students)
}

func TestModel_SpinnerStopsAfterSettle(t *testing.T) {
	m := New(context.Background(), nil)

	_, cmd := m.Update(spinner.TickMsg{ID: m.spinner.ID()})
	assert.NotNil(t, cmd, "spinner keeps ticking while loading")

	m.Update(studentsLoadedMsg{students: []types.Student{}})
	_, cmd = m.Update(spinner.TickMsg{ID: m.spinner.ID()})
	assert.Nil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		t.Run(key.String(), func(t *testing.T) {
			m := New(context.Background(), nil)

			_, cmd := m.Update(key)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestRenderState_Plain(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		assert.Equal(t, "Loading student data...", RenderState(studentlist.Initial(), false))
	})

	t.Run("error", func(t *testing.T) {
		s := studentlist.Initial().Settle(nil, errors.New("Network request failed"))
		assert.Equal(t, "Error: Network request failed", RenderState(s, false))
	})

	t.Run("table", func(t *testing.T) {
		s := studentlist.Initial().Settle([]types.Student{
			leanne,
			{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv"},
		}, nil)

		out := RenderState(s, false)
		lines := strings.Split(out, "\n")
		require.NotEmpty(t, lines)
		assert.Equal(t, "Student List", lines[0])

		header := strings.Index(out, "Name")
		first := strings.Index(out, "Leanne Graham")
		second := strings.Index(out, "Ervin Howell")
		assert.True(t, header < first && first < second, "rows keep server order")
		assert.Contains(t, out, "City")
		assert.Contains(t, out, "Gwenborough")
	})
}
