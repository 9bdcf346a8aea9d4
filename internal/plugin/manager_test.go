package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *stubPlugin) Name() string { return p.name }

func (p *stubPlugin) Initialize(EditorAPI) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *stubPlugin) Shutdown() error {
	*p.log = append(*p.log, "stop "+p.name)
	return nil
}

func TestRegisterRejectsDuplicatesAndEmptyNames(t *testing.T) {
	var log []string
	m := NewManager()
	require.NoError(t, m.Register(&stubPlugin{name: "a", log: &log}))
	assert.Error(t, m.Register(&stubPlugin{name: "a", log: &log}))
	assert.Error(t, m.Register(&stubPlugin{name: "", log: &log}))

	p, ok := m.GetPlugin("a")
	require.True(t, ok)
	assert.Equal(t, "a", p.Name())
}

func TestLifecycleOrder(t *testing.T) {
	var log []string
	m := NewManager()
	require.NoError(t, m.Register(&stubPlugin{name: "first", log: &log}))
	require.NoError(t, m.Register(&stubPlugin{name: "broken", log: &log, initErr: errors.New("boom")}))
	require.NoError(t, m.Register(&stubPlugin{name: "last", log: &log}))

	failed := m.InitializePlugins(nil)
	assert.Equal(t, []string{"broken"}, failed)

	m.ShutdownPlugins()
	assert.Equal(t, []string{
		"init first", "init broken", "init last",
		"stop last", "stop broken", "stop first",
	}, log)
	assert.Equal(t, []string{"first", "broken", "last"}, m.Names())
}
