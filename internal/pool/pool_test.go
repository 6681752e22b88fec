package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResettable struct {
	Value       int
	ResetCalled int
}

func (m *mockResettable) Reset() {
	m.Value = 0
	m.ResetCalled++
}

func TestPoolGet_EmptyWithoutConstructor(t *testing.T) {
	p := New[*mockResettable](5, nil)

	assert.Nil(t, p.Get())
}

func TestPoolGet_EmptyWithConstructor(t *testing.T) {
	p := New(5, func() *bytes.Buffer { return new(bytes.Buffer) })

	buf := p.Get()
	require.NotNil(t, buf)
	assert.Zero(t, buf.Len())
}

func TestPoolPutResetsItem(t *testing.T) {
	p := New[*mockResettable](5, nil)

	obj := &mockResettable{Value: 42}
	p.Put(obj)

	got := p.Get()
	require.NotNil(t, got)
	assert.Same(t, obj, got)
	assert.Equal(t, 0, got.Value)
	assert.Equal(t, 1, got.ResetCalled)
}

func TestPoolReusesBuffers(t *testing.T) {
	p := New(2, func() *bytes.Buffer { return new(bytes.Buffer) })

	buf := p.Get()
	buf.WriteString("<html></html>")
	p.Put(buf)

	again := p.Get()
	assert.Same(t, buf, again)
	assert.Zero(t, again.Len())

	hits, misses := p.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestPoolCapacityOverflow(t *testing.T) {
	p := New[*mockResettable](2, nil)

	p.Put(&mockResettable{Value: 1})
	p.Put(&mockResettable{Value: 2})
	p.Put(&mockResettable{Value: 3})

	assert.NotNil(t, p.Get())
	assert.NotNil(t, p.Get())
	assert.Nil(t, p.Get())
}

func TestPoolDropsNil(t *testing.T) {
	p := New[*mockResettable](5, nil)

	var nilObj *mockResettable
	p.Put(nilObj)

	assert.Nil(t, p.Get())
}
