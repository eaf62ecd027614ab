package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testOwner records the order extensions were constructed in.
type testOwner struct {
	constructed []string
}

type testExt struct {
	name string
}

func (e *testExt) Name() string { return e.name }

// reg builds a registration whose constructor records itself on the owner.
func reg(name string, mutate func(*Registration[*testOwner, *testExt])) Registration[*testOwner, *testExt] {
	r := Registration[*testOwner, *testExt]{
		Name: name,
		New: func(owner *testOwner) (*testExt, error) {
			owner.constructed = append(owner.constructed, name)
			return &testExt{name: name}, nil
		},
	}
	if mutate != nil {
		mutate(&r)
	}
	return r
}

func newTestHost(t *testing.T, regs ...Registration[*testOwner, *testExt]) *Host[*testOwner, *testExt] {
	t.Helper()
	h := NewHost[*testOwner, *testExt]("1.2.0")
	for _, r := range regs {
		require.NoError(t, h.Add(r))
	}
	return h
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func TestHost_AddRejectsDuplicateName(t *testing.T) {
	h := newTestHost(t, reg("alpha", nil))
	err := h.Add(reg("alpha", nil))
	assert.ErrorContains(t, err, "already registered")
}

func TestHost_AddRejectsMissingNameOrFactory(t *testing.T) {
	h := NewHost[*testOwner, *testExt]("1.0.0")
	assert.Error(t, h.Add(Registration[*testOwner, *testExt]{}))
	assert.Error(t, h.Add(Registration[*testOwner, *testExt]{Name: "nofactory"}))
}

func TestHost_AddRejectsParameterConflict(t *testing.T) {
	h := newTestHost(t, reg("alpha", func(r *Registration[*testOwner, *testExt]) {
		r.Params = []Param{{Name: "theme", Type: ParamString}}
	}))
	err := h.Add(reg("beta", func(r *Registration[*testOwner, *testExt]) {
		r.Params = []Param{{Name: "theme", Type: ParamString}}
	}))
	assert.ErrorContains(t, err, "conflicts")
}

func TestHost_RemoveFreesNameAndParams(t *testing.T) {
	h := newTestHost(t, reg("alpha", func(r *Registration[*testOwner, *testExt]) {
		r.Params = []Param{{Name: "theme", Type: ParamString}}
	}))
	require.NoError(t, h.Remove("alpha"))

	// Both the name and the parameter are available again.
	require.NoError(t, h.Add(reg("alpha", func(r *Registration[*testOwner, *testExt]) {
		r.Params = []Param{{Name: "theme", Type: ParamString}}
	})))
}

func TestHost_ParamsSortedByName(t *testing.T) {
	h := newTestHost(t,
		reg("alpha", func(r *Registration[*testOwner, *testExt]) {
			r.Params = []Param{{Name: "zebra", Type: ParamBoolean}}
		}),
		reg("beta", func(r *Registration[*testOwner, *testExt]) {
			r.Params = []Param{{Name: "apple", Type: ParamNumber}}
		}),
	)

	params := h.Params()
	require.Len(t, params, 2)
	assert.Equal(t, "apple", params[0].Name)
	assert.Equal(t, "zebra", params[1].Name)
}

// ---------------------------------------------------------------------------
// Ordering
// ---------------------------------------------------------------------------

func TestHost_LoadRespectsRegistrationOrderWithoutConstraints(t *testing.T) {
	h := newTestHost(t, reg("alpha", nil), reg("beta", nil), reg("gamma", nil))

	owner := &testOwner{}
	require.NoError(t, h.Load(owner))
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, owner.constructed)
	assert.Equal(t, owner.constructed, h.LoadOrder())
}

func TestHost_LoadHonorsAfterConstraint(t *testing.T) {
	h := newTestHost(t,
		reg("alpha", func(r *Registration[*testOwner, *testExt]) { r.After = []string{"gamma"} }),
		reg("beta", nil),
		reg("gamma", nil),
	)

	owner := &testOwner{}
	require.NoError(t, h.Load(owner))
	assert.Equal(t, []string{"beta", "gamma", "alpha"}, owner.constructed)
}

func TestHost_LoadHonorsBeforeConstraint(t *testing.T) {
	h := newTestHost(t,
		reg("alpha", nil),
		reg("beta", nil),
		reg("gamma", func(r *Registration[*testOwner, *testExt]) { r.Before = []string{"alpha"} }),
	)

	owner := &testOwner{}
	require.NoError(t, h.Load(owner))

	pos := map[string]int{}
	for i, name := range owner.constructed {
		pos[name] = i
	}
	assert.Less(t, pos["gamma"], pos["alpha"])
}

func TestHost_LoadFailsOnUnknownConstraint(t *testing.T) {
	h := newTestHost(t,
		reg("alpha", func(r *Registration[*testOwner, *testExt]) { r.After = []string{"ghost"} }),
	)

	owner := &testOwner{}
	err := h.Load(owner)
	assert.ErrorContains(t, err, "unknown extension")
	assert.Empty(t, owner.constructed, "nothing constructs when ordering fails")
}

func TestHost_LoadFailsOnCycle(t *testing.T) {
	h := newTestHost(t,
		reg("alpha", func(r *Registration[*testOwner, *testExt]) { r.After = []string{"beta"} }),
		reg("beta", func(r *Registration[*testOwner, *testExt]) { r.After = []string{"alpha"} }),
	)

	owner := &testOwner{}
	err := h.Load(owner)
	assert.ErrorContains(t, err, "cycle")
	assert.Empty(t, owner.constructed)
}

// ---------------------------------------------------------------------------
// Versions and activation
// ---------------------------------------------------------------------------

func TestHost_LoadChecksVersionConstraints(t *testing.T) {
	h := newTestHost(t,
		reg("old", func(r *Registration[*testOwner, *testExt]) { r.Requires = ">=2.0.0" }),
	)

	owner := &testOwner{}
	err := h.Load(owner)
	assert.ErrorContains(t, err, "requires host API")
	assert.Empty(t, owner.constructed)
}

func TestHost_LoadAcceptsSatisfiedConstraint(t *testing.T) {
	h := newTestHost(t,
		reg("ok", func(r *Registration[*testOwner, *testExt]) { r.Requires = ">=1.0.0 <2.0.0" }),
	)
	require.NoError(t, h.Load(&testOwner{}))

	inst, ok := h.Get("ok")
	require.True(t, ok)
	assert.Equal(t, "ok", inst.Name())
}

func TestHost_FailedConstructionActivatesNothing(t *testing.T) {
	h := newTestHost(t,
		reg("alpha", nil),
		Registration[*testOwner, *testExt]{
			Name: "broken",
			New: func(*testOwner) (*testExt, error) {
				return nil, assert.AnError
			},
		},
	)

	err := h.Load(&testOwner{})
	require.Error(t, err)

	_, ok := h.Get("alpha")
	assert.False(t, ok, "a failed load leaves no partially activated set")
}
