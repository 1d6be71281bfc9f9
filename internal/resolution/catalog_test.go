package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/issuestate/internal/state"
	"github.com/roach88/issuestate/internal/testutil"
)

type flagState = *state.State[testutil.Flags]

// lifecycle builds the new/acknowledged/assigned/closed example set.
func lifecycle() []flagState {
	newState := state.New[testutil.Flags]("new")
	acknowledged := state.New("acknowledged",
		state.WithConditions(testutil.Cond("acked")),
		state.OverridesStates(newState),
	)
	assigned := state.New("assigned",
		state.WithConditions(testutil.Cond("assigned")),
		state.ExtendsStates(acknowledged),
	)
	closed := state.New("closed",
		state.WithConditions(testutil.Cond("closed")),
		state.OverridesStates(newState, acknowledged, assigned),
	)
	return []flagState{closed, assigned, newState, acknowledged}
}

// assertDependencyOrder checks every relation target precedes its referrer.
func assertDependencyOrder(t *testing.T, ordered []flagState) {
	t.Helper()
	pos := make(map[string]int, len(ordered))
	for i, s := range ordered {
		pos[s.Name()] = i
	}
	for i, s := range ordered {
		for target := range s.Relations() {
			j, ok := pos[target.Name()]
			require.True(t, ok, "target %s of %s missing", target.Name(), s.Name())
			assert.Less(t, j, i, "%s must precede %s", target.Name(), s.Name())
		}
	}
}

func TestFromSet_Lifecycle(t *testing.T) {
	catalog, err := FromSet(lifecycle())
	require.NoError(t, err)

	assert.Equal(t, []string{"new", "acknowledged", "assigned", "closed"}, catalog.Names())
	assertDependencyOrder(t, catalog.States())
}

func TestFromSet_BatchKeepsNameOrder(t *testing.T) {
	root := state.New[testutil.Flags]("root")
	c := state.New("c", state.ExtendsStates(root))
	a := state.New("a", state.OverridesStates(root))
	b := state.New[testutil.Flags]("b")
	d := state.New("d", state.ExtendsStates(a, c))

	catalog, err := FromSet([]flagState{d, c, b, a, root})
	require.NoError(t, err)

	// Round 1: b, root. Round 2: a, c. Round 3: d.
	assert.Equal(t, []string{"b", "root", "a", "c", "d"}, catalog.Names())
}

func TestFromSet_StableOnRerun(t *testing.T) {
	first, err := FromSet(lifecycle())
	require.NoError(t, err)

	second, err := FromSet(first.States())
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names())
}

func TestFromSet_Empty(t *testing.T) {
	catalog, err := FromSet[testutil.Flags](nil)
	require.NoError(t, err)
	assert.Equal(t, 0, catalog.Len())
	assert.Empty(t, catalog.States())
}

func TestFromSet_SamePointerTwice(t *testing.T) {
	a := state.New[testutil.Flags]("a")
	b := state.New("b", state.ExtendsStates(a))

	catalog, err := FromSet([]flagState{a, b, a})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, catalog.Names())
}

func TestFromSet_DuplicateName(t *testing.T) {
	a1 := state.New[testutil.Flags]("a")
	a2 := state.New("a", state.WithConditions(testutil.Cond("x")))

	_, err := FromSet([]flagState{a1, a2})
	require.Error(t, err)
	assert.True(t, IsDuplicateState(err))

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "a", re.State)
}

func TestFromSet_UnknownRelation(t *testing.T) {
	outside := state.New[testutil.Flags]("outside")
	a := state.New("a", state.ExtendsStates(outside))

	_, err := FromSet([]flagState{a})
	require.Error(t, err)
	assert.True(t, IsUnknownRelation(err))
	assert.False(t, IsCyclicDependency(err))

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "a", re.State)
	assert.Equal(t, "outside", re.Target)
}

func TestFromSet_CycleCases(t *testing.T) {
	tests := []struct {
		name      string
		build     func() []flagState
		wantCycle []string
	}{
		{
			name: "mutual overrides",
			build: func() []flagState {
				a := state.New[testutil.Flags]("a")
				b := state.New("b", state.OverridesStates(a))
				state.OverridesStates(b)(a)
				return []flagState{a, b}
			},
			wantCycle: []string{"a", "b", "a"},
		},
		{
			name: "mutual extends",
			build: func() []flagState {
				a := state.New[testutil.Flags]("a")
				b := state.New("b", state.ExtendsStates(a))
				state.ExtendsStates(b)(a)
				return []flagState{b, a}
			},
			wantCycle: []string{"a", "b", "a"},
		},
		{
			name: "mixed kinds",
			build: func() []flagState {
				a := state.New[testutil.Flags]("a")
				b := state.New("b", state.ExtendsStates(a))
				c := state.New("c", state.OverridesStates(b))
				state.ExtendsStates(c)(a)
				return []flagState{a, b, c}
			},
			wantCycle: []string{"a", "c", "b", "a"},
		},
		{
			name: "self relation",
			build: func() []flagState {
				a := state.New[testutil.Flags]("a")
				state.OverridesStates(a)(a)
				return []flagState{a}
			},
			wantCycle: []string{"a", "a"},
		},
		{
			name: "cycle behind resolvable states",
			build: func() []flagState {
				root := state.New[testutil.Flags]("root")
				x := state.New("x", state.ExtendsStates(root))
				y := state.New("y", state.ExtendsStates(x))
				state.OverridesStates(y)(x)
				z := state.New("z", state.ExtendsStates(y))
				return []flagState{z, y, x, root}
			},
			wantCycle: []string{"x", "y", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := FromSet(tt.build())
			require.Error(t, err)
			assert.Nil(t, catalog)
			assert.True(t, IsCyclicDependency(err))

			var re *Error
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.wantCycle, re.Cycle)
			assert.Contains(t, err.Error(), "CYCLIC_DEPENDENCY")
		})
	}
}

func TestFromSet_CycleReportsUnresolved(t *testing.T) {
	root := state.New[testutil.Flags]("root")
	a := state.New("a", state.ExtendsStates(root))
	b := state.New("b", state.OverridesStates(a))
	state.OverridesStates(b)(a)
	tail := state.New("tail", state.ExtendsStates(b))

	_, err := FromSet([]flagState{root, a, b, tail})
	require.Error(t, err)

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, []string{"a", "b", "tail"}, re.Unresolved)
}

func TestFromOrderedList_TrustsOrder(t *testing.T) {
	a := state.New[testutil.Flags]("a")
	b := state.New("b", state.ExtendsStates(a))

	catalog := FromOrderedList([]flagState{b, a})
	assert.Equal(t, []string{"b", "a"}, catalog.Names())
}

func TestFromOrderedList_CopiesInput(t *testing.T) {
	a := state.New[testutil.Flags]("a")
	b := state.New[testutil.Flags]("b")
	input := []flagState{a, b}

	catalog := FromOrderedList(input)
	input[0] = b

	assert.Equal(t, []string{"a", "b"}, catalog.Names())
}

func TestCatalog_States_ReturnsCopy(t *testing.T) {
	catalog, err := FromSet(lifecycle())
	require.NoError(t, err)

	states := catalog.States()
	states[0] = nil

	assert.NotNil(t, catalog.States()[0])
}

func TestCatalog_AllAndLookup(t *testing.T) {
	catalog, err := FromSet(lifecycle())
	require.NoError(t, err)

	var names []string
	for s := range catalog.All() {
		names = append(names, s.Name())
	}
	assert.Equal(t, catalog.Names(), names)
	assert.Equal(t, 4, catalog.Len())

	s, ok := catalog.Lookup("assigned")
	require.True(t, ok)
	assert.Equal(t, "assigned", s.Name())

	_, ok = catalog.Lookup("missing")
	assert.False(t, ok)
}

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"cycle", NewCycleError([]string{"a", "b", "a"}, []string{"a", "b"}), "CYCLIC_DEPENDENCY: dependency cycle detected (a → b → a)"},
		{"dependency", NewDependencyError("b", "a"), "DEPENDENCY_ERROR: extended state not resolved before its dependent (state=b, target=a)"},
		{"duplicate", NewDuplicateStateError("a"), "DUPLICATE_STATE: state name used more than once (state=a)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
