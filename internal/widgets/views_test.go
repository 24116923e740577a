package widgets

import (
	"testing"

	"cylinder-lab/internal/controls"
	"cylinder-lab/internal/scene"
	"cylinder-lab/internal/store"
	"cylinder-lab/internal/transform"
	"cylinder-lab/internal/tweak"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullSurface struct{}

func (nullSurface) Size() (int, int) { return 1280, 800 }

func (nullSurface) OnFrame(func()) {}

func (nullSurface) AttachControls(*scene.OrbitControls) {}

func (nullSurface) Render(*scene.Scene, *scene.PerspectiveCamera) {}

func newControlsView(t *testing.T) (*ControlsView, *store.Store) {
	t.Helper()
	st := store.New(store.DefaultOptions())
	require.NoError(t, st.InitScene(nullSurface{}))
	v := NewControlsView(controls.New(st))
	v.Layout(DefaultStylesheet(), 1280, 800)
	return v, st
}

func find(nodes []*Node, typ, id string) *Node {
	for _, n := range nodes {
		if n.Type == typ && n.ID == id {
			return n
		}
	}
	return nil
}

func click(n *Node) Input {
	return Input{X: n.Bounds.X + 1, Y: n.Bounds.Y + 1, Pressed: true, Down: true}
}

func TestControlsLayout(t *testing.T) {
	v, _ := newControlsView(t)
	nodes := v.Nodes()
	require.NotEmpty(t, nodes)
	assert.Equal(t, TypePanel, nodes[0].Type)

	for _, id := range []string{IDHiddenFaces, IDValue, IDApply, IDReset, AxisID(transform.X), AxisID(transform.Y), AxisID(transform.Z)} {
		require.NotNil(t, findID(nodes, id), id)
	}
	assert.True(t, find(nodes, TypeOption, AxisID(transform.X)).On)
	assert.Nil(t, find(nodes, TypeSnackbar, IDSnackbar))

	root := nodes[0].Bounds
	for _, n := range nodes[1:] {
		assert.True(t, n.Bounds.X >= root.X && n.Bounds.X+n.Bounds.W <= root.X+root.W, n.ID)
		assert.True(t, n.Bounds.Y >= root.Y && n.Bounds.Y+n.Bounds.H <= root.Y+root.H, n.ID)
	}
}

func findID(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func TestControlsCheckboxAndAxis(t *testing.T) {
	v, st := newControlsView(t)
	require.NoError(t, v.Handle(click(find(v.Nodes(), TypeCheckbox, IDHiddenFaces))))
	assert.False(t, st.State().MaterialVisible)

	v.Layout(DefaultStylesheet(), 1280, 800)
	assert.True(t, find(v.Nodes(), TypeCheckbox, IDHiddenFaces).On)

	// The label toggles too.
	require.NoError(t, v.Handle(click(find(v.Nodes(), TypeLabel, IDHiddenFaces))))
	assert.True(t, st.State().MaterialVisible)

	require.NoError(t, v.Handle(click(find(v.Nodes(), TypeOption, AxisID(transform.Z)))))
	assert.Equal(t, transform.Z, st.State().SelectedAxis)
}

func TestControlsTypingAndApply(t *testing.T) {
	v, st := newControlsView(t)
	field := find(v.Nodes(), TypeField, IDValue)
	require.NoError(t, v.Handle(click(field)))
	assert.True(t, v.Panel.Focused())

	require.NoError(t, v.Handle(Input{Backspace: true}))
	assert.Nil(t, st.State().TransformationValue)

	require.NoError(t, v.Handle(Input{Chars: []rune("0.5")}))
	require.NotNil(t, st.State().TransformationValue)
	assert.Equal(t, float32(0.5), *st.State().TransformationValue)

	require.NoError(t, v.Handle(Input{Enter: true}))
	assert.False(t, v.Panel.Focused())

	require.NoError(t, v.Handle(click(find(v.Nodes(), TypeButton, IDApply))))
	assert.True(t, st.State().SnackbarVisible)
	assert.Equal(t, float32(0.5), st.Cylinder().Matrix[3])

	v.Layout(DefaultStylesheet(), 1280, 800)
	bar := find(v.Nodes(), TypeSnackbar, IDSnackbar)
	require.NotNil(t, bar)
	assert.Equal(t, controls.SnackbarText, bar.Text)
	assert.True(t, Covers(v.Nodes(), bar.Bounds.X+1, bar.Bounds.Y+1))

	require.NoError(t, v.Handle(click(find(v.Nodes(), TypeButton, IDReset))))
	assert.False(t, st.State().SnackbarVisible)
}

func TestControlsClickAwayBlursBeforeApply(t *testing.T) {
	v, st := newControlsView(t)
	require.NoError(t, v.Handle(click(find(v.Nodes(), TypeField, IDValue))))
	require.NoError(t, v.Handle(Input{Backspace: true}))
	assert.Nil(t, st.State().TransformationValue)

	// Blur turns the empty field into 0, so apply succeeds.
	require.NoError(t, v.Handle(click(find(v.Nodes(), TypeButton, IDApply))))
	assert.Equal(t, "0", v.Panel.Text())
	assert.True(t, st.State().SnackbarVisible)
}

func TestControlsApplyWithoutValue(t *testing.T) {
	v, st := newControlsView(t)
	v.Panel.SetText("")
	err := v.Handle(click(find(v.Nodes(), TypeButton, IDApply)))
	assert.ErrorIs(t, err, store.ErrNoTransformationValue)
	assert.False(t, st.State().SnackbarVisible)
}

func TestTweakViewFoldersAndDrag(t *testing.T) {
	p := tweak.New()
	var val float32 = 5
	changes := 0
	f := p.AddFolder("shape")
	f.Add("height", &val, 0, 10).OnChange(func() { changes++ })

	v := NewTweakView(p)
	nodes := v.Layout(nil, 1280, 800)
	assert.Nil(t, find(nodes, TypeSlider, SliderID("shape", "height")))

	head := find(nodes, TypeFolder, FolderID("shape"))
	require.NotNil(t, head)
	v.Handle(click(head))
	assert.False(t, f.Closed)

	nodes = v.Layout(nil, 1280, 800)
	slider := find(nodes, TypeSlider, SliderID("shape", "height"))
	require.NotNil(t, slider)
	assert.Equal(t, float32(0.5), slider.Value)
	assert.Equal(t, "5.00", slider.Text)

	v.Handle(Input{X: slider.Bounds.X, Y: slider.Bounds.Y + 1, Pressed: true, Down: true})
	assert.True(t, v.Dragging())
	assert.Equal(t, float32(0), val)

	v.Handle(Input{X: slider.Bounds.X + slider.Bounds.W*2, Y: 0, Down: true})
	assert.Equal(t, float32(10), val)

	v.Handle(Input{Released: true})
	assert.False(t, v.Dragging())
	assert.Equal(t, 2, changes)
}

func TestTweakViewHidden(t *testing.T) {
	p := tweak.New()
	p.AddFolder("a").Open()
	v := NewTweakView(p)
	require.NotEmpty(t, v.Layout(nil, 800, 600))
	p.Hide()
	assert.Empty(t, v.Layout(nil, 800, 600))
	assert.False(t, Covers(v.Nodes(), 700, 10))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "40", FormatValue(40, 10))
	assert.Equal(t, "1.6", FormatValue(1.6, 0.1))
	assert.Equal(t, "2.50", FormatValue(2.5, 0))
}

func TestMatrixView(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	m[7] = 0.25
	v := NewMatrixView()
	assert.Empty(t, v.AppendNodes(nil, false, nil, m, 7, 800, 600))

	nodes := v.AppendNodes(nil, true, DefaultStylesheet(), m, 7, 800, 600)
	require.Len(t, nodes, 18)
	cells := nodes[2:]
	// Row-major reading order: the first row holds elements 0, 4, 8, 12.
	assert.Equal(t, "1.000", cells[3].Text)
	// Element 7 is column 1, row 3.
	assert.Equal(t, "0.250", cells[13].Text)
	assert.True(t, cells[13].On)
	assert.False(t, cells[12].On)
}
