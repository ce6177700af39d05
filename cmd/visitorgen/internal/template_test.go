package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyOf(t *testing.T) {
	family, ok := FamilyOf([]string{"// Hayes modem.", "// @Element(Modem)"})
	assert.True(t, ok)
	assert.Equal(t, "Modem", family)

	family, ok = FamilyOf([]string{"// circle @element(Shape)"})
	assert.True(t, ok)
	assert.Equal(t, "Shape", family)

	_, ok = FamilyOf([]string{"// @Element()"})
	assert.False(t, ok)

	_, ok = FamilyOf([]string{"// Element(Modem)", "// plain comment"})
	assert.False(t, ok)
}

func TestExtractValue(t *testing.T) {
	v, ok := ExtractValue("@Element(Modem)", "@Element")
	assert.True(t, ok)
	assert.Equal(t, "Modem", v)

	_, ok = ExtractValue("@Element", "@Element")
	assert.False(t, ok)
}

func TestNewFile(t *testing.T) {
	f := NewFile("/tmp/pkg", "shape", "PaintShape", []string{"Circle"})
	assert.Equal(t, "/tmp/pkg/paint_shape_visitor.go", f.AbsFilename)
	assert.Equal(t, Version, f.Version)
}

func TestRender(t *testing.T) {
	f := NewFile(t.TempDir(), "modem", "Modem", []string{"Hayes", "Zoom", "Ernie"})
	content, err := f.Render()
	require.NoError(t, err)

	src := string(content)
	assert.Contains(t, src, "// Code generated by visitorgen "+Version+". DO NOT EDIT.")
	assert.Contains(t, src, "package modem")
	assert.Contains(t, src, `HayesTag visitor.Tag = "Hayes"`)
	assert.Contains(t, src, "var ModemTags = variant.MustNewSet(HayesTag, ZoomTag, ErnieTag)")
	assert.Contains(t, src, "func (Zoom) Tag() visitor.Tag { return ZoomTag }")
	assert.Contains(t, src, "VisitErnie(ctx context.Context, e Ernie) (R, error)")
	assert.Contains(t, src, "On(HayesTag, visitor.HandlerOf(v.VisitHayes))")
	assert.Contains(t, src, "case Ernie:")
	assert.Contains(t, src, "if visitor.IsNil(e) {")
}

func TestRenderWithoutElements(t *testing.T) {
	_, err := NewFile(t.TempDir(), "modem", "Modem", nil).Render()
	assert.Error(t, err)
}

func TestGen(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(dir, "modem", "Modem", []string{"Hayes"})
	require.NoError(t, f.Gen())
	// regeneration overwrites
	require.NoError(t, f.Gen())

	content, err := os.ReadFile(filepath.Join(dir, "modem_visitor.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "type ModemVisitor[R any] interface")
}
