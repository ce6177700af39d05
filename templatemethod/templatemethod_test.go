package templatemethod

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type page struct {
	Title string
	Lines []string
}

func pageSteps() []Step[page] {
	return []Step[page]{
		Variable[page]("start"),
		Variable[page]("head"),
		Variable[page]("bodyStart"),
		Fixed[page]("body", Each[page]("line", func(p page) []string { return p.Lines })),
		Variable[page]("bodyEnd"),
		Variable[page]("end"),
		Hook[page]("line"),
	}
}

func tagBindings() Bindings[page] {
	return Bindings[page]{
		"start":     Text[page]("<s>"),
		"head":      Render(func(p page, _ Arg) string { return "<h>" + p.Title + "</h>" }),
		"bodyStart": Text[page]("<b>"),
		"line":      Render(func(_ page, arg Arg) string { return "<p>" + arg.Value + "</p>" }),
		"bodyEnd":   Text[page]("</b>"),
		"end":       Text[page]("<e>"),
	}
}

func newPageSkeleton(t *testing.T) *Skeleton[page] {
	skeleton, err := NewSkeleton[page]("page", pageSteps())
	require.NoError(t, err)
	return skeleton
}

func TestExecute(t *testing.T) {
	executor, err := newPageSkeleton(t).Bind("tags", tagBindings())
	require.NoError(t, err)

	fragments, err := executor.Execute(context.Background(), page{Title: "R", Lines: []string{"a", "b"}})
	require.NoError(t, err)

	expected := []string{"<s>", "<h>R</h>", "<b>", "<p>a</p>", "<p>b</p>", "</b>", "<e>"}
	if diff := cmp.Diff(expected, Texts(fragments)); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, StepID("line"), fragments[3].Step)
	assert.Equal(t, StepID("line"), fragments[4].Step)
}

func TestExecuteOrder(t *testing.T) {
	skeleton := newPageSkeleton(t)
	variants := map[string]Bindings[page]{
		"tags": tagBindings(),
		"empty": {
			"start": Text[page](""), "head": Text[page](""), "bodyStart": Text[page](""),
			"line": Text[page](""), "bodyEnd": Text[page](""), "end": Text[page](""),
		},
	}
	for name, bindings := range variants {
		var mu sync.Mutex
		var invoked []StepID
		record := BindingMiddlewareFunc[page](func(step StepID, binding Binding[page]) Binding[page] {
			return func(ctx context.Context, v page, arg Arg) (string, error) {
				mu.Lock()
				invoked = append(invoked, step)
				mu.Unlock()
				return binding(ctx, v, arg)
			}
		})
		executor, err := skeleton.Bind(name, bindings.Decorate(record))
		require.NoError(t, err)

		_, err = executor.Execute(context.Background(), page{Title: "T", Lines: []string{"x"}})
		require.NoError(t, err)
		assert.Equal(t, []StepID{"start", "head", "bodyStart", "line", "bodyEnd", "end"}, invoked, name)
	}
	assert.Equal(t, []StepID{"start", "head", "bodyStart", "body", "bodyEnd", "end"}, skeleton.Order())
}

func TestExecuteBodyLines(t *testing.T) {
	executor, err := newPageSkeleton(t).Bind("tags", tagBindings())
	require.NoError(t, err)

	lines := []string{"l1", "l2", "l3", "l4", "l5"}
	fragments, err := executor.Execute(context.Background(), page{Title: "R", Lines: lines})
	require.NoError(t, err)

	texts := Texts(fragments)
	start := indexOf(texts, "<b>")
	end := indexOf(texts, "</b>")
	require.True(t, start >= 0 && end > start)
	var body []string
	for _, fragment := range fragments[start+1 : end] {
		assert.Equal(t, StepID("line"), fragment.Step)
		body = append(body, fragment.Text)
	}
	assert.Equal(t, []string{"<p>l1</p>", "<p>l2</p>", "<p>l3</p>", "<p>l4</p>", "<p>l5</p>"}, body)
}

func TestExecuteEmptyBody(t *testing.T) {
	executor, err := newPageSkeleton(t).Bind("tags", tagBindings())
	require.NoError(t, err)

	for _, lines := range [][]string{nil, {}} {
		fragments, err := executor.Execute(context.Background(), page{Title: "R", Lines: lines})
		require.NoError(t, err)
		assert.Equal(t, []string{"<s>", "<h>R</h>", "<b>", "</b>", "<e>"}, Texts(fragments))
	}
}

func TestExecuteIsRepeatable(t *testing.T) {
	executor, err := newPageSkeleton(t).Bind("tags", tagBindings())
	require.NoError(t, err)

	p := page{Title: "R", Lines: []string{"a"}}
	first, err := executor.Execute(context.Background(), p)
	require.NoError(t, err)
	second, err := executor.Execute(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, page{Title: "R", Lines: []string{"a"}}, p)
}

func TestBindUnbound(t *testing.T) {
	skeleton := newPageSkeleton(t)
	for _, omitted := range skeleton.VariableSteps() {
		bindings := tagBindings()
		delete(bindings, omitted)

		executor, err := skeleton.Bind("partial", bindings)
		assert.Nil(t, executor)
		var unbound *UnboundStepError
		require.True(t, errors.As(err, &unbound), omitted)
		assert.Equal(t, []StepID{omitted}, unbound.Steps)
		assert.Equal(t, "partial", unbound.Variant)
		assert.Equal(t, "page", unbound.Skeleton)
	}

	_, err := skeleton.Bind("nothing", nil)
	var unbound *UnboundStepError
	require.True(t, errors.As(err, &unbound))
	assert.Equal(t, []StepID{"start", "head", "bodyStart", "bodyEnd", "end", "line"}, unbound.Steps)
	assert.Contains(t, err.Error(), "start, head, bodyStart, bodyEnd, end, line")
}

func TestBindNilBindingIsUnbound(t *testing.T) {
	bindings := tagBindings()
	bindings["head"] = nil
	_, err := newPageSkeleton(t).Bind("nil", bindings)
	var unbound *UnboundStepError
	require.True(t, errors.As(err, &unbound))
	assert.Equal(t, []StepID{"head"}, unbound.Steps)
}

func TestBindRejectsFixedAndUnknownSteps(t *testing.T) {
	skeleton := newPageSkeleton(t)

	bindings := tagBindings()
	bindings["body"] = Text[page]("override")
	_, err := skeleton.Bind("override", bindings)
	assert.ErrorIs(t, err, ErrFixedStep)

	bindings = tagBindings()
	bindings["footer"] = Text[page]("footer")
	_, err = skeleton.Bind("extra", bindings)
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestExecuteBindingErrorEmitsNothing(t *testing.T) {
	bindings := tagBindings()
	boom := errors.New("boom")
	bindings["line"] = func(_ context.Context, _ page, arg Arg) (string, error) {
		if arg.Index == 1 {
			return "", boom
		}
		return arg.Value, nil
	}
	executor, err := newPageSkeleton(t).Bind("failing", bindings)
	require.NoError(t, err)

	fragments, err := executor.Execute(context.Background(), page{Lines: []string{"a", "b", "c"}})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `step "line"`)
	assert.Nil(t, fragments)
}

func TestFixedStepEmit(t *testing.T) {
	steps := []Step[page]{
		Variable[page]("head"),
		Fixed[page]("rule", func(_ context.Context, frame *Frame[page]) error {
			frame.Emit(fmt.Sprintf("---%d---", len(frame.Variant().Lines)))
			return nil
		}),
	}
	skeleton, err := NewSkeleton[page]("ruled", steps)
	require.NoError(t, err)
	executor, err := skeleton.Bind("plain", Bindings[page]{"head": Render(func(p page, _ Arg) string { return p.Title })})
	require.NoError(t, err)

	fragments, err := executor.Execute(context.Background(), page{Title: "T", Lines: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []Fragment{{Step: "head", Text: "T"}, {Step: "rule", Text: "---2---"}}, fragments)
}

func TestFrameInvokeRejectsNonHook(t *testing.T) {
	steps := []Step[page]{
		Variable[page]("head"),
		Fixed[page]("body", func(ctx context.Context, frame *Frame[page]) error {
			return frame.Invoke(ctx, "head", Arg{})
		}),
	}
	skeleton, err := NewSkeleton[page]("bad", steps)
	require.NoError(t, err)
	executor, err := skeleton.Bind("plain", Bindings[page]{"head": Text[page]("h")})
	require.NoError(t, err)

	fragments, err := executor.Execute(context.Background(), page{})
	assert.ErrorIs(t, err, ErrUnknownStep)
	assert.Nil(t, fragments)
}

func TestNewSkeletonErrors(t *testing.T) {
	_, err := NewSkeleton[page]("none", nil)
	assert.ErrorIs(t, err, ErrNoSteps)

	_, err = NewSkeleton[page]("hooks", []Step[page]{Hook[page]("line")})
	assert.ErrorIs(t, err, ErrNoSteps)

	_, err = NewSkeleton[page]("broken", []Step[page]{
		Variable[page](""),
		Variable[page]("head"),
		Variable[page]("head"),
		Fixed[page]("body", nil),
	})
	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], ErrEmptyStep)
	assert.ErrorIs(t, errs[1], ErrDuplicateStep)
	assert.ErrorIs(t, errs[2], ErrNilAction)
}

func TestSkeletonKinds(t *testing.T) {
	skeleton := newPageSkeleton(t)
	kind, ok := skeleton.Kind("body")
	assert.True(t, ok)
	assert.Equal(t, FixedStep, kind)
	kind, ok = skeleton.Kind("line")
	assert.True(t, ok)
	assert.Equal(t, HookStep, kind)
	_, ok = skeleton.Kind("nope")
	assert.False(t, ok)
	assert.Equal(t, "variable", VariableStep.String())
}

func TestChainBindingOrder(t *testing.T) {
	var calls []string
	mw := func(name string) BindingMiddleware[page] {
		return BindingMiddlewareFunc[page](func(step StepID, binding Binding[page]) Binding[page] {
			return func(ctx context.Context, v page, arg Arg) (string, error) {
				calls = append(calls, name+":"+string(step))
				return binding(ctx, v, arg)
			}
		})
	}
	binding := ChainBinding[page]("head", Text[page]("h"), mw("outer"), mw("inner"))
	text, err := binding(context.Background(), page{}, Arg{})
	require.NoError(t, err)
	assert.Equal(t, "h", text)
	assert.Equal(t, []string{"outer:head", "inner:head"}, calls)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(newPageSkeleton(t))
	require.NoError(t, registry.Register("tags", tagBindings()))
	assert.ErrorIs(t, registry.Register("tags", tagBindings()), ErrRegistered)

	bindings := tagBindings()
	delete(bindings, "end")
	err := registry.Register("broken", bindings)
	var unbound *UnboundStepError
	assert.True(t, errors.As(err, &unbound))
	assert.Equal(t, []string{"tags"}, registry.Names())

	fragments, err := registry.Execute(context.Background(), "tags", page{Title: "R"})
	require.NoError(t, err)
	assert.Equal(t, []string{"<s>", "<h>R</h>", "<b>", "</b>", "<e>"}, Texts(fragments))

	_, err = registry.Execute(context.Background(), "broken", page{})
	assert.ErrorIs(t, err, ErrUnregistered)
}

func TestArgLast(t *testing.T) {
	assert.True(t, Arg{Index: 2, Total: 3}.Last())
	assert.False(t, Arg{Index: 0, Total: 3}.Last())
}

func indexOf(texts []string, s string) int {
	for i, text := range texts {
		if text == s {
			return i
		}
	}
	return -1
}
