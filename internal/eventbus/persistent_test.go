package eventbus_test

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adviceCtx struct {
	accepted bool
	bonus    int
}

func TestPersistentSuspendsAndResumesInPriorityOrder(t *testing.T) {
	p := eventbus.NewPersistent[adviceCtx]()
	highOrigin := eventbus.Origin{Kind: eventbus.OriginAdvance, Name: "FreeEducation"}
	lowOrigin := eventbus.Origin{Kind: eventbus.OriginAdvance, Name: "Dogma"}

	p.Add(highOrigin, 10,
		func(ctx *adviceCtx, player int) (eventbus.Request, bool) {
			return eventbus.Request{Kind: eventbus.RequestBool, Prompt: "pay 1 idea for 1 mood?"}, true
		},
		func(ctx *adviceCtx, resp eventbus.Response) {
			ctx.accepted = resp.Bool
		},
	)
	lowAsked := false
	p.Add(lowOrigin, 1,
		func(ctx *adviceCtx, player int) (eventbus.Request, bool) {
			lowAsked = true
			return eventbus.Request{Kind: eventbus.RequestBool, Prompt: "low priority ask"}, true
		},
		func(ctx *adviceCtx, resp eventbus.Response) {
			ctx.bonus = 1
		},
	)

	ctx := &adviceCtx{}
	frame, suspended := p.Trigger(eventbus.Origin{Kind: eventbus.OriginAbility, Name: "advance"}, 0, ctx)
	require.True(t, suspended)
	assert.False(t, lowAsked, "lower-priority listener must not run before the higher one's response is applied")
	assert.Equal(t, eventbus.RequestBool, frame.Request().Kind)

	next, ok, err := frame.Resume(eventbus.Response{Kind: eventbus.RequestBool, Bool: true})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, ctx.accepted)
	assert.True(t, lowAsked)
	assert.Equal(t, "low priority ask", next.Prompt)

	_, ok, err = frame.Resume(eventbus.Response{Kind: eventbus.RequestBool, Bool: false})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, ctx.bonus)
}

func TestPersistentDeclinedListenerIsSkipped(t *testing.T) {
	p := eventbus.NewPersistent[int]()
	origin := eventbus.Origin{Kind: eventbus.OriginAbility, Name: "noop"}
	p.Add(origin, 5,
		func(ctx *int, player int) (eventbus.Request, bool) { return eventbus.Request{}, false },
		func(ctx *int, resp eventbus.Response) {},
	)
	asked := false
	p.Add(origin, 1,
		func(ctx *int, player int) (eventbus.Request, bool) {
			asked = true
			return eventbus.Request{Kind: eventbus.RequestBool}, true
		},
		func(ctx *int, resp eventbus.Response) { *ctx = 42 },
	)

	ctx := 0
	frame, suspended := p.Trigger(origin, 0, &ctx)
	require.True(t, suspended)
	assert.True(t, asked)

	_, ok, err := frame.Resume(eventbus.Response{Kind: eventbus.RequestBool, Bool: true})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 42, ctx)
}

func TestFrameResumeRejectsMismatchedResponseKind(t *testing.T) {
	p := eventbus.NewPersistent[int]()
	origin := eventbus.Origin{Kind: eventbus.OriginCard, Name: "x"}
	p.Add(origin, 1,
		func(ctx *int, player int) (eventbus.Request, bool) { return eventbus.Request{Kind: eventbus.RequestBool}, true },
		func(ctx *int, resp eventbus.Response) {},
	)
	ctx := 0
	frame, _ := p.Trigger(origin, 0, &ctx)
	_, _, err := frame.Resume(eventbus.Response{Kind: eventbus.RequestSelectAdvance})
	require.Error(t, err)
}

func TestStackPushPopOrder(t *testing.T) {
	p := eventbus.NewPersistent[int]()
	origin := eventbus.Origin{Kind: eventbus.OriginCard, Name: "x"}
	p.Add(origin, 1,
		func(ctx *int, player int) (eventbus.Request, bool) { return eventbus.Request{Kind: eventbus.RequestBool}, true },
		func(ctx *int, resp eventbus.Response) {},
	)
	ctx1, ctx2 := 0, 0
	f1, _ := p.Trigger(origin, 0, &ctx1)
	f2, _ := p.Trigger(origin, 1, &ctx2)

	var stack eventbus.Stack
	assert.True(t, stack.Empty())
	stack.Push(f1)
	stack.Push(f2)
	assert.Equal(t, 2, stack.Len())
	assert.Equal(t, f2, stack.Top())
	assert.Equal(t, f2, stack.Pop())
	assert.Equal(t, f1, stack.Pop())
	assert.True(t, stack.Empty())
}
