package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiltspace/quilt/internal/markup"
	"github.com/quiltspace/quilt/internal/state"
	"github.com/quiltspace/quilt/pkg/domain"
	"github.com/quiltspace/quilt/pkg/registry"
)

func testProfile() *domain.ProfileData {
	return &domain.ProfileData{
		Owner: map[string]any{"name": "mika", "mood": "sleepy"},
		Posts: []map[string]any{
			{"title": "hello world", "likes": float64(3)},
			{"title": "second post", "likes": float64(9)},
		},
		Capabilities: map[string]bool{"guestbook": true},
	}
}

func renderSource(t *testing.T, src string, profile *domain.ProfileData) string {
	t.Helper()
	reg := registry.Builtins()
	tree, err := markup.NewParser(reg).Parse(src)
	require.NoError(t, err)

	rt := state.NewRuntime()
	defer rt.Close()

	out, err := New(reg).RenderHTML(context.Background(), tree, rt, profile)
	require.NoError(t, err)
	return out
}

func TestRender_Interpolation(t *testing.T) {
	out := renderSource(t, `hi {owner.name}, you have {posts.length} posts`, testProfile())
	assert.Contains(t, out, "hi mika, you have 2 posts")
}

func TestRender_UnresolvedExpressionIsEmpty(t *testing.T) {
	out := renderSource(t, `before[{ghost.value}]after`, testProfile())
	assert.Contains(t, out, "before[]after")
}

func TestRender_StyleExtraction(t *testing.T) {
	out := renderSource(t, `<Text content="hi" background-color="pink" font-size="12px" color="red"/>`, testProfile())
	assert.Contains(t, out, "background-color:pink")
	assert.Contains(t, out, "font-size:12px")
	assert.Contains(t, out, "color:red")
}

func TestRender_IfElseChain(t *testing.T) {
	profile := testProfile()

	out := renderSource(t, `<If condition="owner.mood == 'sleepy'">zzz<Else>awake</Else></If>`, profile)
	assert.Contains(t, out, "zzz")
	assert.NotContains(t, out, "awake")

	out = renderSource(t, `<If condition="owner.mood == 'bouncy'">nope<ElseIf condition="posts.length > 1">many posts</ElseIf><Else>fallback</Else></If>`, profile)
	assert.Contains(t, out, "many posts")
	assert.NotContains(t, out, "nope")
	assert.NotContains(t, out, "fallback")

	// Broken condition degrades to the false branch, not a crash.
	out = renderSource(t, `<If condition="owner.mood ==">bad<Else>safe</Else></If>`, profile)
	assert.Contains(t, out, "safe")
}

func TestRender_ForOverProfilePosts(t *testing.T) {
	out := renderSource(t, `<For source="posts" as="p" index="i"><Text content="{i}: {p.title}"/></For>`, testProfile())
	assert.Contains(t, out, "0: hello world")
	assert.Contains(t, out, "1: second post")
}

func TestRender_ForLimit(t *testing.T) {
	out := renderSource(t, `<For source="posts" as="p" limit="1"><Text content="{p.title}"/></For>`, testProfile())
	assert.Contains(t, out, "hello world")
	assert.NotContains(t, out, "second post")
}

func TestRender_Repeat(t *testing.T) {
	out := renderSource(t, `<Repeat count="3" as="n"><Text content="x{n}"/></Repeat>`, testProfile())
	assert.Contains(t, out, "x0")
	assert.Contains(t, out, "x1")
	assert.Contains(t, out, "x2")
}

func TestRender_VarDeclarationVisible(t *testing.T) {
	out := renderSource(t, `<Var name="count" initial="4" type="number"/>count is {count}`, testProfile())
	assert.Contains(t, out, "count is 4")
}

func TestRender_ButtonCarriesActions(t *testing.T) {
	out := renderSource(t, `<Var name="count" initial="0" type="number"/><Button label="more"><Increment var="count" by="2"/></Button>`, testProfile())
	assert.Contains(t, out, "data-actions")
	assert.Contains(t, out, "increment")
	assert.Contains(t, out, "more")
}

func TestRender_PassthroughElement(t *testing.T) {
	out := renderSource(t, `<marquee direction="left">retro</marquee>`, testProfile())
	// marquee is not in the sanitizer allow-list; content survives, tag does not.
	assert.Contains(t, out, "retro")
	assert.NotContains(t, out, "marquee")

	out = renderSource(t, `<div background-color="black">dark</div>`, testProfile())
	assert.Contains(t, out, "background-color:black")
}

func TestRender_MissingRequiredPropDegrades(t *testing.T) {
	// Image requires src; the node vanishes, the page survives.
	out := renderSource(t, `<Image alt="broken"/><Text content="still here"/>`, testProfile())
	assert.NotContains(t, out, "img")
	assert.Contains(t, out, "still here")
}

func TestRender_EnumViolationDegrades(t *testing.T) {
	out := renderSource(t, `<Var name="x" type="spooky" initial="1"/>after`, testProfile())
	assert.Contains(t, out, "after")
}

func TestRender_Idempotent(t *testing.T) {
	reg := registry.Builtins()
	src := `<Var name="count" initial="2" type="number"/><Box background-color="pink"><For source="posts" as="p"><Text content="{p.title} ({count})"/></For></Box>`
	tree, err := markup.NewParser(reg).Parse(src)
	require.NoError(t, err)

	rt := state.NewRuntime()
	defer rt.Close()
	r := New(reg)
	ctx := context.Background()

	first, err := r.Render(ctx, tree, rt, testProfile())
	require.NoError(t, err)
	second, err := r.Render(ctx, tree, rt, testProfile())
	require.NoError(t, err)

	assert.Equal(t, SerializeHTML(first), SerializeHTML(second))
}

func TestRender_SanitizesInjectedMarkup(t *testing.T) {
	out := renderSource(t, `<div onclick="evil()"><script>alert(1)</script>fine</div>`, testProfile())
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "fine")
}

func TestRender_ReservedAttrsSurvive(t *testing.T) {
	out := renderSource(t, `<Box grid-x="3" grid-y="1" component-id="c42">deco</Box>`, testProfile())
	assert.Contains(t, out, `grid-x="3"`)
	assert.Contains(t, out, `component-id="c42"`)
}

func TestSerializeHTML_Escaping(t *testing.T) {
	n := &domain.Node{
		Kind: domain.KindElement, Name: "span",
		Attributes: map[string]string{"title": `a"b<c`},
		Children:   []*domain.Node{{Kind: domain.KindText, Text: "<script>"}},
	}
	out := SerializeHTML(n)
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&#34;")
}
