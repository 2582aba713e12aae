package web

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/typhoon-chat/internal/widget"
)

// domStub is just enough DOM and fetch for script.js. Every fetch stays
// pending until the test settles it through fetches[i].
const domStub = `
var window = globalThis;

function el(tag) {
  return {
    tag: tag, children: [], listeners: {}, value: "", className: "", textContent: "",
    disabled: false, hidden: false, focused: 0, scrollTop: 0, scrollHeight: 0,
    appendChild: function (c) { this.children.push(c); return c; },
    addEventListener: function (type, fn) { this.listeners[type] = fn; },
    focus: function () { this.focused++; },
    set innerHTML(v) { this.children = []; },
    get innerHTML() { return ""; }
  };
}

var document = {
  els: { chat: el("div"), form: el("form"), msg: el("input"), send: el("button"), clear: el("button") },
  getElementById: function (id) { return this.els[id]; },
  createElement: function (tag) { return el(tag); }
};

var fetches = [];
function fetch(url, opts) {
  return new Promise(function (resolve, reject) {
    fetches.push({
      url: url,
      prompt: JSON.parse(opts.body).prompt,
      resolve: function (data) { resolve({ json: function () { return data; } }); },
      reject: function (msg) { reject(new Error(msg)); }
    });
  });
}

function submitDraft(text) {
  document.els.msg.value = text;
  document.els.form.listeners.submit({ preventDefault: function () {} });
}

function bubbleTexts() {
  return document.els.chat.children.map(function (c) {
    return c.className.indexOf("row") === 0 ? c.children[1].textContent : c.textContent;
  });
}
`

type page struct {
	t  *testing.T
	vm *goja.Runtime
}

func loadPage(t *testing.T, cfg widget.Config) *page {
	t.Helper()

	vm := goja.New()
	_, err := vm.RunString(domStub)
	require.NoError(t, err)

	b, err := json.Marshal(newPageConfig(cfg))
	require.NoError(t, err)
	_, err = vm.RunString("window.TYPHOON_CONFIG = " + string(b) + ";")
	require.NoError(t, err)

	src, err := fs.ReadFile(staticFS, "static/script.js")
	require.NoError(t, err)
	_, err = vm.RunScript("script.js", string(src))
	require.NoError(t, err)

	return &page{t: t, vm: vm}
}

// run evaluates src; pending promise jobs are drained before it returns.
func (p *page) run(src string) goja.Value {
	p.t.Helper()
	v, err := p.vm.RunString(src)
	require.NoError(p.t, err)
	return v
}

func (p *page) flag(src string) bool {
	return p.run(src).ToBoolean()
}

func (p *page) count(src string) int64 {
	return p.run(src).ToInteger()
}

func (p *page) texts() []string {
	var out []string
	require.NoError(p.t, p.vm.ExportTo(p.run("bubbleTexts()"), &out))
	return out
}

func TestScript_RoundTrip(t *testing.T) {
	p := loadPage(t, widget.DefaultConfig())

	p.run(`submitDraft("  What is the Eurofighter Typhoon's top speed?  ")`)
	assert.True(t, p.flag("document.els.send.disabled"))
	assert.True(t, p.flag("document.els.msg.disabled"))
	assert.Equal(t, "What is the Eurofighter Typhoon's top speed?", p.run("fetches[0].prompt").String())
	assert.Equal(t, widget.DefaultPlaceholder, p.texts()[2])

	p.run(`fetches[0].resolve({ response: "Mach 2" })`)
	assert.Equal(t, []string{widget.DefaultGreeting, "What is the Eurofighter Typhoon's top speed?", "Mach 2"}, p.texts())
	assert.False(t, p.flag("document.els.send.disabled"))
	assert.False(t, p.flag("document.els.msg.disabled"))
}

func TestScript_BlankDraftIsNoop(t *testing.T) {
	p := loadPage(t, widget.DefaultConfig())

	p.run(`submitDraft("   ")`)
	assert.Equal(t, int64(0), p.count("fetches.length"))
	assert.Len(t, p.texts(), 1)
}

func TestScript_StaleResponseAfterClearKeepsFormDisabled(t *testing.T) {
	p := loadPage(t, widget.DefaultConfig())

	p.run(`submitDraft("first")`)
	p.run(`document.els.clear.listeners.click()`)
	p.run(`submitDraft("second")`)
	require.Equal(t, int64(2), p.count("fetches.length"))

	p.run(`fetches[0].resolve({ response: "stale" })`)
	assert.True(t, p.flag("document.els.send.disabled"))
	assert.True(t, p.flag("document.els.msg.disabled"))

	// the form stays locked, so no second request can start
	p.run(`submitDraft("third")`)
	assert.Equal(t, int64(2), p.count("fetches.length"))

	p.run(`fetches[1].resolve({ response: "fresh" })`)
	assert.Equal(t, []string{widget.DefaultGreeting, "second", "fresh"}, p.texts())
	assert.False(t, p.flag("document.els.send.disabled"))
}

func TestScript_FallbackAndError(t *testing.T) {
	p := loadPage(t, widget.DefaultConfig())

	p.run(`submitDraft("one")`)
	p.run(`fetches[0].resolve({})`)
	p.run(`submitDraft("two")`)
	p.run(`fetches[1].resolve({ response: "" })`)
	p.run(`submitDraft("three")`)
	p.run(`fetches[2].reject("network down")`)

	texts := p.texts()
	assert.Equal(t, widget.DefaultFallback, texts[2])
	assert.Equal(t, widget.DefaultFallback, texts[4])
	assert.Equal(t, widget.DefaultErrorPrefix+"network down", texts[6])
	assert.False(t, p.flag("document.els.send.disabled"))
}

func TestScript_FollowsVariant(t *testing.T) {
	full := loadPage(t, widget.DefaultConfig())
	assert.False(t, full.flag("document.els.clear.hidden"))
	assert.Equal(t, "row bot", full.run("document.els.chat.children[0].className").String())

	minimal := loadPage(t, widget.MinimalConfig())
	assert.True(t, minimal.flag("document.els.clear.hidden"))
	assert.True(t, minimal.flag(`document.els.clear.listeners.click === undefined`))
	assert.Equal(t, "bubble bot", minimal.run("document.els.chat.children[0].className").String())

	minimal.run(`submitDraft("hello")`)
	assert.Equal(t, "Thinking…", minimal.texts()[2])
}
