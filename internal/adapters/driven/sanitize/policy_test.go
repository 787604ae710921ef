package sanitize

import (
	"strings"
	"testing"
)

func TestPolicy_Sanitize(t *testing.T) {
	p := NewPolicy()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
		{
			name:  "plain text",
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "allowed markup is kept",
			input: `<h2>Title</h2><p>Some <strong>bold</strong> and <em>em</em> text.</p>`,
			want:  `<h2>Title</h2><p>Some <strong>bold</strong> and <em>em</em> text.</p>`,
		},
		{
			name:  "script is dropped with its content",
			input: `<p>before</p><script>alert(1)</script><p>after</p>`,
			want:  `<p>before</p><p>after</p>`,
		},
		{
			name:  "event handlers are stripped",
			input: `<p onclick="steal()" class="lead">text</p>`,
			want:  `<p class="lead">text</p>`,
		},
		{
			name:  "javascript links lose their href",
			input: `<a href="javascript:alert(1)">click</a>`,
			want:  `<a>click</a>`,
		},
		{
			name:  "encoded javascript scheme is caught",
			input: `<a href="jav&#x61;script:alert(1)">click</a>`,
			want:  `<a>click</a>`,
		},
		{
			name:  "http links survive",
			input: `<a href="https://example.com/x" title="x">x</a>`,
			want:  `<a href="https://example.com/x" title="x">x</a>`,
		},
		{
			name:  "relative links survive",
			input: `<a href="/blog/post">post</a>`,
			want:  `<a href="/blog/post">post</a>`,
		},
		{
			name:  "target blank gets rel",
			input: `<a href="https://example.com" target="_blank">x</a>`,
			want:  `<a href="https://example.com" target="_blank" rel="noopener noreferrer">x</a>`,
		},
		{
			name:  "unknown elements are unwrapped",
			input: `<p><font color="red">red</font> text</p>`,
			want:  `<p>red text</p>`,
		},
		{
			name:  "iframe is dropped",
			input: `<p>x</p><iframe src="https://evil.example"></iframe>`,
			want:  `<p>x</p>`,
		},
		{
			name:  "images keep safe attributes",
			input: `<img src="https://cdn.example/a.png" alt="a" onerror="x()">`,
			want:  `<img src="https://cdn.example/a.png" alt="a"/>`,
		},
		{
			name:  "data image src is dropped",
			input: `<img src="data:text/html;base64,PHNjcmlwdD4=" alt="a">`,
			want:  `<img alt="a"/>`,
		},
		{
			name:  "style attribute is dropped",
			input: `<span style="background:url(javascript:x)">s</span>`,
			want:  `<span>s</span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPolicy_SanitizeBlogBody(t *testing.T) {
	p := NewPolicy()

	input := `<h2>Intro</h2>
<p>Analytics without ops is a report nobody reads.</p>
<ul><li>one</li><li>two</li></ul>
<pre><code>SELECT 1;</code></pre>`

	got := p.Sanitize(input)
	for _, want := range []string{"<h2>Intro</h2>", "<ul><li>one</li><li>two</li></ul>", "<pre><code>SELECT 1;</code></pre>"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output %q", want, got)
		}
	}
}

func TestPolicy_Idempotent(t *testing.T) {
	p := NewPolicy()
	input := `<p onclick="x">a <b>b</b><script>c</script><a href="https://e.x" target="_blank">d</a></p>`

	once := p.Sanitize(input)
	twice := p.Sanitize(once)
	if once != twice {
		t.Errorf("sanitizing twice changed output:\n%q\n%q", once, twice)
	}
}
