package layouts

// Embedded default layouts. A file of the same name in the layouts
// directory takes precedence.

var builtinLayouts = map[string]string{
	"post": postLayout,
	"page": pageLayout,
	"home": homeLayout,
	"tag":  tagLayout,
	"tags": tagsLayout,
}

const baseLayout = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ if .Title }}{{ .Title }} | {{ end }}{{ .Site.Title }}</title>
  {{ if .Description }}<meta name="description" content="{{ .Description }}">{{ end }}
  <link rel="stylesheet" href="/assets/main.css">
</head>
<body>
  <header class="site-header">
    <nav>
      <a href="/">{{ .Site.Title }}</a>
      <a href="/tags/">Tags</a>
    </nav>
  </header>
  <main>
    {{ block "main" . }}{{ end }}
  </main>
  <footer class="site-footer">
    <p>&copy; {{ .Site.Author }}</p>
  </footer>
  <script src="/assets/main.js"></script>
</body>
</html>`

const postLayout = `{{ define "main" }}
<article class="post">
  <header>
    <h1>{{ .Title }}</h1>
    <time datetime="{{ .Date.Format "2006-01-02" }}">{{ formatDate .Date "" }}</time>
    {{ if .Tags }}
    <ul class="tags">
      {{ range .Tags }}<li><a href="/tags/{{ slugify . }}/">{{ . }}</a></li>{{ end }}
    </ul>
    {{ end }}
  </header>
  {{ .Content }}
</article>
{{ end }}`

const pageLayout = `{{ define "main" }}
<article class="page">
  {{ if .Title }}<h1>{{ .Title }}</h1>{{ end }}
  {{ .Content }}
</article>
{{ end }}`

const homeLayout = `{{ define "main" }}
<section class="post-list">
  {{ range .Posts }}
  <article>
    <h2><a href="{{ .URL }}">{{ .Title }}</a></h2>
    <time datetime="{{ .Date.Format "2006-01-02" }}">{{ formatDate .Date "" }}</time>
    {{ if .Description }}<p>{{ .Description }}</p>{{ end }}
  </article>
  {{ end }}
</section>
{{ end }}`

const tagsLayout = `{{ define "main" }}
<section class="tag-list">
  <h1>Tags</h1>
  <ul>
    {{ range .Tags }}<li><a href="/tags/{{ slugify . }}/">{{ titleCase . }}</a></li>{{ end }}
  </ul>
</section>
{{ end }}`

const tagLayout = `{{ define "main" }}
<section class="post-list">
  <h1>{{ titleCase .Tag }}</h1>
  {{ range .Posts }}
  <article>
    <h2><a href="{{ .URL }}">{{ .Title }}</a></h2>
    <time datetime="{{ .Date.Format "2006-01-02" }}">{{ formatDate .Date "" }}</time>
  </article>
  {{ end }}
</section>
{{ end }}`
