package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/tictactoe-history/internal/domain"
)

type templates struct {
	base  *template.Template
	page  *template.Template
	game  *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"cellSymbol": func(c domain.Cell) string { return c.String() },
		"add":        func(a, b int) int { return a + b },
		"mul":        func(a, b int) int { return a * b },
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic Tac Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>
.square{width:3em;height:3em;font-size:1.5em}
.square.highlight{background:#fde68a}
.move-list-item-selected{font-weight:bold}
</style>
</head><body>{{template "content" .}}</body></html>`))
	// Define the game fragment within the same set so the page can include it
	template.Must(base.New("game").Parse(gameTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic Tac Toe</h1><form action="/game" method="post"><button>New game</button></form>`))
	page := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h1>Tic Tac Toe</h1>
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div id="live" sse-swap="game">{{template "game" .}}</div>
</div>`))
	// Standalone fragment used for htmx responses and SSE broadcasts
	game := template.Must(template.New("game_only").Funcs(funcs()).Parse(gameTemplate))
	return &templates{base: base, page: page, game: game, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

// gameData feeds gameTemplate.
type gameData struct {
	ID    string
	View  domain.View
	Error string
}

const gameTemplate = `
<div id="game">
  <div class="status">{{.View.Status}}</div>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{- $id := .ID}}{{$v := .View}}
  {{/* 3x3 grid */}}
  {{range $r := iter 3}}
  <div class="board-row">
    {{range $c := iter 3}}{{$i := add (mul $r 3) $c}}{{$cell := index $v.Board $i}}
      <form hx-post="/game/{{$id}}/play" hx-target="#game" hx-swap="outerHTML" method="post" style="display:inline">
        <input type="hidden" name="i" value="{{$i}}">
        <button type="submit" class="square player-{{cellSymbol $cell}}{{if $v.Highlight $i}} highlight{{end}}">{{cellSymbol $cell}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
  <h4>Move History
    <form hx-post="/game/{{$id}}/sort" hx-target="#game" hx-swap="outerHTML" method="post" style="display:inline">
      <button type="submit" class="sort">{{$v.SortLabel}}</button>
    </form>
  </h4>
  <table class="move-history">
    <tr><th>Move</th><th>Player</th><th>Row</th><th>Col</th><th>Jump</th></tr>
    {{range $v.Rows}}
    <tr{{if .Selected}} class="move-list-item-selected"{{end}}>
      <td>{{.Move}}</td>
      {{if eq .Move 0}}<td>-</td><td>-</td><td>-</td>{{else}}<td>Player {{cellSymbol .Player}}</td><td>{{.Row}}</td><td>{{.Col}}</td>{{end}}
      <td>
        <form hx-post="/game/{{$id}}/jump" hx-target="#game" hx-swap="outerHTML" method="post">
          <input type="hidden" name="step" value="{{.Move}}">
          <button type="submit">{{.Label}}</button>
        </form>
      </td>
    </tr>
    {{end}}
  </table>
  <form hx-post="/game/{{$id}}/reset" hx-target="#game" hx-swap="outerHTML" method="post">
    <button type="submit" class="reset">Reset Game</button>
  </form>
</div>
`
