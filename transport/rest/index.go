package rest

import (
	"context"
	_ "embed"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

//go:embed static/client.js
var clientJS string

const pageTitle = "Tic-Tac-Toe"

const pageStyle = `body { font-family: sans-serif; max-width: 28rem; margin: 2rem auto; }
#board { display: grid; grid-template-columns: repeat(3, 5rem); gap: .25rem; margin: 1rem 0; }
#board button { height: 5rem; font-size: 2rem; }
#board button.win { background: #bde5b8; }`

// indexPage is the browser client: the layout around controls, board and script.
func indexPage(wsPath string) templ.Component {
	body := sequence(heading(pageTitle), controls(), board(entity.BoardSize), script(clientJS))

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layout(pageTitle, wsPath).Render(templ.WithChildren(ctx, body), w)
	})
}

// layout renders the document shell and its children inside body.
func layout(title, wsPath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>` +
			templ.EscapeString(title) + `</title><style>` + pageStyle + `</style></head>` +
			`<body data-ws-path="` + templ.EscapeString(wsPath) + `">`

		if _, err := io.WriteString(w, head); err != nil {
			return err
		}

		if err := templ.GetChildren(ctx).Render(templ.ClearChildren(ctx), w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</body></html>`)

		return err
	})
}

func heading(title string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>`+templ.EscapeString(title)+`</h1>`)
		return err
	})
}

func controls() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p>`+
			`<button id="create">Create lobby</button> `+
			`<input id="code" maxlength="6" placeholder="CODE"> `+
			`<button id="join">Join</button> `+
			`<button id="restart" disabled>Restart</button>`+
			`</p><p id="status">Connecting...</p>`)

		return err
	})
}

// board renders one button per cell, addressed by its row-major index.
func board(cells int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="board">`); err != nil {
			return err
		}

		for i := range cells {
			if _, err := io.WriteString(w, `<button data-cell="`+strconv.Itoa(i)+`"></button>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)

		return err
	})
}

func script(source string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<script>`); err != nil {
			return err
		}

		if err := templ.Raw(source).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</script>`)

		return err
	})
}

// sequence renders parts one after another.
func sequence(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, part := range parts {
			if err := part.Render(ctx, w); err != nil {
				return err
			}
		}

		return nil
	})
}
