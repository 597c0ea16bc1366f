package cli

import (
	"github.com/tbuendia/incidentctl/internal/app"
	"github.com/tbuendia/incidentctl/internal/tui"
)

// runConsole launches the interactive console. It is a function variable
// so tests can stub it out.
var runConsole = func(c *app.Container) error {
	return tui.Run(c)
}
