// MachCost desktop, CNC machining cost estimator.
//
// Build:
//   go build -o machcost-gui ./cmd/machcost-gui
//
// Using fyne-cross for packaged builds:
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	applog "github.com/piwi3910/MachCost/internal/log"
	"github.com/piwi3910/MachCost/internal/ui"
)

func main() {
	_, flush, err := applog.Setup(os.Getenv("MACHCOST_LOG_LEVEL"))
	if err != nil {
		_, flush, _ = applog.Setup("info")
	}
	defer flush()

	application := app.NewWithID("com.piwi3910.machcost")
	window := application.NewWindow("MachCost - CNC Machining Cost Estimator")

	appUI := ui.NewApp(application, window, ui.Options{})
	application.Settings().SetTheme(appUI.Theme())
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(760, 720))
	window.CenterOnScreen()
	appUI.Start()
	window.ShowAndRun()
}
