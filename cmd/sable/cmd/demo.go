package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-sable/sable/pkg/dom"
	"github.com/go-sable/sable/pkg/events"
	"github.com/go-sable/sable/pkg/refdata"
	"github.com/go-sable/sable/pkg/runtime"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the headless counter demo",
	Long: `Run a headless counter application against the runtime core: a
counter model, a render function that rebuilds the document from it, and a
mouse-up callback that increments the counter and requests regeneration.

Synthetic click events are pumped through dispatch; with --debug-port the
document tree and runtime stats are served over HTTP while the demo runs.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().Int("clicks", 5, "number of synthetic clicks to dispatch")
	demoCmd.Flags().Duration("interval", 200*time.Millisecond, "delay between synthetic clicks")
	demoCmd.Flags().Int("debug-port", 0, "serve debug endpoints on this port (0 disables)")
	viper.BindPFlag("demo.clicks", demoCmd.Flags().Lookup("clicks"))
	viper.BindPFlag("demo.interval", demoCmd.Flags().Lookup("interval"))
	viper.BindPFlag("debug.port", demoCmd.Flags().Lookup("debug-port"))
	rootCmd.AddCommand(demoCmd)
}

// counter is the demo's application model.
type counter struct {
	Clicks int
	Ticks  int
}

// renderCounter is the demo's pure model-to-document function.
func renderCounter(data *refdata.Ref, layout *events.LayoutContext) *dom.Dom {
	m, _ := refdata.Access[counter](data)
	label := dom.Text(fmt.Sprintf("Clicks: %d  Ticks: %d", m.Clicks, m.Ticks)).
		WithStyle("font-size", "24px")
	button := dom.Div().
		WithStyle("cursor", "pointer").
		WithCallback(events.KindMouseUp, onCounterClick, data.CloneHandle()).
		Append(dom.Text("Increment"))
	return dom.Body().Append(label).Append(button)
}

// onCounterClick increments the model and asks for a rebuild.
func onCounterClick(ctx *dom.CallbackContext) events.Update {
	view, err := ctx.Data.DowncastMut(refdata.TagOf[counter]())
	if err != nil {
		return events.DoNothing
	}
	defer view.Release()
	m, _ := refdata.AccessMut[counter](view)
	m.Clicks++
	return events.RegenerateDom
}

// onCounterTick counts timer fires; redraw only, the structure is unchanged.
func onCounterTick(ctx *dom.CallbackContext) events.Update {
	view, err := ctx.Data.DowncastMut(refdata.TagOf[counter]())
	if err != nil {
		return events.DoNothing
	}
	defer view.Release()
	m, _ := refdata.AccessMut[counter](view)
	m.Ticks++
	return events.RefreshPaint
}

// printingPresenter logs each present pass.
type printingPresenter struct{}

func (printingPresenter) Present(info events.WindowInfo, tree *dom.Dom) {
	fmt.Printf("present window=%d nodes=%d\n", info.ID, tree.NodeCount())
}

func runDemo(cmd *cobra.Command, args []string) error {
	clicks := viper.GetInt("demo.clicks")
	interval := viper.GetDuration("demo.interval")
	debugPort := viper.GetInt("debug.port")

	data := refdata.Pack(counter{})
	app := runtime.NewApp(data, runtime.WithPresenter(printingPresenter{}))
	defer app.Shutdown()

	window, err := app.CreateWindow(runtime.WindowOptions{
		Title:  "sable demo",
		Width:  800,
		Height: 600,
		Render: renderCounter,
	})
	if err != nil {
		return err
	}

	if debugPort > 0 {
		port, err := app.StartDebugServer(debugPort)
		if err != nil {
			return err
		}
		fmt.Printf("debug server listening on http://localhost:%d\n", port)
	}

	window.AddTimer(interval/2, true, onCounterTick, data.Clone())

	// Find the button node: the innermost div with a mouse-up entry.
	buttonChain := hitChainFor(window, events.KindMouseUp)

	for i := 0; i < clicks; i++ {
		time.Sleep(interval)
		app.Tick(time.Now())
		payload := events.Payload{Kind: events.KindMouseUp, Data: nil}
		app.ProcessEvent(window.Info().ID, buttonChain, events.KindMouseUp, payload)
		// The tree was regenerated; resolve the button again.
		buttonChain = hitChainFor(window, events.KindMouseUp)
	}

	stats := app.Stats().Snapshot()
	fmt.Printf("dispatches=%d regenerations=%d redraws=%d timerFires=%d\n",
		stats.Dispatches, stats.Regenerations, stats.Redraws, stats.TimerFires)
	return nil
}

// hitChainFor builds a root-to-target chain for the first node registering
// the given event kind, standing in for the hit-testing collaborator.
func hitChainFor(window *runtime.WindowController, kind events.Kind) []dom.NodeID {
	var chain []dom.NodeID
	window.Tree().Walk(func(id dom.NodeID, node *dom.NodeData, depth int) bool {
		for _, spec := range node.Callbacks() {
			if spec.Event == kind {
				chain = []dom.NodeID{0, id}
				return false
			}
		}
		return true
	})
	return chain
}
