// Package runner assembles a complete autosplitter: the coordinator, the
// dispatcher over the supported games, and the optional run log and monitor.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/ror-speedrun/autosplitter/autosplitter"
	"github.com/ror-speedrun/autosplitter/datarecording"
	"github.com/ror-speedrun/autosplitter/monitoring"
)

const stopTimeout = 2 * time.Second

// A Runner owns every part of one autosplitter execution.
type Runner struct {
	id string

	settings    *autosplitter.SettingsStore
	coordinator *autosplitter.Coordinator
	dispatcher  *autosplitter.Dispatcher

	dataRecorder datarecording.DataRecorder
	runRecorder  *datarecording.RunRecorder

	monitor    *monitoring.Monitor
	monitorURL string
}

// ID returns the unique ID of the execution.
func (r *Runner) ID() string {
	return r.id
}

// Settings returns the live settings, shared with the monitor.
func (r *Runner) Settings() *autosplitter.SettingsStore {
	return r.settings
}

// GetCoordinator returns the coordinator.
func (r *Runner) GetCoordinator() *autosplitter.Coordinator {
	return r.coordinator
}

// GetDispatcher returns the dispatcher.
func (r *Runner) GetDispatcher() *autosplitter.Dispatcher {
	return r.dispatcher
}

// GetDataRecorder returns the run log, or nil if recording is off.
func (r *Runner) GetDataRecorder() datarecording.DataRecorder {
	return r.dataRecorder
}

// GetMonitor returns the monitor, or nil if monitoring is off.
func (r *Runner) GetMonitor() *monitoring.Monitor {
	return r.monitor
}

// MonitorURL returns the address the monitor serves on, or an empty string
// if monitoring is off.
func (r *Runner) MonitorURL() string {
	return r.monitorURL
}

// Run dispatches until ctx ends, which is not an error, or the coordinator
// fails.
func (r *Runner) Run(ctx context.Context) error {
	err := r.dispatcher.Run(ctx)
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}

	return err
}

// Terminate stops the monitor and closes the run log.
func (r *Runner) Terminate() {
	if r.monitor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()

		_ = r.monitor.StopServer(ctx)
	}

	if r.runRecorder != nil {
		r.runRecorder.End()
	}

	if r.dataRecorder != nil {
		_ = r.dataRecorder.Close()
	}
}
