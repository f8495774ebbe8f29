// Package monitoring serves the state of a running autosplitter over HTTP, so
// that a run can be followed and the settings changed from a browser.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/ror-speedrun/autosplitter/autosplitter"
	"github.com/ror-speedrun/autosplitter/hooking"
	"github.com/ror-speedrun/autosplitter/monitoring/web"
)

// DefaultHistoryLength is the number of recent commands the monitor keeps.
const DefaultHistoryLength = 50

// A Game is an adapter whose samples can be inspected.
type Game interface {
	Name() string

	// Inspect returns a copy of the samples, safe to serialize while the
	// game is being ticked.
	Inspect() any
}

// A StageSplitter is a game with a stage split option.
type StageSplitter interface {
	StageSplits() bool
	SetStageSplits(on bool)
}

// Monitor turns the autosplitter into a server that allows external
// monitoring. It is a hook of the coordinator and keeps a copy of the state
// after every tick, so that HTTP handlers never touch the coordinator.
type Monitor struct {
	portNumber    int
	historyLength int
	settings      *autosplitter.SettingsStore
	games         []Game

	lock     sync.RWMutex
	snapshot autosplitter.Snapshot
	history  []autosplitter.CommandRecord

	server *http.Server
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		historyLength: DefaultHistoryLength,
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithHistoryLength sets the number of recent commands kept.
func (m *Monitor) WithHistoryLength(n int) *Monitor {
	m.historyLength = n
	return m
}

// RegisterSettings lets the monitor show and change the settings.
func (m *Monitor) RegisterSettings(s *autosplitter.SettingsStore) {
	m.settings = s
}

// RegisterGame registers a game to be inspected.
func (m *Monitor) RegisterGame(g Game) {
	m.games = append(m.games, g)
}

// Func keeps the latest snapshot and the recent commands.
func (m *Monitor) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case autosplitter.HookPosAfterTick:
		s, ok := ctx.Item.(autosplitter.Snapshot)
		if !ok {
			return
		}

		m.lock.Lock()
		m.snapshot = s
		m.lock.Unlock()
	case autosplitter.HookPosCommand:
		rec, ok := ctx.Item.(autosplitter.CommandRecord)
		if !ok {
			return
		}

		m.lock.Lock()
		m.history = append(m.history, rec)
		if over := len(m.history) - m.historyLength; over > 0 {
			m.history = append(m.history[:0:0], m.history[over:]...)
		}
		m.lock.Unlock()
	}
}

// Handler returns the router serving the API and the web page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	fs := web.Assets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/state", m.state).Methods(http.MethodGet)
	r.HandleFunc("/api/commands", m.commands).Methods(http.MethodGet)
	r.HandleFunc("/api/settings", m.getSettings).Methods(http.MethodGet)
	r.HandleFunc("/api/settings", m.putSettings).
		Methods(http.MethodPut, http.MethodPost)
	r.HandleFunc("/api/games", m.listGames).Methods(http.MethodGet)
	r.HandleFunc("/api/game/{name}", m.gameDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/game/{name}/stages", m.setStageSplits).
		Methods(http.MethodPut, http.MethodPost)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring autosplitter with %s\n", url)

	m.server = &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if !errors.Is(err, http.ErrServerClosed) {
			dieOnErr(err)
		}
	}()

	return url
}

// StopServer shuts the web server down.
func (m *Monitor) StopServer(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	m.lock.RLock()
	s := m.snapshot
	m.lock.RUnlock()

	writeJSON(w, s)
}

func (m *Monitor) commands(w http.ResponseWriter, _ *http.Request) {
	m.lock.RLock()
	history := append([]autosplitter.CommandRecord{}, m.history...)
	m.lock.RUnlock()

	writeJSON(w, history)
}

func (m *Monitor) getSettings(w http.ResponseWriter, _ *http.Request) {
	if m.settings == nil {
		http.Error(w, "settings are not available", http.StatusNotFound)
		return
	}

	writeJSON(w, m.settings.Settings())
}

func (m *Monitor) putSettings(w http.ResponseWriter, r *http.Request) {
	if m.settings == nil {
		http.Error(w, "settings are not available", http.StatusNotFound)
		return
	}

	s := m.settings.Settings()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&s); err != nil {
		http.Error(w, "invalid settings: "+err.Error(), http.StatusBadRequest)
		return
	}

	m.settings.Set(s)

	writeJSON(w, s)
}

type gameRsp struct {
	Name        string `json:"name"`
	StageSplits *bool  `json:"stage_splits,omitempty"`
}

func (m *Monitor) listGames(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]gameRsp, 0, len(m.games))

	for _, g := range m.games {
		entry := gameRsp{Name: g.Name()}

		if s, ok := g.(StageSplitter); ok {
			on := s.StageSplits()
			entry.StageSplits = &on
		}

		rsp = append(rsp, entry)
	}

	writeJSON(w, rsp)
}

func (m *Monitor) gameDetails(w http.ResponseWriter, r *http.Request) {
	g := m.findGameOr404(w, mux.Vars(r)["name"])
	if g == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(g.Inspect())
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) setStageSplits(w http.ResponseWriter, r *http.Request) {
	g := m.findGameOr404(w, mux.Vars(r)["name"])
	if g == nil {
		return
	}

	s, ok := g.(StageSplitter)
	if !ok {
		http.Error(w, "game has no stage splits", http.StatusMethodNotAllowed)
		return
	}

	on, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		http.Error(w, "enabled must be a boolean", http.StatusBadRequest)
		return
	}

	s.SetStageSplits(on)

	writeJSON(w, gameRsp{Name: g.Name(), StageSplits: &on})
}

func (m *Monitor) findGameOr404(w http.ResponseWriter, name string) Game {
	for _, g := range m.games {
		if g.Name() == name {
			return g
		}
	}

	http.Error(w, "unknown game "+name, http.StatusNotFound)

	return nil
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}

var _ hooking.Hook = (*Monitor)(nil)
