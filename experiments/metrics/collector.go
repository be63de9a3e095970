package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration     time.Duration
	Simulations  int
	MaxDepth     int
	Episodes     int
	FullPlayouts int // playouts that reached the end of the round
	Cutoffs      int // playouts stopped by the depth limit
	TreeSize     int
}

type MoveMetric struct {
	Step   int
	Player int // Seat
	Action string
	SearchMetric
}

type GameMetric struct {
	Dealer     int
	Winner     int // Seat, -1 when the step limit was hit
	Points     int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(simulations, maxDepth int)
	SetTreeSize(nodes int)
	AddFullPlayout()
	AddCutoff()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	simulations  int
	maxDepth     int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	cutoffs      atomic.Int32
	treeSize     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(simulations, maxDepth int) {
	m.startTime = time.Now()
	m.simulations = simulations
	m.maxDepth = maxDepth
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.cutoffs.Store(0)
	m.treeSize.Store(0)
}

func (m *collector) SetTreeSize(nodes int) {
	m.treeSize.Store(int32(nodes))
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Simulations:  m.simulations,
		MaxDepth:     m.maxDepth,
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoffs:      int(m.cutoffs.Load()),
		TreeSize:     int(m.treeSize.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(simulations, maxDepth int) {}
func (m *dummyCollector) SetTreeSize(nodes int)           {}
func (m *dummyCollector) AddFullPlayout()                 {}
func (m *dummyCollector) AddCutoff()                      {}
func (m *dummyCollector) AddEpisode()                     {}
func (m *dummyCollector) Complete() SearchMetric          { return SearchMetric{} }
