package utils

import "time"

// populationSmoothing weighs the newest frame in the population moving average
const populationSmoothing = 0.1

// Stats accumulates what the host reports about a run
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	Restarts             int
	InjectedCells        int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Frame records one rendered generation. frameTime is the wall time since
// the previous frame; non-positive values leave the rate unchanged.
func (s *Stats) Frame(population int, frameTime time.Duration) {
	s.TotalGenerations++
	if frameTime > 0 {
		s.GenerationsPerSecond = float64(time.Second) / float64(frameTime)
	}

	pop := float64(population)
	if s.TotalGenerations == 1 {
		s.AveragePopulation = pop
		return
	}
	s.AveragePopulation += (pop - s.AveragePopulation) * populationSmoothing
}

// Restart records a reseed of the universe
func (s *Stats) Restart() {
	s.Restarts++
}

// Injected records n cells revived to break up stagnation
func (s *Stats) Injected(n int) {
	s.InjectedCells += n
}

// Runtime returns the time elapsed since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
