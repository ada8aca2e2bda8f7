package ecs

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SchedulerState is Idle between frames and Executing while a stage runs
type SchedulerState int

const (
	StateIdle SchedulerState = iota
	StateExecuting
)

func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExecuting:
		return "executing"
	default:
		return fmt.Sprintf("SchedulerState(%d)", int(s))
	}
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	StageCount      int
	Frames          uint64
	TotalExecutions int64
	Stages          []StageStats
}

// StageStats provides execution statistics for a single stage.
type StageStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type stageStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// StageInfo describes a registered stage and the component sets its queries read
type StageInfo struct {
	Name  string
	Reads [][]reflect.Type
}

// StageError reports a panic raised while a stage was executing
type StageError struct {
	Index int
	Name  string
	Frame uint64
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s) failed in frame %d: %v", e.Index, e.Name, e.Frame, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

type stage struct {
	system  System
	name    string
	queries []snapshotter
	stats   stageStatsInternal
}

// Scheduler runs registered stages in order, once per frame.
type Scheduler struct {
	storage *Storage
	logger  *zap.Logger
	stages  []*stage
	sealed  bool
	state   SchedulerState
	current int
	failed  int
	frame   uint64
}

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used for registration and lifecycle events
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage: storage,
		logger:  zap.NewNop(),
		current: -1,
		failed:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register appends a stage and initializes its Query and Singleton fields.
// The order is fixed once the first frame has run.
func (s *Scheduler) Register(system System) {
	if s.sealed {
		panic("ecs: Register called after the first frame")
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	st := &stage{
		system:  system,
		name:    systemType.Name(),
		queries: s.initializeFields(system),
		stats:   stageStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	s.stages = append(s.stages, st)

	s.logger.Debug("registered stage",
		zap.String("stage", st.name),
		zap.Int("index", len(s.stages)-1),
		zap.Int("queries", len(st.queries)),
	)
}

func (s *Scheduler) initializeFields(system System) []snapshotter {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []snapshotter
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		ptr := field.Addr().Interface()
		if init, ok := ptr.(Initializer); ok {
			init.Init(s.storage)
		}
		if q, ok := ptr.(snapshotter); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Stages returns the registered stages in execution order
func (s *Scheduler) Stages() []StageInfo {
	infos := make([]StageInfo, len(s.stages))
	for i, st := range s.stages {
		infos[i].Name = st.name
		for _, q := range st.queries {
			infos[i].Reads = append(infos[i].Reads, q.Types())
		}
	}
	return infos
}

// State returns Idle or Executing
func (s *Scheduler) State() SchedulerState {
	return s.state
}

// Current returns the index of the executing stage, or -1 when idle
func (s *Scheduler) Current() int {
	return s.current
}

// Frame returns the number of frames started so far
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Once executes all registered stages once with the given delta time. Before
// each stage its queries are snapshotted and after it the frame's commands
// are flushed, so stage i sees every write of stages before it. A panic in a
// stage propagates after the scheduler returns to Idle; the stage's unflushed
// commands are discarded and its queries fall back to their previous
// snapshot, so the next frame reports the same Added and Removed entities.
func (s *Scheduler) Once(dt float64) {
	s.sealed = true
	s.frame++
	frame := newUpdateFrame(dt, s.frame, s.storage)

	completed := false
	defer func() {
		if !completed {
			s.failed = s.current
			frame.Commands.Discard()
			if s.current >= 0 {
				for _, q := range s.stages[s.current].queries {
					q.rollback()
				}
			}
		}
		s.state = StateIdle
		s.current = -1
	}()

	s.state = StateExecuting
	for i, st := range s.stages {
		s.current = i
		start := time.Now()

		for _, q := range st.queries {
			q.Execute()
		}
		st.system.Execute(frame)
		frame.Commands.Flush()
		for _, q := range st.queries {
			q.settle()
		}

		st.stats.record(time.Since(start))
	}
	completed = true
}

// Step runs one frame like Once and converts a stage panic into a *StageError
func (s *Scheduler) Step(dt float64) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		cause, ok := r.(error)
		if ok {
			cause = errors.WithStack(cause)
		} else {
			cause = errors.Errorf("%v", r)
		}

		stageErr := &StageError{Index: s.failed, Frame: s.frame, Cause: cause}
		if s.failed >= 0 && s.failed < len(s.stages) {
			stageErr.Name = s.stages[s.failed].name
		}
		err = stageErr
	}()

	s.Once(dt)
	return nil
}

// Run executes all stages at the given interval until the context is
// cancelled or a stage fails.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := s.Step(dt); err != nil {
				return err
			}
		}
	}
}

func (st *stageStatsInternal) record(duration time.Duration) {
	st.executionCount++
	st.lastDuration = duration
	st.totalDuration += duration

	if duration < st.minDuration {
		st.minDuration = duration
	}
	if duration > st.maxDuration {
		st.maxDuration = duration
	}
}

// GetStats returns statistics about stage execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		StageCount: len(s.stages),
		Frames:     s.frame,
		Stages:     make([]StageStats, len(s.stages)),
	}

	var totalExecs int64
	for i, st := range s.stages {
		internal := st.stats
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Stages[i] = StageStats{
			Name:           st.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
