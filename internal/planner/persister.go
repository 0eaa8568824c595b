package planner

import (
	"sync"
	"time"

	"cpd/internal/planner/interfaces"
	"cpd/internal/providers"
	"cpd/internal/services"
	"cpd/internal/structures"
)

// Persister implements write-through durability: every mutating dispatch
// signals the update channel and the worker saves the latest snapshot.
// Signals coalesce under bursts, so a rapid sequence of dispatches may be
// covered by a single save of the newest state. A save failure is a warning,
// never a rollback; the in-memory snapshot stays authoritative.
type Persister struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	service     services.PlannerServiceInterface
	fileManager *FileManager
	opsMu       sync.Mutex
	quit        chan struct{}
	done        chan struct{}
}

func NewPersister(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, service services.PlannerServiceInterface, fileManager *FileManager) interfaces.PersisterInterface {
	return &Persister{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		service:     service,
		fileManager: fileManager,
	}
}

func (p *Persister) Init() {
	p.quit = make(chan struct{})
	p.done = make(chan struct{})

	var ticker *time.Ticker
	var tick <-chan time.Time
	if interval := p.config.Persistence.SaveInterval; interval > 0 {
		// Optional periodic safety flush on top of write-through saves.
		ticker = time.NewTicker(interval)
		tick = ticker.C
	}

	go func() {
		defer close(p.done)
		if ticker != nil {
			defer ticker.Stop()
		}
		updates := p.service.Updates()
		for {
			select {
			case <-updates:
				p.save()
			case <-tick:
				p.save()
			case <-p.quit:
				return
			}
		}
	}()
}

func (p *Persister) Stop() {
	if p.quit == nil {
		return
	}
	close(p.quit)
	<-p.done
	p.quit = nil
}

func (p *Persister) Restore() error {
	return p.fileManager.LoadFromFile(p.config.Persistence.FilePath)
}

// Persist runs the final synchronous save during shutdown.
func (p *Persister) Persist() error {
	p.opsMu.Lock()
	defer p.opsMu.Unlock()

	p.logger.Infof(providers.TypeApp, "Persisting planner data to file...")
	err := p.fileManager.SaveToFile(p.config.Persistence.FilePath)
	if err != nil {
		p.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func (p *Persister) save() {
	p.opsMu.Lock()
	defer p.opsMu.Unlock()

	start := time.Now()
	err := p.fileManager.SaveToFile(p.config.Persistence.FilePath)
	if err != nil {
		p.logger.Warnf(providers.TypeApp, "Error while persisting data, in-memory state stays authoritative: %s", err)
		return
	}
	p.metrics.ObservePersistenceDuration(time.Since(start))
	p.logger.Debugf(providers.TypeApp, "Persisted data to file %s", p.config.Persistence.FilePath)
}
