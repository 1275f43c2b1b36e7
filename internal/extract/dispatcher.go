package extract

import (
	"fmt"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
)

// Result is the structured outcome of a dispatch. Faults inside an extractor
// are reported here instead of being returned or propagated.
type Result struct {
	Success bool                  `json:"success"`
	Data    *domain.ScrapedRecord `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// Failure builds an unsuccessful Result.
func Failure(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// Dispatcher picks the first matching extractor and runs it in isolation.
type Dispatcher struct {
	registry Registry
	logger   logger.Logger
}

// NewDispatcher creates a dispatcher over the given registry. A nil registry
// means DefaultRegistry.
func NewDispatcher(registry Registry, log logger.Logger) *Dispatcher {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		registry: registry,
		logger:   log,
	}
}

// Dispatch extracts a record from doc. It never panics.
func (d *Dispatcher) Dispatch(doc *Document, url string) Result {
	ext, ok := d.registry.Select(url)
	if !ok {
		return Failure(ErrNoMatchingExtractor)
	}

	d.logger.Debug("dispatching extraction",
		logger.String("extractor", ext.Name()),
		logger.String("url", url))

	rec, err := runIsolated(ext, doc, url)
	if err != nil {
		d.logger.Warn("extraction failed",
			logger.String("extractor", ext.Name()),
			logger.String("url", url),
			logger.Error(err))
		return Failure(err)
	}

	return Result{Success: true, Data: &rec}
}

// runIsolated calls the extractor and turns a panic into an error.
func runIsolated(ext Extractor, doc *Document, url string) (rec domain.ScrapedRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s extractor panicked: %v", ext.Name(), r)
		}
	}()
	return ext.Extract(doc, url)
}
