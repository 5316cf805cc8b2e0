package logging

import (
	"regexp"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Registry tracks named loggers so a config's LoggerPatternConfigs can adjust their levels.
type Registry struct {
	mu        sync.RWMutex
	loggers   map[string]Logger
	logConfig []LoggerPatternConfig
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		loggers: make(map[string]Logger),
	}
}

// LoggerNamed returns the logger registered under name.
func (lr *Registry) LoggerNamed(name string) (logger Logger, ok bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok = lr.loggers[name]
	return
}

// GetOrRegister returns the existing logger registered under `name`, or registers `logger` and
// applies the current patterns to it. Racing callers all get the winner's logger.
func (lr *Registry) GetOrRegister(name string, logger Logger) Logger {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if existingLogger, ok := lr.loggers[name]; ok {
		return existingLogger
	}

	lr.loggers[name] = logger
	for _, lpc := range lr.logConfig {
		if level, ok := matchPattern(lpc, name); ok {
			logger.SetLevel(level)
		}
	}
	return logger
}

// Update replaces the pattern set and re-levels every registered logger. Later patterns win.
// Loggers no pattern matches are reset to INFO. Invalid patterns are skipped with a warning.
func (lr *Registry) Update(logConfig []LoggerPatternConfig, warnLogger Logger) error {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.logConfig = logConfig

	appliedConfigs := make(map[string]Level)
	for _, lpc := range logConfig {
		if !validatePattern(lpc.Pattern) {
			warnLogger.Warnw("failed to validate a pattern", "pattern", lpc.Pattern)
			continue
		}
		if _, err := LevelFromString(lpc.Level); err != nil {
			return errors.Wrapf(err, "pattern %q", lpc.Pattern)
		}
		for name := range lr.loggers {
			if level, ok := matchPattern(lpc, name); ok {
				appliedConfigs[name] = level
			}
		}
	}

	for name, logger := range lr.loggers {
		level, ok := appliedConfigs[name]
		if !ok {
			level = INFO
		}
		logger.SetLevel(level)
	}

	return nil
}

// Names returns the sorted names of all registered loggers.
func (lr *Registry) Names() []string {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	registeredNames := make([]string, 0, len(lr.loggers))
	for name := range lr.loggers {
		registeredNames = append(registeredNames, name)
	}
	sort.Strings(registeredNames)
	return registeredNames
}

func matchPattern(lpc LoggerPatternConfig, name string) (Level, bool) {
	if !validatePattern(lpc.Pattern) {
		return INFO, false
	}
	r, err := regexp.Compile(buildRegexFromPattern(lpc.Pattern))
	if err != nil || !r.MatchString(name) {
		return INFO, false
	}
	level, err := LevelFromString(lpc.Level)
	if err != nil {
		return INFO, false
	}
	return level, true
}
