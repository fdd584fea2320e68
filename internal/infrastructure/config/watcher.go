package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/bnema/sysparse/internal/logging"
)

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return
	}

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log := logging.NewFromEnv()
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")

		m.mu.Lock()
		if err := m.reload(); err != nil {
			m.mu.Unlock()
			log.Warn().Err(err).Msg("failed to reload config")
			return
		}
		m.notifyCallbacksLocked()
	})
	m.viper.WatchConfig()

	m.watching = true
}

// notifyCallbacksLocked copies callbacks and config, releases lock, then notifies.
// Must be called with m.mu held for write.
func (m *Manager) notifyCallbacksLocked() {
	config := *m.config
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, callback := range callbacks {
		c := config
		callback(&c)
	}
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// reload re-reads the file. Must be called with m.mu held for write.
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}
	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := finalizeConfig(config); err != nil {
		return err
	}
	m.config = config
	return nil
}

// Reload re-reads the configuration and notifies registered callbacks.
func (m *Manager) Reload() error {
	m.mu.Lock()
	if err := m.reload(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.notifyCallbacksLocked()
	return nil
}
