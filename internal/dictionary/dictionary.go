// Package dictionary holds the per-locale label dictionaries the console
// loads once per request. Lookups for the vi/la locales fall back to English,
// and English falls back to the key itself so a missing entry is visible but
// never fatal.
package dictionary

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
)

// Dictionary maps locale -> label key -> display text.
type Dictionary struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// New creates a dictionary pre-seeded with the handful of labels the form
// engine itself needs. Feature dictionaries merge on top via Load.
func New() *Dictionary {
	return &Dictionary{
		entries: map[string]map[string]string{
			"en": {
				"select.all":         "All",
				"search.placeholder": "Search",
				"error.section":      "This section could not be loaded",
				"input.unsupported":  "Unsupported input type",
			},
			"vi": {
				"select.all":         "Tất cả",
				"search.placeholder": "Tìm kiếm",
				"error.section":      "Không thể tải phần này",
				"input.unsupported":  "Loại điều khiển không được hỗ trợ",
			},
			"la": {
				"select.all":         "ທັງໝົດ",
				"search.placeholder": "ຄົ້ນຫາ",
			},
		},
	}
}

// Load merges a JSON dictionary document {locale: {key: text}} on top of the
// current entries.
func (d *Dictionary) Load(raw []byte) error {
	var doc map[string]map[string]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing dictionary: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for locale, labels := range doc {
		locale = schema.NormalizeLocale(locale)
		if d.entries[locale] == nil {
			d.entries[locale] = map[string]string{}
		}
		for k, v := range labels {
			d.entries[locale][k] = v
		}
	}
	return nil
}

// Lookup resolves key for locale, falling back to English and then the key.
func (d *Dictionary) Lookup(locale, key string) string {
	locale = schema.NormalizeLocale(locale)
	d.mu.RLock()
	defer d.mu.RUnlock()
	if v, ok := d.entries[locale][key]; ok {
		return v
	}
	if v, ok := d.entries["en"][key]; ok {
		return v
	}
	return key
}
