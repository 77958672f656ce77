package results

import "errors"

// ErrDuplicateTest is returned by Mapping.Add when the test name is already present.
var ErrDuplicateTest = errors.New("duplicate test name")

// Record is one parsed result line.
type Record struct {
	TestName string `json:"test_name"`
	Status   string `json:"status"`
}

// Mapping associates test names with their observed status for one result file.
// Keys are unique and keep their insertion order.
type Mapping struct {
	keys   []string
	values map[string]string
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]string)}
}

// Add inserts a result. An existing entry is never overwritten.
func (m *Mapping) Add(testName, status string) error {
	if _, exists := m.values[testName]; exists {
		return ErrDuplicateTest
	}
	m.keys = append(m.keys, testName)
	m.values[testName] = status
	return nil
}

// Get returns the status recorded for testName.
func (m *Mapping) Get(testName string) (string, bool) {
	status, ok := m.values[testName]
	return status, ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Keys returns the test names in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Records returns the entries in insertion order.
func (m *Mapping) Records() []Record {
	out := make([]Record, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Record{TestName: k, Status: m.values[k]})
	}
	return out
}
