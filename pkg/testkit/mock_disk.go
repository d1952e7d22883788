package testkit

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/kicksup/kicksup/pkg/storage"
)

// MockDisk is an in-memory storage.Disk backed by testify/mock, so tests can
// both read back what was stored and assert on the calls:
//
//	disk := testkit.NewMockDisk("http://test.local/storage")
//	disk.Fail("Put", errors.New("bucket gone"))
//	...
//	disk.AssertCalled(t, "Delete", "images/ab12.png")
type MockDisk struct {
	mock.Mock

	baseURL string
	mu      sync.Mutex
	files   map[string][]byte
	types   map[string]string
}

var _ storage.Disk = (*MockDisk)(nil)

// NewMockDisk accepts every call by default.
func NewMockDisk(baseURL string) *MockDisk {
	d := &MockDisk{baseURL: baseURL, files: map[string][]byte{}, types: map[string]string{}}
	d.expectDefaults()
	return d
}

func (d *MockDisk) expectDefaults() {
	d.On("Put", mock.AnythingOfType("string")).Return(nil)
	d.On("Delete", mock.AnythingOfType("string")).Return(nil)
}

// Fail makes every later call to method ("Put" or "Delete") return err.
func (d *MockDisk) Fail(method string, err error) {
	kept := d.ExpectedCalls[:0]
	for _, c := range d.ExpectedCalls {
		if c.Method != method {
			kept = append(kept, c)
		}
	}
	d.ExpectedCalls = kept
	d.On(method, mock.AnythingOfType("string")).Return(err)
}

// Reset drops stored files, call history and custom expectations.
func (d *MockDisk) Reset() {
	d.mu.Lock()
	d.files = map[string][]byte{}
	d.types = map[string]string{}
	d.mu.Unlock()

	d.ExpectedCalls = nil
	d.Calls = nil
	d.expectDefaults()
}

func (d *MockDisk) Put(_ context.Context, key string, r io.Reader, contentType string) error {
	if err := d.MethodCalled("Put", key).Error(0); err != nil {
		return err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.files[key] = b
	d.types[key] = contentType
	d.mu.Unlock()
	return nil
}

func (d *MockDisk) Get(_ context.Context, key string) (io.ReadCloser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.files[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (d *MockDisk) Exists(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[key]
	return ok, nil
}

func (d *MockDisk) Delete(_ context.Context, key string) error {
	if err := d.MethodCalled("Delete", key).Error(0); err != nil {
		return err
	}
	d.mu.Lock()
	delete(d.files, key)
	delete(d.types, key)
	d.mu.Unlock()
	return nil
}

func (d *MockDisk) URL(key string) string {
	return strings.TrimRight(d.baseURL, "/") + "/" + strings.TrimLeft(key, "/")
}

// Keys lists stored keys in order.
func (d *MockDisk) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.files))
	for k := range d.files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ContentType reports what Put was given for key.
func (d *MockDisk) ContentType(key string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.types[key]
}
