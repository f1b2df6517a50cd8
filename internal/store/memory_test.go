package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-reporter/internal/weather"
)

func dataset(id, name string, records int) Dataset {
	t := &weather.Table{Index: make([]time.Time, records)}
	return Dataset{ID: id, Name: name, Table: t}
}

func TestSaveReplacesWholesale(t *testing.T) {
	s := NewMemoryStore(0)
	s.Save(dataset("a", "station", 1))
	s.Save(dataset("a", "station", 5))

	ds, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Table.Len())
	assert.Len(t, s.List(), 1)
}

func TestGetMissing(t *testing.T) {
	s := NewMemoryStore(0)
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("nope"), ErrNotFound)
}

func TestEvictsOldest(t *testing.T) {
	s := NewMemoryStore(2)
	s.Save(dataset("a", "first", 1))
	s.Save(dataset("b", "second", 1))
	s.Save(dataset("c", "third", 1))

	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)

	names := []string{}
	for _, ds := range s.List() {
		names = append(names, ds.Name)
	}
	assert.Equal(t, []string{"second", "third"}, names)
}

func TestDelete(t *testing.T) {
	s := NewMemoryStore(2)
	s.Save(dataset("a", "first", 1))
	s.Save(dataset("b", "second", 1))
	require.NoError(t, s.Delete("a"))
	s.Save(dataset("c", "third", 1))

	_, err := s.Get("b")
	assert.NoError(t, err, "deleted ids no longer count towards the limit")
	assert.Len(t, s.List(), 2)
}
