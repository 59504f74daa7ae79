package digraph

import (
	"sync"
)

import (
	"github.com/timtadh/data-structures/hashtable"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/stores/bytes_int"
)

// Dups is the set of canonical codes already handed out. It lives in
// memory, or in a B+tree file when a cache directory is configured.
type Dups struct {
	mu   sync.Mutex
	mem  *hashtable.LinearHash
	disk bytes_int.MultiMap
}

func NewDups(conf *config.Config) (*Dups, error) {
	if conf.Cache == "" {
		return &Dups{mem: hashtable.NewLinearHash()}, nil
	}
	disk, err := conf.BytesIntMultiMap("dups")
	if err != nil {
		return nil, err
	}
	return &Dups{disk: disk}, nil
}

// Seen adds code to the set and reports whether it was already there.
// Exactly one caller sees false for a given code.
func (d *Dups) Seen(code []byte, thread int) (bool, error) {
	if d.disk != nil {
		return d.disk.TestAndAdd(code, int32(thread))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	key := types.ByteSlice(code)
	if d.mem.Has(key) {
		return true, nil
	}
	return false, d.mem.Put(key, thread)
}

func (d *Dups) Size() int {
	if d.disk != nil {
		return d.disk.Size()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mem.Size()
}

func (d *Dups) Close() error {
	if d.disk != nil {
		return d.disk.Delete()
	}
	return nil
}
