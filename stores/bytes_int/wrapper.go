package bytes_int

import (
	"sync"
)

import (
	"github.com/timtadh/fs2/bptree"
	"github.com/timtadh/fs2/fmap"
)

// MultiMap is a set of []byte keys, each tagged with the int32 it was
// first added with. Keys are variable sized.
type MultiMap interface {
	TestAndAdd(key []byte, value int32) (bool, error)
	Size() int
	Close() error
	Delete() error
}

type BpTree struct {
	bf    *fmap.BlockFile
	bpt   *bptree.BpTree
	mutex sync.Mutex
}

// AnonBpTree is backed by anonymous memory, NewBpTree by a file at path.
func AnonBpTree() (*BpTree, error) {
	bf, err := fmap.Anonymous(fmap.BLOCKSIZE)
	if err != nil {
		return nil, err
	}
	return newBpTree(bf)
}

func NewBpTree(path string) (*BpTree, error) {
	bf, err := fmap.CreateBlockFile(path)
	if err != nil {
		return nil, err
	}
	return newBpTree(bf)
}

func newBpTree(bf *fmap.BlockFile) (*BpTree, error) {
	bpt, err := bptree.New(bf, -1, 4)
	if err != nil {
		return nil, err
	}
	b := &BpTree{
		bf:  bf,
		bpt: bpt,
	}
	return b, nil
}

func (b *BpTree) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bf.Close()
}

func (b *BpTree) Delete() error {
	err := b.Close()
	if err != nil {
		return err
	}
	if b.bf.Path() != "" {
		return b.bf.Remove()
	}
	return nil
}

func (b *BpTree) Size() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Size()
}

// TestAndAdd adds (key, val) unless key is already present and reports
// whether it was. The check and the insert happen under one lock.
func (b *BpTree) TestAndAdd(key []byte, val int32) (bool, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	has, err := b.bpt.Has(key)
	if err != nil || has {
		return has, err
	}
	return false, b.bpt.Add(key, SerializeInt32(val))
}
