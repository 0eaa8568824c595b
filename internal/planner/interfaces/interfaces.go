package interfaces

// PersisterInterface is the durability lifecycle: restore once at startup,
// run write-through saves while serving, final save on shutdown.
type PersisterInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}
