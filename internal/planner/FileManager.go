package planner

import (
	"os"

	json "github.com/goccy/go-json"

	"cpd/internal/models"
	"cpd/internal/planner/interfaces"
	"cpd/internal/providers"
	"cpd/internal/services"
)

// zstdMagic is the zstd frame header. Snapshot files are sniffed on load so
// plain JSON written by an earlier configuration (or by the original browser
// tool) still hydrates.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type FileManager struct {
	service    services.PlannerServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.PlannerServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := f.service.GetSnapshot()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile hydrates the store from the snapshot file. A missing file is
// not an error; the store keeps its empty initial state. A malformed file is
// reported to the caller, which degrades to defaults instead of crashing.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if isZstd(data) {
		// Decode with a one-shot decoder rather than the configured
		// compressor, so a compressed file still loads after the config
		// switched back to plain JSON.
		dec, err := NewZstdCompressor()
		if err != nil {
			return err
		}
		data, err = dec.Decompress(data)
		dec.Close()
		if err != nil {
			f.logger.Warnf(providers.TypeApp, "Snapshot file is not decompressible, starting from defaults")
			return err
		}
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		f.logger.Warnf(providers.TypeApp, "Snapshot file is malformed, starting from defaults")
		return err
	}

	// Collections absent from the stored blob stay at their defaults; the
	// reducer treats nil payload collections as "keep current".
	f.service.Dispatch(models.LoadData{Data: snapshot})
	return nil
}

func isZstd(data []byte) bool {
	if len(data) < len(zstdMagic) {
		return false
	}
	for i, b := range zstdMagic {
		if data[i] != b {
			return false
		}
	}
	return true
}
