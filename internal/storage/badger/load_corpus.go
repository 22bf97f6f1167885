package badger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/moneyfornothin/taxchat/internal/interfaces"
	"github.com/moneyfornothin/taxchat/internal/models"
)

// corpusFile is the on-disk shape of a chunk corpus file. TOML files use
// [[chunks]] tables, YAML files a "chunks:" list.
type corpusFile struct {
	Chunks []models.Chunk `toml:"chunks" yaml:"chunks"`
}

// LoadCorpusFromFiles loads chunk corpus files from the specified
// directory into chunk storage. Files that fail to parse are skipped with
// a warning; a missing directory is not an error.
func LoadCorpusFromFiles(chunkStorage interfaces.ChunkStorage, corpusDir string, logger arbor.ILogger) (int, error) {
	if _, err := os.Stat(corpusDir); os.IsNotExist(err) {
		logger.Debug().Str("dir", corpusDir).Msg("Corpus directory does not exist, skipping")
		return 0, nil
	}

	logger.Info().Str("dir", corpusDir).Msg("Loading chunk corpus from files")

	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	loadedCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".toml" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		filePath := filepath.Join(corpusDir, entry.Name())
		data, err := os.ReadFile(filePath)
		if err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to read corpus file")
			continue
		}

		var file corpusFile
		switch ext {
		case ".toml":
			err = toml.Unmarshal(data, &file)
		default:
			err = yaml.Unmarshal(data, &file)
		}
		if err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to parse corpus file")
			continue
		}

		fileCount := 0
		for i := range file.Chunks {
			chunk := file.Chunks[i]
			if chunk.Text == "" {
				logger.Warn().Str("file", entry.Name()).Int("index", i).Msg("Skipping chunk with empty text")
				continue
			}
			// Files without explicit source paths inherit the file name
			if chunk.SourcePath == "" {
				chunk.SourcePath = entry.Name()
			}
			if chunk.Category == "" {
				chunk.Category = "general"
			}
			if err := chunkStorage.SaveChunk(&chunk); err != nil {
				logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to save chunk")
				continue
			}
			fileCount++
		}

		logger.Info().Str("file", entry.Name()).Int("chunks", fileCount).Msg("Corpus file loaded")
		loadedCount += fileCount
	}

	logger.Info().Int("chunks", loadedCount).Msg("Chunk corpus loading complete")
	return loadedCount, nil
}
