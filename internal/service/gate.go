package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"qaportal/internal/config"
)

// UploadGate validates incoming files before the document lifecycle accepts
// them: extension allow-list plus size ceiling. It performs no I/O; placing
// the file is the lifecycle's job.
type UploadGate struct {
	allowed     map[string]struct{}
	allowedList string
	maxSize     int64
}

// NewUploadGate builds a gate from the configured upload rules.
func NewUploadGate(cfg config.UploadConfig) *UploadGate {
	allowed := make(map[string]struct{}, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(t)] = struct{}{}
	}
	return &UploadGate{
		allowed:     allowed,
		allowedList: strings.Join(cfg.AllowedTypes, ", "),
		maxSize:     cfg.MaxFileSize,
	}
}

// Validate checks the filename's extension against the allow-list and the
// size against the ceiling. On success it returns the normalized lowercase
// extension (without the dot).
func (g *UploadGate) Validate(filename string, size int64) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return "", fmt.Errorf("%w: allowed types: %s", ErrInvalidFileType, g.allowedList)
	}
	if _, ok := g.allowed[ext]; !ok {
		return "", fmt.Errorf("%w: allowed types: %s", ErrInvalidFileType, g.allowedList)
	}
	if size > g.maxSize {
		return "", fmt.Errorf("%w: maximum size: %dMB", ErrFileTooLarge, g.maxSize/1024/1024)
	}
	return ext, nil
}
