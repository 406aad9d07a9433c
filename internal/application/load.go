package application

import (
	"context"
	"fmt"

	"github.com/abdidvp/pystyle/internal/domain"
)

// sourceLoader is the read -> configure -> parse sequence every service
// starts with.
type sourceLoader struct {
	reader domain.SourceReader
	config domain.ConfigLoader
	parser domain.Parser
}

// load returns the parsed file and the config that applies to it. Path
// problems come back before the config is looked up, parse failures after.
func (l sourceLoader) load(ctx context.Context, path string) (*domain.SourceFile, domain.Config, error) {
	content, cfg, err := l.prepare(path)
	if err != nil {
		return nil, domain.Config{}, err
	}
	file, err := l.parse(ctx, path, content)
	if err != nil {
		return nil, cfg, err
	}
	return file, cfg, nil
}

// prepare reads path and resolves its config without parsing.
func (l sourceLoader) prepare(path string) (string, domain.Config, error) {
	// 1. Read and validate the path.
	content, err := l.reader.Read(path)
	if err != nil {
		return "", domain.Config{}, err
	}

	// 2. Resolve the config for the file's directory.
	cfg, err := l.config.Load(path)
	if err != nil {
		return "", domain.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return content, cfg, nil
}

// parse builds the tree once; every rule and the fixer share it.
func (l sourceLoader) parse(ctx context.Context, path, content string) (*domain.SourceFile, error) {
	tree, err := l.parser.Parse(ctx, []byte(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return domain.NewSourceFile(path, content, tree), nil
}
