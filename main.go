package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hxkit/haxe-lsp/internal/haxe"
	"github.com/hxkit/haxe-lsp/internal/hover"
	"github.com/hxkit/haxe-lsp/internal/lsp"
	"github.com/hxkit/haxe-lsp/internal/metaindex"
	"github.com/hxkit/haxe-lsp/internal/project"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if os.Getenv("HAXE_LSP_DEBUG") != "" {
		logger = logger.Level(zerolog.DebugLevel)
	}

	// Get the current working directory as project root
	projectRoot, err := os.Getwd()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to get working directory")
	}

	server := lsp.NewServer(logger)

	if rc, err := project.Load(projectRoot); err != nil {
		logger.Warn().Err(err).Msg("failed to read project configuration")
	} else if rc.Version != "" {
		logger.Info().Str("version", rc.Version).Msg("project pins a compiler version")
	}

	haxePath := os.Getenv("HAXE_LSP_COMPILER")

	client := haxe.NewClient(haxe.ClientConfig{
		HaxePath: haxePath,
		RootDir:  projectRoot,
	}, logger)
	defer func() { _ = client.Close() }()

	var docIndex *metaindex.Index
	if configFolder, err := getProjectConfigFolder(projectRoot); err != nil {
		logger.Warn().Err(err).Msg("failed to resolve config folder, documentation index disabled")
	} else {
		docIndex, err = metaindex.New(filepath.Join(configFolder, "docs.db"), haxePath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to open documentation index")
			docIndex = nil
		} else {
			defer func() { _ = docIndex.Close() }()
		}
	}

	var docs hover.DocumentationSource
	if docIndex != nil {
		docs = docIndex
	}
	server.RegisterHoverProvider(hover.NewProvider(server.DocumentManager(), client, docs))
	server.RegisterCommandProvider(haxe.NewCommandProvider(client))
	server.RegisterCommandProvider(project.NewCommandProvider(projectRoot, func(ctx context.Context) {
		if err := client.Restart(ctx); err != nil {
			logger.Warn().Err(err).Msg("compiler restart after version change failed")
		}
		if docIndex != nil {
			if err := docIndex.Rebuild(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to rebuild documentation index")
			}
		}
	}))

	server.RegisterInitializedHook(func(ctx context.Context) {
		if err := client.Start(ctx); err != nil {
			logger.Warn().Err(err).Msg("compiler server unavailable, using legacy display protocol")
		}
		if docIndex != nil {
			if err := docIndex.Rebuild(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to rebuild documentation index")
			}
		}
	})

	watcher, err := haxe.NewBuildFileWatcher(projectRoot, logger, func(ctx context.Context) {
		if err := client.Restart(ctx); err != nil {
			logger.Warn().Err(err).Msg("compiler restart after build file change failed")
		}
	})
	if err != nil {
		logger.Warn().Err(err).Msg("build file watcher unavailable")
	} else {
		defer func() { _ = watcher.Close() }()
	}

	if err := server.Start(os.Stdin, os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("LSP server error")
	}
}
