// Package config loads the game and character JSON files and resolves
// them into domain types.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/younwookim/fg/internal/domain/character"
	"github.com/younwookim/fg/internal/domain/stage"
)

// Match holds everything a loaded game runs on: the raw game config,
// the stage, and both resolved character contexts.
type Match struct {
	Game  *GameConfig
	Stage stage.Stage
	P1    *character.Context
	P2    *character.Context
}

// Loader loads game configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadGame loads game.json
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, "game.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read game.json: %w", err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game.json: %w", err)
	}

	return &cfg, nil
}

// LoadCharacter loads a character JSON file by its path relative to
// the config root
func (l *Loader) LoadCharacter(path string) (*CharacterConfig, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character %s: %w", path, err)
	}

	var cfg CharacterConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse character %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadMatch loads game.json, both character files, and resolves them
// into ready contexts.
func (l *Loader) LoadMatch() (*Match, error) {
	game, err := l.LoadGame()
	if err != nil {
		return nil, err
	}
	if len(game.Players) != 2 {
		return nil, fmt.Errorf("game.json must configure exactly 2 players, got %d", len(game.Players))
	}

	width := game.StageWidth
	if width <= 0 {
		width = stage.DefaultWidth
	}

	contexts := make([]*character.Context, 2)
	for i, p := range game.Players {
		cfg, err := l.LoadCharacter(p.Character)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		def, err := cfg.Definition()
		if err != nil {
			return nil, fmt.Errorf("player %d: character %s: %w", i+1, p.Character, err)
		}
		side, err := p.Side()
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		ctx, err := character.NewContext(def, p.StartPos.Vec2(), side)
		if err != nil {
			return nil, fmt.Errorf("player %d: character %s: %w", i+1, p.Character, err)
		}
		contexts[i] = ctx
	}

	return &Match{
		Game:  game,
		Stage: stage.New(width),
		P1:    contexts[0],
		P2:    contexts[1],
	}, nil
}
