// Package production provides production integrations: persistence, event publishing, visualization.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	tm "github.com/comalice/turingmachines"
)

// Persister stores machine definitions by machine ID.
type Persister interface {
	Save(ctx context.Context, def tm.Definition) error
	Load(ctx context.Context, machineID string) (tm.Definition, error)
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, def tm.Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return writeDefinition(filepath.Join(p.dir, def.ID+".json"), data)
}

func (p *JSONPersister) Load(ctx context.Context, machineID string) (tm.Definition, error) {
	data, err := readDefinition(ctx, filepath.Join(p.dir, machineID+".json"), machineID)
	if err != nil {
		return tm.Definition{}, err
	}
	var def tm.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return tm.Definition{}, fmt.Errorf("json unmarshal: %w", err)
	}
	def.ID = machineID
	return def, nil
}

// YAMLPersister is a file-based persister using YAML serialization. Loaded
// definitions are validated, since YAML files are usually written by hand.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, def tm.Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return writeDefinition(filepath.Join(p.dir, def.ID+".yaml"), data)
}

func (p *YAMLPersister) Load(ctx context.Context, machineID string) (tm.Definition, error) {
	data, err := readDefinition(ctx, filepath.Join(p.dir, machineID+".yaml"), machineID)
	if err != nil {
		return tm.Definition{}, err
	}
	def, err := DecodeYAML(data)
	if err != nil {
		return tm.Definition{}, err
	}
	def.ID = machineID
	return def, nil
}

// DecodeYAML parses and validates a YAML definition.
func DecodeYAML(data []byte) (tm.Definition, error) {
	var def tm.Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return tm.Definition{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := def.Validate(); err != nil {
		return tm.Definition{}, fmt.Errorf("definition validation after load: %w", err)
	}
	return def, nil
}

// LoadFile reads a definition from path, choosing the codec by extension
// (.json, otherwise YAML).
func LoadFile(path string) (tm.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tm.Definition{}, fmt.Errorf("read %s: %w", path, err)
	}
	if filepath.Ext(path) == ".json" {
		var def tm.Definition
		if err := json.Unmarshal(data, &def); err != nil {
			return tm.Definition{}, fmt.Errorf("json unmarshal %s: %w", path, err)
		}
		return def, nil
	}
	return DecodeYAML(data)
}

func writeDefinition(fn string, data []byte) error {
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func readDefinition(ctx context.Context, fn, machineID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}
