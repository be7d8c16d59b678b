package rbs

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"

	"gopkg.in/yaml.v3"

	"github.com/dak2/methodray/registry"
	"github.com/dak2/methodray/types"
)

// Record is one harvested method signature in wire form. Types travel as
// printed forms; ParseTypeForm turns them back into the algebra.
type Record struct {
	ReceiverClass   string   `yaml:"receiver_class"`
	MethodName      string   `yaml:"method_name"`
	ReturnType      string   `yaml:"return_type"`
	BlockParamTypes []string `yaml:"block_param_types,omitempty"`
}

// Harvester yields the signature catalog from the upstream RBS ecosystem.
// The engine only depends on this interface; how the records are produced is
// the collaborator's business.
type Harvester interface {
	Harvest() ([]Record, error)
	// Version reports the upstream signature version the records came
	// from, used for cache validity.
	Version() (string, error)
}

// ErrNoHarvester signals that no harvester was configured; the driver logs
// and proceeds with the built-in fallback catalog (BuiltinRecords).
var ErrNoHarvester = errors.New("no signature harvester configured")

// CommandHarvester shells out to an external loader (typically a Ruby script
// driving the rbs gem) that prints records as a YAML sequence on stdout.
type CommandHarvester struct {
	Cmd []string
}

func (h *CommandHarvester) Harvest() ([]Record, error) {
	if len(h.Cmd) == 0 {
		return nil, ErrNoHarvester
	}
	out, err := h.run(h.Cmd)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := yaml.Unmarshal(out, &records); err != nil {
		return nil, fmt.Errorf("decoding harvester output: %w", err)
	}
	return records, nil
}

func (h *CommandHarvester) Version() (string, error) {
	if len(h.Cmd) == 0 {
		return "", ErrNoHarvester
	}
	cmd := append(append([]string(nil), h.Cmd...), "--version")
	out, err := h.run(cmd)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(out)), nil
}

func (h *CommandHarvester) run(cmd []string) ([]byte, error) {
	c := exec.Command(cmd[0], cmd[1:]...)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("running harvester %q: %w (%s)", cmd[0], err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}

// LoadIntoRegistry deserializes each record's printed forms and registers
// the signature under an Instance receiver keyed by the class path.
func LoadIntoRegistry(records []Record, reg *registry.Registry) {
	for _, rec := range records {
		recv := types.NewInstance(rec.ReceiverClass)
		ret := ParseTypeForm(rec.ReturnType)
		if len(rec.BlockParamTypes) == 0 {
			reg.Register(recv, rec.MethodName, ret)
			continue
		}
		blockParams := make([]types.Type, len(rec.BlockParamTypes))
		for i, form := range rec.BlockParamTypes {
			blockParams[i] = ParseTypeForm(form)
		}
		reg.RegisterWithBlock(recv, rec.MethodName, ret, blockParams)
	}
}
