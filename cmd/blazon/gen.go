package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"

	"github.com/blazonapi/blazon/blazongen/openapi"
	"github.com/blazonapi/blazon/blazongen/provider"
	"github.com/blazonapi/blazon/blazongen/sink"
	"github.com/blazonapi/blazon/cmd/blazon/internal/manifest"
)

type GenCmd struct {
	Manifest    string `arg:"" help:"Path to the API surface manifest (YAML)." type:"existingfile"`
	Descriptors string `arg:"" help:"Path to the compiled descriptor set (protoc --descriptor_set_out)." type:"existingfile"`
	Out         string `help:"Output directory." default:"." short:"o"`
	Format      string `help:"Output format." enum:"json,yaml" default:"json" short:"f"`
	Pretty      bool   `help:"Indent the JSON output."`
}

func (c *GenCmd) Run() error {
	gen, err := buildGenerator(c.Manifest, c.Descriptors)
	if err != nil {
		return err
	}

	var out []byte
	switch c.Format {
	case "yaml":
		out, err = gen.YAML()
	default:
		out, err = gen.JSON()
		if err == nil && c.Pretty {
			var buf bytes.Buffer
			if err = json.Indent(&buf, out, "", "  "); err == nil {
				out = buf.Bytes()
			}
		}
	}
	if err != nil {
		return err
	}

	for _, w := range gen.Warnings() {
		slog.Warn("generator warning", slog.String("detail", w))
	}

	path := sink.DefaultPath(c.Format)
	dest := sink.NewFilesystemSink(c.Out)
	if err := dest.WriteFile(context.Background(), path, out); err != nil {
		return err
	}

	slog.Info("wrote api description",
		slog.String("path", filepath.Join(c.Out, path)),
		slog.Int("bytes", len(out)))
	return nil
}

// buildGenerator wires the manifest and descriptor set into a generator.
// Shared by gen and serve.
func buildGenerator(manifestPath, descriptorPath string) (*openapi.Generator, error) {
	files, err := provider.LoadDescriptorSet(descriptorPath)
	if err != nil {
		return nil, err
	}
	man, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	reg, err := man.Registry(files)
	if err != nil {
		return nil, err
	}
	return openapi.NewGenerator(reg, man.Config())
}
