package config

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/erpindex/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// fileRoot lists the blocks a settings file may contain. Unknown blocks and
// attributes are rejected.
type fileRoot struct {
	Source *sourceBlock `hcl:"source,block"`
	Query  *queryBlock  `hcl:"query,block"`
	Log    *logBlock    `hcl:"log,block"`
}

type sourceBlock struct {
	Path          *string `hcl:"path,optional"`
	Delimiter     *string `hcl:"delimiter,optional"`
	ListSeparator *string `hcl:"list_separator,optional"`
	PairSeparator *string `hcl:"pair_separator,optional"`
	SkipHeader    *bool   `hcl:"skip_header,optional"`
}

type queryBlock struct {
	DefaultThreshold *int `hcl:"default_threshold,optional"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// LoadFile parses the HCL settings file at path and applies the attributes
// it sets on top of base. The result is not validated.
func LoadFile(ctx context.Context, path string, base Settings, env Environment) (Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Settings file loading started.", "path", path)

	if _, err := os.Stat(path); err != nil {
		return base, fmt.Errorf("failed to access settings file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(env), &root)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}

	s := base
	if b := root.Source; b != nil {
		set(&s.Source.Path, b.Path)
		set(&s.Source.Delimiter, b.Delimiter)
		set(&s.Source.ListSeparator, b.ListSeparator)
		set(&s.Source.PairSeparator, b.PairSeparator)
		set(&s.Source.SkipHeader, b.SkipHeader)
	}
	if b := root.Query; b != nil {
		set(&s.Query.DefaultThreshold, b.DefaultThreshold)
	}
	if b := root.Log; b != nil {
		set(&s.Log.Level, b.Level)
		set(&s.Log.Format, b.Format)
	}

	logger.Debug("Settings file loaded.", "path", path,
		"source_block", root.Source != nil, "query_block", root.Query != nil, "log_block", root.Log != nil)
	return s, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func evalContext(env Environment) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": env.ctyValue(),
		},
		Functions: map[string]function.Function{
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"coalesce":  stdlib.CoalesceFunc,
		},
	}
}
