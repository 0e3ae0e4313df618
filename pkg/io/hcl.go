package io

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/matzehuels/modgraph/pkg/curriculum"
	"github.com/matzehuels/modgraph/pkg/errors"
)

// hclDocument is the block layout of an HCL curriculum file:
//
//	module "CS201" {
//	  pre = ["CS101", ["MA100", "MA101"]]
//	}
//
//	programme "bsc-cs" {
//	  years    = [["CS101"], ["CS201"]]
//	  required = ["CS101"]
//	}
type hclDocument struct {
	Modules    []*hclBlock `hcl:"module,block"`
	Programmes []*hclBlock `hcl:"programme,block"`
}

type hclBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// ReadHCL decodes an HCL curriculum document. filename is used in
// diagnostics only.
func ReadHCL(src []byte, filename string) (*curriculum.Catalog, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, diags, "parse HCL")
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, diags, "decode HCL")
	}

	modules, err := blocksToMap(doc.Modules)
	if err != nil {
		return nil, err
	}
	programmes, err := blocksToMap(doc.Programmes)
	if err != nil {
		return nil, err
	}
	return decode(map[string]any{"modules": modules, "programmes": programmes})
}

func blocksToMap(blocks []*hclBlock) (map[string]any, error) {
	out := make(map[string]any, len(blocks))
	for _, b := range blocks {
		if _, dup := out[b.Name]; dup {
			return nil, errors.New(errors.ErrCodeConfigLoad, "duplicate block %q", b.Name)
		}
		attrs, diags := b.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, errors.Wrap(errors.ErrCodeConfigLoad, diags, "block %q", b.Name)
		}
		fields := make(map[string]any, len(attrs))
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, errors.Wrap(errors.ErrCodeConfigLoad, diags, "block %q: %s", b.Name, name)
			}
			v, err := ctyToNative(val)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "block %q: %s", b.Name, name)
			}
			if v != nil {
				fields[name] = v
			}
		}
		out[b.Name] = fields
	}
	return out, nil
}

// ctyToNative converts a cty value into the plain Go values produced by the
// JSON and TOML decoders.
func ctyToNative(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			native, err := ctyToNative(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = native
		}
		return out, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			native, err := ctyToNative(v)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
	}
}
